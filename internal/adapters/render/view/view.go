package view

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/klinik-cli/internal/application"
	"github.com/bnema/klinik-cli/internal/domain"
)

func Doctors(doctors []domain.Doctor) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.title.Render("Doctors"),
			s.header.Render(fmt.Sprintf("doctors: %d", len(doctors))),
		}
		if len(doctors) == 0 {
			return withEmpty(lines, "No doctors found.", s)
		}

		for _, doctor := range doctors {
			lines = append(lines, s.section.Render(doctorBlock(doctor, false, s)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func Doctor(doctor domain.Doctor) Page {
	return Page{build: func(s styles) string {
		return doctorBlock(doctor, true, s)
	}}
}

func doctorBlock(doctor domain.Doctor, full bool, s styles) string {
	parts := []string{s.item.Render(fmt.Sprintf("Dr. %s (#%d)", doctor.FullName(), doctor.ID))}

	facts := []string{}
	if doctor.Specialty != "" {
		facts = append(facts, doctor.Specialty)
	}
	if doctor.ExperienceYears > 0 {
		facts = append(facts, fmt.Sprintf("%d years experience", doctor.ExperienceYears))
	}
	if doctor.Fee > 0 {
		facts = append(facts, formatMoney(doctor.Fee))
	}
	if len(facts) > 0 {
		parts = append(parts, s.detail.Render(strings.Join(facts, " · ")))
	}
	if doctor.WorkingHours != "" {
		parts = append(parts, keyValue("hours", doctor.WorkingHours, s))
	}
	if full {
		if doctor.Email != "" {
			parts = append(parts, keyValue("email", doctor.Email, s))
		}
		if doctor.About != "" {
			parts = append(parts, s.faint.Render(doctor.About))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func Specialties(specialties []string) Page {
	return Page{build: func(s styles) string {
		lines := []string{s.title.Render("Specialties")}
		if len(specialties) == 0 {
			return withEmpty(lines, "No specialties listed.", s)
		}
		for _, specialty := range specialties {
			lines = append(lines, s.detail.Render("• "+specialty))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func Slots(doctorID domain.DoctorID, date string, slots []string) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.title.Render(fmt.Sprintf("Available slots on %s", date)),
			s.header.Render(fmt.Sprintf("doctor #%d · slots: %d", doctorID, len(slots))),
		}
		if len(slots) == 0 {
			return withEmpty(lines, "No free slots on this day.", s)
		}
		lines = append(lines, s.detail.Render(strings.Join(slots, "  ")))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func Appointments(title string, appointments []domain.Appointment) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.title.Render(title),
			s.header.Render(fmt.Sprintf("appointments: %d", len(appointments))),
		}
		if len(appointments) == 0 {
			return withEmpty(lines, "No appointments found.", s)
		}
		for _, appointment := range appointments {
			lines = append(lines, s.section.Render(appointmentBlock(appointment, s)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func Appointment(appointment domain.Appointment) Page {
	return Page{build: func(s styles) string {
		return appointmentBlock(appointment, s)
	}}
}

func appointmentBlock(appointment domain.Appointment, s styles) string {
	heading := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.item.Render(fmt.Sprintf("#%d %s %s", appointment.ID, appointment.Date, appointment.Time)),
		" ",
		statusBadge(appointment.Status.Label()),
	)

	parts := []string{heading, keyValue("patient", appointment.PatientFullName(), s)}
	if appointment.Doctor != nil {
		parts = append(parts, keyValue("doctor", "Dr. "+appointment.Doctor.FullName(), s))
	}
	if appointment.Department != "" {
		parts = append(parts, keyValue("department", appointment.Department, s))
	}
	if appointment.Phone != "" {
		parts = append(parts, keyValue("phone", appointment.Phone, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Reviews lists approved reviews. A negative average hides the rating bar.
func Reviews(reviews []domain.Review, average float64) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.title.Render("Patient reviews"),
			s.header.Render(fmt.Sprintf("reviews: %d", len(reviews))),
		}
		if average >= 0 {
			lines = append(lines, ratingLine(average, s))
		}
		if len(reviews) == 0 {
			return withEmpty(lines, "No reviews yet.", s)
		}
		for _, review := range reviews {
			lines = append(lines, s.section.Render(reviewBlock(review, s)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func reviewBlock(review domain.Review, s styles) string {
	heading := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.stars.Render(review.Stars()),
		" ",
		s.item.Render(review.PatientName),
	)
	parts := []string{heading}
	if review.Comment != "" {
		parts = append(parts, s.detail.Render(review.Comment))
	}
	meta := []string{fmt.Sprintf("#%d", review.ID)}
	if review.CreatedAt != "" {
		meta = append(meta, review.CreatedAt)
	}
	if !review.Approved {
		meta = append(meta, "awaiting approval")
	}
	parts = append(parts, s.faint.Render(strings.Join(meta, " · ")))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func ratingLine(average float64, s styles) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.key.Render("average rating:"),
		" ",
		renderRatingBar(average, 20, s),
		" ",
		s.detail.Render(fmt.Sprintf("%.1f / 5", average)),
	)
}

func renderRatingBar(average float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := clamp(average, 0, 5) / 5
	filled := int(math.Round(float64(width) * fraction))
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func Invoices(title string, invoices []domain.Invoice) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.title.Render(title),
			s.header.Render(fmt.Sprintf("invoices: %d", len(invoices))),
		}
		if len(invoices) == 0 {
			return withEmpty(lines, "No invoices found.", s)
		}
		for _, invoice := range invoices {
			lines = append(lines, invoiceLine(invoice, s))
		}
		lines = append(lines, s.section.Render(keyValue("total", s.money.Render(formatMoney(domain.TotalAmount(invoices))), s)))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func Invoice(invoice domain.Invoice) Page {
	return Page{build: func(s styles) string {
		parts := []string{invoiceLine(invoice, s)}
		if invoice.Appointment != nil {
			parts = append(parts, keyValue("appointment", fmt.Sprintf("#%d %s %s", invoice.Appointment.ID, invoice.Appointment.Date, invoice.Appointment.PatientFullName()), s))
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}}
}

func invoiceLine(invoice domain.Invoice, s styles) string {
	parts := []string{
		s.item.Render(fmt.Sprintf("#%d", invoice.ID)),
		" ",
		s.money.Render(formatMoney(invoice.Amount)),
		" ",
		statusBadge(invoiceLabel(invoice.Status)),
	}
	if invoice.IssuedAt != "" {
		parts = append(parts, " ", s.faint.Render(invoice.IssuedAt))
	}
	if invoice.Description != "" {
		parts = append(parts, " ", s.detail.Render(invoice.Description))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func invoiceLabel(status domain.InvoiceStatus) string {
	switch status {
	case domain.InvoicePending:
		return "pending"
	case domain.InvoicePaid:
		return "paid"
	case domain.InvoiceCancelled:
		return "cancelled"
	case "":
		return "unknown"
	default:
		return strings.ToLower(string(status))
	}
}

func AdminDashboard(dashboard application.AdminDashboard) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.title.Render("Admin dashboard"),
			keyValue("total revenue", s.money.Render(formatMoney(dashboard.TotalRevenue)), s),
		}

		if len(dashboard.Statistics) > 0 {
			stats := []string{s.key.Render("statistics")}
			keys := make([]string, 0, len(dashboard.Statistics))
			for key := range dashboard.Statistics {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				stats = append(stats, s.detail.Render(fmt.Sprintf("  %s: %v", key, formatValue(dashboard.Statistics[key]))))
			}
			lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, stats...)))
		}

		pending := []string{s.key.Render(fmt.Sprintf("pending reviews: %d", len(dashboard.PendingReviews)))}
		for _, review := range dashboard.PendingReviews {
			pending = append(pending, reviewBlock(review, s))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, pending...)))

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func DoctorDashboard(dashboard application.DoctorDashboard) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.title.Render(fmt.Sprintf("Doctor dashboard · %s", dashboard.Identity.Username)),
			keyValue("revenue", s.money.Render(formatMoney(dashboard.Revenue)), s),
			keyValue("appointments", fmt.Sprintf("%d", len(dashboard.Appointments)), s),
			keyValue("invoices", fmt.Sprintf("%d", len(dashboard.Invoices)), s),
		}

		upcoming := 0
		for _, appointment := range dashboard.Appointments {
			if appointment.Status == domain.AppointmentPending || appointment.Status == domain.AppointmentConfirmed {
				if upcoming == 0 {
					lines = append(lines, s.section.Render(s.key.Render("open appointments")))
				}
				upcoming++
				lines = append(lines, appointmentBlock(appointment, s))
			}
		}

		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

// Identity shows who is logged in. A zero now prints the absolute login time.
func Identity(identity domain.Identity, now time.Time) Page {
	return Page{build: func(s styles) string {
		lines := []string{
			s.item.Render(identity.Username),
			keyValue("role", identity.Role.Label(), s),
		}
		if identity.UserID != 0 {
			lines = append(lines, keyValue("user id", fmt.Sprintf("%d", identity.UserID), s))
		}
		if !identity.LoggedInAt.IsZero() {
			lines = append(lines, keyValue("logged in", formatSince(identity.LoggedInAt, now), s))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}}
}

func formatSince(at, now time.Time) string {
	if now.IsZero() || now.Before(at) {
		return at.Format("2006-01-02 15:04")
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(elapsed.Hours()))
	default:
		return at.Format("2006-01-02 15:04")
	}
}

func statusBadge(label string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(statusColor(label)).Render("[" + label + "]")
}

func keyValue(key, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key+":"), " ", s.detail.Render(value))
}

func withEmpty(lines []string, message string, s styles) string {
	lines = append(lines, s.empty.Render(message))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f TL", amount)
}

func formatValue(value any) any {
	if f, ok := value.(float64); ok && f == math.Trunc(f) {
		return int64(f)
	}
	return value
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
