package application

import (
	"context"
	"fmt"

	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

type AdminDashboard struct {
	Statistics     domain.Statistics
	PendingReviews []domain.Review
	TotalRevenue   float64
}

type DoctorDashboard struct {
	Identity     domain.Identity
	Appointments []domain.Appointment
	Invoices     []domain.Invoice
	Revenue      float64
}

// DashboardService checks the stored role before any remote call.
type DashboardService struct {
	sessions ports.SessionStore
	admin    ports.AdminDashboardAPI
	doctor   ports.DoctorDashboardAPI
}

func NewDashboardService(sessions ports.SessionStore, admin ports.AdminDashboardAPI, doctor ports.DoctorDashboardAPI) *DashboardService {
	return &DashboardService{sessions: sessions, admin: admin, doctor: doctor}
}

// RequireRole returns the stored identity when it carries role.
func (s *DashboardService) RequireRole(ctx context.Context, role domain.Role) (domain.Identity, error) {
	identity, err := s.sessions.Identity(ctx)
	if err != nil {
		return domain.Identity{}, err
	}
	if !identity.HasRole(role) {
		return domain.Identity{}, fmt.Errorf("%s role required, logged in as %s: %w", role.Label(), identity.Role.Label(), domain.ErrForbiddenRole)
	}

	return identity, nil
}

func (s *DashboardService) Admin(ctx context.Context) (AdminDashboard, error) {
	if _, err := s.RequireRole(ctx, domain.RoleAdmin); err != nil {
		return AdminDashboard{}, err
	}

	stats, err := s.admin.Statistics(ctx)
	if err != nil {
		return AdminDashboard{}, fmt.Errorf("load statistics: %w", err)
	}

	pending, err := s.admin.PendingReviews(ctx)
	if err != nil {
		return AdminDashboard{}, fmt.Errorf("load pending reviews: %w", err)
	}

	revenue, err := s.admin.TotalRevenue(ctx)
	if err != nil {
		return AdminDashboard{}, fmt.Errorf("load total revenue: %w", err)
	}

	return AdminDashboard{Statistics: stats, PendingReviews: pending, TotalRevenue: revenue}, nil
}

func (s *DashboardService) Doctor(ctx context.Context) (DoctorDashboard, error) {
	identity, err := s.RequireRole(ctx, domain.RoleDoctor)
	if err != nil {
		return DoctorDashboard{}, err
	}
	doctorID := domain.DoctorID(identity.UserID)

	appointments, err := s.doctor.DoctorAppointments(ctx, doctorID)
	if err != nil {
		return DoctorDashboard{}, fmt.Errorf("load appointments: %w", err)
	}

	invoices, err := s.doctor.DoctorInvoices(ctx, doctorID)
	if err != nil {
		return DoctorDashboard{}, fmt.Errorf("load invoices: %w", err)
	}

	revenue, err := s.doctor.DoctorRevenue(ctx, doctorID)
	if err != nil {
		return DoctorDashboard{}, fmt.Errorf("load revenue: %w", err)
	}

	return DoctorDashboard{
		Identity:     identity,
		Appointments: appointments,
		Invoices:     invoices,
		Revenue:      revenue,
	}, nil
}
