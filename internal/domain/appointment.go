package domain

import "strings"

type AppointmentID int64

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "BEKLEMEDE"
	AppointmentConfirmed AppointmentStatus = "ONAYLANDI"
	AppointmentCompleted AppointmentStatus = "TAMAMLANDI"
	AppointmentCancelled AppointmentStatus = "IPTAL_EDILDI"
)

func (s AppointmentStatus) Label() string {
	switch s {
	case AppointmentPending:
		return "pending"
	case AppointmentConfirmed:
		return "confirmed"
	case AppointmentCompleted:
		return "completed"
	case AppointmentCancelled:
		return "cancelled"
	case "":
		return "unknown"
	default:
		return strings.ToLower(string(s))
	}
}

// Appointment mirrors the booking payload. Date is yyyy-MM-dd and Time is HH:mm.
type Appointment struct {
	ID               AppointmentID     `json:"id,omitempty"`
	PatientFirstName string            `json:"hastaAd"`
	PatientLastName  string            `json:"hastaSoyad"`
	NationalID       string            `json:"tc"`
	Phone            string            `json:"telefon"`
	Doctor           *Doctor           `json:"doctor,omitempty"`
	Date             string            `json:"tarih"`
	Time             string            `json:"saat"`
	Department       string            `json:"bolum"`
	Status           AppointmentStatus `json:"status,omitempty"`
}

func (a Appointment) PatientFullName() string {
	return strings.TrimSpace(a.PatientFirstName + " " + a.PatientLastName)
}

type BookingRequest struct {
	PatientFirstName string    `json:"hastaAd"`
	PatientLastName  string    `json:"hastaSoyad"`
	NationalID       string    `json:"tc"`
	Phone            string    `json:"telefon"`
	Doctor           DoctorRef `json:"doctor"`
	Date             string    `json:"tarih"`
	Time             string    `json:"saat"`
	Department       string    `json:"bolum"`
}

type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

type RescheduleRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
