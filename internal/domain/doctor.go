package domain

import "strings"

type DoctorID int64

type Doctor struct {
	ID              DoctorID `json:"id,omitempty"`
	FirstName       string   `json:"ad"`
	LastName        string   `json:"soyad"`
	Email           string   `json:"email"`
	Password        string   `json:"sifre,omitempty"`
	Specialty       string   `json:"uzmanlik"`
	ExperienceYears int      `json:"deneyim,omitempty"`
	About           string   `json:"hakkinda,omitempty"`
	WorkingHours    string   `json:"calismaSaatleri,omitempty"`
	Fee             float64  `json:"ucret,omitempty"`
	ProfileImageURL string   `json:"profileImageUrl,omitempty"`
}

func (d Doctor) FullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// DoctorRef is the shape the API expects when a payload references a doctor.
type DoctorRef struct {
	ID DoctorID `json:"id"`
}
