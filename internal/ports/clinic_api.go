package ports

import (
	"context"

	"github.com/bnema/klinik-cli/internal/domain"
)

type AuthAPI interface {
	Login(ctx context.Context, username, password string) (domain.LoginResult, error)
	ResetPassword(ctx context.Context, email string) (string, error)
}

type AdminDashboardAPI interface {
	Statistics(ctx context.Context) (domain.Statistics, error)
	PendingReviews(ctx context.Context) ([]domain.Review, error)
	TotalRevenue(ctx context.Context) (float64, error)
}

type DoctorDashboardAPI interface {
	DoctorAppointments(ctx context.Context, doctorID domain.DoctorID) ([]domain.Appointment, error)
	DoctorInvoices(ctx context.Context, doctorID domain.DoctorID) ([]domain.Invoice, error)
	DoctorRevenue(ctx context.Context, doctorID domain.DoctorID) (float64, error)
}
