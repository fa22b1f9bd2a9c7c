package api

import (
	"context"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

type Admin struct {
	client *gateway.Client
}

var _ ports.AdminDashboardAPI = (*Admin)(nil)

func (a *Admin) Doctors(ctx context.Context) ([]domain.Doctor, error) {
	var doctors []domain.Doctor
	err := a.client.Get(ctx, "/admin/doctors", &doctors)
	return doctors, err
}

func (a *Admin) CreateDoctor(ctx context.Context, doctor domain.Doctor) (domain.Doctor, error) {
	var created domain.Doctor
	err := a.client.Post(ctx, "/admin/doctors", doctor, &created)
	return created, err
}

func (a *Admin) DeleteDoctor(ctx context.Context, id domain.DoctorID) error {
	return a.client.Delete(ctx, idPath("/admin/doctors/%s", int64(id)), nil)
}

func (a *Admin) Appointments(ctx context.Context) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := a.client.Get(ctx, "/admin/appointments", &appointments)
	return appointments, err
}

func (a *Admin) Appointment(ctx context.Context, id domain.AppointmentID) (domain.Appointment, error) {
	var appointment domain.Appointment
	err := a.client.Get(ctx, idPath("/admin/appointments/%s", int64(id)), &appointment)
	return appointment, err
}

func (a *Admin) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := a.client.Get(ctx, "/admin/invoices", &invoices)
	return invoices, err
}

func (a *Admin) TotalRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := a.client.Get(ctx, "/admin/invoices/revenue", &revenue)
	return revenue, err
}

func (a *Admin) MarkInvoicePaid(ctx context.Context, id domain.InvoiceID) (domain.Invoice, error) {
	var invoice domain.Invoice
	err := a.client.Put(ctx, idPath("/admin/invoices/%s/mark-paid", int64(id)), nil, &invoice)
	return invoice, err
}

func (a *Admin) Reviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	err := a.client.Get(ctx, "/admin/reviews", &reviews)
	return reviews, err
}

func (a *Admin) PendingReviews(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	err := a.client.Get(ctx, "/admin/reviews/pending", &reviews)
	return reviews, err
}

func (a *Admin) ApproveReview(ctx context.Context, id domain.ReviewID) (domain.Review, error) {
	var review domain.Review
	err := a.client.Put(ctx, idPath("/admin/reviews/%s/approve", int64(id)), nil, &review)
	return review, err
}

func (a *Admin) RejectReview(ctx context.Context, id domain.ReviewID) (domain.Review, error) {
	var review domain.Review
	err := a.client.Put(ctx, idPath("/admin/reviews/%s/reject", int64(id)), nil, &review)
	return review, err
}

func (a *Admin) DeleteReview(ctx context.Context, id domain.ReviewID) error {
	return a.client.Delete(ctx, idPath("/admin/reviews/%s", int64(id)), nil)
}

func (a *Admin) CreateAdmin(ctx context.Context, admin domain.Admin) (domain.Admin, error) {
	var created domain.Admin
	err := a.client.Post(ctx, "/admin/create-admin", admin, &created)
	return created, err
}

func (a *Admin) Statistics(ctx context.Context) (domain.Statistics, error) {
	var stats domain.Statistics
	err := a.client.Get(ctx, "/admin/statistics/summary", &stats)
	return stats, err
}
