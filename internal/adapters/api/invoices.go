package api

import (
	"context"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/domain"
)

type Invoices struct {
	client *gateway.Client
}

func (i *Invoices) ForDoctor(ctx context.Context, doctorID domain.DoctorID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := i.client.Get(ctx, idPath("/invoices/doctor/%s", int64(doctorID)), &invoices)
	return invoices, err
}

func (i *Invoices) DoctorRevenue(ctx context.Context, doctorID domain.DoctorID) (float64, error) {
	var revenue float64
	err := i.client.Get(ctx, idPath("/invoices/doctor/%s/revenue", int64(doctorID)), &revenue)
	return revenue, err
}

func (i *Invoices) All(ctx context.Context) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := i.client.Get(ctx, "/invoices/all", &invoices)
	return invoices, err
}

func (i *Invoices) Get(ctx context.Context, id domain.InvoiceID) (domain.Invoice, error) {
	var invoice domain.Invoice
	err := i.client.Get(ctx, idPath("/invoices/%s", int64(id)), &invoice)
	return invoice, err
}
