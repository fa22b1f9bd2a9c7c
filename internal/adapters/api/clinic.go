// Package api maps clinic endpoints onto the gateway. Each group only builds
// paths and decodes payloads; retry and session handling live in the gateway.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

type Clinic struct {
	Auth         *Auth
	Doctors      *Doctors
	Appointments *Appointments
	Reviews      *Reviews
	Admin        *Admin
	Invoices     *Invoices
	Public       *Public
}

var _ ports.DoctorDashboardAPI = (*Clinic)(nil)

func New(client *gateway.Client) *Clinic {
	return &Clinic{
		Auth:         &Auth{client: client},
		Doctors:      &Doctors{client: client},
		Appointments: &Appointments{client: client},
		Reviews:      &Reviews{client: client},
		Admin:        &Admin{client: client},
		Invoices:     &Invoices{client: client},
		Public:       &Public{client: client},
	}
}

func (c *Clinic) DoctorAppointments(ctx context.Context, doctorID domain.DoctorID) ([]domain.Appointment, error) {
	return c.Appointments.ForDoctor(ctx, doctorID)
}

func (c *Clinic) DoctorInvoices(ctx context.Context, doctorID domain.DoctorID) ([]domain.Invoice, error) {
	return c.Invoices.ForDoctor(ctx, doctorID)
}

func (c *Clinic) DoctorRevenue(ctx context.Context, doctorID domain.DoctorID) (float64, error) {
	return c.Invoices.DoctorRevenue(ctx, doctorID)
}

func idPath(format string, id int64) string {
	return fmt.Sprintf(format, strconv.FormatInt(id, 10))
}

func segment(value string) string {
	return url.PathEscape(value)
}
