package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/domain"
)

type Appointments struct {
	client *gateway.Client
}

// AvailableSlots lists free HH:mm slots for a doctor on a yyyy-MM-dd date.
func (a *Appointments) AvailableSlots(ctx context.Context, doctorID domain.DoctorID, date string) ([]string, error) {
	var slots []string
	req := gateway.NewRequest(http.MethodGet, "/appointments/public/available-slots").WithQuery(url.Values{
		"doctorId": {strconv.FormatInt(int64(doctorID), 10)},
		"date":     {date},
	})
	err := a.client.Do(ctx, req, &slots)
	return slots, err
}

func (a *Appointments) Create(ctx context.Context, booking domain.BookingRequest) (domain.Appointment, error) {
	var appointment domain.Appointment
	err := a.client.Post(ctx, "/appointments/public", booking, &appointment)
	return appointment, err
}

func (a *Appointments) ByPatient(ctx context.Context, nationalID, firstName, lastName string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	req := gateway.NewRequest(http.MethodGet, "/appointments/public/patient").WithQuery(url.Values{
		"tc":         {nationalID},
		"hastaAd":    {firstName},
		"hastaSoyad": {lastName},
	})
	err := a.client.Do(ctx, req, &appointments)
	return appointments, err
}

func (a *Appointments) ByNationalID(ctx context.Context, nationalID string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := a.client.Get(ctx, "/appointments/public/tc/"+segment(nationalID), &appointments)
	return appointments, err
}

func (a *Appointments) ByPhone(ctx context.Context, phone string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := a.client.Get(ctx, "/appointments/public/telefon/"+segment(phone), &appointments)
	return appointments, err
}

func (a *Appointments) Get(ctx context.Context, id domain.AppointmentID) (domain.Appointment, error) {
	var appointment domain.Appointment
	err := a.client.Get(ctx, idPath("/appointments/public/%s", int64(id)), &appointment)
	return appointment, err
}

func (a *Appointments) ForDoctor(ctx context.Context, doctorID domain.DoctorID) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := a.client.Get(ctx, idPath("/appointments/doctor/%s", int64(doctorID)), &appointments)
	return appointments, err
}

func (a *Appointments) ForDoctorInRange(ctx context.Context, doctorID domain.DoctorID, startDate, endDate string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	req := gateway.NewRequest(http.MethodGet, idPath("/appointments/doctor/%s/date-range", int64(doctorID))).WithQuery(url.Values{
		"startDate": {startDate},
		"endDate":   {endDate},
	})
	err := a.client.Do(ctx, req, &appointments)
	return appointments, err
}

func (a *Appointments) Cancel(ctx context.Context, id domain.AppointmentID, reason string) (domain.Appointment, error) {
	var appointment domain.Appointment
	err := a.client.Put(ctx, idPath("/appointments/%s/cancel", int64(id)), domain.CancelRequest{Reason: reason}, &appointment)
	return appointment, err
}

func (a *Appointments) Reschedule(ctx context.Context, id domain.AppointmentID, date, time string) (domain.Appointment, error) {
	var appointment domain.Appointment
	err := a.client.Put(ctx, idPath("/appointments/%s/reschedule", int64(id)), domain.RescheduleRequest{Date: date, Time: time}, &appointment)
	return appointment, err
}
