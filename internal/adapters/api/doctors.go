package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/domain"
)

type Doctors struct {
	client *gateway.Client
}

func (d *Doctors) List(ctx context.Context) ([]domain.Doctor, error) {
	var doctors []domain.Doctor
	err := d.client.Get(ctx, "/doctors/public", &doctors)
	return doctors, err
}

func (d *Doctors) Get(ctx context.Context, id domain.DoctorID) (domain.Doctor, error) {
	var doctor domain.Doctor
	err := d.client.Get(ctx, idPath("/doctors/public/%s", int64(id)), &doctor)
	return doctor, err
}

func (d *Doctors) BySpecialty(ctx context.Context, specialty string) ([]domain.Doctor, error) {
	var doctors []domain.Doctor
	err := d.client.Get(ctx, "/doctors/public/uzmanlik/"+segment(specialty), &doctors)
	return doctors, err
}

func (d *Doctors) Specialties(ctx context.Context) ([]string, error) {
	var specialties []string
	err := d.client.Get(ctx, "/doctors/public/uzmanliklar", &specialties)
	return specialties, err
}

func (d *Doctors) Profile(ctx context.Context, email string) (domain.Doctor, error) {
	var doctor domain.Doctor
	req := gateway.NewRequest(http.MethodGet, "/doctors/profile").WithQuery(url.Values{"email": {email}})
	err := d.client.Do(ctx, req, &doctor)
	return doctor, err
}

func (d *Doctors) UpdateProfile(ctx context.Context, id domain.DoctorID, profile domain.Doctor) (domain.Doctor, error) {
	var doctor domain.Doctor
	err := d.client.Put(ctx, idPath("/doctors/profile/%s", int64(id)), profile, &doctor)
	return doctor, err
}

func (d *Doctors) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (string, error) {
	var message string
	req := gateway.NewRequest(http.MethodPost, "/doctors/change-password").WithQuery(url.Values{
		"email":       {email},
		"oldPassword": {oldPassword},
		"newPassword": {newPassword},
	})
	err := d.client.Do(ctx, req, &message)
	return message, err
}
