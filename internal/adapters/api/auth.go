package api

import (
	"context"
	"net/http"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/domain"
	"github.com/bnema/klinik-cli/internal/ports"
)

type Auth struct {
	client *gateway.Client
}

var _ ports.AuthAPI = (*Auth)(nil)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type resetPasswordRequest struct {
	Email string `json:"email"`
}

// Login checks credentials. A 401 here means a bad password, so it leaves the
// stored session alone.
func (a *Auth) Login(ctx context.Context, username, password string) (domain.LoginResult, error) {
	req := gateway.NewRequest(http.MethodPost, "/auth/login").
		WithBody(loginRequest{Username: username, Password: password}).
		WithoutSessionPolicy()

	var result domain.LoginResult
	err := a.client.Do(ctx, req, &result)
	return result, err
}

// ResetPassword returns the server's confirmation text.
func (a *Auth) ResetPassword(ctx context.Context, email string) (string, error) {
	var message string
	err := a.client.Post(ctx, "/auth/reset-password", resetPasswordRequest{Email: email}, &message)
	return message, err
}
