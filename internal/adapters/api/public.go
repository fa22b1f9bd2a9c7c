package api

import (
	"context"
	"encoding/json"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
)

// Public covers unauthenticated clinic information. The payload shapes are
// owned by the server, so they are returned untouched.
type Public struct {
	client *gateway.Client
}

func (p *Public) ClinicInfo(ctx context.Context) (json.RawMessage, error) {
	var info json.RawMessage
	err := p.client.Get(ctx, "/public/clinic-info", &info)
	return info, err
}

func (p *Public) WorkingHours(ctx context.Context) (json.RawMessage, error) {
	var hours json.RawMessage
	err := p.client.Get(ctx, "/public/working-hours", &hours)
	return hours, err
}

type Health struct {
	Status string `json:"status"`
}

func (p *Public) Health(ctx context.Context) (Health, error) {
	var health Health
	err := p.client.Get(ctx, "/actuator/health", &health)
	return health, err
}
