package api

import (
	"context"

	"github.com/bnema/klinik-cli/internal/adapters/gateway"
	"github.com/bnema/klinik-cli/internal/domain"
)

type Reviews struct {
	client *gateway.Client
}

func (r *Reviews) Approved(ctx context.Context) ([]domain.Review, error) {
	var reviews []domain.Review
	err := r.client.Get(ctx, "/reviews/public", &reviews)
	return reviews, err
}

func (r *Reviews) AverageRating(ctx context.Context) (float64, error) {
	var average float64
	err := r.client.Get(ctx, "/reviews/public/average-rating", &average)
	return average, err
}

func (r *Reviews) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	var created domain.Review
	err := r.client.Post(ctx, "/reviews/public", review, &created)
	return created, err
}
