package promo

import (
	"context"

	"storefront/internal/upstream"
)

type Repository interface {
	Validate(ctx context.Context, req ValidationRequest) (*ValidationResponse, error)
}

type repository struct {
	client *upstream.Client
}

func NewRepository(client *upstream.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Validate(ctx context.Context, req ValidationRequest) (*ValidationResponse, error) {
	var resp ValidationResponse
	if err := r.client.PostJSON(ctx, "/promo/validate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
