package bookings

import (
	"context"

	"storefront/internal/upstream"
)

type Repository interface {
	Create(ctx context.Context, req BookingRequest) (*BookingResponse, error)
}

type repository struct {
	client *upstream.Client
}

func NewRepository(client *upstream.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Create(ctx context.Context, req BookingRequest) (*BookingResponse, error) {
	var resp BookingResponse
	if err := r.client.PostJSON(ctx, "/bookings", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
