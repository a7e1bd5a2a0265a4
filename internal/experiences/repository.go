package experiences

import (
	"context"
	"net/url"

	"storefront/internal/availability"
	"storefront/internal/upstream"
)

type Repository interface {
	List(ctx context.Context) ([]Experience, error)
	GetByID(ctx context.Context, id string) (*Experience, error)
	GetAvailability(ctx context.Context, id string) ([]availability.BookedSlotRecord, error)
}

type repository struct {
	client *upstream.Client
}

func NewRepository(client *upstream.Client) Repository {
	return &repository{client: client}
}

func (r *repository) List(ctx context.Context) ([]Experience, error) {
	var list []Experience
	if err := r.client.GetJSON(ctx, "/experiences", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetByID returns nil without error when the collaborator answers with an empty body
func (r *repository) GetByID(ctx context.Context, id string) (*Experience, error) {
	var experience *Experience
	if err := r.client.GetJSON(ctx, "/experiences/"+url.PathEscape(id), &experience); err != nil {
		return nil, err
	}
	return experience, nil
}

func (r *repository) GetAvailability(ctx context.Context, id string) ([]availability.BookedSlotRecord, error) {
	var records []availability.BookedSlotRecord
	if err := r.client.GetJSON(ctx, "/experiences/"+url.PathEscape(id)+"/availability", &records); err != nil {
		return nil, err
	}
	return records, nil
}
