package experiences

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/internal/availability"
	"storefront/internal/shared/constants"
	"storefront/pkg/cache"
	"storefront/pkg/logger"
)

// FetchFailedMessage is the single page-level message for a failed details load
const FetchFailedMessage = "Failed to fetch experience. Please try again later."

var (
	ErrExperienceNotFound = errors.New("experience not found")
	ErrFetchFailed        = errors.New("failed to fetch experience")
)

// Service interface defines the contract for catalog and details loading
type Service interface {
	List(ctx context.Context) ([]Experience, error)
	LoadDetails(ctx context.Context, id string) (*Loaded, error)
}

type service struct {
	repo       Repository
	cache      cache.Service
	catalogTTL time.Duration
	logger     *logger.Logger
}

// NewService creates the experiences service. cacheService may be nil when
// Redis is disabled.
func NewService(repo Repository, cacheService cache.Service, catalogTTL time.Duration) Service {
	if catalogTTL <= 0 {
		catalogTTL = constants.TTL_EXPERIENCES_LIST
	}
	return &service{
		repo:       repo,
		cache:      cacheService,
		catalogTTL: catalogTTL,
		logger:     logger.GetDefault(),
	}
}

func (s *service) List(ctx context.Context) ([]Experience, error) {
	if s.cache == nil {
		list, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		return list, nil
	}

	var list []Experience
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_EXPERIENCES_LIST, s.catalogTTL, func() (interface{}, error) {
		return s.repo.List(ctx)
	}, &list)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return list, nil
}

// LoadDetails fetches the experience and its availability concurrently. Both
// must succeed; there is never a partial result.
func (s *service) LoadDetails(ctx context.Context, id string) (*Loaded, error) {
	var (
		experience *Experience
		records    []availability.BookedSlotRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.repo.GetByID(gctx, id)
		if err != nil {
			return fmt.Errorf("get experience %s: %w", id, err)
		}
		experience = e
		return nil
	})
	g.Go(func() error {
		r, err := s.repo.GetAvailability(gctx, id)
		if err != nil {
			return fmt.Errorf("get availability %s: %w", id, err)
		}
		records = r
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorWithContext(ctx, "Experience details load failed", err, map[string]interface{}{
			"experience_id": id,
		})
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	if experience == nil {
		return nil, ErrExperienceNotFound
	}

	return &Loaded{
		Experience: experience,
		Booked:     availability.Build(records),
	}, nil
}
