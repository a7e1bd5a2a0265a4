package promo

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront/internal/experiences"
	"storefront/internal/pricing"
	"storefront/internal/upstream"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Validate(ctx context.Context, req ValidationRequest) (*ValidationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ValidationResponse), args.Error(1)
}

func value(v float64) *float64 {
	return &v
}

func requestFor(code, experienceID string) ValidationRequest {
	return ValidationRequest{PromoCode: code, ExperienceID: experiences.ID(experienceID)}
}

func TestResolver_EmptyCodeIsNoop(t *testing.T) {
	repo := new(MockRepository)
	resolver := NewResolver(repo)

	for _, code := range []string{"", "   ", "\t\n"} {
		_, err := resolver.Apply(context.Background(), code, "1")
		assert.ErrorIs(t, err, ErrEmptyCode)
	}
	repo.AssertNotCalled(t, "Validate", mock.Anything, mock.Anything)
}

func TestResolver_AcceptsPercentage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Validate", mock.Anything, requestFor("SAVE10", "1")).Return(&ValidationResponse{
		Valid: true, Message: "Promo applied!", DiscountValue: value(10), Type: "percentage",
	}, nil)

	outcome, err := NewResolver(repo).Apply(context.Background(), "  SAVE10 ", "1")

	require.NoError(t, err)
	assert.False(t, outcome.IsError)
	assert.Equal(t, "SAVE10", outcome.Code)
	assert.Equal(t, "Promo applied!", outcome.Message)
	assert.Equal(t, pricing.Discount{Kind: pricing.DiscountPercentage, Value: 10}, outcome.Discount)
}

func TestResolver_AcceptsFlatWithoutMessage(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Validate", mock.Anything, mock.Anything).Return(&ValidationResponse{
		Valid: true, DiscountValue: value(100), Type: "flat",
	}, nil)

	outcome, err := NewResolver(repo).Apply(context.Background(), "FLAT100", "1")

	require.NoError(t, err)
	assert.Equal(t, AppliedMessage, outcome.Message)
	assert.Equal(t, pricing.Discount{Kind: pricing.DiscountFlat, Value: 100}, outcome.Discount)
}

func TestResolver_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		resp        *ValidationResponse
		err         error
		wantMessage string
	}{
		{
			name:        "collaborator says invalid",
			resp:        &ValidationResponse{Valid: false, Message: "Code expired"},
			wantMessage: "Code expired",
		},
		{
			name:        "error status with message",
			err:         &upstream.APIError{StatusCode: http.StatusBadRequest, Message: "Invalid promo code"},
			wantMessage: "Invalid promo code",
		},
		{
			name:        "network failure",
			err:         errors.New("dial tcp: connection refused"),
			wantMessage: ErrorMessage,
		},
		{
			name:        "unknown type",
			resp:        &ValidationResponse{Valid: true, Message: "ok", DiscountValue: value(5), Type: "bogo"},
			wantMessage: ErrorMessage,
		},
		{
			name:        "missing value",
			resp:        &ValidationResponse{Valid: true, Message: "ok", Type: "flat"},
			wantMessage: ErrorMessage,
		},
		{
			name:        "negative value",
			resp:        &ValidationResponse{Valid: true, Message: "ok", DiscountValue: value(-5), Type: "flat"},
			wantMessage: ErrorMessage,
		},
		{
			name:        "percentage above 100",
			resp:        &ValidationResponse{Valid: true, Message: "ok", DiscountValue: value(150), Type: "percentage"},
			wantMessage: ErrorMessage,
		},
		{
			name:        "code for another experience",
			resp:        &ValidationResponse{Valid: true, Message: "ok", DiscountValue: value(10), Type: "percentage", ExperienceID: "2"},
			wantMessage: ErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			if tt.err != nil {
				repo.On("Validate", mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				repo.On("Validate", mock.Anything, mock.Anything).Return(tt.resp, nil)
			}

			outcome, err := NewResolver(repo).Apply(context.Background(), "BAD", "1")

			require.NoError(t, err)
			assert.True(t, outcome.IsError)
			assert.Empty(t, outcome.Code)
			assert.Equal(t, tt.wantMessage, outcome.Message)
			assert.Equal(t, pricing.NoDiscount(), outcome.Discount)
		})
	}
}

func TestResolver_MatchingExperienceEcho(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Validate", mock.Anything, mock.Anything).Return(&ValidationResponse{
		Valid: true, DiscountValue: value(10), Type: "percentage", ExperienceID: "1",
	}, nil)

	outcome, err := NewResolver(repo).Apply(context.Background(), "GOOD10", "1")

	require.NoError(t, err)
	assert.False(t, outcome.IsError)
}
