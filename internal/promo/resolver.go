package promo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront/internal/experiences"
	"storefront/internal/pricing"
	"storefront/internal/upstream"
)

// ErrEmptyCode is returned for a blank code; nothing is sent and the current
// discount stays as it is
var ErrEmptyCode = errors.New("promo code is empty")

var errExperienceMismatch = errors.New("promo code belongs to another experience")

// Resolver turns a promo code into a discount through the collaborator
type Resolver struct {
	repo     Repository
	validate *validator.Validate
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{
		repo:     repo,
		validate: validator.New(),
	}
}

// Apply validates code for the given experience. Any failure yields an
// error outcome with the discount reset to none; only ErrEmptyCode is
// returned as an error.
func (r *Resolver) Apply(ctx context.Context, code, experienceID string) (Outcome, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return Outcome{}, ErrEmptyCode
	}

	resp, err := r.repo.Validate(ctx, ValidationRequest{
		PromoCode:    trimmed,
		ExperienceID: experiences.ID(experienceID),
	})
	if err != nil {
		return rejected(upstream.Message(err)), nil
	}
	if !resp.Valid {
		return rejected(resp.Message), nil
	}

	discount, err := r.discountFrom(resp, experienceID)
	if err != nil {
		return rejected(""), nil
	}

	message := resp.Message
	if message == "" {
		message = AppliedMessage
	}
	return Outcome{
		Discount: discount,
		Code:     trimmed,
		Message:  message,
	}, nil
}

func (r *Resolver) discountFrom(resp *ValidationResponse, experienceID string) (pricing.Discount, error) {
	g := grant{Type: resp.Type, Value: resp.DiscountValue}
	if err := r.validate.Struct(g); err != nil {
		return pricing.NoDiscount(), fmt.Errorf("malformed promo response: %w", err)
	}

	kind := pricing.DiscountKind(resp.Type)
	if kind == pricing.DiscountPercentage && *resp.DiscountValue > 100 {
		return pricing.NoDiscount(), fmt.Errorf("malformed promo response: percentage %.2f above 100", *resp.DiscountValue)
	}
	if resp.ExperienceID != "" && experienceID != "" && resp.ExperienceID.String() != experienceID {
		return pricing.NoDiscount(), errExperienceMismatch
	}

	return pricing.Discount{Kind: kind, Value: *resp.DiscountValue}, nil
}

func rejected(message string) Outcome {
	if message == "" {
		message = ErrorMessage
	}
	return Outcome{
		Discount: pricing.NoDiscount(),
		Message:  message,
		IsError:  true,
	}
}
