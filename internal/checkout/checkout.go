package checkout

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/bookings"
	"storefront/internal/navigation"
	"storefront/internal/pricing"
	"storefront/internal/promo"
)

// CheckoutSession is one open checkout view. It exists only for a valid
// checkout context.
type CheckoutSession struct {
	base

	booking   navigation.CheckoutContext
	resolver  *promo.Resolver
	submitter *bookings.Submitter

	discount     pricing.Discount
	promoInput   string
	appliedCode  string
	promoMessage *PromoMessage
	promoPending bool
	fieldErrors  bookings.FieldErrors
}

func NewCheckoutSession(booking *navigation.CheckoutContext, resolver *promo.Resolver, submitter *bookings.Submitter) (*CheckoutSession, error) {
	if !booking.Valid() {
		return nil, ErrMissingContext
	}

	s := &CheckoutSession{
		booking:   *booking,
		resolver:  resolver,
		submitter: submitter,
		discount:  pricing.NoDiscount(),
	}
	s.init()
	return s, nil
}

func (s *CheckoutSession) ExperienceID() string {
	return s.booking.ExperienceID
}

func (s *CheckoutSession) View() CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// ApplyPromo validates code and replaces the current discount with the
// result. A blank code changes nothing. The returned outcome is nil when no
// request was made.
func (s *CheckoutSession) ApplyPromo(ctx context.Context, code string) (CheckoutView, *promo.Outcome, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return CheckoutView{}, nil, ErrSessionClosed
	}
	if s.promoPending {
		view := s.viewLocked()
		s.mu.Unlock()
		return view, nil, ErrPromoInProgress
	}
	s.touch()
	s.promoInput = code
	if strings.TrimSpace(code) == "" {
		view := s.viewLocked()
		s.mu.Unlock()
		return view, nil, nil
	}
	s.promoPending = true
	gen := s.generation
	experienceID := s.booking.ExperienceID
	s.mu.Unlock()

	opCtx, done := s.opContext(ctx)
	defer done()
	outcome, err := s.resolver.Apply(opCtx, code, experienceID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(gen) {
		return CheckoutView{}, nil, ErrStaleResponse
	}
	s.promoPending = false
	if errors.Is(err, promo.ErrEmptyCode) {
		return s.viewLocked(), nil, nil
	}

	s.discount = outcome.Discount
	s.appliedCode = outcome.Code
	s.promoMessage = &PromoMessage{Text: outcome.Message, IsError: outcome.IsError}
	return s.viewLocked(), &outcome, nil
}

// Submit books the slot with the current price summary and applied code
func (s *CheckoutSession) Submit(ctx context.Context, form bookings.CheckoutForm) (*bookings.Result, CheckoutView, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, CheckoutView{}, ErrSessionClosed
	}
	s.touch()
	gen := s.generation
	input := bookings.Input{
		ExperienceID:    s.booking.ExperienceID,
		ExperienceTitle: s.booking.ExperienceTitle,
		Date:            s.booking.Date,
		Time:            s.booking.Time,
		Quantity:        s.booking.Quantity,
		Summary:         s.summaryLocked(),
		PromoCode:       s.appliedCode,
	}
	s.mu.Unlock()

	opCtx, done := s.opContext(ctx)
	defer done()
	result, err := s.submitter.Submit(opCtx, form, input)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(gen) {
		return nil, CheckoutView{}, ErrStaleResponse
	}

	var verr *bookings.ValidationError
	var serr *bookings.SubmitError
	switch {
	case err == nil:
		s.fieldErrors = bookings.FieldErrors{}
	case errors.As(err, &verr):
		s.fieldErrors = verr.Fields
	case errors.As(err, &serr):
		s.fieldErrors = bookings.FieldErrors{Terms: serr.Message}
	}
	return result, s.viewLocked(), err
}

func (s *CheckoutSession) summaryLocked() pricing.Summary {
	return pricing.Compute(s.booking.UnitPrice, s.booking.Quantity, s.booking.Taxes, s.discount)
}

func (s *CheckoutSession) viewLocked() CheckoutView {
	status := s.submitter.Status()
	return CheckoutView{
		SessionID:        s.id,
		Booking:          s.booking,
		Summary:          s.summaryLocked(),
		Discount:         s.discount,
		PromoCode:        s.promoInput,
		AppliedPromoCode: s.appliedCode,
		PromoMessage:     s.promoMessage,
		PromoPending:     s.promoPending,
		SubmissionStatus: status,
		Submitting:       status == bookings.StatusSubmitting,
		Errors:           s.fieldErrors,
	}
}
