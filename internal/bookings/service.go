package bookings

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"storefront/internal/experiences"
	"storefront/internal/upstream"
	"storefront/pkg/logger"
)

var validate = validator.New()

// Submitter sends the booking of a single checkout. At most one submission is
// in flight at a time; a second Submit while one is outstanding sends nothing.
type Submitter struct {
	repo   Repository
	now    func() time.Time
	logger *logger.Logger

	mu     sync.Mutex
	status Status
}

func NewSubmitter(repo Repository) *Submitter {
	return &Submitter{
		repo:   repo,
		now:    time.Now,
		logger: logger.GetDefault(),
		status: StatusIdle,
	}
}

// Status returns where the submission currently stands
func (s *Submitter) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Submit validates the form and, when it passes, posts a freshly built
// booking request. Errors are *ValidationError, *SubmitError,
// ErrSubmitInProgress or ErrAlreadyConfirmed.
func (s *Submitter) Submit(ctx context.Context, form CheckoutForm, input Input) (*Result, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	form = form.Normalize()
	if fields := ValidateForm(form); !fields.Empty() {
		s.finish(StatusIdle)
		return nil, &ValidationError{Fields: fields}
	}

	req := BuildRequest(form, input, s.now())
	slot := input.Date + " " + input.Time

	resp, err := s.repo.Create(ctx, req)
	if err == nil && resp.BookingID == "" {
		err = errMissingBookingID
	}
	if err != nil {
		s.finish(StatusRejected)
		s.logger.LogBookingRejected(ctx, input.ExperienceID, slot, err)

		message := upstream.Message(err)
		if message == "" {
			message = GenericFailureMessage
		}
		return nil, &SubmitError{Message: message, Err: err}
	}

	s.finish(StatusConfirmed)
	s.logger.LogBookingSubmitted(ctx, resp.BookingID, input.ExperienceID, slot)

	return &Result{ReferenceID: resp.BookingID, Request: req}, nil
}

func (s *Submitter) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.status.CanSubmit() {
		if s.status == StatusConfirmed {
			return ErrAlreadyConfirmed
		}
		return ErrSubmitInProgress
	}
	s.status = StatusSubmitting
	return nil
}

func (s *Submitter) finish(status Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// ValidateForm runs the local form checks and returns one message per failing field
func ValidateForm(form CheckoutForm) FieldErrors {
	var fields FieldErrors

	err := validate.Struct(form)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields
	}

	for _, fe := range verrs {
		switch fe.StructField() {
		case "FullName":
			fields.FullName = FullNameRequiredMessage
		case "Email":
			fields.Email = InvalidEmailMessage
		case "AgreedToTerms":
			fields.Terms = TermsRequiredMessage
		}
	}
	return fields
}

// BuildRequest assembles the POST /bookings body from a normalized form
func BuildRequest(form CheckoutForm, input Input, now time.Time) BookingRequest {
	var promoCode *string
	if input.PromoCode != "" {
		code := input.PromoCode
		promoCode = &code
	}

	return BookingRequest{
		Customer: Customer{
			FullName: form.FullName,
			Email:    form.Email,
		},
		Experience: ExperienceLine{
			ID:       experiences.ID(input.ExperienceID),
			Title:    input.ExperienceTitle,
			Date:     input.Date,
			Time:     input.Time,
			Quantity: input.Quantity,
		},
		Price: Price{
			Subtotal: input.Summary.Subtotal,
			Taxes:    input.Summary.Taxes,
			Discount: input.Summary.Discount,
			Total:    input.Summary.Total,
		},
		PromoCodeApplied: promoCode,
		BookedAt:         now.UTC().Format(bookedAtLayout),
	}
}
