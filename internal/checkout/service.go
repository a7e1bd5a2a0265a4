package checkout

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/availability"
	"storefront/internal/bookings"
	"storefront/internal/experiences"
	"storefront/internal/navigation"
	"storefront/internal/notifications"
	"storefront/internal/promo"
	"storefront/pkg/logger"
)

// Service interface defines the storefront flow from details to confirmation
type Service interface {
	OpenDetails(ctx context.Context, experienceID string) (*DetailsView, error)
	GetDetails(ctx context.Context, sessionID string) (*DetailsView, error)
	SelectDate(ctx context.Context, sessionID, date string) (*DetailsView, error)
	SelectTime(ctx context.Context, sessionID, time string) (*DetailsView, error)
	UpdateQuantity(ctx context.Context, sessionID string, req QuantityRequest) (*DetailsView, error)
	Confirm(ctx context.Context, sessionID string) (*ConfirmResponse, error)
	CloseDetails(ctx context.Context, sessionID string) error

	OpenCheckout(ctx context.Context, navToken string) (*CheckoutView, error)
	GetCheckout(ctx context.Context, sessionID string) (*CheckoutView, error)
	ApplyPromo(ctx context.Context, sessionID, code string) (*CheckoutView, error)
	Submit(ctx context.Context, sessionID string, form bookings.CheckoutForm) (*SubmitResponse, *CheckoutView, error)
	CloseCheckout(ctx context.Context, sessionID string) error

	Confirmation(ctx context.Context, navToken string) (*ConfirmationView, error)
}

// Deps are the collaborators of the checkout service
type Deps struct {
	Experiences experiences.Service
	Promos      promo.Repository
	Bookings    bookings.Repository
	Navigation  navigation.Store
	Publisher   *notifications.Publisher
	Registry    *Registry
	Catalog     availability.Catalog
	Taxes       float64
}

type service struct {
	experiences experiences.Service
	resolver    *promo.Resolver
	bookings    bookings.Repository
	navigation  navigation.Store
	publisher   *notifications.Publisher
	registry    *Registry
	catalog     availability.Catalog
	taxes       float64
	logger      *logger.Logger
}

func NewService(deps Deps) Service {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = notifications.NewPublisher(nil)
	}
	return &service{
		experiences: deps.Experiences,
		resolver:    promo.NewResolver(deps.Promos),
		bookings:    deps.Bookings,
		navigation:  deps.Navigation,
		publisher:   publisher,
		registry:    deps.Registry,
		catalog:     deps.Catalog,
		taxes:       deps.Taxes,
		logger:      logger.GetDefault(),
	}
}

func (s *service) OpenDetails(ctx context.Context, experienceID string) (*DetailsView, error) {
	loaded, err := s.experiences.LoadDetails(ctx, experienceID)
	if err != nil {
		return nil, err
	}

	session := NewDetailsSession(loaded, s.catalog, s.taxes)
	s.registry.Add(session)
	s.logger.LogSessionOpened(ctx, "details", session.ID(), experienceID)

	view := session.View()
	return &view, nil
}

func (s *service) GetDetails(ctx context.Context, sessionID string) (*DetailsView, error) {
	session, err := s.details(sessionID)
	if err != nil {
		return nil, err
	}
	session.touch()
	view := session.View()
	return &view, nil
}

func (s *service) SelectDate(ctx context.Context, sessionID, date string) (*DetailsView, error) {
	session, err := s.details(sessionID)
	if err != nil {
		return nil, err
	}
	view, err := session.PickDate(date)
	return &view, err
}

func (s *service) SelectTime(ctx context.Context, sessionID, time string) (*DetailsView, error) {
	session, err := s.details(sessionID)
	if err != nil {
		return nil, err
	}
	view, err := session.PickTime(time)
	return &view, err
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, req QuantityRequest) (*DetailsView, error) {
	session, err := s.details(sessionID)
	if err != nil {
		return nil, err
	}

	var view DetailsView
	switch {
	case req.Action == "increment":
		view, err = session.IncrementQuantity()
	case req.Action == "decrement":
		view, err = session.DecrementQuantity()
	case req.Quantity != nil:
		view, err = session.SetQuantity(*req.Quantity)
	default:
		view = session.View()
	}
	return &view, err
}

// Confirm hands the selection to checkout and leaves the details view
func (s *service) Confirm(ctx context.Context, sessionID string) (*ConfirmResponse, error) {
	session, err := s.details(sessionID)
	if err != nil {
		return nil, err
	}

	checkoutContext, err := session.Confirm()
	if err != nil {
		return nil, err
	}

	token, err := navigation.PutCheckout(ctx, s.navigation, checkoutContext)
	if err != nil {
		return nil, fmt.Errorf("failed to hand over checkout context: %w", err)
	}
	s.registry.Remove(sessionID)

	return &ConfirmResponse{NavToken: token, Checkout: checkoutContext}, nil
}

func (s *service) CloseDetails(ctx context.Context, sessionID string) error {
	if _, err := s.details(sessionID); err != nil {
		return err
	}
	s.registry.Remove(sessionID)
	return nil
}

// OpenCheckout consumes a checkout token. Without a valid context no
// checkout session exists and the caller is sent back to the catalog.
func (s *service) OpenCheckout(ctx context.Context, navToken string) (*CheckoutView, error) {
	checkoutContext, err := navigation.TakeCheckout(ctx, s.navigation, navToken)
	if err != nil {
		if errors.Is(err, navigation.ErrContextNotFound) || errors.Is(err, navigation.ErrInvalidContext) {
			return nil, ErrMissingContext
		}
		return nil, err
	}

	session, err := NewCheckoutSession(checkoutContext, s.resolver, bookings.NewSubmitter(s.bookings))
	if err != nil {
		return nil, err
	}
	s.registry.Add(session)
	s.logger.LogSessionOpened(ctx, "checkout", session.ID(), checkoutContext.ExperienceID)

	view := session.View()
	return &view, nil
}

func (s *service) GetCheckout(ctx context.Context, sessionID string) (*CheckoutView, error) {
	session, err := s.checkout(sessionID)
	if err != nil {
		return nil, err
	}
	session.touch()
	view := session.View()
	return &view, nil
}

func (s *service) ApplyPromo(ctx context.Context, sessionID, code string) (*CheckoutView, error) {
	session, err := s.checkout(sessionID)
	if err != nil {
		return nil, err
	}

	log := s.logger.WithSessionID(sessionID)
	view, outcome, err := session.ApplyPromo(ctx, code)
	if err != nil {
		if errors.Is(err, ErrStaleResponse) {
			log.LogStaleResponse(ctx, "promo")
		}
		return &view, err
	}

	if outcome != nil {
		if outcome.IsError {
			log.LogPromoRejected(ctx, code, outcome.Message)
		} else {
			log.LogPromoApplied(ctx, outcome.Code, outcome.Discount.Kind.String(), outcome.Discount.Value)
			s.publisher.PromoApplied(ctx, session.ExperienceID(), outcome.Code, outcome.Discount)
		}
	}
	return &view, nil
}

// Submit books the checkout. On success the checkout view is left and a
// confirmation token is returned.
func (s *service) Submit(ctx context.Context, sessionID string, form bookings.CheckoutForm) (*SubmitResponse, *CheckoutView, error) {
	session, err := s.checkout(sessionID)
	if err != nil {
		return nil, nil, err
	}

	result, view, err := session.Submit(ctx, form)
	slot := view.Booking.Date + " " + view.Booking.Time

	var serr *bookings.SubmitError
	switch {
	case errors.Is(err, ErrStaleResponse):
		s.logger.WithSessionID(sessionID).LogStaleResponse(ctx, "submit")
		return nil, nil, err
	case errors.As(err, &serr):
		s.publisher.BookingRejected(ctx, session.ExperienceID(), form.Email, slot, serr.Message)
		return nil, &view, err
	case err != nil:
		return nil, &view, err
	}

	token, err := navigation.PutConfirmation(ctx, s.navigation, navigation.ConfirmationContext{ReferenceID: result.ReferenceID})
	if err != nil {
		return nil, &view, fmt.Errorf("failed to hand over confirmation context: %w", err)
	}
	s.registry.Remove(sessionID)
	s.publisher.BookingConfirmed(ctx, result.ReferenceID, session.ExperienceID(), result.Request.Customer.Email, slot, view.Summary)

	return &SubmitResponse{NavToken: token, ReferenceID: result.ReferenceID}, &view, nil
}

func (s *service) CloseCheckout(ctx context.Context, sessionID string) error {
	if _, err := s.checkout(sessionID); err != nil {
		return err
	}
	s.registry.Remove(sessionID)
	return nil
}

// Confirmation consumes a confirmation token; a reload finds nothing
func (s *service) Confirmation(ctx context.Context, navToken string) (*ConfirmationView, error) {
	confirmation, err := navigation.TakeConfirmation(ctx, s.navigation, navToken)
	if err != nil {
		if errors.Is(err, navigation.ErrContextNotFound) || errors.Is(err, navigation.ErrInvalidContext) {
			return nil, ErrMissingContext
		}
		return nil, err
	}
	return &ConfirmationView{ReferenceID: confirmation.ReferenceID}, nil
}

func (s *service) details(sessionID string) (*DetailsSession, error) {
	session, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	details, ok := session.(*DetailsSession)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return details, nil
}

func (s *service) checkout(sessionID string) (*CheckoutSession, error) {
	session, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	checkout, ok := session.(*CheckoutSession)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return checkout, nil
}
