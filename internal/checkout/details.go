package checkout

import (
	"storefront/internal/availability"
	"storefront/internal/experiences"
	"storefront/internal/navigation"
	"storefront/internal/pricing"
	"storefront/internal/selection"
)

// DetailsSession is one open details view of an experience
type DetailsSession struct {
	base

	experience *experiences.Experience
	selection  *selection.Selection
	taxes      float64
}

func NewDetailsSession(loaded *experiences.Loaded, catalog availability.Catalog, taxes float64) *DetailsSession {
	s := &DetailsSession{
		experience: loaded.Experience,
		selection:  selection.New(catalog, loaded.Booked),
		taxes:      taxes,
	}
	s.init()
	return s
}

func (s *DetailsSession) ExperienceID() string {
	return s.experience.ID.String()
}

func (s *DetailsSession) View() DetailsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// PickDate selects a date and clears any selected time
func (s *DetailsSession) PickDate(date string) (DetailsView, error) {
	return s.mutate(func() error {
		return s.selection.PickDate(date)
	})
}

// PickTime selects a time on the current date
func (s *DetailsSession) PickTime(time string) (DetailsView, error) {
	return s.mutate(func() error {
		return s.selection.PickTime(time)
	})
}

func (s *DetailsSession) SetQuantity(quantity int) (DetailsView, error) {
	return s.mutate(func() error {
		s.selection.SetQuantity(quantity)
		return nil
	})
}

func (s *DetailsSession) IncrementQuantity() (DetailsView, error) {
	return s.mutate(func() error {
		s.selection.IncrementQuantity()
		return nil
	})
}

func (s *DetailsSession) DecrementQuantity() (DetailsView, error) {
	return s.mutate(func() error {
		s.selection.DecrementQuantity()
		return nil
	})
}

// Confirm builds the checkout hand-off; only legal with a complete selection
func (s *DetailsSession) Confirm() (navigation.CheckoutContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return navigation.CheckoutContext{}, ErrSessionClosed
	}
	slot, ok := s.selection.Slot()
	if !ok {
		return navigation.CheckoutContext{}, ErrSelectionIncomplete
	}

	summary := s.summaryLocked()
	return navigation.CheckoutContext{
		ExperienceID:    s.experience.ID.String(),
		ExperienceTitle: s.experience.Title,
		Date:            slot.Date,
		Time:            slot.Time,
		Quantity:        summary.Quantity,
		UnitPrice:       summary.UnitPrice,
		Subtotal:        summary.Subtotal,
		Taxes:           summary.Taxes,
		Total:           summary.Total,
	}, nil
}

func (s *DetailsSession) mutate(fn func() error) (DetailsView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return DetailsView{}, ErrSessionClosed
	}
	s.touch()
	err := fn()
	return s.viewLocked(), err
}

func (s *DetailsSession) summaryLocked() pricing.Summary {
	return pricing.Compute(s.experience.Price, s.selection.Quantity(), s.taxes, pricing.NoDiscount())
}

func (s *DetailsSession) viewLocked() DetailsView {
	view := DetailsView{
		SessionID:      s.id,
		Experience:     s.experience,
		State:          s.selection.State(),
		Dates:          s.selection.DateOptions(),
		Times:          s.selection.TimeOptions(),
		DateHint:       s.selection.DateHint(),
		Quantity:       s.selection.Quantity(),
		Summary:        s.summaryLocked(),
		ConfirmEnabled: s.selection.IsComplete(),
		ConfirmLabel:   s.selection.ConfirmLabel(),
	}
	if date, ok := s.selection.Date(); ok {
		view.SelectedDate = &date
	}
	if time, ok := s.selection.Time(); ok {
		view.SelectedTime = &time
	}
	return view
}
