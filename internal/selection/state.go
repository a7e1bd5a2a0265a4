package selection

import (
	"errors"

	"storefront/internal/availability"
)

type State string

const (
	StateNoDateSelected      State = "NO_DATE_SELECTED"
	StateDateSelected        State = "DATE_SELECTED"
	StateDateAndTimeSelected State = "DATE_AND_TIME_SELECTED"
)

const (
	ConfirmLabel        = "Confirm"
	IncompleteLabel     = "Please select date & time"
	SelectDateFirstHint = "Please select a date first"
	BookedLabel         = "Booked"
)

var (
	ErrUnknownDate     = errors.New("date is not offered")
	ErrUnknownTime     = errors.New("time is not offered")
	ErrNoDateSelected  = errors.New("select a date before choosing a time")
	ErrSlotUnavailable = errors.New("time slot is not available")
)

// Selection tracks the date, time and quantity picked on the details view.
// A non-nil time is always valid for the currently selected date.
type Selection struct {
	catalog  availability.Catalog
	booked   availability.Set
	date     *string
	time     *string
	quantity int
}

// New creates a selection with nothing picked and quantity 1
func New(catalog availability.Catalog, booked availability.Set) *Selection {
	return &Selection{
		catalog:  catalog,
		booked:   booked,
		quantity: 1,
	}
}

// State returns the current state of the machine
func (s *Selection) State() State {
	switch {
	case s.date == nil:
		return StateNoDateSelected
	case s.time == nil:
		return StateDateSelected
	default:
		return StateDateAndTimeSelected
	}
}

// PickDate selects a date from any state and always clears the selected time
func (s *Selection) PickDate(date string) error {
	if !s.catalog.HasDate(date) {
		return ErrUnknownDate
	}
	s.date = &date
	s.time = nil
	return nil
}

// PickTime selects a time for the current date. Illegal picks leave the state untouched.
func (s *Selection) PickTime(time string) error {
	if s.date == nil {
		return ErrNoDateSelected
	}
	slot, ok := s.catalog.TimeSlot(time)
	if !ok {
		return ErrUnknownTime
	}
	if !s.selectable(*s.date, slot) {
		return ErrSlotUnavailable
	}
	s.time = &time
	return nil
}

// SetQuantity sets the quantity, clamped to a minimum of 1
func (s *Selection) SetQuantity(q int) {
	if q < 1 {
		q = 1
	}
	s.quantity = q
}

func (s *Selection) IncrementQuantity() {
	s.SetQuantity(s.quantity + 1)
}

func (s *Selection) DecrementQuantity() {
	s.SetQuantity(s.quantity - 1)
}

// IsComplete reports whether both a date and a time are selected
func (s *Selection) IsComplete() bool {
	return s.date != nil && s.time != nil
}

// ConfirmLabel is the directive shown on the continue control
func (s *Selection) ConfirmLabel() string {
	if s.IsComplete() {
		return ConfirmLabel
	}
	return IncompleteLabel
}

// DateHint is shown under the time picker while no date is selected
func (s *Selection) DateHint() string {
	if s.date == nil {
		return SelectDateFirstHint
	}
	return ""
}

func (s *Selection) Date() (string, bool) {
	if s.date == nil {
		return "", false
	}
	return *s.date, true
}

func (s *Selection) Time() (string, bool) {
	if s.time == nil {
		return "", false
	}
	return *s.time, true
}

func (s *Selection) Quantity() int {
	return s.quantity
}

// Slot returns the selected slot once the selection is complete
func (s *Selection) Slot() (availability.Slot, bool) {
	if !s.IsComplete() {
		return availability.Slot{}, false
	}
	return availability.Slot{Date: *s.date, Time: *s.time}, true
}

func (s *Selection) selectable(date string, slot availability.TimeSlot) bool {
	if slot.SoldOut() {
		return false
	}
	return !s.booked.Has(availability.Slot{Date: date, Time: slot.Time})
}
