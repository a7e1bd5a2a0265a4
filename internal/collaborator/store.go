package collaborator

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"storefront/internal/availability"
	"storefront/internal/bookings"
	"storefront/internal/experiences"
	"storefront/internal/pricing"
)

// SlotTakenMessage is returned when a slot is booked twice
const SlotTakenMessage = "This slot has already been booked. Please choose another time."

var (
	ErrSlotTaken          = errors.New("slot already booked")
	ErrExperienceNotFound = errors.New("experience not found")
)

// PromoCode is a code the collaborator accepts. An empty ExperienceID means
// the code is valid for every experience.
type PromoCode struct {
	Kind         pricing.DiscountKind
	Value        float64
	Message      string
	ExperienceID string
}

// Store is the in-memory state of the reference collaborator
type Store struct {
	mu          sync.RWMutex
	experiences []experiences.Experience
	promos      map[string]PromoCode
	booked      map[string]map[availability.Slot]string
	bookings    map[string]bookings.BookingRequest
	attempts    int
	now         func() time.Time
}

// NewStore creates a store seeded with the default catalog and promo codes
func NewStore() *Store {
	return NewStoreWith(SeedExperiences(), SeedPromoCodes())
}

func NewStoreWith(list []experiences.Experience, promos map[string]PromoCode) *Store {
	return &Store{
		experiences: list,
		promos:      promos,
		booked:      make(map[string]map[availability.Slot]string),
		bookings:    make(map[string]bookings.BookingRequest),
		now:         time.Now,
	}
}

func (s *Store) ListExperiences() []experiences.Experience {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]experiences.Experience, len(s.experiences))
	copy(list, s.experiences)
	return list
}

func (s *Store) GetExperience(id string) (*experiences.Experience, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.experiences {
		if s.experiences[i].ID.String() == id {
			experience := s.experiences[i]
			return &experience, nil
		}
	}
	return nil, ErrExperienceNotFound
}

// Availability returns the booked slots of an experience
func (s *Store) Availability(id string) []availability.BookedSlotRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]availability.BookedSlotRecord, 0, len(s.booked[id]))
	for slot := range s.booked[id] {
		records = append(records, availability.BookedSlotRecord{
			Experience: availability.BookedSlot{Date: slot.Date, Time: slot.Time},
		})
	}
	return records
}

// MarkBooked records a slot as taken without a booking body
func (s *Store) MarkBooked(experienceID string, slot availability.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markLocked(experienceID, slot, "")
}

// LookupPromo finds a code case-insensitively for the given experience
func (s *Store) LookupPromo(code, experienceID string) (PromoCode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	promo, ok := s.promos[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return PromoCode{}, false
	}
	if promo.ExperienceID != "" && promo.ExperienceID != experienceID {
		return PromoCode{}, false
	}
	return promo, true
}

// CreateBooking stores a booking unless its slot is already taken
func (s *Store) CreateBooking(req bookings.BookingRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++

	experienceID := req.Experience.ID.String()
	slot := availability.Slot{Date: req.Experience.Date, Time: req.Experience.Time}
	if _, taken := s.booked[experienceID][slot]; taken {
		return "", ErrSlotTaken
	}

	bookingID, err := s.generateBookingReference()
	if err != nil {
		return "", fmt.Errorf("failed to generate booking reference: %w", err)
	}
	s.markLocked(experienceID, slot, bookingID)
	s.bookings[bookingID] = req
	return bookingID, nil
}

// BookingAttempts counts every POST /bookings that reached the store
func (s *Store) BookingAttempts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attempts
}

// Booking returns a stored booking by id
func (s *Store) Booking(id string) (bookings.BookingRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.bookings[id]
	return req, ok
}

func (s *Store) markLocked(experienceID string, slot availability.Slot, bookingID string) {
	if s.booked[experienceID] == nil {
		s.booked[experienceID] = make(map[availability.Slot]string)
	}
	s.booked[experienceID][slot] = bookingID
}

// generateBookingReference generates a unique booking reference
func (s *Store) generateBookingReference() (string, error) {
	timestamp := s.now().Format("20060102")

	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	for {
		randomPart := make([]byte, 6)
		for i := range randomPart {
			num, err := rand.Int(rand.Reader, big.NewInt(int64(len(letters))))
			if err != nil {
				return "", err
			}
			randomPart[i] = letters[num.Int64()]
		}

		ref := fmt.Sprintf("HD-%s-%s", timestamp, string(randomPart))
		if _, exists := s.bookings[ref]; !exists {
			return ref, nil
		}
	}
}
