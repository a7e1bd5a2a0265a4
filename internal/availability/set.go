package availability

// Set is the membership structure of slots already consumed for one experience.
// Keys are the comparable Slot value, so two distinct (date, time) pairs never collide.
type Set struct {
	slots map[Slot]struct{}
}

// Build turns booked-slot records into a Set. Nil or empty input yields an empty set.
// Records missing a date or time cannot identify a slot and are skipped.
func Build(records []BookedSlotRecord) Set {
	set := Set{slots: make(map[Slot]struct{}, len(records))}
	for _, record := range records {
		slot := record.Slot()
		if slot.Date == "" || slot.Time == "" {
			continue
		}
		set.slots[slot] = struct{}{}
	}
	return set
}

// Has reports whether the slot is already booked
func (s Set) Has(slot Slot) bool {
	if s.slots == nil {
		return false
	}
	_, ok := s.slots[slot]
	return ok
}

// Len returns the number of booked slots
func (s Set) Len() int {
	return len(s.slots)
}

