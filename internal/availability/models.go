package availability

// SoldOutLabel marks a catalog time that has no remaining capacity
const SoldOutLabel = "Sold out"

// keySeparator is the ASCII unit separator; it never appears in date or time labels
const keySeparator = "\x1f"

// Slot is a (date, time) pair selectable for booking an experience
type Slot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Key renders the slot as a single string for logs and cache keys
func (s Slot) Key() string {
	return s.Date + keySeparator + s.Time
}

// String implements fmt.Stringer
func (s Slot) String() string {
	return s.Date + " " + s.Time
}

// TimeSlot is a catalog time entry with its remaining-capacity label
type TimeSlot struct {
	Time string `json:"time"`
	Left string `json:"left"`
}

// SoldOut reports whether the catalog marks this time as having no capacity
func (t TimeSlot) SoldOut() bool {
	return t.Left == SoldOutLabel
}

// BookedSlotRecord is a server-reported slot already consumed for an experience
type BookedSlotRecord struct {
	Experience BookedSlot `json:"experience"`
}

// BookedSlot is the (date, time) part of a BookedSlotRecord
type BookedSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// Slot returns the record as a Slot
func (r BookedSlotRecord) Slot() Slot {
	return Slot{Date: r.Experience.Date, Time: r.Experience.Time}
}
