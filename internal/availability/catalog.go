package availability

// Catalog is the fixed set of offered dates and times shared by every experience
type Catalog struct {
	Dates []string   `json:"dates"`
	Times []TimeSlot `json:"times"`
}

// DefaultCatalog returns the storefront's offered dates and times
func DefaultCatalog() Catalog {
	return Catalog{
		Dates: []string{"Oct 22", "Oct 23", "Oct 24", "Oct 25", "Oct 26"},
		Times: []TimeSlot{
			{Time: "07:00 am", Left: "4 left"},
			{Time: "09:00 am", Left: "2 left"},
			{Time: "11:00 am", Left: "5 left"},
			{Time: "1:00 pm", Left: SoldOutLabel},
		},
	}
}

// HasDate reports whether date is one of the offered dates
func (c Catalog) HasDate(date string) bool {
	for _, d := range c.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// TimeSlot looks up an offered time by its label
func (c Catalog) TimeSlot(time string) (TimeSlot, bool) {
	for _, t := range c.Times {
		if t.Time == time {
			return t, true
		}
	}
	return TimeSlot{}, false
}
