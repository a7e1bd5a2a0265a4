package selection

import "storefront/internal/availability"

// DateOption is one rendered date control
type DateOption struct {
	Date     string `json:"date"`
	Selected bool   `json:"selected"`
}

// TimeOption is one rendered time control. Disabled options must be rendered
// non-clickable rather than rejected after the click.
type TimeOption struct {
	Time     string `json:"time"`
	Label    string `json:"label"`
	SoldOut  bool   `json:"soldOut"`
	Booked   bool   `json:"booked"`
	Disabled bool   `json:"disabled"`
	Selected bool   `json:"selected"`
}

// DateOptions renders every offered date
func (s *Selection) DateOptions() []DateOption {
	options := make([]DateOption, 0, len(s.catalog.Dates))
	for _, date := range s.catalog.Dates {
		options = append(options, DateOption{
			Date:     date,
			Selected: s.date != nil && *s.date == date,
		})
	}
	return options
}

// TimeOptions renders every offered time against the current date
func (s *Selection) TimeOptions() []TimeOption {
	options := make([]TimeOption, 0, len(s.catalog.Times))
	for _, slot := range s.catalog.Times {
		option := TimeOption{
			Time:    slot.Time,
			Label:   slot.Left,
			SoldOut: slot.SoldOut(),
		}
		if s.date != nil {
			option.Booked = s.booked.Has(availability.Slot{Date: *s.date, Time: slot.Time})
		}
		if option.Booked {
			option.Label = BookedLabel
		}
		option.Disabled = s.date == nil || option.SoldOut || option.Booked
		option.Selected = s.time != nil && *s.time == slot.Time
		options = append(options, option)
	}
	return options
}
