package experiences

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"storefront/internal/availability"
)

// ID identifies an experience. The collaborator may send it as a JSON number
// or a JSON string; both decode to the same ID.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		*id = ""
		return nil
	}

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("experience id must be a string or a number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer ids back as numbers so the collaborator sees the
// representation it handed out
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id ID) String() string {
	return string(id)
}

// Details is the long-form content shown on the details view
type Details struct {
	LongDescription string `json:"longDescription"`
	About           string `json:"about"`
	Image           string `json:"image"`
}

// Experience is a bookable activity offered by the catalog
type Experience struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Details     Details `json:"details"`
}

// Loaded is an experience together with its booked slots, fetched as one unit
type Loaded struct {
	Experience *Experience
	Booked     availability.Set
}
