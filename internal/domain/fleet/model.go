package fleet

import (
	"encoding/json"
	"strings"
)

// Car is a single fleet vehicle as served by the rental API. The client
// holds a read-mostly cached copy; the remote system owns the record.
type Car struct {
	ID          string  `json:"id"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	PricePerDay float64 `json:"pricePerDay"`
	Available   bool    `json:"available"`
}

// Label returns the display name used for car references ("Make Model").
func (c Car) Label() string {
	return c.Make + " " + c.Model
}

// UnmarshalJSON accepts both string and numeric ids. The backend assigns
// numeric identifiers; the client treats them as opaque strings throughout.
func (c *Car) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          json.RawMessage `json:"id"`
		Make        string          `json:"make"`
		Model       string          `json:"model"`
		PricePerDay float64         `json:"pricePerDay"`
		Available   bool            `json:"available"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = decodeID(raw.ID)
	c.Make = raw.Make
	c.Model = raw.Model
	c.PricePerDay = raw.PricePerDay
	c.Available = raw.Available
	return nil
}

func decodeID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.Trim(string(raw), `"`)
}

// Draft holds the car-composer fields before submission.
type Draft struct {
	Make        string
	Model       string
	PricePerDay float64
	Available   bool
}
