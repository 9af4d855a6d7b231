package fleet

import (
	"math"
	"strconv"
	"strings"
)

// ParseDraft validates the car-composer fields and assembles a draft.
// Make and model must be non-empty; the price must parse to a strictly
// positive finite number.
func ParseDraft(make, model, price string, available bool) (Draft, error) {
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)
	if make == "" || model == "" {
		return Draft{}, &ValidationError{Field: "make", Message: "Make and model are required."}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return Draft{}, &ValidationError{Field: "pricePerDay", Message: "Price per day must be a positive number."}
	}

	return Draft{Make: make, Model: model, PricePerDay: value, Available: available}, nil
}
