package ledger

import (
	"strings"
	"time"

	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
)

const dayDuration = 24 * time.Hour

// Build validates a booking draft against the selected car and assembles a
// confirmed booking. car is the fleet record the draft's CarID resolved to,
// or nil when no such car exists. The day count is inclusive of both
// endpoints and the total price snapshots the car's current daily rate.
func Build(draft Draft, car *fleet.Car, now time.Time) (Booking, error) {
	name := strings.TrimSpace(draft.CustomerName)
	if name == "" {
		return Booking{}, invalid("customerName", "Customer name is required.")
	}
	if car == nil {
		return Booking{}, invalid("carId", "Please select a valid car for this booking.")
	}
	if draft.StartDate == "" || draft.EndDate == "" {
		return Booking{}, invalid("dates", "Start and end dates are required.")
	}

	start, okStart := ParseDate(draft.StartDate)
	end, okEnd := ParseDate(draft.EndDate)
	if !okStart || !okEnd {
		return Booking{}, invalid("dates", "Please provide valid booking dates.")
	}
	if end.Before(start) {
		return Booking{}, invalid("endDate", "End date cannot be earlier than start date.")
	}

	days := int(end.Sub(start)/dayDuration) + 1

	return Booking{
		ID:           NewID(now),
		CustomerName: name,
		CarID:        car.ID,
		CarLabel:     car.Label(),
		StartDate:    draft.StartDate,
		EndDate:      draft.EndDate,
		Days:         days,
		TotalPrice:   float64(days) * car.PricePerDay,
		Status:       StatusConfirmed,
		CreatedAt:    now,
	}, nil
}
