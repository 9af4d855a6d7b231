package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
)

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Enrich resolves each booking's car label against the live fleet. A
// booking whose car has disappeared remotely keeps its cached label, or a
// synthesized "Car #<id>" fallback, so the ledger stays displayable.
func Enrich(bookings []Booking, cars []fleet.Car) []Booking {
	byID := make(map[string]fleet.Car, len(cars))
	for _, car := range cars {
		byID[car.ID] = car
	}

	out := make([]Booking, len(bookings))
	for i, b := range bookings {
		if car, ok := byID[b.CarID]; ok {
			b.CarLabel = car.Label()
		} else if b.CarLabel == "" {
			b.CarLabel = "Car #" + b.CarID
		}
		out[i] = b
	}
	return out
}

// Search returns bookings matching a case-insensitive substring query
// against id, customer name, car label, and both dates.
func Search(bookings []Booking, query string) []Booking {
	q := normalize(query)
	if q == "" {
		out := make([]Booking, len(bookings))
		copy(out, bookings)
		return out
	}

	out := make([]Booking, 0, len(bookings))
	for _, b := range bookings {
		if strings.Contains(normalize(b.ID), q) ||
			strings.Contains(normalize(b.CustomerName), q) ||
			strings.Contains(normalize(b.CarLabel), q) ||
			strings.Contains(normalize(b.StartDate), q) ||
			strings.Contains(normalize(b.EndDate), q) {
			out = append(out, b)
		}
	}
	return out
}

// SortByStart orders bookings by ascending parsed start date. Bookings
// with a missing or unparsable start date sort last, keeping their
// relative order.
func SortByStart(bookings []Booking) []Booking {
	out := make([]Booking, len(bookings))
	copy(out, bookings)

	sort.SliceStable(out, func(i, j int) bool {
		left, okLeft := ParseDate(out[i].StartDate)
		right, okRight := ParseDate(out[j].StartDate)
		if !okLeft {
			return false
		}
		if !okRight {
			return true
		}
		return left.Before(right)
	})
	return out
}

// NextPickup returns the first booking in start-date order whose start is
// at or after now, or nil when none is upcoming.
func NextPickup(sorted []Booking, now time.Time) *Booking {
	for i := range sorted {
		start, ok := ParseDate(sorted[i].StartDate)
		if ok && !start.Before(now) {
			return &sorted[i]
		}
	}
	return nil
}

// CountNext24h counts bookings starting within [now, now+24h], inclusive
// of both bounds.
func CountNext24h(bookings []Booking, now time.Time) int {
	cutoff := now.Add(24 * time.Hour)
	count := 0
	for _, b := range bookings {
		start, ok := ParseDate(b.StartDate)
		if ok && !start.Before(now) && !start.After(cutoff) {
			count++
		}
	}
	return count
}

// TotalRevenue sums the snapshot totals of every booking in the ledger.
func TotalRevenue(bookings []Booking) float64 {
	var sum float64
	for _, b := range bookings {
		sum += b.TotalPrice
	}
	return sum
}

// Remove deletes the booking with the given id, returning the new ledger
// and whether anything was removed.
func Remove(bookings []Booking, id string) ([]Booking, bool) {
	out := make([]Booking, 0, len(bookings))
	removed := false
	for _, b := range bookings {
		if b.ID == id {
			removed = true
			continue
		}
		out = append(out, b)
	}
	return out, removed
}
