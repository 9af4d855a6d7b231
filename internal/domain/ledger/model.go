package ledger

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a booking. Bookings are created
// confirmed and only ever removed, so this is currently a single value.
type Status string

const StatusConfirmed Status = "CONFIRMED"

// DateLayout is the calendar-date format used by booking start/end dates.
const DateLayout = "2006-01-02"

// Booking is a locally-owned rental record. It is never pushed to the
// remote system; CarLabel and TotalPrice are snapshots taken at creation
// time and never recomputed from live fleet data.
type Booking struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	CarID        string    `json:"carId"`
	CarLabel     string    `json:"carLabel"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Days         int       `json:"days"`
	TotalPrice   float64   `json:"totalPrice"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Draft holds the booking-composer fields before validation.
type Draft struct {
	CustomerName string
	CarID        string
	StartDate    string
	EndDate      string
}

// NewID synthesizes a client-side booking id from the current instant,
// unique enough for one session's ledger.
func NewID(now time.Time) string {
	return fmt.Sprintf("BK-%06d", now.UnixMilli()%1_000_000)
}

// ParseDate parses a calendar date as local midnight. The zero time and
// false are returned for empty or malformed values.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
