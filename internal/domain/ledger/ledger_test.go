package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
)

var testCar = fleet.Car{ID: "7", Make: "Audi", Model: "A4", PricePerDay: 110, Available: true}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	draft := ledger.Draft{
		CustomerName: "  Dana Reyes ",
		CarID:        "7",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-03",
	}

	booking, err := ledger.Build(draft, &testCar, now)
	require.NoError(t, err)
	require.Equal(t, "Dana Reyes", booking.CustomerName)
	require.Equal(t, "7", booking.CarID)
	require.Equal(t, "Audi A4", booking.CarLabel)
	require.Equal(t, 3, booking.Days, "both endpoints count")
	require.Equal(t, 330.0, booking.TotalPrice)
	require.Equal(t, ledger.StatusConfirmed, booking.Status)
	require.NotEmpty(t, booking.ID)
	require.Equal(t, now, booking.CreatedAt)
}

func TestBuildSingleDay(t *testing.T) {
	draft := ledger.Draft{
		CustomerName: "Sam",
		CarID:        "7",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-01",
	}
	booking, err := ledger.Build(draft, &testCar, time.Now())
	require.NoError(t, err)
	require.Equal(t, 1, booking.Days)
	require.Equal(t, 110.0, booking.TotalPrice)
}

func TestBuildValidation(t *testing.T) {
	now := time.Now()
	base := ledger.Draft{
		CustomerName: "Sam",
		CarID:        "7",
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-02",
	}

	cases := []struct {
		name  string
		draft ledger.Draft
		car   *fleet.Car
		field string
	}{
		{"missing name", ledger.Draft{CarID: "7", StartDate: base.StartDate, EndDate: base.EndDate}, &testCar, "customerName"},
		{"blank name", ledger.Draft{CustomerName: "   ", CarID: "7", StartDate: base.StartDate, EndDate: base.EndDate}, &testCar, "customerName"},
		{"unresolvable car", base, nil, "carId"},
		{"missing dates", ledger.Draft{CustomerName: "Sam", CarID: "7"}, &testCar, "dates"},
		{"malformed date", ledger.Draft{CustomerName: "Sam", CarID: "7", StartDate: "soon", EndDate: base.EndDate}, &testCar, "dates"},
		{"end before start", ledger.Draft{CustomerName: "Sam", CarID: "7", StartDate: "2026-09-05", EndDate: "2026-09-01"}, &testCar, "endDate"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.Build(tc.draft, tc.car, now)
			require.Error(t, err)
			var verr *ledger.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Equal(t, tc.field, verr.Field)
			require.NotEmpty(t, verr.Message)
		})
	}
}

func TestEnrich(t *testing.T) {
	cars := []fleet.Car{testCar}
	bookings := []ledger.Booking{
		{ID: "BK-1", CarID: "7", CarLabel: "Old Label"},
		{ID: "BK-2", CarID: "99", CarLabel: "Vanished GT"},
		{ID: "BK-3", CarID: "404"},
	}

	enriched := ledger.Enrich(bookings, cars)
	require.Equal(t, "Audi A4", enriched[0].CarLabel, "live fleet wins")
	require.Equal(t, "Vanished GT", enriched[1].CarLabel, "cached label survives removal")
	require.Equal(t, "Car #404", enriched[2].CarLabel, "synthesized fallback")

	// Input untouched.
	require.Equal(t, "Old Label", bookings[0].CarLabel)
}

func TestSearch(t *testing.T) {
	bookings := []ledger.Booking{
		{ID: "BK-000123", CustomerName: "Dana", CarLabel: "Audi A4", StartDate: "2026-09-01", EndDate: "2026-09-03"},
		{ID: "BK-000456", CustomerName: "Sam", CarLabel: "Kia Rio", StartDate: "2026-10-01", EndDate: "2026-10-02"},
	}

	require.Len(t, ledger.Search(bookings, ""), 2)
	require.Len(t, ledger.Search(bookings, "dana"), 1)
	require.Len(t, ledger.Search(bookings, "AUDI"), 1)
	require.Len(t, ledger.Search(bookings, "2026-10"), 1)
	require.Len(t, ledger.Search(bookings, "000123"), 1)
	require.Empty(t, ledger.Search(bookings, "zebra"))
}

func TestSortByStart(t *testing.T) {
	bookings := []ledger.Booking{
		{ID: "late", StartDate: "2026-12-01"},
		{ID: "broken-a", StartDate: "not-a-date"},
		{ID: "early", StartDate: "2026-09-01"},
		{ID: "broken-b", StartDate: ""},
		{ID: "mid", StartDate: "2026-10-15"},
	}

	sorted := ledger.SortByStart(bookings)
	order := make([]string, len(sorted))
	for i, b := range sorted {
		order[i] = b.ID
	}
	require.Equal(t, []string{"early", "mid", "late", "broken-a", "broken-b"}, order,
		"unparsable dates last, relative order preserved")
}

func TestNextPickup(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.Local)
	sorted := ledger.SortByStart([]ledger.Booking{
		{ID: "past", StartDate: "2026-09-01"},
		{ID: "next", StartDate: "2026-09-12"},
		{ID: "later", StartDate: "2026-09-20"},
	})

	next := ledger.NextPickup(sorted, now)
	require.NotNil(t, next)
	require.Equal(t, "next", next.ID)

	require.Nil(t, ledger.NextPickup(ledger.SortByStart([]ledger.Booking{{ID: "past", StartDate: "2026-09-01"}}), now))
}

func TestCountNext24hBounds(t *testing.T) {
	start, ok := ledger.ParseDate("2026-09-11")
	require.True(t, ok)
	bookings := []ledger.Booking{{ID: "b", StartDate: "2026-09-11"}}

	// Start exactly at now: included.
	require.Equal(t, 1, ledger.CountNext24h(bookings, start))
	// Start exactly at now+24h: included.
	require.Equal(t, 1, ledger.CountNext24h(bookings, start.Add(-24*time.Hour)))
	// Start at now+24h plus a millisecond: excluded.
	require.Equal(t, 0, ledger.CountNext24h(bookings, start.Add(-24*time.Hour).Add(-time.Millisecond)))
	// Already started: excluded.
	require.Equal(t, 0, ledger.CountNext24h(bookings, start.Add(time.Millisecond)))
}

func TestRemove(t *testing.T) {
	bookings := []ledger.Booking{{ID: "BK-1"}, {ID: "BK-2"}, {ID: "BK-3"}}

	out, removed := ledger.Remove(bookings, "BK-2")
	require.True(t, removed)
	require.Len(t, out, 2)
	require.Equal(t, "BK-1", out[0].ID)
	require.Equal(t, "BK-3", out[1].ID)

	out, removed = ledger.Remove(bookings, "BK-9")
	require.False(t, removed)
	require.Len(t, out, 3)
}

func TestTotalRevenue(t *testing.T) {
	require.Equal(t, 0.0, ledger.TotalRevenue(nil))
	require.Equal(t, 450.5, ledger.TotalRevenue([]ledger.Booking{{TotalPrice: 300}, {TotalPrice: 150.5}}))
}
