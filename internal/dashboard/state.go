package dashboard

import (
	"github.com/velocity-drive/fleetdesk/internal/domain/activity"
	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

// Tab identifies which data view is active.
type Tab string

const (
	TabCars     Tab = "cars"
	TabBookings Tab = "bookings"
	TabInsights Tab = "insights"
)

// Tabs lists the dashboard tabs in display order.
var Tabs = []Tab{TabCars, TabBookings, TabInsights}

// ViewMode selects the car list presentation.
type ViewMode string

const (
	ViewGrid  ViewMode = "grid"
	ViewTable ViewMode = "table"
)

// View is an immutable snapshot of the dashboard: raw state plus every
// derived aggregate, recomputed on each call. Rendering reads only this.
type View struct {
	Session     *session.Session
	IsAdmin     bool
	AuthMode    session.AuthMode
	AuthError   string
	AuthMessage string
	AuthBusy    bool

	Banner     activity.Banner
	LastSync   string
	Syncing    bool
	Submitting bool
	Feed       []activity.Entry

	ActiveTab Tab
	Query     string
	SortMode  fleet.SortMode
	ViewMode  ViewMode
	Composer  session.ComposerMode

	Cars          []fleet.Car
	SelectedCar   *fleet.Car
	RentalDays    int
	Bookings      []ledger.Booking
	TotalBookings int
	Metrics       fleet.Metrics
	Insights      fleet.Insights
	NextPickup    *ledger.Booking
	Next24h       int
}

// AuthInput carries the authentication form on submit.
type AuthInput struct {
	Mode     session.AuthMode
	Name     string
	Email    string
	Password string
	Role     session.Role
}

// CarInput carries the car-composer fields on submit. The price arrives
// as entered; validation parses it.
type CarInput struct {
	Make      string
	Model     string
	Price     string
	Available bool
}

// ComposerInput carries one composer submission.
type ComposerInput struct {
	Mode    session.ComposerMode
	Car     CarInput
	Booking ledger.Draft
}
