package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/velocity-drive/fleetdesk/internal/domain/activity"
	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

const (
	initialBanner   = "Connecting to rental operations..."
	initialLastSync = "--:--"
	defaultDays     = 3
)

// Controller owns every piece of mutable dashboard state and is the only
// component that touches the gateway and the store. All mutation happens
// under one mutex, so no two operations interleave their state updates;
// network calls run outside the lock and apply their results as a single
// locked transition.
type Controller struct {
	gateway Gateway
	store   Store
	logger  *slog.Logger
	now     func() time.Time

	mu          sync.Mutex
	cars        []fleet.Car
	bookings    []ledger.Booking
	sess        *session.Session
	feed        activity.Feed
	banner      activity.Banner
	lastSync    string
	syncing     bool
	submitting  bool
	selectedCar string
	rentalDays  int
	composer    session.ComposerMode
	activeTab   Tab
	queries     map[Tab]string
	sortMode    fleet.SortMode
	viewMode    ViewMode
	authMode    session.AuthMode
	authError   string
	authMessage string
	authBusy    bool
}

// New creates a controller and restores the persisted ledger and session.
func New(ctx context.Context, gw Gateway, st Store, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		gateway:     gw,
		store:       st,
		logger:      logger,
		now:         time.Now,
		banner:      activity.Neutral(initialBanner),
		lastSync:    initialLastSync,
		rentalDays:  defaultDays,
		composer:    session.ComposerBooking,
		activeTab:   TabCars,
		queries:     map[Tab]string{},
		sortMode:    fleet.SortRecommended,
		viewMode:    ViewGrid,
		authMode:    session.AuthLogin,
		authMessage: session.AuthHelp(session.AuthLogin),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.bookings = st.LoadLedger(ctx)
	if sess := st.LoadSession(ctx); sess != nil {
		c.sess = sess
		c.composer = session.DefaultComposer(sess)
	}
	return c
}

// Authenticated reports whether a session is active.
func (c *Controller) Authenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess != nil
}

// SetActiveTab switches the visible data view.
func (c *Controller) SetActiveTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeTab = tab
}

// SetQuery updates the search text of the active tab; each tab keeps its
// own query.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queries[c.activeTab] = query
}

// ClearQuery empties the active tab's search text.
func (c *Controller) ClearQuery() {
	c.SetQuery("")
}

// SetSortMode changes the car ordering.
func (c *Controller) SetSortMode(mode fleet.SortMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortMode = mode
}

// SetViewMode toggles the car list presentation.
func (c *Controller) SetViewMode(mode ViewMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewMode = mode
}

// SetComposerMode requests a composer form; non-admins asking for the car
// composer are forced to the booking composer.
func (c *Controller) SetComposerMode(mode session.ComposerMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.composer = session.AllowedComposer(c.sess, mode)
}

// SelectCar focuses a car for the estimate panel.
func (c *Controller) SelectCar(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedCar = id
}

// SetRentalDays adjusts the estimate duration, clamped to at least one day.
func (c *Controller) SetRentalDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if days < 1 {
		days = 1
	}
	c.rentalDays = days
}

// SetAuthMode switches between login and register, resetting any
// in-flight error and picking the mode's helper message.
func (c *Controller) SetAuthMode(mode session.AuthMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authMode = mode
	c.authError = ""
	c.authMessage = session.AuthHelp(mode)
}

// repairSelection keeps the selected car id pointing at a live fleet
// record, falling back to the first car. Call with the lock held.
func (c *Controller) repairSelection() {
	if len(c.cars) == 0 {
		c.selectedCar = ""
		return
	}
	for _, car := range c.cars {
		if car.ID == c.selectedCar {
			return
		}
	}
	c.selectedCar = c.cars[0].ID
}

// Snapshot returns the current state with every derived view recomputed.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	carsView := fleet.Sort(fleet.Search(c.cars, c.queries[TabCars]), c.sortMode)
	enriched := ledger.Enrich(c.bookings, c.cars)
	bookingsView := ledger.SortByStart(ledger.Search(enriched, c.queries[TabBookings]))

	var selected *fleet.Car
	for i := range c.cars {
		if c.cars[i].ID == c.selectedCar {
			car := c.cars[i]
			selected = &car
			break
		}
	}

	return View{
		Session:     c.sess,
		IsAdmin:     c.sess.IsAdmin(),
		AuthMode:    c.authMode,
		AuthError:   c.authError,
		AuthMessage: c.authMessage,
		AuthBusy:    c.authBusy,

		Banner:     c.banner,
		LastSync:   c.lastSync,
		Syncing:    c.syncing,
		Submitting: c.submitting,
		Feed:       c.feed.Entries(),

		ActiveTab: c.activeTab,
		Query:     c.queries[c.activeTab],
		SortMode:  c.sortMode,
		ViewMode:  c.viewMode,
		Composer:  session.AllowedComposer(c.sess, c.composer),

		Cars:          carsView,
		SelectedCar:   selected,
		RentalDays:    c.rentalDays,
		Bookings:      bookingsView,
		TotalBookings: len(c.bookings),
		Metrics:       fleet.ComputeMetrics(c.cars, ledger.TotalRevenue(c.bookings)),
		Insights:      fleet.ComputeInsights(c.cars),
		NextPickup:    ledger.NextPickup(bookingsView, now),
		Next24h:       ledger.CountNext24h(bookingsView, now),
	}
}
