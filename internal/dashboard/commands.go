package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/velocity-drive/fleetdesk/internal/domain/activity"
	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

// Refresh replaces the fleet from the remote API. Refreshes are
// single-flight: a request arriving while one is already running is
// dropped, so responses can never resolve out of request order. On
// success the car list, sync timestamp, banner, and activity entry are
// applied as one locked transition.
func (c *Controller) Refresh(ctx context.Context, reason string) error {
	c.mu.Lock()
	if c.syncing {
		c.mu.Unlock()
		return nil
	}
	c.syncing = true
	c.banner = activity.Neutral("Synchronizing fleet data...")
	c.mu.Unlock()

	cars, err := c.gateway.ListCars(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncing = false
	if err != nil {
		c.banner = activity.Error(messageFor(err, "Unable to synchronize records."))
		c.feed.AddAt("Data synchronization failed", c.now())
		return fmt.Errorf("refreshing fleet: %w", err)
	}

	c.cars = cars
	c.repairSelection()
	c.lastSync = c.now().Format("15:04")
	c.banner = activity.Success("Fleet data is up to date.")
	c.feed.AddAt(reason + " completed", c.now())
	return nil
}

// Authenticate runs the login or register flow. On success the session
// is installed and persisted, the composer defaults to the role's form,
// and a fleet refresh follows. Failures only set the auth error text.
func (c *Controller) Authenticate(ctx context.Context, in AuthInput) error {
	c.mu.Lock()
	if c.authBusy {
		c.mu.Unlock()
		return nil
	}
	c.authBusy = true
	c.authError = ""
	c.mu.Unlock()

	email := strings.TrimSpace(in.Email)
	var raw []byte
	var err error
	if in.Mode == session.AuthRegister {
		raw, err = c.gateway.Register(ctx, strings.TrimSpace(in.Name), email, in.Password, in.Role)
	} else {
		raw, err = c.gateway.Login(ctx, email, in.Password)
	}

	var sess *session.Session
	var greeting string
	if err == nil {
		sess, greeting, err = session.ParsePayload(raw)
	}

	c.mu.Lock()
	c.authBusy = false
	if err != nil {
		c.authError = messageFor(err, "Authentication failed.")
		c.mu.Unlock()
		return err
	}

	if greeting == "" {
		greeting = "Authentication successful."
	}
	c.sess = sess
	c.authMessage = greeting
	c.banner = activity.Success("Welcome " + sess.DisplayName() + ".")
	c.feed.AddAt("Signed in as " + string(sess.Role), c.now())
	c.composer = session.DefaultComposer(sess)
	c.mu.Unlock()

	if err := c.store.SaveSession(ctx, sess); err != nil {
		c.logger.Warn("failed to persist session", "error", err)
	}

	return c.Refresh(ctx, "Initial load")
}

// Logout destroys the session, clears the persisted record, and returns
// the dashboard to the authentication gate.
func (c *Controller) Logout(ctx context.Context) {
	c.mu.Lock()
	c.sess = nil
	c.authMode = session.AuthLogin
	c.authError = ""
	c.authMessage = "You have been signed out."
	c.banner = activity.Neutral("Sign in to resume rental operations.")
	c.mu.Unlock()

	if err := c.store.SaveSession(ctx, nil); err != nil {
		c.logger.Warn("failed to clear persisted session", "error", err)
	}
}

// SubmitComposer is the single outer handler for both composer forms: it
// sets the submitting flag, dispatches to the matching create routine,
// converts any failure into an error banner plus a generic activity
// entry, and always clears the flag.
func (c *Controller) SubmitComposer(ctx context.Context, in ComposerInput) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil
	}
	c.submitting = true
	c.mu.Unlock()

	var err error
	if in.Mode == session.ComposerCar {
		err = c.createCar(ctx, in.Car)
	} else {
		err = c.createBooking(ctx, in.Booking)
	}

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.banner = activity.Error(messageFor(err, "Could not save record."))
		c.feed.AddAt("Create action failed", c.now())
	}
	c.mu.Unlock()
	return err
}

// createCar validates and posts a new fleet vehicle, then runs a
// dependent refresh and focuses the created record.
func (c *Controller) createCar(ctx context.Context, in CarInput) error {
	c.mu.Lock()
	admin := c.sess.IsAdmin()
	if !admin {
		// Non-admins never see the car composer; observing this state
		// force-resets the composer to booking mode.
		c.composer = session.ComposerBooking
	}
	c.mu.Unlock()
	if !admin {
		return session.ErrNotAdmin
	}

	draft, err := fleet.ParseDraft(in.Make, in.Model, in.Price, in.Available)
	if err != nil {
		return err
	}

	created, err := c.gateway.CreateCar(ctx, draft)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.banner = activity.Success("Car created successfully.")
	c.feed.AddAt(fmt.Sprintf("Car %q added", draft.Make+" "+draft.Model), c.now())
	c.mu.Unlock()

	if err := c.Refresh(ctx, "Car create"); err != nil {
		c.logger.Warn("post-create refresh failed", "error", err)
	}

	c.mu.Lock()
	if created != nil && created.ID != "" {
		c.selectedCar = created.ID
	}
	c.activeTab = TabCars
	c.mu.Unlock()
	return nil
}

// createBooking validates the draft against the live fleet and prepends
// the booking to the local ledger. No remote call is made; bookings are
// local-only by design.
func (c *Controller) createBooking(ctx context.Context, draft ledger.Draft) error {
	c.mu.Lock()

	var car *fleet.Car
	for i := range c.cars {
		if c.cars[i].ID == draft.CarID {
			matched := c.cars[i]
			car = &matched
			break
		}
	}

	booking, err := ledger.Build(draft, car, c.now())
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.bookings = append([]ledger.Booking{booking}, c.bookings...)
	snapshot := make([]ledger.Booking, len(c.bookings))
	copy(snapshot, c.bookings)
	c.banner = activity.Success(fmt.Sprintf("Booking %s created locally.", booking.ID))
	c.feed.AddAt(fmt.Sprintf("Booking %s scheduled for %s", booking.ID, booking.CustomerName), c.now())
	c.activeTab = TabBookings
	c.mu.Unlock()

	if err := c.store.SaveLedger(ctx, snapshot); err != nil {
		c.logger.Warn("failed to persist ledger", "error", err)
	}
	return nil
}

// DeleteBooking removes a booking by id. Without confirmation it is a
// strict no-op; deletion is the only way a booking ever leaves the
// ledger.
func (c *Controller) DeleteBooking(ctx context.Context, id string, confirmed bool) {
	if !confirmed {
		return
	}

	c.mu.Lock()
	remaining, removed := ledger.Remove(c.bookings, id)
	if !removed {
		c.mu.Unlock()
		return
	}
	c.bookings = remaining
	snapshot := make([]ledger.Booking, len(remaining))
	copy(snapshot, remaining)
	c.banner = activity.Success(fmt.Sprintf("Booking %s deleted.", id))
	c.feed.AddAt(fmt.Sprintf("Booking %s removed", id), c.now())
	c.mu.Unlock()

	if err := c.store.SaveLedger(ctx, snapshot); err != nil {
		c.logger.Warn("failed to persist ledger", "error", err)
	}
}

// messageFor renders an error for the status banner, preferring the
// user-facing messages the domain errors carry.
func messageFor(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if errors.Is(err, session.ErrNotAdmin) {
		return "Only admin accounts can add cars."
	}
	if errors.Is(err, session.ErrBadPayload) {
		return "Unexpected authentication response."
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
