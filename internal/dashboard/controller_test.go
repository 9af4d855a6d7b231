package dashboard_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velocity-drive/fleetdesk/internal/dashboard"
	"github.com/velocity-drive/fleetdesk/internal/dashboard/mocks"
	"github.com/velocity-drive/fleetdesk/internal/domain/activity"
	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
	"github.com/velocity-drive/fleetdesk/internal/gateway"
)

var fixedNow = time.Date(2026, 9, 1, 14, 30, 0, 0, time.Local)

func newController(t *testing.T, sess *session.Session, stored []ledger.Booking) (*dashboard.Controller, *mocks.Gateway, *mocks.Store) {
	t.Helper()

	gw := &mocks.Gateway{}
	st := &mocks.Store{}
	st.On("LoadLedger", mock.Anything).Return(stored)
	st.On("LoadSession", mock.Anything).Return(sess)

	c := dashboard.New(context.Background(), gw, st, nil, dashboard.WithClock(func() time.Time { return fixedNow }))
	return c, gw, st
}

func adminSession() *session.Session {
	return &session.Session{UserID: "1", Name: "Dana", Email: "dana@example.com", Role: session.RoleAdmin}
}

func customerSession() *session.Session {
	return &session.Session{UserID: "2", Name: "Sam", Email: "sam@example.com", Role: session.RoleCustomer}
}

func fleetOfTwo() []fleet.Car {
	return []fleet.Car{
		{ID: "1", Make: "Toyota", Model: "Corolla", PricePerDay: 45, Available: true},
		{ID: "2", Make: "Audi", Model: "A4", PricePerDay: 110, Available: false},
	}
}

func TestRefreshSuccess(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, adminSession(), nil)
	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil)

	require.NoError(t, c.Refresh(ctx, "Manual refresh"))

	view := c.Snapshot()
	require.Len(t, view.Cars, 2)
	require.Equal(t, activity.ToneSuccess, view.Banner.Tone)
	require.Equal(t, "Fleet data is up to date.", view.Banner.Text)
	require.Equal(t, "14:30", view.LastSync)
	require.Equal(t, "Manual refresh completed", view.Feed[0].Message)
	require.Equal(t, "1", view.SelectedCar.ID, "first car selected by default")
}

func TestRefreshIdempotent(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, adminSession(), nil)
	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil)

	require.NoError(t, c.Refresh(ctx, "Data refresh"))
	first := c.Snapshot()
	require.NoError(t, c.Refresh(ctx, "Data refresh"))
	second := c.Snapshot()

	require.Equal(t, first.Cars, second.Cars)
	require.Equal(t, first.Metrics, second.Metrics)
	require.Equal(t, first.Insights, second.Insights)
	require.Equal(t, first.Banner, second.Banner)
}

func TestRefreshFailureKeepsFleet(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, adminSession(), nil)

	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil).Once()
	require.NoError(t, c.Refresh(ctx, "Initial load"))

	gw.On("ListCars", mock.Anything).Return(nil, &gateway.HTTPError{Status: 500, Message: "db down"}).Once()
	err := c.Refresh(ctx, "Manual refresh")
	require.Error(t, err)

	view := c.Snapshot()
	require.Equal(t, activity.Banner{Tone: activity.ToneError, Text: "db down"}, view.Banner)
	require.Equal(t, "Data synchronization failed", view.Feed[0].Message)
	require.Len(t, view.Cars, 2, "fleet unchanged on failure")
}

func TestRefreshSingleFlight(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, adminSession(), nil)

	release := make(chan struct{})
	started := make(chan struct{})
	gw.On("ListCars", mock.Anything).Run(func(args mock.Arguments) {
		close(started)
		<-release
	}).Return(fleetOfTwo(), nil).Once()

	done := make(chan error, 1)
	go func() { done <- c.Refresh(ctx, "Slow refresh") }()
	<-started

	// A second refresh while one is in flight is dropped without a call.
	require.NoError(t, c.Refresh(ctx, "Impatient refresh"))

	close(release)
	require.NoError(t, <-done)
	gw.AssertNumberOfCalls(t, "ListCars", 1)
}

func TestCreateCarAsAdmin(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, adminSession(), nil)

	created := &fleet.Car{ID: "9", Make: "Kia", Model: "Rio", PricePerDay: 35, Available: true}
	gw.On("CreateCar", mock.Anything, fleet.Draft{Make: "Kia", Model: "Rio", PricePerDay: 35, Available: true}).Return(created, nil)
	gw.On("ListCars", mock.Anything).Return(append(fleetOfTwo(), *created), nil)

	err := c.SubmitComposer(ctx, dashboard.ComposerInput{
		Mode: session.ComposerCar,
		Car:  dashboard.CarInput{Make: "Kia", Model: "Rio", Price: "35", Available: true},
	})
	require.NoError(t, err)

	view := c.Snapshot()
	require.Equal(t, dashboard.TabCars, view.ActiveTab)
	require.Equal(t, "9", view.SelectedCar.ID, "created car focused")
	require.Len(t, view.Cars, 3, "dependent refresh ran")
	require.False(t, view.Submitting)

	messages := feedMessages(view)
	require.Contains(t, messages, `Car "Kia Rio" added`)
	require.Contains(t, messages, "Car create completed")
}

func TestCreateCarRejectsNonAdmin(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, customerSession(), nil)

	err := c.SubmitComposer(ctx, dashboard.ComposerInput{
		Mode: session.ComposerCar,
		Car:  dashboard.CarInput{Make: "Kia", Model: "Rio", Price: "35"},
	})
	require.ErrorIs(t, err, session.ErrNotAdmin)

	view := c.Snapshot()
	require.Equal(t, session.ComposerBooking, view.Composer, "composer force-reset")
	require.Equal(t, activity.ToneError, view.Banner.Tone)
	require.Equal(t, "Only admin accounts can add cars.", view.Banner.Text)
	require.Equal(t, "Create action failed", view.Feed[0].Message)
	require.False(t, view.Submitting)
	gw.AssertNotCalled(t, "CreateCar", mock.Anything, mock.Anything)
}

func TestCreateCarValidation(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, adminSession(), nil)

	err := c.SubmitComposer(ctx, dashboard.ComposerInput{
		Mode: session.ComposerCar,
		Car:  dashboard.CarInput{Make: "Kia", Model: "Rio", Price: "-10"},
	})
	require.Error(t, err)
	var verr *fleet.ValidationError
	require.ErrorAs(t, err, &verr)

	view := c.Snapshot()
	require.Equal(t, "Price per day must be a positive number.", view.Banner.Text)
	gw.AssertNotCalled(t, "CreateCar", mock.Anything, mock.Anything)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	c, gw, st := newController(t, customerSession(), nil)
	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil)
	require.NoError(t, c.Refresh(ctx, "Initial load"))

	st.On("SaveLedger", mock.Anything, mock.Anything).Return(nil)

	err := c.SubmitComposer(ctx, dashboard.ComposerInput{
		Mode: session.ComposerBooking,
		Booking: ledger.Draft{
			CustomerName: "Sam",
			CarID:        "2",
			StartDate:    "2026-09-05",
			EndDate:      "2026-09-07",
		},
	})
	require.NoError(t, err)

	view := c.Snapshot()
	require.Equal(t, dashboard.TabBookings, view.ActiveTab)
	require.Equal(t, 1, view.TotalBookings)
	booking := view.Bookings[0]
	require.Equal(t, "Audi A4", booking.CarLabel)
	require.Equal(t, 3, booking.Days)
	require.Equal(t, 330.0, booking.TotalPrice)
	require.Equal(t, activity.ToneSuccess, view.Banner.Tone)
	require.Contains(t, view.Banner.Text, "created locally")
	require.InDelta(t, 330.0, view.Metrics.LocalRevenue, 0.0001)
	st.AssertCalled(t, "SaveLedger", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "CreateCar", mock.Anything, mock.Anything)
}

func TestCreateBookingValidationMutatesNothing(t *testing.T) {
	ctx := context.Background()
	c, gw, st := newController(t, customerSession(), nil)
	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil)
	require.NoError(t, c.Refresh(ctx, "Initial load"))

	err := c.SubmitComposer(ctx, dashboard.ComposerInput{
		Mode: session.ComposerBooking,
		Booking: ledger.Draft{
			CustomerName: "Sam",
			CarID:        "2",
			StartDate:    "2026-09-07",
			EndDate:      "2026-09-05",
		},
	})
	require.Error(t, err)
	var verr *ledger.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "endDate", verr.Field)

	view := c.Snapshot()
	require.Zero(t, view.TotalBookings)
	require.Equal(t, "End date cannot be earlier than start date.", view.Banner.Text)
	st.AssertNotCalled(t, "SaveLedger", mock.Anything, mock.Anything)
}

func TestDeleteBookingConfirmSemantics(t *testing.T) {
	ctx := context.Background()
	stored := []ledger.Booking{
		{ID: "BK-000123", CustomerName: "Dana", CarID: "1", StartDate: "2026-09-03", EndDate: "2026-09-04"},
		{ID: "BK-000456", CustomerName: "Sam", CarID: "2", StartDate: "2026-09-05", EndDate: "2026-09-06"},
	}
	c, _, st := newController(t, customerSession(), stored)

	// No confirmation: strict no-op.
	c.DeleteBooking(ctx, "BK-000123", false)
	require.Equal(t, 2, c.Snapshot().TotalBookings)
	st.AssertNotCalled(t, "SaveLedger", mock.Anything, mock.Anything)

	st.On("SaveLedger", mock.Anything, mock.Anything).Return(nil)
	c.DeleteBooking(ctx, "BK-000123", true)

	view := c.Snapshot()
	require.Equal(t, 1, view.TotalBookings)
	require.Equal(t, "BK-000456", view.Bookings[0].ID)
	require.Equal(t, "Booking BK-000123 deleted.", view.Banner.Text)
	require.Equal(t, "Booking BK-000123 removed", view.Feed[0].Message)
	require.Len(t, view.Feed, 1, "exactly one activity line")

	// Deleting an unknown id changes nothing further.
	c.DeleteBooking(ctx, "BK-999999", true)
	require.Equal(t, 1, c.Snapshot().TotalBookings)
}

func TestAuthenticateLogin(t *testing.T) {
	ctx := context.Background()
	c, gw, st := newController(t, nil, nil)

	gw.On("Login", mock.Anything, "a@b.com", "secret1").
		Return(json.RawMessage(`{"email":"a@b.com","role":"ADMIN"}`), nil)
	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil)
	st.On("SaveSession", mock.Anything, mock.Anything).Return(nil)

	require.False(t, c.Authenticated())
	err := c.Authenticate(ctx, dashboard.AuthInput{
		Mode:     session.AuthLogin,
		Email:    " a@b.com ",
		Password: "secret1",
	})
	require.NoError(t, err)

	view := c.Snapshot()
	require.True(t, view.IsAdmin)
	require.Equal(t, "Authentication successful.", view.AuthMessage)
	require.Equal(t, session.ComposerCar, view.Composer, "admins land on the car composer")
	require.Len(t, view.Cars, 2, "sign-in triggers the initial refresh")

	messages := feedMessages(view)
	require.Contains(t, messages, "Signed in as ADMIN")
	require.Contains(t, messages, "Initial load completed")
	st.AssertCalled(t, "SaveSession", mock.Anything, mock.MatchedBy(func(s *session.Session) bool {
		return s != nil && s.Email == "a@b.com"
	}))
}

func TestAuthenticateBadPayload(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, nil, nil)

	gw.On("Login", mock.Anything, "a@b.com", "pw").
		Return(json.RawMessage(`{"message":"welcome"}`), nil)

	err := c.Authenticate(ctx, dashboard.AuthInput{Mode: session.AuthLogin, Email: "a@b.com", Password: "pw"})
	require.ErrorIs(t, err, session.ErrBadPayload)

	view := c.Snapshot()
	require.Nil(t, view.Session)
	require.Equal(t, "Unexpected authentication response.", view.AuthError)
	require.False(t, view.AuthBusy)
}

func TestAuthenticateGatewayError(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, nil, nil)

	gw.On("Login", mock.Anything, "a@b.com", "pw").
		Return(nil, &gateway.HTTPError{Status: 401, Message: "Invalid email or password."})

	err := c.Authenticate(ctx, dashboard.AuthInput{Mode: session.AuthLogin, Email: "a@b.com", Password: "pw"})
	require.Error(t, err)
	require.Equal(t, "Invalid email or password.", c.Snapshot().AuthError)
}

func TestRegisterSendsRole(t *testing.T) {
	ctx := context.Background()
	c, gw, st := newController(t, nil, nil)

	gw.On("Register", mock.Anything, "Dana", "a@b.com", "secret1", session.RoleCustomer).
		Return(json.RawMessage(`{"userId":7,"name":"Dana","email":"a@b.com","role":"CUSTOMER","message":"Account created."}`), nil)
	gw.On("ListCars", mock.Anything).Return([]fleet.Car{}, nil)
	st.On("SaveSession", mock.Anything, mock.Anything).Return(nil)

	err := c.Authenticate(ctx, dashboard.AuthInput{
		Mode:     session.AuthRegister,
		Name:     " Dana ",
		Email:    "a@b.com",
		Password: "secret1",
		Role:     session.RoleCustomer,
	})
	require.NoError(t, err)

	view := c.Snapshot()
	require.Equal(t, "Account created.", view.AuthMessage)
	require.Equal(t, session.ComposerBooking, view.Composer)
	// The initial refresh runs after sign-in, so its banner is the one left standing.
	require.Equal(t, "Fleet data is up to date.", view.Banner.Text)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	c, _, st := newController(t, adminSession(), nil)
	st.On("SaveSession", mock.Anything, (*session.Session)(nil)).Return(nil)

	c.Logout(ctx)

	view := c.Snapshot()
	require.Nil(t, view.Session)
	require.Equal(t, session.AuthLogin, view.AuthMode)
	require.Equal(t, "You have been signed out.", view.AuthMessage)
	require.Equal(t, activity.Banner{Tone: activity.ToneNeutral, Text: "Sign in to resume rental operations."}, view.Banner)
	st.AssertCalled(t, "SaveSession", mock.Anything, (*session.Session)(nil))
}

func TestSelectionRepairAfterFleetShrinks(t *testing.T) {
	ctx := context.Background()
	c, gw, _ := newController(t, adminSession(), nil)

	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil).Once()
	require.NoError(t, c.Refresh(ctx, "Initial load"))
	c.SelectCar("2")
	require.Equal(t, "2", c.Snapshot().SelectedCar.ID)

	gw.On("ListCars", mock.Anything).Return(fleetOfTwo()[:1], nil).Once()
	require.NoError(t, c.Refresh(ctx, "Manual refresh"))
	require.Equal(t, "1", c.Snapshot().SelectedCar.ID, "selection falls back to first car")

	gw.On("ListCars", mock.Anything).Return([]fleet.Car{}, nil).Once()
	require.NoError(t, c.Refresh(ctx, "Manual refresh"))
	require.Nil(t, c.Snapshot().SelectedCar)
}

func TestPerTabQueries(t *testing.T) {
	c, _, _ := newController(t, adminSession(), []ledger.Booking{
		{ID: "BK-1", CustomerName: "Dana", CarID: "1", StartDate: "2026-09-03", EndDate: "2026-09-04"},
	})

	c.SetQuery("toyota")
	c.SetActiveTab(dashboard.TabBookings)
	require.Empty(t, c.Snapshot().Query, "bookings tab has its own query")

	c.SetQuery("dana")
	view := c.Snapshot()
	require.Equal(t, "dana", view.Query)
	require.Len(t, view.Bookings, 1)

	c.SetActiveTab(dashboard.TabCars)
	require.Equal(t, "toyota", c.Snapshot().Query)

	c.ClearQuery()
	require.Empty(t, c.Snapshot().Query)
}

func TestDanglingBookingKeepsLabel(t *testing.T) {
	ctx := context.Background()
	stored := []ledger.Booking{
		{ID: "BK-1", CustomerName: "Dana", CarID: "77", CarLabel: "Vanished GT", StartDate: "2026-09-03", EndDate: "2026-09-04"},
	}
	c, gw, _ := newController(t, customerSession(), stored)
	gw.On("ListCars", mock.Anything).Return(fleetOfTwo(), nil)
	require.NoError(t, c.Refresh(ctx, "Initial load"))

	view := c.Snapshot()
	require.Equal(t, "Vanished GT", view.Bookings[0].CarLabel)
}

func TestNextPickupAndNext24h(t *testing.T) {
	stored := []ledger.Booking{
		{ID: "past", CustomerName: "A", CarID: "1", StartDate: "2026-08-20", EndDate: "2026-08-21"},
		{ID: "today", CustomerName: "B", CarID: "1", StartDate: "2026-09-02", EndDate: "2026-09-03"},
		{ID: "later", CustomerName: "C", CarID: "1", StartDate: "2026-09-20", EndDate: "2026-09-21"},
	}
	c, _, _ := newController(t, customerSession(), stored)

	view := c.Snapshot()
	require.NotNil(t, view.NextPickup)
	require.Equal(t, "today", view.NextPickup.ID)
	// fixedNow is 14:30 on Sep 1; Sep 2 midnight falls inside the window.
	require.Equal(t, 1, view.Next24h)
}

func feedMessages(view dashboard.View) []string {
	out := make([]string, len(view.Feed))
	for i, entry := range view.Feed {
		out[i] = entry.Message
	}
	return out
}
