package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

// Gateway is a mock for dashboard.Gateway.
type Gateway struct {
	mock.Mock
}

func (m *Gateway) ListCars(ctx context.Context) ([]fleet.Car, error) {
	args := m.Called(ctx)
	if cars, ok := args.Get(0).([]fleet.Car); ok {
		return cars, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Gateway) CreateCar(ctx context.Context, draft fleet.Draft) (*fleet.Car, error) {
	args := m.Called(ctx, draft)
	if car, ok := args.Get(0).(*fleet.Car); ok {
		return car, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Gateway) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	args := m.Called(ctx, email, password)
	if raw, ok := args.Get(0).(json.RawMessage); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Gateway) Register(ctx context.Context, name, email, password string, role session.Role) (json.RawMessage, error) {
	args := m.Called(ctx, name, email, password, role)
	if raw, ok := args.Get(0).(json.RawMessage); ok {
		return raw, args.Error(1)
	}
	return nil, args.Error(1)
}

// Store is a mock for dashboard.Store.
type Store struct {
	mock.Mock
}

func (m *Store) LoadLedger(ctx context.Context) []ledger.Booking {
	args := m.Called(ctx)
	if bookings, ok := args.Get(0).([]ledger.Booking); ok {
		return bookings
	}
	return nil
}

func (m *Store) SaveLedger(ctx context.Context, bookings []ledger.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *Store) LoadSession(ctx context.Context) *session.Session {
	args := m.Called(ctx)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess
	}
	return nil
}

func (m *Store) SaveSession(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}
