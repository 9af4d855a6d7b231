package dashboard

import (
	"context"
	"encoding/json"

	"github.com/velocity-drive/fleetdesk/internal/domain/fleet"
	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

// Gateway is the remote rental API surface the controller depends on.
type Gateway interface {
	ListCars(ctx context.Context) ([]fleet.Car, error)
	CreateCar(ctx context.Context, draft fleet.Draft) (*fleet.Car, error)
	Login(ctx context.Context, email, password string) (json.RawMessage, error)
	Register(ctx context.Context, name, email, password string, role session.Role) (json.RawMessage, error)
}

// Store is the durable local storage surface the controller depends on.
type Store interface {
	LoadLedger(ctx context.Context) []ledger.Booking
	SaveLedger(ctx context.Context, bookings []ledger.Booking) error
	LoadSession(ctx context.Context) *session.Session
	SaveSession(ctx context.Context, sess *session.Session) error
}
