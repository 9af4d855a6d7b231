package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/velocity-drive/fleetdesk/internal/domain/ledger"
	"github.com/velocity-drive/fleetdesk/internal/domain/session"
)

// The two logical slots the dashboard uses. The key names match the
// original browser storage keys so the intent stays recognizable.
const (
	ledgerKey  = "car-rentals-bookings-v1"
	sessionKey = "car-rentals-auth-v1"
)

// LoadLedger restores the booking ledger. Corrupt or foreign-shaped data
// is treated as an empty ledger, never propagated.
func (s *Store) LoadLedger(ctx context.Context) []ledger.Booking {
	raw, err := s.Load(ctx, ledgerKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("ledger unreadable, starting empty", "error", err)
		}
		return []ledger.Booking{}
	}

	var bookings []ledger.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		s.logger.Warn("ledger corrupt, starting empty", "error", err)
		return []ledger.Booking{}
	}
	if bookings == nil {
		bookings = []ledger.Booking{}
	}
	return bookings
}

// SaveLedger persists the full ledger. Every change writes the whole
// array; there is no incremental diffing.
func (s *Store) SaveLedger(ctx context.Context, bookings []ledger.Booking) error {
	if bookings == nil {
		bookings = []ledger.Booking{}
	}
	raw, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return s.Save(ctx, ledgerKey, raw)
}

// LoadSession restores the persisted session, or nil when absent,
// corrupt, or missing mandatory fields.
func (s *Store) LoadSession(ctx context.Context) *session.Session {
	raw, err := s.Load(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn("session record unreadable, signing out", "error", err)
		}
		return nil
	}

	var sess session.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warn("session record corrupt, signing out", "error", err)
		return nil
	}
	if !sess.Valid() {
		return nil
	}
	return &sess
}

// SaveSession persists the session; a nil session removes the record.
func (s *Store) SaveSession(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return s.Remove(ctx, sessionKey)
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Save(ctx, sessionKey, raw)
}
