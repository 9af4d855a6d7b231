package activity

import (
	"time"

	"github.com/google/uuid"
)

// MaxEntries bounds the rolling feed; the oldest entry is silently
// evicted past this.
const MaxEntries = 12

// Entry is one human-readable line in the activity feed.
type Entry struct {
	ID      string
	Message string
	At      string
}

// Feed is a bounded, newest-first log of dashboard events. It is a plain
// value owned by the controller; it is not safe for concurrent use on its
// own.
type Feed struct {
	entries []Entry
}

// Add prepends an event stamped with the current wall-clock time.
func (f *Feed) Add(message string) {
	f.AddAt(message, time.Now())
}

// AddAt prepends an event stamped with the given instant.
func (f *Feed) AddAt(message string, at time.Time) {
	entry := Entry{
		ID:      uuid.NewString(),
		Message: message,
		At:      at.Format("15:04"),
	}
	f.entries = append([]Entry{entry}, f.entries...)
	if len(f.entries) > MaxEntries {
		f.entries = f.entries[:MaxEntries]
	}
}

// Entries returns a copy of the feed, newest first.
func (f *Feed) Entries() []Entry {
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}
