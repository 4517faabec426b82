package selection

import (
	"context"
	"errors"

	"github.com/udisondev/skirmish/internal/geo"
)

// ErrSourceExhausted is returned when a source has no further events.
var ErrSourceExhausted = errors.New("selection source exhausted")

// EventKind distinguishes raw selection events.
type EventKind uint8

const (
	EventSelected EventKind = iota // A cell was confirmed
	EventCanceled                  // The user backed out
)

// Event is a decoded input event: a confirmed cell or a cancel.
type Event struct {
	Kind EventKind
	Cell geo.Cell
}

// Selected returns a cell-confirmed event.
func Selected(c geo.Cell) Event {
	return Event{Kind: EventSelected, Cell: c}
}

// Cancel returns a cancel event.
func Cancel() Event {
	return Event{Kind: EventCanceled}
}

// Source yields raw selection events. Next blocks until an event is
// available, the source ends, or ctx is done.
type Source interface {
	Next(ctx context.Context) (Event, error)
}

// SliceSource replays a fixed list of events. Automated play uses it to
// drive the same routines a human drives with a cursor.
type SliceSource struct {
	events []Event
	pos    int
}

// NewSliceSource creates a source over events.
func NewSliceSource(events ...Event) *SliceSource {
	return &SliceSource{events: events}
}

// Next returns the next scripted event.
func (s *SliceSource) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}
	if s.pos >= len(s.events) {
		return Event{}, ErrSourceExhausted
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// Restart rewinds to the first event.
func (s *SliceSource) Restart() {
	s.pos = 0
}

// Remaining returns the number of unread events.
func (s *SliceSource) Remaining() int {
	return len(s.events) - s.pos
}
