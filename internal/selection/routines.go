package selection

import (
	"context"
	"fmt"

	"github.com/udisondev/skirmish/internal/geo"
)

// Await reads one raw event from src into a Pending cell channel: a
// selection resolves it, a cancel cancels it.
func Await(ctx context.Context, src Source, ch *Channel[geo.Cell]) error {
	ev, err := src.Next(ctx)
	if err != nil {
		return fmt.Errorf("awaiting selection: %w", err)
	}
	if ev.Kind == EventCanceled {
		ch.Cancel()
		return nil
	}
	ch.Resolve(ev.Cell)
	return nil
}

// Lookup finds the occupant of a cell.
type Lookup[U any] func(geo.Cell) (U, bool)

// SelectUnit waits for the user to pick a cell holding a unit that matches
// rule and resolves out with it. Picks of empty cells or non-matching units
// are ignored. A cancel cancels out when allowCancel is set and is ignored
// otherwise.
//
// If src fails, the error is returned and out stays Pending.
func SelectUnit[U any](
	ctx context.Context,
	src Source,
	lookup Lookup[U],
	rule func(U) bool,
	allowCancel bool,
	out *Channel[U],
) error {
	for !out.Finished() {
		loc := NewChannel[geo.Cell]()
		if err := Await(ctx, src, loc); err != nil {
			return err
		}

		res := loc.Result()
		if res.Canceled() {
			if allowCancel {
				out.Cancel()
			}
			continue
		}

		cell, _ := res.Value()
		if unit, ok := lookup(cell); ok && rule(unit) {
			out.Resolve(unit)
		}
	}
	return nil
}

// SelectAdjacentUnit is SelectUnit restricted to the four cells orthogonally
// adjacent to origin. src is expected to be a direction cursor, but picks
// elsewhere are tolerated and ignored.
func SelectAdjacentUnit[U any](
	ctx context.Context,
	src Source,
	origin geo.Cell,
	lookup Lookup[U],
	rule func(U) bool,
	allowCancel bool,
	out *Channel[U],
) error {
	adjacent := func(c geo.Cell) (U, bool) {
		if !geo.Adjacent(origin, c) {
			var zero U
			return zero, false
		}
		return lookup(c)
	}
	return SelectUnit(ctx, src, adjacent, rule, allowCancel, out)
}
