// Package ledger validates raw trade ledgers and derives completed
// round-trip trades from them. Both are pure functions: the input ledger is
// never mutated.
package ledger

import (
	"errors"
	"fmt"

	"tradinghub/internal/domain"
)

// ErrMalformedLedger marks a structural invariant violation in a ledger:
// non-ascending timestamps, an unknown action, or open/close events that do
// not pair up. It is fatal for the single computation that hit it, never for
// the caller's process.
var ErrMalformedLedger = errors.New("malformed ledger")

// Validate checks the invariants every consumer of a ledger relies on.
// The ledger must already be sorted ascending by timestamp; Validate fails
// rather than re-sorting, because unsorted rows mean the upstream store is
// corrupted and a silent sort would hide that.
func Validate(l domain.Ledger) error {
	for i, ev := range l {
		if !ev.Action.Valid() {
			return fmt.Errorf("%w: event %d has unknown action %q", ErrMalformedLedger, i, ev.Action)
		}
		if i > 0 && ev.Timestamp.Before(l[i-1].Timestamp) {
			return fmt.Errorf("%w: event %d timestamp %s precedes event %d",
				ErrMalformedLedger, i, ev.Timestamp.Format("2006-01-02T15:04:05Z07:00"), i-1)
		}
		if ev.Balance < 0 {
			return fmt.Errorf("%w: event %d has negative balance %.4f", ErrMalformedLedger, i, ev.Balance)
		}
	}
	return nil
}
