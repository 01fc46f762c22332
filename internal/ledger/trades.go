package ledger

import (
	"fmt"

	"tradinghub/internal/domain"
)

// Trade is one completed round trip: an opening event matched with the event
// that realized its P&L.
type Trade struct {
	Direction domain.Direction
	OpenTime  domain.TradeEvent
	CloseTime domain.TradeEvent
	// ReturnPct is the realized P&L of the round trip in percent,
	// taken from the closing event.
	ReturnPct float64
}

// DurationDays is the elapsed calendar time between open and close, in days.
func (t Trade) DurationDays() float64 {
	return t.CloseTime.Timestamp.Sub(t.OpenTime.Timestamp).Hours() / 24
}

// ExtractTrades pairs a validated ledger's events into completed trades.
//
// Pairing rules: buy opens a long; sell opens a short when flat, or closes an
// open long; tp and sl close whatever is open; direction_change closes the
// open position and immediately opens the opposite one at the same event.
// A position still open at the end of the ledger is not a completed trade
// and is dropped.
//
// Returns ErrMalformedLedger when events cannot pair: a buy while a position
// is open, a close with nothing open, or a sell against an open short.
func ExtractTrades(l domain.Ledger) ([]Trade, error) {
	if err := Validate(l); err != nil {
		return nil, err
	}

	var trades []Trade
	var open *domain.TradeEvent
	var dir domain.Direction

	for i := range l {
		ev := l[i]
		switch ev.Action {
		case domain.ActionBuy:
			if open != nil {
				return nil, fmt.Errorf("%w: event %d opens a long while a %s position is open",
					ErrMalformedLedger, i, dir)
			}
			open, dir = &l[i], domain.DirectionLong

		case domain.ActionSell:
			if open == nil {
				open, dir = &l[i], domain.DirectionShort
				continue
			}
			if dir == domain.DirectionShort {
				return nil, fmt.Errorf("%w: event %d sells against an open short", ErrMalformedLedger, i)
			}
			trades = append(trades, Trade{Direction: dir, OpenTime: *open, CloseTime: ev, ReturnPct: ev.PnlPercent})
			open = nil

		case domain.ActionTakeProfit, domain.ActionStopLoss:
			if open == nil {
				return nil, fmt.Errorf("%w: event %d closes with no open position", ErrMalformedLedger, i)
			}
			trades = append(trades, Trade{Direction: dir, OpenTime: *open, CloseTime: ev, ReturnPct: ev.PnlPercent})
			open = nil

		case domain.ActionDirectionChange:
			if open == nil {
				return nil, fmt.Errorf("%w: event %d changes direction with no open position", ErrMalformedLedger, i)
			}
			trades = append(trades, Trade{Direction: dir, OpenTime: *open, CloseTime: ev, ReturnPct: ev.PnlPercent})
			if dir == domain.DirectionLong {
				dir = domain.DirectionShort
			} else {
				dir = domain.DirectionLong
			}
			open = &l[i]
		}
	}

	return trades, nil
}
