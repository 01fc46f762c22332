package domain

import "time"

// TradeEvent is a single row of a strategy's backtest ledger.
// Events are produced by the backtesting pipeline and are read-only here:
// every derived series is a fresh allocation.
type TradeEvent struct {
	Timestamp  time.Time `json:"datetime"` // event time, ascending within a ledger
	Action     Action    `json:"action"`
	BuyPrice   *float64  `json:"buy_price"`   // set on long entries and long closes
	SellPrice  *float64  `json:"sell_price"`  // set on short entries and short closes
	PnlPercent float64   `json:"pnl_percent"` // P&L of this single event, percent, signed
	PnlSum     float64   `json:"pnl_sum"`     // cumulative P&L through this event, account units
	Balance    float64   `json:"balance"`     // running account value; 0 when the row carries none
}

// Ledger is the ordered trade history of exactly one strategy.
type Ledger []TradeEvent

// Last returns the final event, or nil for an empty ledger.
func (l Ledger) Last() *TradeEvent {
	if len(l) == 0 {
		return nil
	}
	return &l[len(l)-1]
}

// Action identifies what a ledger event did.
type Action string

// Ledger action codes, matching the values the backtester writes.
const (
	ActionBuy             Action = "buy"
	ActionSell            Action = "sell"
	ActionTakeProfit      Action = "tp"
	ActionStopLoss        Action = "sl"
	ActionDirectionChange Action = "direction_change"
)

// Valid reports whether a is a known ledger action.
func (a Action) Valid() bool {
	switch a {
	case ActionBuy, ActionSell, ActionTakeProfit, ActionStopLoss, ActionDirectionChange:
		return true
	}
	return false
}

// Direction tags a completed round-trip trade.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)
