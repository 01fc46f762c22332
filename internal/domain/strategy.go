package domain

// Strategy is a row of the strategy configuration catalog.
// Name is the unique key; uniqueness is enforced by the store.
type Strategy struct {
	Name        string `json:"name"`
	Exchange    string `json:"exchange"`
	Symbol      string `json:"symbol"`
	TimeHorizon string `json:"time_horizon"`

	// TotalReturn, when present, is the authoritative total-return override
	// for this strategy. When nil the value is derived from the ledger.
	TotalReturn *float64 `json:"total_return,omitempty"`
}

// StrategySummary is what the catalog listing carries per strategy:
// the config fields plus the latest cumulative P&L from the ledger.
// Pnl is nil when the ledger is empty or unavailable.
type StrategySummary struct {
	Name        string   `json:"name"`
	Exchange    string   `json:"exchange"`
	Symbol      string   `json:"symbol"`
	TimeHorizon string   `json:"time_horizon"`
	Pnl         *float64 `json:"pnl"`
}
