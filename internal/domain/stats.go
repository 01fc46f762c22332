package domain

import "time"

// StatsRecord is the full set of performance statistics the dashboard shows
// for one strategy. The field set is closed: adding or removing a metric is a
// type change, not a silently missing key.
//
// Every nullable field is nil when the statistic is mathematically undefined
// for the input (zero downside periods, no losing trades, zero elapsed days).
// Nil is the only undefined representation; values are always finite.
//
// Percent-denominated statistics (returns, drawdowns, rates) are stored in
// percent units, matching the ledger's pnl_percent column and the dashboard.
type StatsRecord struct {
	// Returns
	TotalReturn   *float64 `json:"total_return"`
	DailyReturn   *float64 `json:"daily_return"`
	WeeklyReturn  *float64 `json:"weekly_return"`
	MonthlyReturn *float64 `json:"monthly_return"`
	CAGR          *float64 `json:"cagr"`

	// Ratios
	SharpeRatio      *float64 `json:"sharpe_ratio"`
	SortinoRatio     *float64 `json:"sortino_ratio"`
	CalmarRatio      *float64 `json:"calmar_ratio"`
	Alpha            *float64 `json:"alpha"`
	Beta             *float64 `json:"beta"`
	RSquared         *float64 `json:"r_squared"`
	InformationRatio *float64 `json:"information_ratio"`
	TreynorRatio     *float64 `json:"treynor_ratio"`
	ProfitFactor     *float64 `json:"profit_factor"`
	OmegaRatio       *float64 `json:"omega_ratio"`
	GainToPainRatio  *float64 `json:"gain_to_pain_ratio"`
	PayoffRatio      *float64 `json:"payoff_ratio"`
	CPCRatio         *float64 `json:"cpc_ratio"`
	RiskReturnRatio  *float64 `json:"risk_return_ratio"`
	CommonSenseRatio *float64 `json:"common_sense_ratio"`

	// Drawdowns
	MaxDrawdown               *float64 `json:"max_drawdown"`
	MaxDrawdownDays           *int     `json:"max_drawdown_days"`
	AvgDrawdown               *float64 `json:"avg_drawdown"`
	AvgDrawdownDays           *float64 `json:"avg_drawdown_days"`
	CurrentDrawdown           *float64 `json:"current_drawdown"`
	CurrentDrawdownDays       *int     `json:"current_drawdown_days"`
	DrawdownDuration          *int     `json:"drawdown_duration"`
	ConditionalDrawdownAtRisk *float64 `json:"conditional_drawdown_at_risk"`

	// Tail risk
	UlcerIndex           *float64 `json:"ulcer_index"`
	RiskOfRuin           *float64 `json:"risk_of_ruin"`
	VaR95                *float64 `json:"var_95"`
	CVaR99               *float64 `json:"cvar_99"`
	DownsideDeviation    *float64 `json:"downside_deviation"`
	Volatility           *float64 `json:"volatility"`
	AnnualizedVolatility *float64 `json:"annualized_volatility"`

	// Distribution
	Skewness *float64 `json:"skewness"`
	Kurtosis *float64 `json:"kurtosis"`

	// Calendar buckets
	WinningWeeks         int      `json:"winning_weeks"`
	LosingWeeks          int      `json:"losing_weeks"`
	WinningMonths        int      `json:"winning_months"`
	LosingMonths         int      `json:"losing_months"`
	WinningMonthsPercent *float64 `json:"winning_months_percent"`
	NegativeMonthsPercent *float64 `json:"negative_months_percent"`

	// Profitability
	TotalProfit      *float64 `json:"total_profit"`
	NetProfit        *float64 `json:"net_profit"`
	AvgProfitPerTrade *float64 `json:"avg_profit_per_trade"`
	AvgLossPerTrade  *float64 `json:"avg_loss_per_trade"`
	ProfitLossRatio  *float64 `json:"profit_loss_ratio"`

	// Trades
	NumberOfTrades        int      `json:"number_of_trades"`
	WinRate               *float64 `json:"win_rate"`
	LossRate              *float64 `json:"loss_rate"`
	AverageWin            *float64 `json:"average_win"`
	AverageLoss           *float64 `json:"average_loss"`
	AverageTradeDuration  *float64 `json:"average_trade_duration"`
	LargestWin            *float64 `json:"largest_win"`
	LargestLoss           *float64 `json:"largest_loss"`
	ConsecutiveWins       int      `json:"consecutive_wins"`
	ConsecutiveLosses     int      `json:"consecutive_losses"`
	AvgTradeReturn        *float64 `json:"avg_trade_return"`
	ProfitabilityPerTrade *float64 `json:"profitability_per_trade"`
	RecoveryFactor        *float64 `json:"recovery_factor"`

	// Long trades
	TotalLongReturn       *float64 `json:"total_long_return"`
	AvgLongReturnPerTrade *float64 `json:"avg_long_return_per_trade"`
	NumLongTrades         int      `json:"num_long_trades"`
	WinRateLongTrades     *float64 `json:"win_rate_long_trades"`
	AvgLongTradeDuration  *float64 `json:"avg_long_trade_duration"`
	MaxLongTradeReturn    *float64 `json:"max_long_trade_return"`
	MinLongTradeReturn    *float64 `json:"min_long_trade_return"`
	LongTradesPercent     *float64 `json:"long_trades_percent"`

	// Short trades
	TotalShortReturn       *float64 `json:"total_short_return"`
	AvgShortReturnPerTrade *float64 `json:"avg_short_return_per_trade"`
	NumShortTrades         int      `json:"num_short_trades"`
	WinRateShortTrades     *float64 `json:"win_rate_short_trades"`
	AvgShortTradeDuration  *float64 `json:"avg_short_trade_duration"`
	MaxShortTradeReturn    *float64 `json:"max_short_trade_return"`
	MinShortTradeReturn    *float64 `json:"min_short_trade_return"`
	ShortTradesPercent     *float64 `json:"short_trades_percent"`
}

// StatsSnapshot is a persisted StatsRecord with its generation metadata.
type StatsSnapshot struct {
	StrategyName string      `json:"strategy_name"`
	ComputedAt   time.Time   `json:"computed_at"`
	Record       StatsRecord `json:"metrics"`
}
