package domain

// PnlClass is the sign classification shared by the catalog's summary counts
// and the metric engine's win/loss counting. Implemented once so the two can
// never disagree.
type PnlClass int

const (
	// PnlNeutral: zero or unknown P&L. Counted as neither profitable nor losing.
	PnlNeutral PnlClass = iota
	PnlProfitable
	PnlLosing
)

// ClassifyPnl classifies a signed P&L value. Exactly zero is neutral.
func ClassifyPnl(v float64) PnlClass {
	switch {
	case v > 0:
		return PnlProfitable
	case v < 0:
		return PnlLosing
	default:
		return PnlNeutral
	}
}

// ClassifyPnlPtr classifies a nullable P&L value. nil is neutral.
func ClassifyPnlPtr(v *float64) PnlClass {
	if v == nil {
		return PnlNeutral
	}
	return ClassifyPnl(*v)
}
