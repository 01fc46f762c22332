package clickhouse

import (
	"context"
	"fmt"
	"time"

	"tradinghub/internal/returns"
	"tradinghub/internal/storage"
)

// EquityCurveStore implements storage.EquityCurveStore using ClickHouse.
//
// The table is append-only: each regeneration inserts the whole curve under
// a new computed_at version, and reads select the newest version. MergeTree
// never needs a delete this way; old versions age out via TTL.
type EquityCurveStore struct {
	conn *Conn
}

// NewEquityCurveStore creates a new EquityCurveStore.
func NewEquityCurveStore(conn *Conn) *EquityCurveStore {
	return &EquityCurveStore{conn: conn}
}

// Compile-time interface check.
var _ storage.EquityCurveStore = (*EquityCurveStore)(nil)

// Replace stores a new version of a strategy's curve.
func (s *EquityCurveStore) Replace(ctx context.Context, strategyName string, computedAt time.Time, points []returns.EquityPoint) error {
	if strategyName == "" {
		return storage.ErrInvalidInput
	}
	if len(points) == 0 {
		return nil
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO equity_curve_points (
			strategy_name, computed_at, ts, equity
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(strategyName, computedAt, p.Timestamp, p.Equity); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByStrategy retrieves the newest stored curve ordered by timestamp ASC.
// A strategy with no stored curve yields an empty slice.
func (s *EquityCurveStore) GetByStrategy(ctx context.Context, strategyName string) ([]returns.EquityPoint, error) {
	query := `
		SELECT ts, equity
		FROM equity_curve_points
		WHERE strategy_name = ?
		  AND computed_at = (
			SELECT max(computed_at) FROM equity_curve_points WHERE strategy_name = ?
		  )
		ORDER BY ts ASC
	`

	rows, err := s.conn.Query(ctx, query, strategyName, strategyName)
	if err != nil {
		return nil, fmt.Errorf("query equity curve: %w", err)
	}
	defer rows.Close()

	var points []returns.EquityPoint
	for rows.Next() {
		var p returns.EquityPoint
		if err := rows.Scan(&p.Timestamp, &p.Equity); err != nil {
			return nil, fmt.Errorf("scan equity curve row: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate equity curve rows: %w", err)
	}

	return points, nil
}
