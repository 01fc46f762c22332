// Package main is the batch statistics job: it recomputes the full
// performance record for every strategy in the catalog (or one strategy
// with --strategy) and persists the snapshots.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"tradinghub/internal/returns"
	"tradinghub/internal/stats"
	"tradinghub/internal/storage"
	"tradinghub/internal/storage/clickhouse"
	"tradinghub/internal/storage/migrations"
	"tradinghub/internal/storage/postgres"
)

func main() {
	_ = godotenv.Load()

	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional)")
	strategy := flag.String("strategy", "", "Regenerate a single strategy instead of the whole catalog")
	statsPeriod := flag.String("stats-period", envOr("STATS_PERIOD", "day"), "Primary return bucketing: day, week or month")
	initialBalance := flag.Float64("initial-balance", returns.DefaultInitialBalance, "Backtest initial account balance")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.Parse()

	log := newLogger(*logLevel)

	if *postgresDSN == "" {
		log.Fatal().Msg("--postgres-dsn is required")
	}

	period := returns.Period(*statsPeriod)
	if !period.Valid() {
		log.Fatal().Str("period", *statsPeriod).Msg("--stats-period must be day, week or month")
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, *postgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("run postgres migrations")
	}

	var curves storage.EquityCurveStore
	if *clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, *clickhouseDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("run clickhouse migrations")
		}
		defer conn.Close()
		curves = clickhouse.NewEquityCurveStore(conn)
	}

	gen := stats.NewGenerator(
		postgres.NewStrategyStore(pool),
		postgres.NewLedgerStore(pool),
		postgres.NewStatsStore(pool),
		curves,
		stats.Options{Period: period, InitialBalance: *initialBalance},
	)

	if *strategy != "" {
		if _, err := gen.GenerateOne(ctx, *strategy); err != nil {
			log.Fatal().Err(err).Str("strategy", *strategy).Msg("stats generation failed")
		}
		log.Info().Str("strategy", *strategy).Msg("stats regenerated")
		return
	}

	written, err := gen.GenerateAll(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("stats generation failed")
	}
	for name, ferr := range gen.Failures {
		log.Warn().Err(ferr).Str("strategy", name).Msg("strategy skipped")
	}
	log.Info().Int("written", written).Int("skipped", len(gen.Failures)).Msg("stats regenerated")

	if len(gen.Failures) > 0 {
		os.Exit(1)
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("service", "tradinghub-stats").Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
