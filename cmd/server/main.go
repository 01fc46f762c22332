// Package main runs the dashboard API server: the strategy catalog, ledger
// and statistics endpoints, a websocket feed for catalog updates, and a
// scheduled statistics regeneration job.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"tradinghub/internal/api"
	"tradinghub/internal/returns"
	"tradinghub/internal/stats"
	"tradinghub/internal/storage"
	"tradinghub/internal/storage/clickhouse"
	"tradinghub/internal/storage/memory"
	"tradinghub/internal/storage/migrations"
	"tradinghub/internal/storage/postgres"
)

type stores struct {
	strategies storage.StrategyStore
	ledgers    storage.LedgerStore
	stats      storage.StatsStore
	users      storage.UserStore
	curves     storage.EquityCurveStore
}

func main() {
	// .env values become defaults; real env vars win.
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("HTTP_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	statsPeriod := flag.String("stats-period", envOr("STATS_PERIOD", "day"), "Primary return bucketing: day, week or month")
	statsCron := flag.String("stats-cron", envOr("STATS_CRON", "0 */6 * * *"), "Cron schedule for stats regeneration (empty disables)")
	initialBalance := flag.Float64("initial-balance", returns.DefaultInitialBalance, "Backtest initial account balance")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flag.Parse()

	log := newLogger(*logLevel)

	if !*useMemory && *postgresDSN == "" {
		log.Fatal().Msg("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	period := returns.Period(*statsPeriod)
	if !period.Valid() {
		log.Fatal().Str("period", *statsPeriod).Msg("--stats-period must be day, week or month")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create stores")
	}
	defer cleanup()

	statsOpts := stats.Options{Period: period, InitialBalance: *initialBalance}

	server := api.NewServer(api.Config{
		Strategies:   st.strategies,
		Ledgers:      st.ledgers,
		Stats:        st.stats,
		Users:        st.users,
		Curves:       st.curves,
		StatsOptions: statsOpts,
		Logger:       log,
	})

	// Scheduled statistics regeneration, announced over the websocket feed.
	var scheduler *cron.Cron
	if *statsCron != "" {
		gen := stats.NewGenerator(st.strategies, st.ledgers, st.stats, st.curves, statsOpts)
		scheduler = cron.New()
		_, err := scheduler.AddFunc(*statsCron, func() {
			n, err := gen.GenerateAll(ctx)
			if err != nil {
				log.Error().Err(err).Msg("scheduled stats generation failed")
				return
			}
			for name, ferr := range gen.Failures {
				log.Warn().Err(ferr).Str("strategy", name).Msg("stats generation skipped strategy")
			}
			log.Info().Int("strategies", n).Msg("stats regenerated")
			server.Hub().NotifyStatsUpdated(n)
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", *statsCron).Msg("invalid stats cron schedule")
		}
		scheduler.Start()
	}

	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", *addr).Msg("http server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server failed")
		}
	}

	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	cancel()
}

// createStores wires either the in-memory backend or postgres plus an
// optional clickhouse equity curve store, running migrations on the way.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool, log zerolog.Logger) (*stores, func(), error) {
	if useMemory {
		st := &stores{
			strategies: memory.NewStrategyStore(),
			ledgers:    memory.NewLedgerStore(),
			stats:      memory.NewStatsStore(),
			users:      memory.NewUserStore(),
			curves:     memory.NewEquityCurveStore(),
		}
		return st, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, err
	}

	st := &stores{
		strategies: postgres.NewStrategyStore(pool),
		ledgers:    postgres.NewLedgerStore(pool),
		stats:      postgres.NewStatsStore(pool),
		users:      postgres.NewUserStore(pool),
	}
	cleanup := func() { pool.Close() }

	if clickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		st.curves = clickhouse.NewEquityCurveStore(conn)
		cleanup = func() {
			conn.Close()
			pool.Close()
		}
	} else {
		log.Info().Msg("no clickhouse dsn, equity curves will be computed from ledgers")
	}

	return st, cleanup, nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Str("service", "tradinghub").Logger()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
