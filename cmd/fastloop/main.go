package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/fastloop/config"
	"github.com/alejandrodnm/fastloop/internal/adapters/binance"
	"github.com/alejandrodnm/fastloop/internal/adapters/polymarket"
	"github.com/alejandrodnm/fastloop/internal/adapters/sim"
	"github.com/alejandrodnm/fastloop/internal/adapters/storage"
	"github.com/alejandrodnm/fastloop/internal/domain"
	"github.com/alejandrodnm/fastloop/internal/health"
	"github.com/alejandrodnm/fastloop/internal/ports"
	"github.com/alejandrodnm/fastloop/internal/trader"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one decision cycle and exit")
	live := flag.Bool("live", false, "enable real trading (also via LIVE=true)")
	status := flag.Bool("status", false, "print budget and run state")
	reset := flag.Bool("reset", false, "reset the spend ledger to zero")
	healthCheck := flag.Bool("health", false, "print the health check JSON")
	report := flag.Int("report", 0, "print an N-day performance report")
	exportCSV := flag.Bool("export-csv", false, "export trade history as CSV")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *live {
		cfg.Trader.Live = true
	}
	setupLogger(cfg.Log)

	store, err := storage.NewFileStore(cfg.Storage.DataDir)
	if err != nil {
		slog.Error("failed to open data dir", "err", err, "dir", cfg.Storage.DataDir)
		os.Exit(1)
	}

	switch {
	case *reset:
		runReset(store)
		return
	case *status:
		runStatus(cfg, store)
		return
	case *healthCheck:
		runHealth(cfg, store)
		return
	case *report > 0:
		runReport(cfg, *report)
		return
	case *exportCSV:
		runExportCSV(cfg)
		return
	}

	slog.Info("fastloop starting",
		"config", *configPath,
		"interval", cfg.RunInterval(),
		"assets", cfg.Trader.Assets,
		"live", cfg.Trader.Live,
		"once", *once,
	)

	client := polymarket.NewClient(cfg.API.CLOBBase, cfg.API.GammaBase)
	feed := binance.NewClient(cfg.API.BinanceBase)
	catalog := polymarket.NewMarketCatalog(client, cfg.MinTimeRemaining())

	var executor ports.TradeExecutor
	if cfg.Trader.Live {
		lex, err := polymarket.NewLiveExecutor(client, cfg.PrivateKey)
		if err != nil {
			slog.Error("failed to create live executor", "err", err)
			os.Exit(1)
		}
		executor = lex
	} else {
		executor = sim.NewExecutor()
	}

	tradeLog, err := storage.NewSQLiteTradeLog(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open trade log", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer tradeLog.Close()

	t := trader.New(traderConfig(cfg), trader.Deps{
		Signals:  feed,
		Markets:  catalog,
		Prices:   client,
		Executor: executor,
		Ledger:   store,
		State:    store,
		TradeLog: tradeLog,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *once {
		result := t.RunCycle(ctx)
		slog.Info("cycle finished",
			"trades", len(result.Trades),
			"errors", len(result.Errors),
			"stopped", result.Stopped,
		)
		return
	}

	hs := health.NewServer(store, store, cfg.Trader.MaxTotalSpend, cfg.Trader.Assets)
	go func() {
		if err := hs.ListenAndServe(ctx, cfg.Health.Port); err != nil {
			slog.Error("health server exited", "err", err)
		}
	}()

	t.OnCycle = func(result domain.CycleResult) {
		health.ObserveCycle(result)
		if spent, err := store.Spent(ctx); err == nil {
			health.SetTotalSpent(spent)
		}
	}

	if err := t.Run(ctx); err != nil {
		slog.Error("trader exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("fastloop stopped cleanly")
}

// traderConfig proyecta la configuración YAML al Config del trader.
func traderConfig(cfg *config.Config) trader.Config {
	tc := trader.DefaultConfig()
	tc.Assets = cfg.Trader.Assets
	tc.LookbackMinutes = cfg.Trader.LookbackMinutes
	tc.MinMomentumPct = cfg.Trader.MinMomentumPct
	tc.VolumeConfidence = cfg.Trader.VolumeConfidence
	tc.MinVolumeRatio = cfg.Trader.MinVolumeRatio
	tc.MaxPosition = cfg.Trader.MaxPosition
	tc.MinPosition = cfg.Trader.MinPosition
	tc.MaxTotalSpend = cfg.Trader.MaxTotalSpend
	tc.FeeRate = cfg.Trader.FeeRate
	tc.TopMarkets = cfg.Trader.TopMarkets
	tc.Interval = cfg.RunInterval()
	tc.Live = cfg.Trader.Live
	return tc
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
