package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/fastloop/config"
	"github.com/alejandrodnm/fastloop/internal/adapters/storage"
	"github.com/alejandrodnm/fastloop/internal/domain"
	"github.com/alejandrodnm/fastloop/internal/health"
)

// runReset pone el ledger a cero.
func runReset(store *storage.FileStore) {
	if err := store.Reset(context.Background()); err != nil {
		slog.Error("failed to reset budget", "err", err)
		os.Exit(1)
	}
	fmt.Println("budget reset to $0.00")
}

// runStatus imprime presupuesto y estado de ejecución.
func runStatus(cfg *config.Config, store *storage.FileStore) {
	ctx := context.Background()

	spent, err := store.Spent(ctx)
	if err != nil {
		slog.Error("failed to read budget", "err", err)
		os.Exit(1)
	}
	state, err := store.LoadState(ctx)
	if err != nil {
		slog.Error("failed to read run state", "err", err)
		os.Exit(1)
	}

	maxSpend := cfg.Trader.MaxTotalSpend
	fmt.Printf("\nBUDGET\n")
	fmt.Printf("  Spent:     $%.2f\n", spent)
	fmt.Printf("  Cap:       $%.2f\n", maxSpend)
	fmt.Printf("  Available: $%.2f\n", maxSpend-spent)
	fmt.Printf("\nSTATE\n")
	fmt.Printf("  Status:    %s\n", orNA(state.Status))
	fmt.Printf("  Started:   %s\n", orNA(state.StartedAt))
	fmt.Printf("  Last run:  %s\n", orNA(state.LastRun))
	fmt.Printf("  Trades:    %d\n", len(state.Trades))
	fmt.Printf("  Assets:    %v\n", cfg.Trader.Assets)

	if len(state.Trades) > 0 {
		fmt.Println()
		printTradeTable(state.Trades)
	}
}

// runHealth imprime el health check como JSON, igual que el endpoint.
func runHealth(cfg *config.Config, store *storage.FileStore) {
	hs := health.NewServer(store, store, cfg.Trader.MaxTotalSpend, cfg.Trader.Assets)
	status := hs.Check(context.Background())

	out, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		slog.Error("failed to encode health check", "err", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// runReport imprime el reporte de rendimiento de los últimos days días
// a partir del histórico SQLite.
func runReport(cfg *config.Config, days int) {
	trades := loadHistory(cfg, time.Now().UTC().AddDate(0, 0, -days))
	if len(trades) == 0 {
		fmt.Printf("no trades recorded in the last %d days\n", days)
		return
	}

	var totalVolume, totalEV float64
	byAsset := make(map[string]*assetStats)
	byDay := make(map[string]*assetStats)
	for _, t := range trades {
		totalVolume += t.Amount
		totalEV += t.EV

		addStat(byAsset, t.Asset, t)
		addStat(byDay, t.Timestamp.Format("2006-01-02"), t)
	}

	fmt.Printf("\nPERFORMANCE REPORT — last %d days\n", days)
	fmt.Printf("  Trades:     %d\n", len(trades))
	fmt.Printf("  Volume:     $%.2f\n", totalVolume)
	fmt.Printf("  Avg EV:     %+.4f\n\n", totalEV/float64(len(trades)))

	printStatsTable("Asset", byAsset)
	fmt.Println()
	printStatsTable("Day", byDay)
	fmt.Println()
	printTradeTable(trades)
}

// runExportCSV vuelca el histórico completo de trades a un CSV con fecha
// en el nombre, dentro del data dir.
func runExportCSV(cfg *config.Config) {
	trades := loadHistory(cfg, time.Time{})

	path := filepath.Join(cfg.Storage.DataDir,
		fmt.Sprintf("trades_%s.csv", time.Now().Format("20060102")))

	f, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create csv", "err", err, "path", path)
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{"timestamp", "asset", "market", "outcome", "amount", "ev", "tx_hash"})
	for _, t := range trades {
		w.Write([]string{
			t.Timestamp.Format(time.RFC3339),
			t.Asset,
			t.Question,
			t.Outcome,
			strconv.FormatFloat(t.Amount, 'f', 2, 64),
			strconv.FormatFloat(t.EV, 'f', 4, 64),
			t.TxID,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		slog.Error("failed to write csv", "err", err)
		os.Exit(1)
	}

	fmt.Printf("exported %d trades to %s\n", len(trades), path)
}

// loadHistory abre el trade log y devuelve los trades desde since.
func loadHistory(cfg *config.Config, since time.Time) []domain.TradeRecord {
	tradeLog, err := storage.NewSQLiteTradeLog(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open trade log", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer tradeLog.Close()

	trades, err := tradeLog.TradesSince(context.Background(), since)
	if err != nil {
		slog.Error("failed to read trade history", "err", err)
		os.Exit(1)
	}
	return trades
}

type assetStats struct {
	trades int
	volume float64
	ev     float64
}

func addStat(m map[string]*assetStats, key string, t domain.TradeRecord) {
	s, ok := m[key]
	if !ok {
		s = &assetStats{}
		m[key] = s
	}
	s.trades++
	s.volume += t.Amount
	s.ev += t.EV
}

func printStatsTable(label string, stats map[string]*assetStats) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(label, "Trades", "Volume", "Avg EV")
	for key, s := range stats {
		table.Append(
			key,
			strconv.Itoa(s.trades),
			fmt.Sprintf("$%.2f", s.volume),
			fmt.Sprintf("%+.4f", s.ev/float64(s.trades)),
		)
	}
	table.Render()
}

func printTradeTable(trades []domain.TradeRecord) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Time", "Asset", "Market", "Outcome", "Amount", "EV", "Tx")
	for _, t := range trades {
		table.Append(
			t.Timestamp.Format("01-02 15:04"),
			t.Asset,
			domain.TruncateQuestion(t.Question, t.MarketID, 40),
			t.Outcome,
			fmt.Sprintf("$%.2f", t.Amount),
			fmt.Sprintf("%+.4f", t.EV),
			t.TxID,
		)
	}
	table.Render()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
