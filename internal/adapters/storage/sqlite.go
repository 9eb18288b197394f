package storage

// sqlite.go — histórico append-only de trades ejecutados.
//
// El ledger y el run state viven en JSON (los lee el health endpoint);
// esta tabla es la fuente de los reportes y del export CSV. Una fila por
// trade, sin updates: los TradeRecord son inmutables una vez escritos.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/fastloop/internal/domain"
	_ "modernc.org/sqlite"
)

const tradeSchema = `
CREATE TABLE IF NOT EXISTS trades (
    id         TEXT PRIMARY KEY,
    asset      TEXT NOT NULL,
    market_id  TEXT NOT NULL,
    question   TEXT,
    outcome    TEXT NOT NULL,
    amount     REAL NOT NULL,
    ev         REAL NOT NULL,
    tx_id      TEXT,
    executed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_at    ON trades(executed_at DESC);
CREATE INDEX IF NOT EXISTS idx_trades_asset ON trades(asset);
`

// SQLiteTradeLog implementa ports.TradeLog usando SQLite (pure Go, sin CGo).
type SQLiteTradeLog struct {
	db *sql.DB
}

// NewSQLiteTradeLog abre (o crea) la base de datos en la ruta dada y
// aplica el schema.
func NewSQLiteTradeLog(path string) (*SQLiteTradeLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteTradeLog: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(tradeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteTradeLog: apply schema: %w", err)
	}
	return &SQLiteTradeLog{db: db}, nil
}

// SaveTrade añade un trade al histórico.
func (s *SQLiteTradeLog) SaveTrade(ctx context.Context, t domain.TradeRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO trades (id, asset, market_id, question, outcome, amount, ev, tx_id, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Asset, t.MarketID, t.Question, t.Outcome, t.Amount, t.EV, t.TxID, t.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.SaveTrade: %w", err)
	}
	return nil
}

// TradesSince devuelve los trades registrados desde el instante dado,
// en orden cronológico.
func (s *SQLiteTradeLog) TradesSince(ctx context.Context, since time.Time) ([]domain.TradeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, asset, market_id, question, outcome, amount, ev, tx_id, executed_at
		 FROM trades WHERE executed_at >= ? ORDER BY executed_at ASC`,
		since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage.TradesSince: %w", err)
	}
	defer rows.Close()

	var trades []domain.TradeRecord
	for rows.Next() {
		var t domain.TradeRecord
		if err := rows.Scan(&t.ID, &t.Asset, &t.MarketID, &t.Question, &t.Outcome, &t.Amount, &t.EV, &t.TxID, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("storage.TradesSince: scan: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// Close cierra la conexión a la base de datos limpiamente.
func (s *SQLiteTradeLog) Close() error {
	return s.db.Close()
}
