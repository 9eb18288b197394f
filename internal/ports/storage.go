package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// BudgetLedger es el contador persistido de gasto acumulado. El ledger
// nunca rechaza una escritura: el cap lo hace cumplir el orquestador
// antes de comprometer un trade.
//
// Precondición no forzada: una sola instancia del proceso accede a los
// archivos persistidos. Instancias concurrentes compartiendo estado no
// son un modo soportado.
type BudgetLedger interface {
	// Spent devuelve el total gastado acumulado.
	Spent(ctx context.Context) (float64, error)

	// AddSpend suma amount al total y persiste monto y timestamp
	// atómicamente. Devuelve el nuevo total.
	AddSpend(ctx context.Context, amount float64) (float64, error)

	// Reset pone el total gastado a cero.
	Reset(ctx context.Context) error
}

// StateStore persiste el estado de ejecución entre ciclos.
// Todas las escrituras pasan por el orquestador (single-writer).
type StateStore interface {
	LoadState(ctx context.Context) (domain.RunState, error)
	SaveState(ctx context.Context, state domain.RunState) error
}

// TradeLog es el histórico append-only de trades ejecutados, fuente de
// los reportes y del export CSV.
type TradeLog interface {
	// SaveTrade añade un trade al histórico.
	SaveTrade(ctx context.Context, trade domain.TradeRecord) error

	// TradesSince devuelve los trades registrados desde el instante dado.
	TradesSince(ctx context.Context, since time.Time) ([]domain.TradeRecord, error)

	// Close cierra la conexión limpiamente.
	Close() error
}
