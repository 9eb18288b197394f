package ports

import (
	"context"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// TradeExecutor coloca una orden de mercado por el outcome dado.
// La variante (simulada o real) se elige una sola vez al construir el
// trader, nunca por flag en el call site.
type TradeExecutor interface {
	// Execute envía una orden por amount USDC en el outcome del mercado.
	// Devuelve el identificador asignado por el broker. Todos los fallos
	// downstream se devuelven como error, nunca como panic.
	Execute(ctx context.Context, market domain.Market, outcome string, amount float64) (string, error)
}
