package sim

import (
	"context"
	"log/slog"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// TxID es el identificador sentinel de las órdenes simuladas.
const TxID = "dry_run"

// Executor implementa ports.TradeExecutor en modo simulación: siempre
// tiene éxito, sin acceso a red ni credenciales. Es el modo por defecto.
type Executor struct{}

// NewExecutor crea el ejecutor simulado.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute registra el trade simulado y devuelve el sentinel fijo.
func (e *Executor) Execute(_ context.Context, market domain.Market, outcome string, amount float64) (string, error) {
	slog.Info("[DRY RUN] simulated order",
		"market", domain.TruncateQuestion(market.Question, market.ID, 60),
		"outcome", outcome,
		"amount", amount,
	)
	return TxID, nil
}
