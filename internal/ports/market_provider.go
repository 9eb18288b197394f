package ports

import (
	"context"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// MarketProvider descubre los mercados rápidos operables de un asset.
type MarketProvider interface {
	// FastMarkets devuelve los mercados up/down activos del asset,
	// ordenados por tiempo restante descendente (desconocido ordena
	// como cero). Los mercados con tiempo restante conocido por debajo
	// del floor configurado quedan excluidos.
	FastMarkets(ctx context.Context, asset string) ([]domain.Market, error)
}
