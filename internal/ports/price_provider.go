package ports

import (
	"context"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// PriceProvider consulta precios y orderbooks de tokens en el CLOB.
type PriceProvider interface {
	// TokenPrice devuelve el precio actual del token para el side dado
	// ("BUY" | "SELL"). Cualquier fallo devuelve error y el caller
	// sustituye el precio neutral 0.50.
	TokenPrice(ctx context.Context, tokenID, side string) (float64, error)

	// Book devuelve el orderbook del token. Expuesto por extensibilidad;
	// el ciclo de decisión no lo consume.
	Book(ctx context.Context, tokenID string) (domain.OrderBook, error)
}
