package polymarket

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

const (
	gammaMarketsPath = "/markets"
	// El listing se capa a las 100 entradas más recientes.
	gammaListLimit = 100
)

// MarketCatalog implementa ports.MarketProvider sobre el listing de Gamma.
type MarketCatalog struct {
	client *Client

	// minTimeRemaining excluye mercados con tiempo restante conocido por
	// debajo del floor: sin tiempo para que la tesis se desarrolle.
	minTimeRemaining time.Duration

	now func() time.Time
}

// NewMarketCatalog crea el catálogo de mercados rápidos.
func NewMarketCatalog(client *Client, minTimeRemaining time.Duration) *MarketCatalog {
	return &MarketCatalog{
		client:           client,
		minTimeRemaining: minTimeRemaining,
		now:              time.Now,
	}
}

// FastMarkets devuelve los mercados up/down activos del asset, ordenados
// por tiempo restante descendente. Los mercados sin end time parseable se
// conservan con tiempo restante desconocido (ordenan como cero).
func (mc *MarketCatalog) FastMarkets(ctx context.Context, asset string) ([]domain.Market, error) {
	url := fmt.Sprintf("%s%s?active=true&closed=false&limit=%d",
		mc.client.gammaBase, gammaMarketsPath, gammaListLimit)

	var resp gammaMarketsResponse
	if err := mc.client.get(ctx, mc.client.gammaLimiter, url, &resp); err != nil {
		return nil, fmt.Errorf("gamma.FastMarkets: %s: %w", asset, err)
	}

	now := mc.now().UTC()
	fast := make([]domain.Market, 0, len(resp))
	for _, gm := range resp {
		if !domain.IsFastMarket(gm.Question, asset) {
			continue
		}

		m := mapGammaMarket(gm, now)
		if m.HasEndTime && m.TimeRemaining < mc.minTimeRemaining {
			continue
		}
		fast = append(fast, m)
	}

	domain.SortByTimeRemaining(fast)

	slog.Debug("fast markets fetched",
		"asset", asset,
		"listed", len(resp),
		"fast", len(fast),
	)
	return fast, nil
}
