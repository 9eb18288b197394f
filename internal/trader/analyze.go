package trader

import (
	"context"
	"log/slog"
	"math"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// analyzeMarket evalúa un mercado candidato contra la señal del asset.
// Devuelve nil si no hay oportunidad operable.
func (t *Trader) analyzeMarket(ctx context.Context, market domain.Market, signal domain.MomentumSignal) *domain.Opportunity {
	momPct := math.Abs(signal.MomentumPct)

	// Gates previos al pricing: señal débil o sin confirmación de volumen.
	if t.cfg.VolumeConfidence && signal.VolumeRatio < t.cfg.MinVolumeRatio {
		slog.Debug("skipping market: low volume confirmation",
			"market_id", market.ID, "volume_ratio", signal.VolumeRatio)
		return nil
	}
	if momPct < t.cfg.MinMomentumPct {
		slog.Debug("skipping market: momentum below threshold",
			"market_id", market.ID, "momentum_pct", momPct)
		return nil
	}

	yesPrice := t.fetchYesPrice(ctx, market)

	res := domain.CalculateEV(yesPrice, signal.Direction, momPct, t.cfg.FeeRate)
	if !res.Tradable() {
		slog.Debug("no positive EV", "market_id", market.ID, "reason", res.Reason)
		return nil
	}

	return &domain.Opportunity{
		Market:   market,
		Outcome:  res.Outcome,
		EV:       res.EV,
		Prob:     res.ProbSuccess,
		YesPrice: yesPrice,
		Reason:   res.Reason,
		Signal:   signal,
	}
}

// fetchYesPrice obtiene el precio del token YES. Precio no disponible
// degrada al neutral 0.50: incertidumbre máxima, nunca null propagado.
func (t *Trader) fetchYesPrice(ctx context.Context, market domain.Market) float64 {
	token, ok := market.YesToken()
	if !ok {
		return domain.NeutralPrice
	}

	price, err := t.deps.Prices.TokenPrice(ctx, token.TokenID, "BUY")
	if err != nil || price <= 0 {
		slog.Debug("token price unavailable, using neutral default",
			"token_id", token.TokenID, "err", err)
		return domain.NeutralPrice
	}
	return price
}
