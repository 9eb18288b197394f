package binance

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

const klinesPath = "/api/v3/klines"

// rawKline es una vela de /api/v3/klines: array posicional donde el
// índice 4 es el close y el 5 el volumen (ambos strings).
type rawKline []any

const (
	idxClose  = 4
	idxVolume = 5
)

// Momentum implementa ports.SignalProvider sobre velas de un minuto.
// Con menos de 2 velas devuelve (nil, nil): insuficiente, no error.
func (c *Client) Momentum(ctx context.Context, symbol string, lookbackMinutes int) (*domain.MomentumSignal, error) {
	candles, err := c.fetchKlines(ctx, symbol, "1m", lookbackMinutes+1)
	if err != nil {
		return nil, fmt.Errorf("binance.Momentum: %s: %w", symbol, err)
	}

	signal := domain.NewMomentumSignal(symbol, candles)
	if signal == nil {
		slog.Warn("insufficient candle data", "symbol", symbol, "candles", len(candles))
		return nil, nil
	}
	return signal, nil
}

// fetchKlines obtiene las últimas limit velas del intervalo dado.
func (c *Client) fetchKlines(ctx context.Context, symbol, interval string, limit int) ([]domain.Candle, error) {
	url := fmt.Sprintf("%s%s?symbol=%s&interval=%s&limit=%d", c.base, klinesPath, symbol, interval, limit)

	var raw []rawKline
	if err := c.get(ctx, url, &raw); err != nil {
		return nil, err
	}
	return mapKlines(raw)
}

// mapKlines convierte los arrays posicionales de la API a domain.Candle.
func mapKlines(raw []rawKline) ([]domain.Candle, error) {
	candles := make([]domain.Candle, 0, len(raw))
	for i, k := range raw {
		if len(k) <= idxVolume {
			return nil, fmt.Errorf("kline %d: unexpected shape (%d fields)", i, len(k))
		}
		closePrice, err := klineField(k, idxClose)
		if err != nil {
			return nil, fmt.Errorf("kline %d: close: %w", i, err)
		}
		volume, err := klineField(k, idxVolume)
		if err != nil {
			return nil, fmt.Errorf("kline %d: volume: %w", i, err)
		}
		candles = append(candles, domain.Candle{Close: closePrice, Volume: volume})
	}
	return candles, nil
}

// klineField extrae un campo numérico de la vela. La API devuelve los
// precios como strings y los timestamps como números.
func klineField(k rawKline, idx int) (float64, error) {
	switch v := k[idx].(type) {
	case string:
		return strconv.ParseFloat(v, 64)
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
