package binance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fastloop/internal/adapters/binance"
	"github.com/alejandrodnm/fastloop/internal/domain"
)

// Respuesta real de /api/v3/klines: arrays posicionales con timestamps
// numéricos y precios como strings.
const klinesFixture = `[
  [1700000000000, "50000.00", "50050.00", "49950.00", "50000.00", "10.5", 1700000059999, "525000.0", 120, "5.2", "260000.0", "0"],
  [1700000060000, "50000.00", "50150.00", "50000.00", "50100.00", "12.0", 1700000119999, "601200.0", 130, "6.0", "300600.0", "0"],
  [1700000120000, "50100.00", "50250.00", "50050.00", "50200.00", "11.0", 1700000179999, "552200.0", 110, "5.5", "276100.0", "0"],
  [1700000180000, "50200.00", "50350.00", "50150.00", "50300.00", "13.0", 1700000239999, "653900.0", 140, "6.5", "326950.0", "0"],
  [1700000240000, "50300.00", "50450.00", "50250.00", "50400.00", "15.0", 1700000299999, "756000.0", 150, "7.5", "378000.0", "0"],
  [1700000300000, "50400.00", "50550.00", "50350.00", "50500.00", "14.0", 1700000359999, "707000.0", 145, "7.0", "353500.0", "0"]
]`

func TestMomentum(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/klines", r.URL.Path)
		assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1m", r.URL.Query().Get("interval"))
		assert.Equal(t, "6", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(klinesFixture))
	}))
	defer server.Close()

	client := binance.NewClient(server.URL)
	signal, err := client.Momentum(context.Background(), "BTCUSDT", 5)
	require.NoError(t, err)
	require.NotNil(t, signal)

	assert.Equal(t, "BTCUSDT", signal.Symbol)
	assert.Equal(t, 50500.0, signal.PriceNow)
	assert.Equal(t, 50000.0, signal.PriceThen)
	assert.InDelta(t, 1.0, signal.MomentumPct, 0.0001)
	assert.Equal(t, domain.DirectionUp, signal.Direction)
	assert.InDelta(t, 14.0/12.2, signal.VolumeRatio, 0.001)
}

func TestMomentum_InsufficientCandles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[1700000000000, "50000.00", "50050.00", "49950.00", "50000.00", "10.5", 1700000059999, "0", 1, "0", "0", "0"]]`))
	}))
	defer server.Close()

	client := binance.NewClient(server.URL)
	signal, err := client.Momentum(context.Background(), "BTCUSDT", 5)

	// Datos insuficientes no es un error: (nil, nil).
	require.NoError(t, err)
	assert.Nil(t, signal)
}

func TestMomentum_BadSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":-1121,"msg":"Invalid symbol."}`))
	}))
	defer server.Close()

	client := binance.NewClient(server.URL)
	_, err := client.Momentum(context.Background(), "NOPEUSDT", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOPEUSDT")
}

func TestMomentum_MalformedKline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[1700000000000, "50000.00"]]`))
	}))
	defer server.Close()

	client := binance.NewClient(server.URL)
	_, err := client.Momentum(context.Background(), "BTCUSDT", 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected shape")
}
