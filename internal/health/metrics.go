package health

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

var (
	mtxCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fastloop_cycles_total",
			Help: "Decision cycles run, split by outcome",
		},
		[]string{"outcome"}, // traded | idle | stopped
	)

	mtxTrades = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fastloop_trades_total",
			Help: "Trades executed, split by asset and outcome token",
		},
		[]string{"asset", "outcome"},
	)

	mtxCycleErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fastloop_cycle_errors_total",
			Help: "Errors recorded inside decision cycles",
		},
	)

	mtxTotalSpent = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fastloop_total_spent_usdc",
			Help: "Cumulative live spend in USDC",
		},
	)

	mtxLastEV = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fastloop_last_trade_ev",
			Help: "Expected value of the most recent trade",
		},
	)
)

func init() {
	prometheus.MustRegister(mtxCycles, mtxTrades, mtxCycleErrors, mtxTotalSpent, mtxLastEV)
}

// ObserveCycle publica las métricas de un ciclo terminado.
func ObserveCycle(result domain.CycleResult) {
	outcome := "idle"
	switch {
	case result.Stopped:
		outcome = "stopped"
	case len(result.Trades) > 0:
		outcome = "traded"
	}
	mtxCycles.WithLabelValues(outcome).Inc()

	for _, trade := range result.Trades {
		mtxTrades.WithLabelValues(trade.Asset, trade.Outcome).Inc()
		mtxLastEV.Set(trade.EV)
	}
	mtxCycleErrors.Add(float64(len(result.Errors)))
}

// SetTotalSpent actualiza el gauge de gasto acumulado.
func SetTotalSpent(total float64) {
	mtxTotalSpent.Set(total)
}
