package trader

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/fastloop/internal/domain"
	"github.com/alejandrodnm/fastloop/internal/ports"
)

// Config contiene la configuración del ciclo de decisión.
type Config struct {
	Assets           []string
	LookbackMinutes  int
	MinMomentumPct   float64
	VolumeConfidence bool
	MinVolumeRatio   float64
	MaxPosition      float64
	MinPosition      float64
	MaxTotalSpend    float64
	FeeRate          float64
	TopMarkets       int
	Interval         time.Duration
	Live             bool
	StopFile         string
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		Assets:           []string{"BTC"},
		LookbackMinutes:  5,
		MinMomentumPct:   0.5,
		VolumeConfidence: true,
		MinVolumeRatio:   0.5,
		MaxPosition:      3.0,
		MinPosition:      1.0,
		MaxTotalSpend:    20.0,
		FeeRate:          0.10,
		TopMarkets:       3,
		Interval:         60 * time.Second,
		StopFile:         "STOP",
	}
}

// Deps son los puertos que el trader compone.
type Deps struct {
	Signals  ports.SignalProvider
	Markets  ports.MarketProvider
	Prices   ports.PriceProvider
	Executor ports.TradeExecutor
	Ledger   ports.BudgetLedger
	State    ports.StateStore
	TradeLog ports.TradeLog // opcional: histórico para reportes
}

// Trader es el orquestador del ciclo de decisión: presupuesto → señales →
// mercados → evaluación → ejecución → persistencia. Totalmente secuencial;
// un ciclo termina antes de que empiece el siguiente.
type Trader struct {
	cfg  Config
	deps Deps
	now  func() time.Time

	// OnCycle se invoca tras cada ciclo con el resultado completo.
	// Lo usa main para publicar métricas; puede ser nil.
	OnCycle func(domain.CycleResult)
}

// New crea un Trader con todas las dependencias inyectadas.
func New(cfg Config, deps Deps) *Trader {
	return &Trader{cfg: cfg, deps: deps, now: time.Now}
}

// Run ejecuta el loop de servidor hasta que el contexto se cancele o
// aparezca el STOP file: un ciclo por tick, sin solaparse jamás.
func (t *Trader) Run(ctx context.Context) error {
	slog.Info("trader starting",
		"interval", t.cfg.Interval,
		"assets", t.cfg.Assets,
		"live", t.cfg.Live,
	)

	if err := t.markStarted(ctx); err != nil {
		slog.Warn("failed to persist startup state", "err", err)
	}

	t.tick(ctx)

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.markStopped(context.WithoutCancel(ctx))
			slog.Info("trader stopped")
			return nil
		case <-ticker.C:
			if t.cfg.StopFile != "" {
				if _, err := os.Stat(t.cfg.StopFile); err == nil {
					os.Remove(t.cfg.StopFile)
					t.markStopped(ctx)
					slog.Info("stop file detected, shutting down")
					return nil
				}
			}
			t.tick(ctx)
		}
	}
}

// tick ejecuta un ciclo y publica el resultado.
func (t *Trader) tick(ctx context.Context) {
	start := t.now()
	result := t.RunCycle(ctx)

	slog.Info("cycle complete",
		"trades", len(result.Trades),
		"signals", len(result.Signals),
		"errors", len(result.Errors),
		"stopped", result.Stopped,
		"duration", time.Since(start).Round(time.Millisecond),
	)

	if t.OnCycle != nil {
		t.OnCycle(result)
	}
}

// RunCycle ejecuta exactamente un ciclo de decisión acotado y siempre
// devuelve un CycleResult completo: ningún fallo cruza esta frontera.
func (t *Trader) RunCycle(ctx context.Context) domain.CycleResult {
	result := domain.CycleResult{
		Timestamp: t.now().UTC(),
		Live:      t.cfg.Live,
		Signals:   make(map[string]domain.MomentumSignal),
	}

	// 1. Presupuesto: con el cap alcanzado no se toca ninguna API.
	spent, err := t.deps.Ledger.Spent(ctx)
	if err != nil {
		slog.Error("failed to load budget, assuming zero spent", "err", err)
	}

	available := t.cfg.MaxTotalSpend - spent
	slog.Info("budget",
		"spent", fmt.Sprintf("%.2f", spent),
		"cap", fmt.Sprintf("%.2f", t.cfg.MaxTotalSpend),
		"available", fmt.Sprintf("%.2f", available),
	)

	if spent >= t.cfg.MaxTotalSpend {
		slog.Warn("spend cap reached", "spent", spent, "cap", t.cfg.MaxTotalSpend)
		result.Stopped = true
		t.persistRunState(ctx, result, nil)
		return result
	}

	tradeAmount := min(t.cfg.MaxPosition, available)
	if tradeAmount < t.cfg.MinPosition {
		slog.Warn("remaining budget below minimum position", "available", available, "min", t.cfg.MinPosition)
		result.Stopped = true
		t.persistRunState(ctx, result, nil)
		return result
	}

	// 2-5. Señales, mercados y evaluación: primera oportunidad EV+ gana.
	executed := t.evaluateAndExecute(ctx, &result, tradeAmount)

	// 7. Persistir run state incondicionalmente, haya pasado lo que haya pasado.
	t.persistRunState(ctx, result, executed)
	return result
}

// evaluateAndExecute recorre assets y mercados candidatos, ejecuta como
// máximo un trade y devuelve el registro si hubo trade real que persistir.
func (t *Trader) evaluateAndExecute(ctx context.Context, result *domain.CycleResult, tradeAmount float64) *domain.TradeRecord {
	for _, asset := range t.cfg.Assets {
		signal := t.fetchSignal(ctx, asset)
		if signal == nil {
			continue
		}
		result.Signals[asset] = *signal

		slog.Info("signal",
			"asset", asset,
			"momentum_pct", fmt.Sprintf("%+.3f", signal.MomentumPct),
			"direction", signal.Direction,
			"volume_ratio", fmt.Sprintf("%.2f", signal.VolumeRatio),
		)

		markets, err := t.deps.Markets.FastMarkets(ctx, asset)
		if err != nil {
			slog.Error("market scan failed", "asset", asset, "err", err)
			continue
		}
		if len(markets) == 0 {
			slog.Info("no active fast markets", "asset", asset)
			continue
		}

		candidates := markets
		if len(candidates) > t.cfg.TopMarkets {
			candidates = candidates[:t.cfg.TopMarkets]
		}

		for _, market := range candidates {
			opp := t.analyzeMarket(ctx, market, *signal)
			if opp == nil {
				continue
			}

			// Primera oportunidad EV+ en todo el ciclo: se ejecuta y la
			// evaluación termina aquí, con o sin éxito. Un solo trade por
			// ciclo; el siguiente ciclo reintenta de forma natural.
			slog.Info("opportunity found",
				"asset", asset,
				"market", domain.TruncateQuestion(market.Question, market.ID, 60),
				"ev", fmt.Sprintf("%+.4f", opp.EV),
				"outcome", opp.Outcome,
				"amount", fmt.Sprintf("%.2f", tradeAmount),
			)

			txID, err := t.deps.Executor.Execute(ctx, market, opp.Outcome, tradeAmount)
			if err != nil {
				msg := fmt.Sprintf("trade failed: %v", err)
				slog.Error("trade execution failed", "err", err)
				result.Errors = append(result.Errors, msg)
				return nil
			}

			record := domain.TradeRecord{
				ID:        uuid.NewString(),
				Asset:     asset,
				MarketID:  market.ID,
				Question:  market.Question,
				Outcome:   opp.Outcome,
				Amount:    tradeAmount,
				EV:        opp.EV,
				TxID:      txID,
				Timestamp: t.now().UTC(),
			}
			result.Trades = append(result.Trades, record)

			if !t.cfg.Live {
				return nil
			}
			return t.commitTrade(ctx, result, record)
		}
	}
	return nil
}

// commitTrade actualiza el ledger y el histórico tras un trade real.
// Los fallos de persistencia se registran; el estado en memoria y el de
// disco pueden divergir hasta el siguiente write — riesgo aceptado.
func (t *Trader) commitTrade(ctx context.Context, result *domain.CycleResult, record domain.TradeRecord) *domain.TradeRecord {
	newTotal, err := t.deps.Ledger.AddSpend(ctx, record.Amount)
	if err != nil {
		slog.Error("failed to persist spend", "err", err)
		result.Errors = append(result.Errors, fmt.Sprintf("ledger write failed: %v", err))
	} else {
		slog.Info("budget updated",
			"total_spent", fmt.Sprintf("%.2f", newTotal),
			"cap", fmt.Sprintf("%.2f", t.cfg.MaxTotalSpend),
		)
	}

	if t.deps.TradeLog != nil {
		if err := t.deps.TradeLog.SaveTrade(ctx, record); err != nil {
			slog.Error("failed to record trade history", "err", err)
		}
	}
	return &record
}

// fetchSignal obtiene la señal de momentum de un asset. Cualquier fallo
// degrada a "sin señal": el fallo de un asset nunca bloquea a los demás.
func (t *Trader) fetchSignal(ctx context.Context, asset string) *domain.MomentumSignal {
	symbol := asset + "USDT"
	signal, err := t.deps.Signals.Momentum(ctx, symbol, t.cfg.LookbackMinutes)
	if err != nil {
		slog.Error("signal fetch failed", "asset", asset, "err", err)
		return nil
	}
	return signal
}

// persistRunState escribe last_run y status tras cada ciclo, también en
// los ciclos stopped o fallidos. Si hubo trade real lo añade al estado.
func (t *Trader) persistRunState(ctx context.Context, result domain.CycleResult, executed *domain.TradeRecord) {
	state, err := t.deps.State.LoadState(ctx)
	if err != nil {
		slog.Error("failed to load run state", "err", err)
		state = domain.RunState{}
	}

	if executed != nil {
		state.Trades = append(state.Trades, *executed)
	}
	state.LastRun = result.Timestamp.Format(time.RFC3339)
	state.Status = "running"

	if err := t.deps.State.SaveState(ctx, state); err != nil {
		slog.Error("failed to persist run state", "err", err)
	}
}

// markStarted estampa el arranque del modo servidor.
func (t *Trader) markStarted(ctx context.Context) error {
	state, err := t.deps.State.LoadState(ctx)
	if err != nil {
		state = domain.RunState{}
	}
	state.Status = "running"
	state.StartedAt = t.now().UTC().Format(time.RFC3339)
	return t.deps.State.SaveState(ctx, state)
}

// markStopped estampa el shutdown limpio.
func (t *Trader) markStopped(ctx context.Context) {
	state, err := t.deps.State.LoadState(ctx)
	if err != nil {
		state = domain.RunState{}
	}
	state.Status = "stopped"
	if err := t.deps.State.SaveState(ctx, state); err != nil {
		slog.Warn("failed to persist stopped state", "err", err)
	}
}
