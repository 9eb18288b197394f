package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alejandrodnm/fastloop/internal/ports"
)

// Status es la respuesta de GET /health.
type Status struct {
	Status      string   `json:"status"`
	LastRun     string   `json:"last_run,omitempty"`
	StartedAt   string   `json:"started_at,omitempty"`
	TotalSpent  float64  `json:"total_spent"`
	MaxSpend    float64  `json:"max_spend"`
	TradesCount int      `json:"trades_count"`
	Assets      []string `json:"assets"`
	Timestamp   string   `json:"timestamp"`
}

// Server expone el liveness endpoint y /metrics. Solo lee los outputs
// persistidos del core; no participa en el ciclo de decisión.
type Server struct {
	ledger   ports.BudgetLedger
	state    ports.StateStore
	maxSpend float64
	assets   []string
}

// NewServer crea el server de health con las fuentes de estado dadas.
func NewServer(ledger ports.BudgetLedger, state ports.StateStore, maxSpend float64, assets []string) *Server {
	return &Server{ledger: ledger, state: state, maxSpend: maxSpend, assets: assets}
}

// Check construye el snapshot de salud actual.
func (s *Server) Check(ctx context.Context) Status {
	spent, err := s.ledger.Spent(ctx)
	if err != nil {
		slog.Warn("health: failed to read ledger", "err", err)
	}

	state, err := s.state.LoadState(ctx)
	if err != nil {
		slog.Warn("health: failed to read run state", "err", err)
		state.Status = "unknown"
	}

	return Status{
		Status:      state.Status,
		LastRun:     state.LastRun,
		StartedAt:   state.StartedAt,
		TotalSpent:  spent,
		MaxSpend:    s.maxSpend,
		TradesCount: len(state.Trades),
		Assets:      s.assets,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Handler devuelve el mux con /health y /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// handleHealth responde 200 solo con status "running"; cualquier otro
// estado es unhealthy (503).
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := s.Check(r.Context())

	code := http.StatusOK
	if status.Status != "running" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		slog.Warn("health: encode response", "err", err)
	}
}

// ListenAndServe arranca el server HTTP y lo apaga cuando el contexto
// se cancela.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("health server listening", "port", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("health.ListenAndServe: %w", err)
	}
	return nil
}
