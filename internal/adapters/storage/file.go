package storage

// file.go — ledger y run state en archivos JSON.
//
// Precondición documentada en ports: una sola instancia del proceso
// accede a estos archivos. Las escrituras son temp+rename para que un
// crash a mitad de write nunca deje un JSON truncado.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

const (
	spendFile = "total_spent.json"
	stateFile = "state.json"
)

// FileStore implementa ports.BudgetLedger y ports.StateStore sobre
// archivos JSON en dataDir.
type FileStore struct {
	dataDir string
	now     func() time.Time
}

// NewFileStore crea el store y asegura que dataDir existe.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage.NewFileStore: mkdir %q: %w", dataDir, err)
	}
	return &FileStore{dataDir: dataDir, now: time.Now}, nil
}

// Spent devuelve el total gastado acumulado. Sin archivo devuelve 0.
func (s *FileStore) Spent(_ context.Context) (float64, error) {
	var budget domain.BudgetState
	if err := s.readJSON(spendFile, &budget); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("storage.Spent: %w", err)
	}
	return budget.TotalSpent, nil
}

// AddSpend suma amount al total y persiste monto y timestamp atómicamente.
func (s *FileStore) AddSpend(ctx context.Context, amount float64) (float64, error) {
	current, err := s.Spent(ctx)
	if err != nil {
		return 0, err
	}

	budget := domain.BudgetState{
		TotalSpent: current + amount,
		UpdatedAt:  s.now().UTC(),
	}
	if err := s.writeJSON(spendFile, budget); err != nil {
		return 0, fmt.Errorf("storage.AddSpend: %w", err)
	}
	return budget.TotalSpent, nil
}

// Reset pone el total gastado a cero.
func (s *FileStore) Reset(_ context.Context) error {
	budget := domain.BudgetState{TotalSpent: 0, UpdatedAt: s.now().UTC()}
	if err := s.writeJSON(spendFile, budget); err != nil {
		return fmt.Errorf("storage.Reset: %w", err)
	}
	return nil
}

// LoadState carga el estado de ejecución. Sin archivo devuelve el estado
// inicial con status "stopped".
func (s *FileStore) LoadState(_ context.Context) (domain.RunState, error) {
	var state domain.RunState
	if err := s.readJSON(stateFile, &state); err != nil {
		if os.IsNotExist(err) {
			return domain.RunState{Status: "stopped"}, nil
		}
		return domain.RunState{}, fmt.Errorf("storage.LoadState: %w", err)
	}
	return state, nil
}

// SaveState persiste el estado de ejecución con el timestamp de update.
func (s *FileStore) SaveState(_ context.Context, state domain.RunState) error {
	state.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	if err := s.writeJSON(stateFile, state); err != nil {
		return fmt.Errorf("storage.SaveState: %w", err)
	}
	return nil
}

func (s *FileStore) readJSON(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// writeJSON escribe el JSON con indentado (los archivos se inspeccionan a
// mano en producción) vía temp+rename.
func (s *FileStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	path := filepath.Join(s.dataDir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}
