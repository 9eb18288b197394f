package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fastloop/internal/adapters/storage"
	"github.com/alejandrodnm/fastloop/internal/domain"
)

func newFileStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStore_SpentStartsAtZero(t *testing.T) {
	store := newFileStore(t)

	spent, err := store.Spent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, spent)
}

func TestFileStore_AddSpendAccumulates(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	total, err := store.AddSpend(ctx, 5.0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, total)

	total, err = store.AddSpend(ctx, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 8.0, total)

	spent, err := store.Spent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8.0, spent)
}

func TestFileStore_Reset(t *testing.T) {
	store := newFileStore(t)
	ctx := context.Background()

	_, err := store.AddSpend(ctx, 12.5)
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx))

	spent, err := store.Spent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, spent)
}

func TestFileStore_LoadStateDefault(t *testing.T) {
	store := newFileStore(t)

	state, err := store.LoadState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stopped", state.Status)
	assert.Empty(t, state.Trades)
}

func TestFileStore_StateRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	ctx := context.Background()

	in := domain.RunState{
		Trades:  []domain.TradeRecord{{ID: "t1", Asset: "BTC", Outcome: "YES", Amount: 3.0}},
		LastRun: "2026-08-25T12:00:00Z",
		Status:  "running",
	}
	require.NoError(t, store.SaveState(ctx, in))

	out, err := store.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "running", out.Status)
	assert.Equal(t, in.LastRun, out.LastRun)
	require.Len(t, out.Trades, 1)
	assert.Equal(t, "t1", out.Trades[0].ID)
	assert.NotEmpty(t, out.UpdatedAt)

	// La escritura es temp+rename: nunca queda un .tmp residual.
	_, err = os.Stat(filepath.Join(dir, "state.json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	_, err = store.AddSpend(ctx, 7.0)
	require.NoError(t, err)

	reopened, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	spent, err := reopened.Spent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, spent)
}
