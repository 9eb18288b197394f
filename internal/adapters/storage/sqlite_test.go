package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fastloop/internal/adapters/storage"
	"github.com/alejandrodnm/fastloop/internal/domain"
)

func newTradeLog(t *testing.T) *storage.SQLiteTradeLog {
	t.Helper()
	log, err := storage.NewSQLiteTradeLog(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { log.Close() })
	return log
}

func makeTrade(id string, at time.Time) domain.TradeRecord {
	return domain.TradeRecord{
		ID:        id,
		Asset:     "BTC",
		MarketID:  "m-" + id,
		Question:  "BTC Up or Down - 3:00PM ET",
		Outcome:   "YES",
		Amount:    3.0,
		EV:        0.0414,
		TxID:      "0xabc",
		Timestamp: at,
	}
}

func TestSQLiteTradeLog_SaveAndQuery(t *testing.T) {
	log := newTradeLog(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	require.NoError(t, log.SaveTrade(ctx, makeTrade("t2", base.Add(time.Hour))))
	require.NoError(t, log.SaveTrade(ctx, makeTrade("t1", base)))

	trades, err := log.TradesSince(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, trades, 2)

	// Orden cronológico ascendente, no de inserción.
	assert.Equal(t, "t1", trades[0].ID)
	assert.Equal(t, "t2", trades[1].ID)
	assert.Equal(t, "BTC", trades[0].Asset)
	assert.Equal(t, 3.0, trades[0].Amount)
	assert.InDelta(t, 0.0414, trades[0].EV, 0.0001)
}

func TestSQLiteTradeLog_TradesSinceFilters(t *testing.T) {
	log := newTradeLog(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	require.NoError(t, log.SaveTrade(ctx, makeTrade("old", base.AddDate(0, 0, -10))))
	require.NoError(t, log.SaveTrade(ctx, makeTrade("recent", base)))

	trades, err := log.TradesSince(ctx, base.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, "recent", trades[0].ID)
}

func TestSQLiteTradeLog_DuplicateIDRejected(t *testing.T) {
	log := newTradeLog(t)
	ctx := context.Background()
	at := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	require.NoError(t, log.SaveTrade(ctx, makeTrade("t1", at)))
	err := log.SaveTrade(ctx, makeTrade("t1", at))
	require.Error(t, err)
}

func TestSQLiteTradeLog_EmptyHistory(t *testing.T) {
	log := newTradeLog(t)

	trades, err := log.TradesSince(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, trades)
}
