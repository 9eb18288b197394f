package sim_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fastloop/internal/adapters/sim"
	"github.com/alejandrodnm/fastloop/internal/domain"
)

func TestExecute(t *testing.T) {
	exec := sim.NewExecutor()

	market := domain.Market{
		ID:       "m1",
		Question: "BTC Up or Down - 3:00PM ET",
	}

	txID, err := exec.Execute(context.Background(), market, "YES", 3.0)
	require.NoError(t, err)
	assert.Equal(t, sim.TxID, txID)
}
