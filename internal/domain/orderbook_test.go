package domain_test

import (
	"testing"

	"github.com/alejandrodnm/fastloop/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderBook(t *testing.T) {
	ob := domain.OrderBook{
		TokenID: "tok-1",
		Bids:    []domain.BookEntry{{Price: 0.47, Size: 100}, {Price: 0.46, Size: 250}},
		Asks:    []domain.BookEntry{{Price: 0.49, Size: 80}},
	}

	assert.Equal(t, 0.47, ob.BestBid())
	assert.Equal(t, 0.49, ob.BestAsk())
	assert.InDelta(t, 0.48, ob.Midpoint(), 0.0001)
	assert.InDelta(t, 0.02, ob.Spread(), 0.0001)
}

func TestOrderBook_Empty(t *testing.T) {
	var ob domain.OrderBook

	assert.Equal(t, 0.0, ob.BestBid())
	assert.Equal(t, 0.0, ob.BestAsk())
	assert.Equal(t, 0.0, ob.Midpoint())
	assert.Equal(t, 0.0, ob.Spread())
}

func TestParsePrice(t *testing.T) {
	assert.Equal(t, 0.485, domain.ParsePrice("0.485"))
	assert.Equal(t, 0.0, domain.ParsePrice("garbage"))
}
