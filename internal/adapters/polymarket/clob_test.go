package polymarket_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fastloop/internal/adapters/polymarket"
)

func newTestClient(handler http.HandlerFunc) (*polymarket.Client, func()) {
	server := httptest.NewServer(handler)
	return polymarket.NewClient(server.URL, server.URL), server.Close
}

func TestTokenPrice(t *testing.T) {
	client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price", r.URL.Path)
		assert.Equal(t, "tok-123", r.URL.Query().Get("token_id"))
		assert.Equal(t, "BUY", r.URL.Query().Get("side"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": "0.485"}`))
	})
	defer teardown()

	price, err := client.TokenPrice(context.Background(), "tok-123", "BUY")
	require.NoError(t, err)
	assert.Equal(t, 0.485, price)
}

func TestTokenPrice_NotFound(t *testing.T) {
	client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no market found"}`))
	})
	defer teardown()

	_, err := client.TokenPrice(context.Background(), "tok-missing", "BUY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clob.TokenPrice")
}

func TestBook(t *testing.T) {
	client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/book", r.URL.Path)
		assert.Equal(t, "tok-123", r.URL.Query().Get("token_id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"asset_id": "tok-123",
			"bids": [{"price": "0.47", "size": "100"}, {"price": "0.46", "size": "250"}],
			"asks": [{"price": "0.49", "size": "80"}]
		}`))
	})
	defer teardown()

	book, err := client.Book(context.Background(), "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "tok-123", book.TokenID)
	require.Len(t, book.Bids, 2)
	require.Len(t, book.Asks, 1)
	assert.Equal(t, 0.47, book.Bids[0].Price)
	assert.Equal(t, 100.0, book.Bids[0].Size)
	assert.Equal(t, 0.49, book.Asks[0].Price)
}

func TestTokenPrice_RetriesServerError(t *testing.T) {
	attempts := 0
	client, teardown := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"price": "0.50"}`))
	})
	defer teardown()

	price, err := client.TokenPrice(context.Background(), "tok-123", "BUY")
	require.NoError(t, err)
	assert.Equal(t, 0.50, price)
	assert.Equal(t, 2, attempts)
}
