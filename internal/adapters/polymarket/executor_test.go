package polymarket_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fastloop/internal/adapters/polymarket"
	"github.com/alejandrodnm/fastloop/internal/domain"
)

const executorTestKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func upDownMarket() domain.Market {
	return domain.Market{
		ID:       "m1",
		Question: "BTC Up or Down - 3:00PM ET",
		Tokens: []domain.Token{
			{TokenID: "tok-yes", Outcome: "Yes"},
			{TokenID: "tok-no", Outcome: "No"},
		},
	}
}

// clobStub simula el flujo completo de una orden: derivación de
// credenciales, precio, neg-risk y POST /order.
func clobStub(t *testing.T, orderResponse string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/derive-api-key":
			assert.NotEmpty(t, r.Header.Get("POLY_ADDRESS"))
			assert.NotEmpty(t, r.Header.Get("POLY_SIGNATURE"))
			json.NewEncoder(w).Encode(map[string]string{
				"apiKey":     "key-1",
				"secret":     base64.URLEncoding.EncodeToString([]byte("hmac-secret")),
				"passphrase": "pass-1",
			})
		case "/price":
			w.Write([]byte(`{"price": "0.50"}`))
		case "/neg-risk":
			w.Write([]byte(`{"neg_risk": false}`))
		case "/order":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "key-1", r.Header.Get("POLY_API_KEY"))
			assert.NotEmpty(t, r.Header.Get("POLY_SIGNATURE"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "FOK", body["orderType"])
			assert.Equal(t, "key-1", body["owner"])

			w.Write([]byte(orderResponse))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func TestNewLiveExecutor_RequiresKey(t *testing.T) {
	_, err := polymarket.NewLiveExecutor(polymarket.NewClient("", ""), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POLYMARKET_PRIVATE_KEY")
}

func TestLiveExecutor_Execute(t *testing.T) {
	server := httptest.NewServer(clobStub(t,
		`{"success": true, "orderID": "ord-1", "transaction_hash": "0xdeadbeef", "status": "matched"}`))
	defer server.Close()

	client := polymarket.NewClient(server.URL, server.URL)
	exec, err := polymarket.NewLiveExecutor(client, executorTestKey)
	require.NoError(t, err)

	txID, err := exec.Execute(context.Background(), upDownMarket(), "YES", 3.0)
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", txID)
}

func TestLiveExecutor_FallsBackToOrderID(t *testing.T) {
	server := httptest.NewServer(clobStub(t,
		`{"success": true, "orderID": "ord-1", "status": "live"}`))
	defer server.Close()

	client := polymarket.NewClient(server.URL, server.URL)
	exec, err := polymarket.NewLiveExecutor(client, executorTestKey)
	require.NoError(t, err)

	txID, err := exec.Execute(context.Background(), upDownMarket(), "NO", 3.0)
	require.NoError(t, err)
	assert.Equal(t, "ord-1", txID)
}

func TestLiveExecutor_CLOBRejection(t *testing.T) {
	server := httptest.NewServer(clobStub(t,
		`{"success": false, "errorMsg": "not enough balance / allowance"}`))
	defer server.Close()

	client := polymarket.NewClient(server.URL, server.URL)
	exec, err := polymarket.NewLiveExecutor(client, executorTestKey)
	require.NoError(t, err)

	_, err = exec.Execute(context.Background(), upDownMarket(), "YES", 3.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough balance")
}

func TestLiveExecutor_UnknownOutcome(t *testing.T) {
	client := polymarket.NewClient("", "")
	exec, err := polymarket.NewLiveExecutor(client, executorTestKey)
	require.NoError(t, err)

	_, err = exec.Execute(context.Background(), upDownMarket(), "MAYBE", 3.0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
