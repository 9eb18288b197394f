package polymarket

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known test private key (hardhat account #0). Never funded on mainnet.
const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func newTestAuthClient(t *testing.T) *AuthClient {
	t.Helper()
	ac, err := NewAuthClient(NewClient("", ""), testPrivateKey)
	require.NoError(t, err)
	return ac
}

func TestNewAuthClient_DerivesAddress(t *testing.T) {
	ac := newTestAuthClient(t)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", ac.Address())
}

func TestNewAuthClient_AcceptsHexPrefix(t *testing.T) {
	ac, err := NewAuthClient(NewClient("", ""), "0x"+testPrivateKey)
	require.NoError(t, err)
	assert.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", ac.Address())
}

func TestNewAuthClient_InvalidKey(t *testing.T) {
	_, err := NewAuthClient(NewClient("", ""), "not-a-key")
	require.Error(t, err)
}

func TestSignClobAuth(t *testing.T) {
	ac := newTestAuthClient(t)

	sig, err := ac.signClobAuth("1700000000", "0")
	require.NoError(t, err)

	// 65-byte signature, hex encoded with 0x prefix.
	assert.True(t, strings.HasPrefix(sig, "0x"))
	assert.Len(t, sig, 2+65*2)

	// Determinista para el mismo timestamp y nonce.
	again, err := ac.signClobAuth("1700000000", "0")
	require.NoError(t, err)
	assert.Equal(t, sig, again)

	other, err := ac.signClobAuth("1700000001", "0")
	require.NoError(t, err)
	assert.NotEqual(t, sig, other)
}

func TestL2Headers_RequiresCreds(t *testing.T) {
	ac := newTestAuthClient(t)

	_, err := ac.l2Headers("GET", "/orders", "")
	require.Error(t, err)
}

func TestL2Headers(t *testing.T) {
	ac := newTestAuthClient(t)
	ac.creds = &apiCredentials{
		APIKey:     "key-1",
		Secret:     base64.URLEncoding.EncodeToString([]byte("super-secret-hmac-key")),
		Passphrase: "pass-1",
	}

	headers, err := ac.l2Headers("POST", "/order", `{"x":1}`)
	require.NoError(t, err)

	assert.Equal(t, ac.Address(), headers["POLY_ADDRESS"])
	assert.Equal(t, "key-1", headers["POLY_API_KEY"])
	assert.Equal(t, "pass-1", headers["POLY_PASSPHRASE"])
	assert.NotEmpty(t, headers["POLY_SIGNATURE"])
	assert.NotEmpty(t, headers["POLY_TIMESTAMP"])
}

func TestDetectPricePrecision(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{0.60, 100},
		{0.50, 100},
		{0.673, 1000},
		{0.4825, 10000},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, detectPricePrecision(tc.price), "price %v", tc.price)
	}
}

func TestBuildSignedOrder(t *testing.T) {
	ac := newTestAuthClient(t)

	signed, err := ac.buildSignedOrder("123456", 0.50, 3.0, false)
	require.NoError(t, err)

	// 3 USDC a 0.50 son 600 centésimas de share:
	// maker = 600×50×100 = 3_000_000 (3 USDC en 6 decimales)
	// taker = 600×10000  = 6_000_000 (6 shares)
	assert.Equal(t, "3000000", signed.Order.MakerAmount.String())
	assert.Equal(t, "6000000", signed.Order.TakerAmount.String())
	assert.NotEmpty(t, signed.Signature)

	// makerAmount == price × takerAmount, la igualdad exacta que exige el CLOB.
	assert.Equal(t, signed.Order.MakerAmount.Int64()*2, signed.Order.TakerAmount.Int64())
}

func TestBuildSignedOrder_RejectsDegenerateAmounts(t *testing.T) {
	ac := newTestAuthClient(t)

	_, err := ac.buildSignedOrder("123456", 0.50, 0.001, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amounts")
}
