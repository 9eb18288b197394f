package polymarket

// executor.go — Real trade execution via Polymarket CLOB API.
//
// Implements ports.TradeExecutor with signed FOK market orders. All
// downstream failures come back as errors; nothing escapes the boundary.

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// clobOrderRequest is the JSON body sent to POST /order.
type clobOrderRequest struct {
	Order     clobOrderBody `json:"order"`
	Owner     string        `json:"owner"`
	OrderType string        `json:"orderType"`
}

type clobOrderBody struct {
	Salt          json.Number `json:"salt"`
	Maker         string      `json:"maker"`
	Signer        string      `json:"signer"`
	Taker         string      `json:"taker"`
	TokenID       string      `json:"tokenId"`
	MakerAmount   string      `json:"makerAmount"`
	TakerAmount   string      `json:"takerAmount"`
	Expiration    string      `json:"expiration"`
	Nonce         string      `json:"nonce"`
	FeeRateBps    string      `json:"feeRateBps"`
	Side          string      `json:"side"`
	SignatureType int         `json:"signatureType"`
	Signature     string      `json:"signature"`
}

// LiveExecutor submits real market orders through an AuthClient.
type LiveExecutor struct {
	auth *AuthClient
}

// NewLiveExecutor creates the live executor. privateKeyHex must be the
// signing key; an empty key is a configuration error reported here, once,
// instead of on every trade attempt.
func NewLiveExecutor(client *Client, privateKeyHex string) (*LiveExecutor, error) {
	if privateKeyHex == "" {
		return nil, fmt.Errorf("polymarket.NewLiveExecutor: missing POLYMARKET_PRIVATE_KEY")
	}
	auth, err := NewAuthClient(client, privateKeyHex)
	if err != nil {
		return nil, fmt.Errorf("polymarket.NewLiveExecutor: %w", err)
	}
	return &LiveExecutor{auth: auth}, nil
}

// Execute buys amount USDC of the given outcome with a FOK market order.
// Returns the broker-assigned transaction hash or order ID.
func (e *LiveExecutor) Execute(ctx context.Context, market domain.Market, outcome string, amount float64) (string, error) {
	token, ok := market.TokenFor(outcome)
	if !ok {
		return "", fmt.Errorf("executor.Execute: token %s not found in market %s", outcome, market.ID)
	}

	if err := e.auth.EnsureCreds(ctx); err != nil {
		return "", fmt.Errorf("executor.Execute: creds: %w", err)
	}

	// Marketable price: best ask for an immediate BUY. The neutral default
	// keeps the order buildable when the price endpoint is down.
	price, err := e.auth.TokenPrice(ctx, token.TokenID, "BUY")
	if err != nil || price <= 0 || price >= 1 {
		slog.Debug("token price unavailable, using neutral default", "token_id", token.TokenID, "err", err)
		price = domain.NeutralPrice
	}

	negRisk, err := e.isNegRisk(ctx, token.TokenID)
	if err != nil {
		slog.Debug("neg-risk check failed, assuming standard exchange", "err", err)
		negRisk = false
	}

	signed, err := e.auth.buildSignedOrder(token.TokenID, price, amount, negRisk)
	if err != nil {
		return "", fmt.Errorf("executor.Execute: sign: %w", err)
	}

	body := clobOrderRequest{
		Order: clobOrderBody{
			Salt:          json.Number(signed.Order.Salt.String()),
			Maker:         signed.Order.Maker.Hex(),
			Signer:        signed.Order.Signer.Hex(),
			Taker:         signed.Order.Taker.Hex(),
			TokenID:       token.TokenID,
			MakerAmount:   signed.Order.MakerAmount.String(),
			TakerAmount:   signed.Order.TakerAmount.String(),
			Expiration:    signed.Order.Expiration.String(),
			Nonce:         signed.Order.Nonce.String(),
			FeeRateBps:    signed.Order.FeeRateBps.String(),
			Side:          "BUY",
			SignatureType: int(signed.Order.SignatureType.Int64()),
			Signature:     "0x" + hex.EncodeToString(signed.Signature),
		},
		Owner:     e.auth.creds.APIKey,
		OrderType: "FOK",
	}

	var resp clobOrderResponse
	if err := e.auth.doL2(ctx, http.MethodPost, "/order", body, &resp); err != nil {
		return "", fmt.Errorf("executor.Execute: post order: %w", err)
	}

	if !resp.Success || resp.ErrorMsg != "" {
		return "", fmt.Errorf("executor.Execute: clob error: %s", resp.ErrorMsg)
	}

	txID := resp.TransactionHash
	if txID == "" {
		txID = resp.OrderID
	}
	slog.Info("live order placed", "market_id", market.ID, "outcome", outcome, "amount", amount, "tx", txID)
	return txID, nil
}

// isNegRisk queries the CLOB to determine if a token uses the NegRisk adapter.
func (e *LiveExecutor) isNegRisk(ctx context.Context, tokenID string) (bool, error) {
	url := fmt.Sprintf("%s/neg-risk?token_id=%s", e.auth.clobBase, tokenID)

	var resp clobNegRiskResponse
	if err := e.auth.get(ctx, e.auth.clobLimiter, url, &resp); err != nil {
		return false, fmt.Errorf("neg-risk check: %w", err)
	}
	return resp.NegRisk, nil
}
