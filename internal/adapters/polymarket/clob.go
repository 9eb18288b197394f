package polymarket

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

const (
	pricePath = "/price"
	bookPath  = "/book"
)

// TokenPrice devuelve el precio actual del token para el side dado.
// Implementa ports.PriceProvider; el caller sustituye 0.50 ante error.
func (c *Client) TokenPrice(ctx context.Context, tokenID, side string) (float64, error) {
	url := fmt.Sprintf("%s%s?token_id=%s&side=%s", c.clobBase, pricePath, tokenID, side)

	var resp priceResponse
	if err := c.get(ctx, c.clobLimiter, url, &resp); err != nil {
		return 0, fmt.Errorf("clob.TokenPrice: %w", err)
	}

	price, err := resp.Price.Float64()
	if err != nil {
		return 0, fmt.Errorf("clob.TokenPrice: parse %q: %w", resp.Price, err)
	}
	return price, nil
}

// Book devuelve el orderbook del token.
func (c *Client) Book(ctx context.Context, tokenID string) (domain.OrderBook, error) {
	url := fmt.Sprintf("%s%s?token_id=%s", c.clobBase, bookPath, tokenID)

	var resp bookResponse
	if err := c.get(ctx, c.clobLimiter, url, &resp); err != nil {
		return domain.OrderBook{}, fmt.Errorf("clob.Book: %w", err)
	}
	return mapBook(resp), nil
}
