package polymarket

import (
	"time"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// mapGammaMarket convierte un gammaMarket DTO a domain.Market, calculando
// el tiempo restante respecto a now.
func mapGammaMarket(gm gammaMarket, now time.Time) domain.Market {
	m := domain.Market{
		ID:       gm.ID,
		Question: gm.Question,
		Slug:     gm.Slug,
		Window:   domain.ClassifyWindow(gm.Question),
	}

	if v, err := gm.Volume.Float64(); err == nil {
		m.Volume = v
	}
	if v, err := gm.Liquidity.Float64(); err == nil {
		m.Liquidity = v
	}

	m.Tokens = make([]domain.Token, 0, len(gm.Tokens))
	for _, t := range gm.Tokens {
		m.Tokens = append(m.Tokens, domain.Token{
			TokenID: t.TokenID,
			Outcome: t.Outcome,
		})
	}

	if end, ok := parseEndDate(gm.EndDateISO); ok {
		m.HasEndTime = true
		m.TimeRemaining = end.Sub(now)
	}
	return m
}

// parseEndDate intenta los formatos de fecha que usa Polymarket.
func parseEndDate(iso string) (time.Time, bool) {
	if iso == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02T15:04:05Z",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// mapBook convierte la respuesta de /book a domain.OrderBook.
func mapBook(raw bookResponse) domain.OrderBook {
	ob := domain.OrderBook{
		TokenID: raw.AssetID,
		Bids:    make([]domain.BookEntry, 0, len(raw.Bids)),
		Asks:    make([]domain.BookEntry, 0, len(raw.Asks)),
	}
	for _, b := range raw.Bids {
		ob.Bids = append(ob.Bids, domain.BookEntry{
			Price: domain.ParsePrice(b.Price),
			Size:  domain.ParsePrice(b.Size),
		})
	}
	for _, a := range raw.Asks {
		ob.Asks = append(ob.Asks, domain.BookEntry{
			Price: domain.ParsePrice(a.Price),
			Size:  domain.ParsePrice(a.Size),
		})
	}
	return ob
}
