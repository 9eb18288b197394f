package polymarket

import "encoding/json"

// DTOs raw de la API de Polymarket. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// --- Gamma API ---

// gammaMarketsResponse es la respuesta de GET /markets de Gamma.
type gammaMarketsResponse []gammaMarket

// gammaMarket es un mercado activo del listing de Gamma.
// Gamma devuelve algunos campos numéricos como strings JSON, usamos json.Number.
type gammaMarket struct {
	ID         string       `json:"id"`
	Question   string       `json:"question"`
	Slug       string       `json:"slug"`
	EndDateISO string       `json:"endDateIso"`
	Tokens     []gammaToken `json:"tokens"`
	Volume     json.Number  `json:"volume"`
	Liquidity  json.Number  `json:"liquidity"`
	Active     bool         `json:"active"`
	Closed     bool         `json:"closed"`
}

// gammaToken representa un token (YES/NO) en el listing de Gamma.
type gammaToken struct {
	TokenID string `json:"token_id"`
	Outcome string `json:"outcome"`
}

// --- CLOB API ---

// priceResponse es la respuesta de GET /price.
type priceResponse struct {
	Price json.Number `json:"price"`
}

// bookResponse es la respuesta de GET /book.
type bookResponse struct {
	AssetID string         `json:"asset_id"`
	Bids    []bookEntryRaw `json:"bids"`
	Asks    []bookEntryRaw `json:"asks"`
}

// bookEntryRaw es un nivel de precio raw de la API (strings para mayor precisión).
type bookEntryRaw struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// clobOrderResponse es la respuesta de POST /order.
type clobOrderResponse struct {
	ErrorMsg        string `json:"errorMsg"`
	OrderID         string `json:"orderID"`
	TransactionHash string `json:"transaction_hash"`
	Status          string `json:"status"`
	Success         bool   `json:"success"`
}

// clobNegRiskResponse es la respuesta de GET /neg-risk.
type clobNegRiskResponse struct {
	NegRisk bool `json:"neg_risk"`
}
