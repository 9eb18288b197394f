package domain

import "time"

// Opportunity es el resultado del análisis de un mercado candidato.
// Solo existe durante un pase de evaluación, nunca se persiste.
type Opportunity struct {
	Market   Market
	Outcome  string
	EV       float64
	Prob     float64
	YesPrice float64 // precio al que se evaluó
	Reason   string
	Signal   MomentumSignal
}

// TradeRecord es un trade ejecutado. Append-only, inmutable una vez escrito.
type TradeRecord struct {
	ID        string    `json:"id"`
	Asset     string    `json:"asset"`
	MarketID  string    `json:"market_id"`
	Question  string    `json:"question"`
	Outcome   string    `json:"outcome"`
	Amount    float64   `json:"amount"`
	EV        float64   `json:"ev"`
	TxID      string    `json:"tx_hash"`
	Timestamp time.Time `json:"timestamp"`
}

// BudgetState es el contador persistido de gasto acumulado.
// total_spent nunca decrece salvo reset explícito a cero.
type BudgetState struct {
	TotalSpent float64   `json:"total_spent"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RunState es el estado de ejecución persistido entre ciclos.
type RunState struct {
	Trades    []TradeRecord `json:"trades"`
	LastRun   string        `json:"last_run"`
	Status    string        `json:"status"`
	StartedAt string        `json:"started_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty"`
}

// CycleResult es el resultado completo de un ciclo de decisión.
// El orquestador siempre devuelve uno, incluso bajo fallo parcial.
type CycleResult struct {
	Timestamp time.Time
	Live      bool
	Trades    []TradeRecord // 0 o 1 entradas por invariante
	Signals   map[string]MomentumSignal
	Errors    []string
	Stopped   bool
}
