package domain

import (
	"sort"
	"strings"
	"time"
)

// Window es la ventana temporal de un mercado rápido.
type Window string

const (
	Window5m  Window = "5m"
	Window15m Window = "15m"
)

// Market representa un mercado rápido binario (up/down) en Polymarket.
// Se obtiene fresco en cada ciclo; no se cachea entre ciclos.
type Market struct {
	ID       string
	Question string
	Slug     string
	Window   Window

	// TimeRemaining es el tiempo hasta la resolución. HasEndTime indica si
	// el end time era parseable; un mercado sin end time se conserva con
	// tiempo restante desconocido, no cero.
	TimeRemaining time.Duration
	HasEndTime    bool

	Tokens    []Token
	Volume    float64
	Liquidity float64
}

// Token es uno de los dos lados del mercado (YES/NO).
type Token struct {
	TokenID string
	Outcome string
}

// TokenFor devuelve el token cuyo outcome coincide (case-insensitive).
func (m Market) TokenFor(outcome string) (Token, bool) {
	for _, t := range m.Tokens {
		if strings.EqualFold(t.Outcome, outcome) {
			return t, true
		}
	}
	return Token{}, false
}

// YesToken devuelve el token YES del mercado.
func (m Market) YesToken() (Token, bool) {
	return m.TokenFor("YES")
}

// IsFastMarket devuelve true si la pregunta menciona el ticker del asset
// y está formulada como settlement binario up/down.
func IsFastMarket(question, asset string) bool {
	q := strings.ToUpper(question)
	return strings.Contains(q, strings.ToUpper(asset)) && strings.Contains(q, "UP OR DOWN")
}

// ClassifyWindow devuelve 15m si la pregunta lleva el calificador de 15
// minutos, 5m en caso contrario.
func ClassifyWindow(question string) Window {
	q := strings.ToUpper(question)
	if strings.Contains(q, "15 MINUTE") || strings.Contains(q, "15-MINUTE") {
		return Window15m
	}
	return Window5m
}

// SortByTimeRemaining ordena los mercados por tiempo restante descendente.
// Los mercados sin end time conocido ordenan como cero.
func SortByTimeRemaining(markets []Market) {
	sort.SliceStable(markets, func(i, j int) bool {
		return sortKey(markets[i]) > sortKey(markets[j])
	})
}

func sortKey(m Market) time.Duration {
	if !m.HasEndTime {
		return 0
	}
	return m.TimeRemaining
}

// TruncateQuestion devuelve la pregunta truncada a maxLen caracteres,
// con el ID como fallback si está vacía.
func TruncateQuestion(question, id string, maxLen int) string {
	q := question
	if q == "" {
		if len(id) > 20 {
			q = id[:20] + "..."
		} else {
			q = id
		}
	}
	if len(q) > maxLen {
		q = q[:maxLen-3] + "..."
	}
	return q
}
