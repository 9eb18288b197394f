package domain

import (
	"fmt"
	"math"
)

// NeutralPrice es el precio por defecto cuando el CLOB no devuelve precio:
// máxima incertidumbre, nunca null propagado a la aritmética.
const NeutralPrice = 0.50

// maxPlayablePrice: por encima no queda margen, da igual la probabilidad.
const maxPlayablePrice = 0.95

// EVResult es el veredicto del modelo de expected value para un mercado.
type EVResult struct {
	EV          float64
	ProbSuccess float64
	Outcome     string // "YES" | "NO"
	Reason      string
}

// Tradable devuelve true solo con EV estrictamente positivo.
func (r EVResult) Tradable() bool {
	return r.EV > 0
}

// CalculateEV calcula el expected value neto de fees de comprar el lado
// que acompaña al momentum.
//
// El modelo estima la probabilidad de acierto como 0.50 más un boost
// proporcional al momentum absoluto (5 pp por cada 1%), con tope en
// 20 puntos porcentuales. Determinista y sin side effects.
func CalculateEV(yesPrice float64, direction Direction, momentumPct, feeRate float64) EVResult {
	extra := math.Min(math.Abs(momentumPct)*0.05, 0.20)
	probUp := 0.50 + extra

	var probSuccess, tokenPrice float64
	var outcome string
	if direction == DirectionUp {
		probSuccess = probUp
		tokenPrice = yesPrice
		outcome = "YES"
	} else {
		probSuccess = 1 - probUp
		tokenPrice = 1 - yesPrice
		outcome = "NO"
	}

	if tokenPrice >= maxPlayablePrice {
		return EVResult{
			EV:          -1,
			ProbSuccess: probSuccess,
			Outcome:     outcome,
			Reason:      fmt.Sprintf("precio demasiado alto (%.3f>=%.2f), sin valor", tokenPrice, maxPlayablePrice),
		}
	}

	netGain := (1 - tokenPrice) * (1 - feeRate)
	ev := probSuccess*netGain - (1-probSuccess)*tokenPrice
	breakeven := tokenPrice / (netGain + tokenPrice)

	return EVResult{
		EV:          ev,
		ProbSuccess: probSuccess,
		Outcome:     outcome,
		Reason: fmt.Sprintf("EV=%+.4f | Prob=%.1f%% (BE=%.1f%%) | %s@%.3f | Fee=%.0f%%",
			ev, probSuccess*100, breakeven*100, outcome, tokenPrice, feeRate*100),
	}
}
