package domain

// Direction es la dirección del momentum de un asset.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Candle es una vela OHLCV de un minuto del feed de precios.
// Solo usamos close y volume; el resto se descarta en el mapping.
type Candle struct {
	Close  float64
	Volume float64
}

// MomentumSignal es la señal derivada de las velas recientes de un asset.
// Se recalcula en cada ciclo y nunca se persiste.
type MomentumSignal struct {
	Symbol      string
	PriceNow    float64
	PriceThen   float64
	MomentumPct float64 // porcentaje con signo
	Direction   Direction
	VolumeRatio float64 // volumen último / media de los anteriores
}

// NewMomentumSignal deriva la señal a partir de las velas dadas (orden
// cronológico, la última es la actual). Devuelve nil con menos de 2 velas:
// datos insuficientes no es un error.
//
// Momentum exactamente cero clasifica como "down". Es comportamiento
// observado del modelo original y se preserva tal cual.
func NewMomentumSignal(symbol string, candles []Candle) *MomentumSignal {
	if len(candles) < 2 {
		return nil
	}

	priceNow := candles[len(candles)-1].Close
	priceThen := candles[0].Close
	momentumPct := (priceNow - priceThen) / priceThen * 100

	direction := DirectionDown
	if momentumPct > 0 {
		direction = DirectionUp
	}

	// Media de los volúmenes anteriores; 1 si no hay (evita división por cero).
	avgVolume := 1.0
	if n := len(candles) - 1; n > 0 {
		sum := 0.0
		for _, c := range candles[:n] {
			sum += c.Volume
		}
		avgVolume = sum / float64(n)
	}

	volumeRatio := 1.0
	if avgVolume > 0 {
		volumeRatio = candles[len(candles)-1].Volume / avgVolume
	}

	return &MomentumSignal{
		Symbol:      symbol,
		PriceNow:    priceNow,
		PriceThen:   priceThen,
		MomentumPct: momentumPct,
		Direction:   direction,
		VolumeRatio: volumeRatio,
	}
}
