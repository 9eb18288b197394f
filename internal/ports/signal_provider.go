package ports

import (
	"context"

	"github.com/alejandrodnm/fastloop/internal/domain"
)

// SignalProvider deriva la señal de momentum de un asset a partir de
// velas recientes de un minuto.
type SignalProvider interface {
	// Momentum obtiene lookbackMinutes+1 velas y deriva la señal.
	// Con menos de 2 velas devuelve (nil, nil): datos insuficientes
	// no es un error. Los fallos de red o parseo sí son error; el
	// caller los degrada a "sin señal".
	Momentum(ctx context.Context, symbol string, lookbackMinutes int) (*domain.MomentumSignal, error)
}
