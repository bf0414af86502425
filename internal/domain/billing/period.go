// Package billing contiene la lógica de dominio pura del motor de facturación
// corporativa: períodos de facturación por mes calendario, matemática de
// presupuesto y numeración de facturas. Sin dependencias de infraestructura.
package billing

import (
	"fmt"
	"time"
)

// Period identifica un período de facturación: un mes calendario (mes, año).
type Period struct {
	Month int // 1..12
	Year  int
}

// NewPeriod valida y construye un período.
func NewPeriod(month, year int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("mes inválido: %d", month)
	}
	if year < 2000 || year > 2200 {
		return Period{}, fmt.Errorf("año inválido: %d", year)
	}
	return Period{Month: month, Year: year}, nil
}

// CurrentPeriod devuelve el período del instante dado (normalmente time.Now()).
func CurrentPeriod(now time.Time) Period {
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// Start devuelve el primer instante del período (día 1, 00:00:00 UTC).
func (p Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End devuelve el primer instante del período siguiente. El rango del período
// es [Start, End): un pedido creado exactamente a medianoche del día 1 del mes
// siguiente ya no pertenece al período.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains indica si t cae dentro del período.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start()) && t.Before(p.End())
}

// String formatea el período como "AAAA-MM".
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
