package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de Usage: presupuesto restante, utilización y puerta de admisión.
// El caso límite-cero nunca debe dividir por cero (NaN/Inf en el dashboard).
// ──────────────────────────────────────────────────────────────────────────────

func TestUsage_Remaining(t *testing.T) {
	u := billing.Usage{TotalAmount: dec("300"), MonthlyLimit: dec("1000")}
	assert.True(t, u.Remaining().Equal(dec("700")))
}

func TestUsage_Remaining_NuncaNegativo(t *testing.T) {
	u := billing.Usage{TotalAmount: dec("1200"), MonthlyLimit: dec("1000")}
	assert.True(t, u.Remaining().IsZero(), "el restante se recorta en cero aunque el gasto exceda el límite")
}

func TestUsage_Utilization(t *testing.T) {
	u := billing.Usage{TotalAmount: dec("250"), MonthlyLimit: dec("1000")}
	assert.True(t, u.UtilizationPercent().Equal(dec("25")))
}

// El ratio real no se recorta por encima de 100: la decisión de admisión lo necesita.
func TestUsage_Utilization_SobreCien(t *testing.T) {
	u := billing.Usage{TotalAmount: dec("1500"), MonthlyLimit: dec("1000")}
	assert.True(t, u.UtilizationPercent().Equal(dec("150")))
	assert.True(t, u.Exceeded())
}

func TestUsage_Utilization_LimiteCero(t *testing.T) {
	// Límite cero y gasto cero: utilización 0, no excedido.
	u := billing.Usage{TotalAmount: decimal.Zero, MonthlyLimit: decimal.Zero}
	assert.True(t, u.UtilizationPercent().IsZero())
	assert.False(t, u.Exceeded())

	// Límite cero con gasto positivo: se reporta 100 + excedido, jamás división por cero.
	u = billing.Usage{TotalAmount: dec("50"), MonthlyLimit: decimal.Zero}
	assert.True(t, u.UtilizationPercent().Equal(dec("100")))
	assert.True(t, u.Exceeded())
}

// Escenario exacto de la puerta de admisión: límite 1000, gastado 900.
func TestUsage_CanAdmit(t *testing.T) {
	u := billing.Usage{TotalAmount: dec("900"), MonthlyLimit: dec("1000")}

	assert.False(t, u.CanAdmit(dec("150")), "900 + 150 > 1000: rechazado")
	assert.True(t, u.CanAdmit(dec("50")), "900 + 50 <= 1000: admitido")
	assert.True(t, u.CanAdmit(dec("100")), "llegar exactamente al límite es admisible")
}

func TestUsage_CanAdmit_LimiteCero(t *testing.T) {
	u := billing.Usage{TotalAmount: decimal.Zero, MonthlyLimit: decimal.Zero}
	assert.True(t, u.CanAdmit(decimal.Zero))
	assert.False(t, u.CanAdmit(dec("0.01")))
}
