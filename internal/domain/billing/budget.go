package billing

import "github.com/shopspring/decimal"

// Usage resume el consumo de presupuesto de una cuenta corporativa en un período.
type Usage struct {
	Period       Period
	OrdersCount  int
	TotalAmount  decimal.Decimal
	MonthlyLimit decimal.Decimal
}

// Remaining devuelve el presupuesto restante del período: max(0, límite - gastado).
func (u Usage) Remaining() decimal.Decimal {
	rem := u.MonthlyLimit.Sub(u.TotalAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// Exceeded indica si el gasto del período superó el límite. Con límite cero,
// cualquier gasto positivo lo excede.
func (u Usage) Exceeded() bool {
	return u.TotalAmount.GreaterThan(u.MonthlyLimit)
}

// UtilizationPercent devuelve el porcentaje de uso del límite mensual.
// Nunca divide por cero: con límite cero reporta 0 si no hay gasto y 100 si
// lo hay (el flag Exceeded distingue el caso). El ratio no se recorta por
// encima de 100 — las decisiones de admisión usan el valor real.
func (u Usage) UtilizationPercent() decimal.Decimal {
	if u.MonthlyLimit.IsZero() {
		if u.TotalAmount.IsPositive() {
			return decimal.NewFromInt(100)
		}
		return decimal.Zero
	}
	return u.TotalAmount.Div(u.MonthlyLimit).Mul(decimal.NewFromInt(100)).Round(2)
}

// CanAdmit decide la puerta de admisión: el pedido propuesto cabe si
// gastado + propuesto <= límite. Es una pre-verificación, debe evaluarse
// sobre una lectura consistente del consumo inmediatamente antes de crear
// el pedido (misma transacción).
func (u Usage) CanAdmit(proposed decimal.Decimal) bool {
	return u.TotalAmount.Add(proposed).LessThanOrEqual(u.MonthlyLimit)
}
