package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida del pedido: paid → in_creation → ready → out_for_delivery →
// delivered, con cancelled alcanzable desde cualquier estado no terminal.
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_TransicionesLineales(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.OrderStatusPaid, entity.OrderStatusInCreation, true},
		{entity.OrderStatusInCreation, entity.OrderStatusReady, true},
		{entity.OrderStatusReady, entity.OrderStatusOutForDelivery, true},
		{entity.OrderStatusOutForDelivery, entity.OrderStatusDelivered, true},
		// Saltos de etapa no permitidos
		{entity.OrderStatusPaid, entity.OrderStatusReady, false},
		{entity.OrderStatusPaid, entity.OrderStatusDelivered, false},
		{entity.OrderStatusReady, entity.OrderStatusInCreation, false}, // sin retroceso
	}
	for _, c := range cases {
		o := entity.Order{Status: c.from}
		assert.Equal(t, c.ok, o.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestOrder_CancelledDesdeNoTerminal(t *testing.T) {
	for _, from := range []string{
		entity.OrderStatusPaid, entity.OrderStatusInCreation,
		entity.OrderStatusReady, entity.OrderStatusOutForDelivery,
	} {
		o := entity.Order{Status: from}
		assert.True(t, o.CanTransitionTo(entity.OrderStatusCancelled), "%s -> cancelled", from)
	}
}

func TestOrder_EstadosTerminalesSinSalida(t *testing.T) {
	for _, from := range []string{entity.OrderStatusDelivered, entity.OrderStatusCancelled} {
		o := entity.Order{Status: from}
		for _, to := range []string{
			entity.OrderStatusPaid, entity.OrderStatusInCreation, entity.OrderStatusReady,
			entity.OrderStatusOutForDelivery, entity.OrderStatusDelivered, entity.OrderStatusCancelled,
		} {
			assert.False(t, o.CanTransitionTo(to), "%s -> %s debe rechazarse", from, to)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de la factura corporativa.
// ──────────────────────────────────────────────────────────────────────────────

func TestInvoice_Transiciones(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{entity.InvoiceStatusDraft, entity.InvoiceStatusSent, true},
		{entity.InvoiceStatusSent, entity.InvoiceStatusPaid, true},
		{entity.InvoiceStatusSent, entity.InvoiceStatusOverdue, true},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid, true}, // la vencida puede pagarse
		{entity.InvoiceStatusDraft, entity.InvoiceStatusPaid, false}, // no se paga sin emitir
		{entity.InvoiceStatusDraft, entity.InvoiceStatusOverdue, false},
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusSent, false},
	}
	for _, c := range cases {
		inv := entity.CorporateInvoice{Status: c.from}
		assert.Equal(t, c.ok, inv.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestInvoice_CancelledDesdeNoTerminal(t *testing.T) {
	for _, from := range []string{entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusOverdue} {
		inv := entity.CorporateInvoice{Status: from}
		assert.True(t, inv.CanTransitionTo(entity.InvoiceStatusCancelled), "%s -> cancelled", from)
	}
}

func TestInvoice_PaidYCancelledSonTerminales(t *testing.T) {
	for _, from := range []string{entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled} {
		inv := entity.CorporateInvoice{Status: from}
		for _, to := range []string{
			entity.InvoiceStatusDraft, entity.InvoiceStatusSent, entity.InvoiceStatusPaid,
			entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled,
		} {
			assert.False(t, inv.CanTransitionTo(to), "%s -> %s debe rechazarse", from, to)
		}
	}
}
