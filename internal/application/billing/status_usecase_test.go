package billing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

func newStatusFixture(t *testing.T, inv *entity.CorporateInvoice) (*InvoiceStatusUseCase, *fakeInvoiceRepo) {
	t.Helper()
	account := &entity.CorporateAccount{
		ID:          "acc-1",
		CompanyName: "Fleurs & Co",
		Status:      entity.AccountStatusActive,
	}
	invoiceRepo := &fakeInvoiceRepo{invoices: []*entity.CorporateInvoice{inv}}
	uc := NewInvoiceStatusUseCase(invoiceRepo, newFakeAccountRepo(account), testLogger())
	return uc, invoiceRepo
}

func sentInvoice(dueDate time.Time) *entity.CorporateInvoice {
	sent := dueDate.AddDate(0, 0, -30)
	return &entity.CorporateInvoice{
		ID:                 "inv-1",
		InvoiceNumber:      "FAC-202603-0001",
		Sequence:           1,
		CorporateAccountID: "acc-1",
		PeriodMonth:        3,
		PeriodYear:         2026,
		Subtotal:           decimal.RequireFromString("300.00"),
		VATRate:            decimal.RequireFromString("0.20"),
		VATAmount:          decimal.RequireFromString("60.00"),
		TotalAmount:        decimal.RequireFromString("360.00"),
		Status:             entity.InvoiceStatusSent,
		DueDate:            dueDate,
		SentAt:             &sent,
	}
}

// TestMarkPaid_EstampaPaidAtUnaVez el segundo intento de pago retorna
// conflicto y no mueve paid_at.
func TestMarkPaid_EstampaPaidAtUnaVez(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	uc, repo := newStatusFixture(t, sentInvoice(due))
	clock := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)
	uc.WithClock(func() time.Time { return clock })

	resp, err := uc.MarkPaid(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Status)
	require.NotNil(t, repo.invoices[0].PaidAt)
	firstPaidAt := *repo.invoices[0].PaidAt

	// Segundo intento, más tarde: conflicto y paid_at intacto.
	clock = clock.Add(48 * time.Hour)
	_, err = uc.MarkPaid(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, repo.invoices[0].PaidAt.Equal(firstPaidAt))
}

// TestRefreshOverdue_EnLectura una factura sent vencida pasa a overdue al
// leerla; el pago sigue siendo posible desde overdue.
func TestRefreshOverdue_EnLectura(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	uc, repo := newStatusFixture(t, sentInvoice(due))
	uc.WithClock(func() time.Time { return due.AddDate(0, 0, 10) })

	resp, err := uc.Get(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, resp.Status)
	assert.Equal(t, entity.InvoiceStatusOverdue, repo.invoices[0].Status)

	paid, err := uc.MarkPaid(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, paid.Status)
}

// TestRefreshOverdue_NoAntesDelVencimiento antes de la fecha de vencimiento
// la factura permanece sent.
func TestRefreshOverdue_NoAntesDelVencimiento(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	uc, _ := newStatusFixture(t, sentInvoice(due))
	uc.WithClock(func() time.Time { return due.AddDate(0, 0, -1) })

	resp, err := uc.Get(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusSent, resp.Status)
}

// TestCancel_NoTerminal anular una factura sent funciona; anular una pagada no.
func TestCancel_NoTerminal(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	uc, repo := newStatusFixture(t, sentInvoice(due))
	uc.WithClock(func() time.Time { return due.AddDate(0, 0, -5) })

	resp, err := uc.Cancel(context.Background(), "inv-1")
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusCancelled, resp.Status)

	// Ya terminal: nada más es válido.
	_, err = uc.MarkPaid(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Cancel(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.InvoiceStatusCancelled, repo.invoices[0].Status)
}

// TestList_FiltraPorEstado el listado respeta el filtro de estado.
func TestList_FiltraPorEstado(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	uc, repo := newStatusFixture(t, sentInvoice(due))
	uc.WithClock(func() time.Time { return due.AddDate(0, 0, -5) })
	paidAt := due.AddDate(0, 0, -10)
	repo.invoices = append(repo.invoices, &entity.CorporateInvoice{
		ID:                 "inv-2",
		InvoiceNumber:      "FAC-202603-0002",
		CorporateAccountID: "acc-1",
		PeriodMonth:        2,
		PeriodYear:         2026,
		Status:             entity.InvoiceStatusPaid,
		DueDate:            due,
		PaidAt:             &paidAt,
	})

	out, err := uc.List(context.Background(), repository.InvoiceFilter{Status: entity.InvoiceStatusPaid})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "FAC-202603-0002", out[0].InvoiceNumber)
}

// TestGet_Inexistente id desconocido retorna not found.
func TestGet_Inexistente(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	uc, _ := newStatusFixture(t, sentInvoice(due))
	_, err := uc.Get(context.Background(), "inv-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
