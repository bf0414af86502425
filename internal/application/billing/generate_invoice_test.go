package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	domainbilling "github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// ──────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────

type invoiceFixture struct {
	accountRepo *fakeAccountRepo
	orderRepo   *fakeOrderRepo
	invoiceRepo *fakeInvoiceRepo
	renderer    *fakeRenderer
	mailer      *fakeMailer
	dispatcher  *DispatchInvoiceUseCase
	generate    *GenerateInvoiceUseCase
	account     *entity.CorporateAccount
	period      domainbilling.Period
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()
	account := &entity.CorporateAccount{
		ID:              "acc-1",
		CompanyName:     "Fleurs & Co",
		TaxID:           "123 456 789 00010",
		ContactEmail:    "compta@fleursco.fr",
		MonthlyLimit:    decimal.NewFromInt(1000),
		VATRate:         decimal.RequireFromString("0.20"),
		PaymentTerm:     entity.PaymentTermMonthly,
		PaymentTermDays: 30,
		Status:          entity.AccountStatusActive,
	}
	accountRepo := newFakeAccountRepo(account)
	orderRepo := &fakeOrderRepo{}
	invoiceRepo := &fakeInvoiceRepo{}
	renderer := &fakeRenderer{}
	mailer := &fakeMailer{}
	settingsRepo := &fakeSettingsRepo{settings: &entity.ShopSettings{
		ShopName:  "Bella Fleurs",
		LegalName: "Bella Fleurs SARL",
	}}
	log := testLogger()
	dispatcher := NewDispatchInvoiceUseCase(invoiceRepo, accountRepo, settingsRepo, renderer, mailer, log, "")
	generate := NewGenerateInvoiceUseCase(
		&fakeTxRunner{orderRepo: orderRepo, invoiceRepo: invoiceRepo},
		accountRepo, invoiceRepo, dispatcher, log,
	)
	p, err := domainbilling.NewPeriod(3, 2026)
	require.NoError(t, err)
	return &invoiceFixture{
		accountRepo: accountRepo,
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		renderer:    renderer,
		mailer:      mailer,
		dispatcher:  dispatcher,
		generate:    generate,
		account:     account,
		period:      p,
	}
}

// addOrder agrega un pedido corporate_monthly del período de prueba.
func (f *invoiceFixture) addOrder(id, amount, status string) {
	f.orderRepo.orders = append(f.orderRepo.orders, &entity.Order{
		ID:                 id,
		OrderNumber:        "BF-" + id,
		CorporateAccountID: f.account.ID,
		CustomerName:       "Marie Dupont",
		CustomerEmail:      "marie@fleursco.fr",
		PaymentMethod:      entity.PaymentMethodCorporateMonthly,
		Items: []entity.OrderItem{{
			Name:      "Bouquet Printemps",
			UnitPrice: decimal.RequireFromString(amount),
			Quantity:  1,
			Subtotal:  decimal.RequireFromString(amount),
		}},
		TotalAmount: decimal.RequireFromString(amount),
		Status:      status,
		CreatedAt:   f.period.Start().Add(72 * time.Hour),
	})
}

// ──────────────────────────────────────────────
// Generación
// ──────────────────────────────────────────────

// TestGenerate_ConsolidaPedidosDelPeriodo verifica la consolidación: tres
// pedidos de 100, 150 y 50 producen subtotal 300.00, IVA 60.00 y total 360.00.
func TestGenerate_ConsolidaPedidosDelPeriodo(t *testing.T) {
	f := newInvoiceFixture(t)
	f.addOrder("o1", "100.00", entity.OrderStatusPaid)
	f.addOrder("o2", "150.00", entity.OrderStatusDelivered)
	f.addOrder("o3", "50.00", entity.OrderStatusReady)

	resp, err := f.generate.Generate(context.Background(), dto.GenerateInvoiceRequest{
		CorporateAccountID: f.account.ID,
		Month:              f.period.Month,
		Year:               f.period.Year,
	})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 3)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("300.00")), "subtotal: %s", resp.Subtotal)
	assert.True(t, resp.VATAmount.Equal(decimal.RequireFromString("60.00")), "IVA: %s", resp.VATAmount)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("360.00")), "total: %s", resp.TotalAmount)
	assert.Equal(t, entity.InvoiceStatusSent, resp.Status)
	assert.True(t, resp.EmailSent)
	assert.Equal(t, "2026-03", resp.Period)

	// El consecutivo corre sobre el mes de emisión, no el mes facturado.
	emission := domainbilling.CurrentPeriod(time.Now().UTC())
	assert.Equal(t, domainbilling.FormatInvoiceNumber(emission, 1), resp.InvoiceNumber)

	require.Len(t, f.invoiceRepo.invoices, 1)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, "compta@fleursco.fr", f.mailer.sent[0].To)
	require.Len(t, f.mailer.sent[0].Attachments, 1)
	assert.Equal(t, "application/pdf", f.mailer.sent[0].Attachments[0].ContentType)
}

// TestGenerate_ExcluyePedidosCancelados los pedidos cancelados no facturan.
func TestGenerate_ExcluyePedidosCancelados(t *testing.T) {
	f := newInvoiceFixture(t)
	f.addOrder("o1", "100.00", entity.OrderStatusPaid)
	f.addOrder("o2", "999.00", entity.OrderStatusCancelled)

	resp, err := f.generate.Generate(context.Background(), dto.GenerateInvoiceRequest{
		CorporateAccountID: f.account.ID,
		Month:              f.period.Month,
		Year:               f.period.Year,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
	assert.True(t, resp.Subtotal.Equal(decimal.RequireFromString("100.00")))
}

// TestGenerate_SinPedidos un período sin pedidos no escribe nada.
func TestGenerate_SinPedidos(t *testing.T) {
	f := newInvoiceFixture(t)

	_, err := f.generate.Generate(context.Background(), dto.GenerateInvoiceRequest{
		CorporateAccountID: f.account.ID,
		Month:              f.period.Month,
		Year:               f.period.Year,
	})
	assert.ErrorIs(t, err, domain.ErrNothingToInvoice)
	assert.Empty(t, f.invoiceRepo.invoices)
	assert.Empty(t, f.mailer.sent)
}

// TestGenerate_PeriodoDuplicado el segundo intento sobre el mismo
// (cuenta, mes, año) falla sin alterar la factura original.
func TestGenerate_PeriodoDuplicado(t *testing.T) {
	f := newInvoiceFixture(t)
	f.addOrder("o1", "100.00", entity.OrderStatusPaid)

	req := dto.GenerateInvoiceRequest{
		CorporateAccountID: f.account.ID,
		Month:              f.period.Month,
		Year:               f.period.Year,
	}
	first, err := f.generate.Generate(context.Background(), req)
	require.NoError(t, err)

	_, err = f.generate.Generate(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.Len(t, f.invoiceRepo.invoices, 1)
	assert.Equal(t, first.InvoiceNumber, f.invoiceRepo.invoices[0].InvoiceNumber)
	assert.True(t, f.invoiceRepo.invoices[0].TotalAmount.Equal(decimal.RequireFromString("120.00")))
}

// TestGenerate_Draft una factura draft se persiste sin despachar.
func TestGenerate_Draft(t *testing.T) {
	f := newInvoiceFixture(t)
	f.addOrder("o1", "100.00", entity.OrderStatusPaid)

	resp, err := f.generate.Generate(context.Background(), dto.GenerateInvoiceRequest{
		CorporateAccountID: f.account.ID,
		Month:              f.period.Month,
		Year:               f.period.Year,
		Draft:              true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusDraft, resp.Status)
	assert.False(t, resp.EmailSent)
	assert.Empty(t, resp.SentAt)
	assert.Zero(t, f.renderer.calls)
	assert.Empty(t, f.mailer.sent)
}

// TestGenerate_CuentaInexistente cuenta desconocida retorna not found.
func TestGenerate_CuentaInexistente(t *testing.T) {
	f := newInvoiceFixture(t)
	_, err := f.generate.Generate(context.Background(), dto.GenerateInvoiceRequest{
		CorporateAccountID: "acc-fantasma",
		Month:              3,
		Year:               2026,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestGenerate_PeriodoInvalido mes fuera de rango es entrada inválida.
func TestGenerate_PeriodoInvalido(t *testing.T) {
	f := newInvoiceFixture(t)
	_, err := f.generate.Generate(context.Background(), dto.GenerateInvoiceRequest{
		CorporateAccountID: f.account.ID,
		Month:              13,
		Year:               2026,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────
// Éxito parcial: factura persistida, correo fallido
// ──────────────────────────────────────────────

// TestGenerate_CorreoFallido_FacturaPersiste un fallo del transporte de correo
// no revierte la factura: queda emitida con el error registrado, y el reenvío
// posterior la despacha.
func TestGenerate_CorreoFallido_FacturaPersiste(t *testing.T) {
	f := newInvoiceFixture(t)
	f.addOrder("o1", "100.00", entity.OrderStatusPaid)
	f.mailer.err = errors.New("smtp: connection refused")

	resp, err := f.generate.Generate(context.Background(), dto.GenerateInvoiceRequest{
		CorporateAccountID: f.account.ID,
		Month:              f.period.Month,
		Year:               f.period.Year,
	})
	require.NoError(t, err, "la operación es parcialmente exitosa, no un error")
	assert.False(t, resp.EmailSent)

	require.Len(t, f.invoiceRepo.invoices, 1)
	stored := f.invoiceRepo.invoices[0]
	assert.Equal(t, entity.InvoiceStatusSent, stored.Status)
	assert.Contains(t, stored.DispatchError, "envío de correo")

	// El transporte se recupera: el reenvío limpia el error y entrega el PDF.
	f.mailer.err = nil
	resent, err := f.dispatcher.Resend(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.True(t, resent.EmailSent)
	assert.Empty(t, f.invoiceRepo.invoices[0].DispatchError)
	require.Len(t, f.mailer.sent, 1)
}

// TestResend_FacturaAnulada el reenvío de una factura cancelada se rechaza.
func TestResend_FacturaAnulada(t *testing.T) {
	f := newInvoiceFixture(t)
	f.invoiceRepo.invoices = append(f.invoiceRepo.invoices, &entity.CorporateInvoice{
		ID:                 "inv-1",
		InvoiceNumber:      "FAC-202603-0001",
		CorporateAccountID: f.account.ID,
		Status:             entity.InvoiceStatusCancelled,
	})
	_, err := f.dispatcher.Resend(context.Background(), "inv-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
