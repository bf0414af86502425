package orders

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
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

// ──────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────

type fakeAccountRepo struct {
	account     *entity.CorporateAccount
	lockedCalls int // veces que se pidió la fila bloqueada
}

func (r *fakeAccountRepo) Create(_ context.Context, a *entity.CorporateAccount) error { return nil }

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.CorporateAccount, error) {
	if r.account != nil && r.account.ID == id {
		return r.account, nil
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.CorporateAccount, error) {
	r.lockedCalls++
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) GetByTaxID(_ context.Context, _ string) (*entity.CorporateAccount, error) {
	return nil, nil
}

func (r *fakeAccountRepo) List(_ context.Context, _, _ int) ([]*entity.CorporateAccount, error) {
	return nil, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, _ *entity.CorporateAccount) error { return nil }

type fakeOrderRepo struct {
	orders []*entity.Order
	spent  decimal.Decimal // consumo ya agregado del mes
	count  int
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.orders = append(r.orders, o)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) Find(_ context.Context, _ repository.OrderFilter) ([]*entity.Order, error) {
	return r.orders, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id, status string, updatedAt time.Time) error {
	for _, o := range r.orders {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = updatedAt
			return nil
		}
	}
	return errors.New("pedido no encontrado")
}

func (r *fakeOrderRepo) SumCorporateForPeriod(_ context.Context, _ string, _, _ time.Time) (int, decimal.Decimal, error) {
	return r.count, r.spent, nil
}

type fakeTxRunner struct {
	accountRepo *fakeAccountRepo
	orderRepo   *fakeOrderRepo
}

func (t *fakeTxRunner) RunCheckout(ctx context.Context, fn func(
	accountRepo repository.CorporateAccountRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(t.accountRepo, t.orderRepo)
}

// ──────────────────────────────────────────────
// Escenario
// ──────────────────────────────────────────────

type checkoutFixture struct {
	accountRepo *fakeAccountRepo
	orderRepo   *fakeOrderRepo
	uc          *CreateOrderUseCase
}

func newCheckoutFixture(t *testing.T, spent string) *checkoutFixture {
	t.Helper()
	accountRepo := &fakeAccountRepo{account: &entity.CorporateAccount{
		ID:           "acc-1",
		CompanyName:  "Fleurs & Co",
		MonthlyLimit: decimal.NewFromInt(1000),
		Status:       entity.AccountStatusActive,
	}}
	orderRepo := &fakeOrderRepo{spent: decimal.Zero}
	if spent != "" {
		orderRepo.spent = decimal.RequireFromString(spent)
		orderRepo.count = 1
	}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := NewCreateOrderUseCase(&fakeTxRunner{accountRepo: accountRepo, orderRepo: orderRepo}, log)
	return &checkoutFixture{accountRepo: accountRepo, orderRepo: orderRepo, uc: uc}
}

func corporateRequest(amount string) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CorporateAccountID: "acc-1",
		CustomerName:       "Marie Dupont",
		CustomerEmail:      "marie@fleursco.fr",
		PaymentMethod:      entity.PaymentMethodCorporateMonthly,
		Items: []dto.OrderItemRequest{{
			Name:      "Bouquet Printemps",
			UnitPrice: decimal.RequireFromString(amount),
			Quantity:  1,
		}},
		DeliveryAddress: "12 rue des Lilas, Paris",
	}
}

// ──────────────────────────────────────────────
// Puerta de admisión
// ──────────────────────────────────────────────

// TestCreateOrder_AdmisionRechazaSobreLimite con 900 gastados de un límite de
// 1000, un pedido de 150 se rechaza antes de persistir nada.
func TestCreateOrder_AdmisionRechazaSobreLimite(t *testing.T) {
	f := newCheckoutFixture(t, "900.00")

	_, err := f.uc.CreateOrder(context.Background(), corporateRequest("150.00"), false)
	assert.ErrorIs(t, err, domain.ErrBudgetExceeded)
	assert.Empty(t, f.orderRepo.orders, "el rechazo debe ocurrir antes de escribir")
	assert.Equal(t, 1, f.accountRepo.lockedCalls, "la decisión se toma sobre la fila bloqueada")
}

// TestCreateOrder_AdmisionAceptaBajoLimite un pedido de 50 sí cabe.
func TestCreateOrder_AdmisionAceptaBajoLimite(t *testing.T) {
	f := newCheckoutFixture(t, "900.00")

	resp, err := f.uc.CreateOrder(context.Background(), corporateRequest("50.00"), false)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPaid, resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("50.00")))
	require.Len(t, f.orderRepo.orders, 1)
	assert.Equal(t, entity.PaymentMethodCorporateMonthly, f.orderRepo.orders[0].PaymentMethod)
}

// TestCreateOrder_LimiteExacto llegar exactamente al límite se admite.
func TestCreateOrder_LimiteExacto(t *testing.T) {
	f := newCheckoutFixture(t, "900.00")

	_, err := f.uc.CreateOrder(context.Background(), corporateRequest("100.00"), false)
	require.NoError(t, err)
	require.Len(t, f.orderRepo.orders, 1)
}

// TestCreateOrder_OverrideAdmin un admin con admin_override salta la puerta de
// admisión; un usuario normal con el mismo flag no.
func TestCreateOrder_OverrideAdmin(t *testing.T) {
	f := newCheckoutFixture(t, "900.00")
	req := corporateRequest("150.00")
	req.AdminOverride = true

	_, err := f.uc.CreateOrder(context.Background(), req, false)
	assert.ErrorIs(t, err, domain.ErrBudgetExceeded, "el flag sin rol admin no tiene efecto")

	resp, err := f.uc.CreateOrder(context.Background(), req, true)
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("150.00")))
}

// TestCreateOrder_CuentaNoActiva cuentas pending o suspended no admiten
// pedidos, ni siquiera con override.
func TestCreateOrder_CuentaNoActiva(t *testing.T) {
	for _, status := range []string{entity.AccountStatusPending, entity.AccountStatusSuspended} {
		f := newCheckoutFixture(t, "")
		f.accountRepo.account.Status = status

		req := corporateRequest("50.00")
		req.AdminOverride = true
		_, err := f.uc.CreateOrder(context.Background(), req, true)
		assert.ErrorIs(t, err, domain.ErrAccountNotActive, "estado %s", status)
		assert.Empty(t, f.orderRepo.orders)
	}
}

// TestCreateOrder_CuentaInexistente cuenta desconocida retorna not found.
func TestCreateOrder_CuentaInexistente(t *testing.T) {
	f := newCheckoutFixture(t, "")
	req := corporateRequest("50.00")
	req.CorporateAccountID = "acc-fantasma"

	_, err := f.uc.CreateOrder(context.Background(), req, false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────
// Checkout retail y validación
// ──────────────────────────────────────────────

// TestCreateOrder_RetailSinPuerta los pedidos con tarjeta no tocan la cuenta
// corporativa ni la puerta de admisión.
func TestCreateOrder_RetailSinPuerta(t *testing.T) {
	f := newCheckoutFixture(t, "900.00")
	req := dto.CreateOrderRequest{
		CustomerName:  "Jean Martin",
		CustomerEmail: "jean@example.fr",
		PaymentMethod: entity.PaymentMethodCard,
		Items: []dto.OrderItemRequest{{
			Name:      "Roses rouges",
			UnitPrice: decimal.RequireFromString("45.90"),
			Quantity:  2,
		}},
	}

	resp, err := f.uc.CreateOrder(context.Background(), req, false)
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("91.80")))
	assert.Zero(t, f.accountRepo.lockedCalls)
}

// TestCreateOrder_Validacion entradas incompletas o mal formadas se rechazan.
func TestCreateOrder_Validacion(t *testing.T) {
	f := newCheckoutFixture(t, "")

	cases := []struct {
		name   string
		mutate func(*dto.CreateOrderRequest)
	}{
		{"sin items", func(r *dto.CreateOrderRequest) { r.Items = nil }},
		{"sin email", func(r *dto.CreateOrderRequest) { r.CustomerEmail = "" }},
		{"método desconocido", func(r *dto.CreateOrderRequest) { r.PaymentMethod = "cheque" }},
		{"corporate sin cuenta", func(r *dto.CreateOrderRequest) { r.CorporateAccountID = "" }},
		{"cantidad cero", func(r *dto.CreateOrderRequest) { r.Items[0].Quantity = 0 }},
		{"precio negativo", func(r *dto.CreateOrderRequest) {
			r.Items[0].UnitPrice = decimal.NewFromInt(-1)
		}},
		{"fecha mal formada", func(r *dto.CreateOrderRequest) { r.DeliveryDate = "31/12/2026" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := corporateRequest("50.00")
			tc.mutate(&req)
			_, err := f.uc.CreateOrder(context.Background(), req, false)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, f.orderRepo.orders)
}

// TestCreateOrder_NumeroDePedido el número legible sale del reloj inyectado.
func TestCreateOrder_NumeroDePedido(t *testing.T) {
	f := newCheckoutFixture(t, "")
	at := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	f.uc.WithClock(func() time.Time { return at })

	resp, err := f.uc.CreateOrder(context.Background(), corporateRequest("50.00"), false)
	require.NoError(t, err)
	assert.Equal(t, "BF-1773135000", resp.OrderNumber)
}
