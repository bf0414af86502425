package billing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	domainbilling "github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

// Fakes en memoria para los tests de los casos de uso de facturación.

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

type fakeAccountRepo struct {
	accounts map[string]*entity.CorporateAccount
}

func newFakeAccountRepo(accounts ...*entity.CorporateAccount) *fakeAccountRepo {
	r := &fakeAccountRepo{accounts: map[string]*entity.CorporateAccount{}}
	for _, a := range accounts {
		r.accounts[a.ID] = a
	}
	return r
}

func (r *fakeAccountRepo) Create(_ context.Context, a *entity.CorporateAccount) error {
	r.accounts[a.ID] = a
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*entity.CorporateAccount, error) {
	return r.accounts[id], nil
}

func (r *fakeAccountRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.CorporateAccount, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAccountRepo) GetByTaxID(_ context.Context, taxID string) (*entity.CorporateAccount, error) {
	for _, a := range r.accounts {
		if a.TaxID == taxID {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) List(_ context.Context, _, _ int) ([]*entity.CorporateAccount, error) {
	out := make([]*entity.CorporateAccount, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, a *entity.CorporateAccount) error {
	r.accounts[a.ID] = a
	return nil
}

type fakeOrderRepo struct {
	orders []*entity.Order
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

func (r *fakeOrderRepo) Find(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0)
	for _, o := range r.orders {
		if f.CorporateAccountID != "" && o.CorporateAccountID != f.CorporateAccountID {
			continue
		}
		if f.PaymentMethod != "" && o.PaymentMethod != f.PaymentMethod {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if !f.From.IsZero() && o.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && !o.CreatedAt.Before(f.To) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
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

func (r *fakeOrderRepo) SumCorporateForPeriod(ctx context.Context, accountID string, from, to time.Time) (int, decimal.Decimal, error) {
	orders, _ := r.Find(ctx, repository.OrderFilter{
		CorporateAccountID: accountID,
		PaymentMethod:      entity.PaymentMethodCorporateMonthly,
		From:               from,
		To:                 to,
	})
	total := decimal.Zero
	count := 0
	for _, o := range orders {
		if o.Status == entity.OrderStatusCancelled {
			continue
		}
		count++
		total = total.Add(o.TotalAmount)
	}
	return count, total, nil
}

type fakeInvoiceRepo struct {
	invoices  []*entity.CorporateInvoice
	createErr error
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.CorporateInvoice) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.invoices = append(r.invoices, inv)
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.CorporateInvoice, error) {
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByAccountAndPeriod(_ context.Context, accountID string, p domainbilling.Period) (*entity.CorporateInvoice, error) {
	for _, inv := range r.invoices {
		if inv.CorporateAccountID == accountID && inv.PeriodMonth == p.Month && inv.PeriodYear == p.Year && inv.Status != entity.InvoiceStatusCancelled {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, f repository.InvoiceFilter) ([]*entity.CorporateInvoice, error) {
	out := make([]*entity.CorporateInvoice, 0)
	for _, inv := range r.invoices {
		if f.CorporateAccountID != "" && inv.CorporateAccountID != f.CorporateAccountID {
			continue
		}
		if f.Status != "" && inv.Status != f.Status {
			continue
		}
		if f.Period != nil && (inv.PeriodMonth != f.Period.Month || inv.PeriodYear != f.Period.Year) {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *fakeInvoiceRepo) NextSequence(_ context.Context, year, month int) (int, error) {
	max := 0
	for _, inv := range r.invoices {
		if inv.CreatedAt.Year() == year && int(inv.CreatedAt.Month()) == month && inv.Sequence > max {
			max = inv.Sequence
		}
	}
	return max + 1, nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, inv *entity.CorporateInvoice) error {
	for i, existing := range r.invoices {
		if existing.ID == inv.ID {
			r.invoices[i] = inv
			return nil
		}
	}
	return errors.New("factura no encontrada")
}

type fakeSettingsRepo struct {
	settings *entity.ShopSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*entity.ShopSettings, error) {
	return r.settings, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *entity.ShopSettings) error {
	r.settings = s
	return nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *entity.ShopSettings) error {
	r.settings = s
	return nil
}

// fakeTxRunner invoca la función directamente con los repos en memoria; los
// tests de transaccionalidad real viven en la capa de infraestructura.
type fakeTxRunner struct {
	orderRepo   *fakeOrderRepo
	invoiceRepo *fakeInvoiceRepo
}

func (t *fakeTxRunner) RunInvoice(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	invoiceRepo repository.CorporateInvoiceRepository,
) error) error {
	return fn(t.orderRepo, t.invoiceRepo)
}

type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) RenderInvoicePDF(_ context.Context, _ *entity.CorporateInvoice, _ *entity.CorporateAccount, _ *entity.ShopSettings) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

type fakeMailer struct {
	err  error
	sent []MailMessage
}

func (f *fakeMailer) Send(_ context.Context, msg MailMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}
