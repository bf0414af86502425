package billing

import (
	"context"
	"time"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	domainbilling "github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

// InvoiceStatusUseCase opera la máquina de estados de la factura corporativa:
// draft → sent → paid, sent → overdue (por vencimiento), no-terminal →
// cancelled. Los totales y líneas jamás se tocan aquí.
//
// El paso a overdue es temporal y se refresca en el camino de lectura: este
// sistema es request-per-invocation, sin workers de fondo.
type InvoiceStatusUseCase struct {
	invoiceRepo repository.CorporateInvoiceRepository
	accountRepo repository.CorporateAccountRepository
	log         *logger.Logger
	// now inyectable para tests (vencimientos deterministas).
	now func() time.Time
}

// NewInvoiceStatusUseCase construye el caso de uso.
func NewInvoiceStatusUseCase(
	invoiceRepo repository.CorporateInvoiceRepository,
	accountRepo repository.CorporateAccountRepository,
	log *logger.Logger,
) *InvoiceStatusUseCase {
	return &InvoiceStatusUseCase{
		invoiceRepo: invoiceRepo,
		accountRepo: accountRepo,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (solo tests).
func (uc *InvoiceStatusUseCase) WithClock(now func() time.Time) *InvoiceStatusUseCase {
	uc.now = now
	return uc
}

// Get devuelve la factura, refrescando el vencimiento si aplica.
func (uc *InvoiceStatusUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.refreshOverdue(ctx, inv)
	return uc.respond(ctx, inv), nil
}

// List lista facturas con filtros, refrescando vencimientos en el camino.
func (uc *InvoiceStatusUseCase) List(ctx context.Context, filter repository.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := uc.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		uc.refreshOverdue(ctx, inv)
		out = append(out, uc.respond(ctx, inv))
	}
	return out, nil
}

// MarkPaid marca la factura como pagada y estampa paid_at una única vez.
// Un segundo intento retorna conflicto y no altera paid_at.
func (uc *InvoiceStatusUseCase) MarkPaid(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.refreshOverdue(ctx, inv)
	if !inv.CanTransitionTo(entity.InvoiceStatusPaid) {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	inv.Status = entity.InvoiceStatusPaid
	inv.PaidAt = &now
	inv.UpdatedAt = now
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice", inv.InvoiceNumber).Msg("factura marcada como pagada")
	return uc.respond(ctx, inv), nil
}

// Cancel anula una factura no terminal (acción solo admin).
func (uc *InvoiceStatusUseCase) Cancel(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !inv.CanTransitionTo(entity.InvoiceStatusCancelled) {
		return nil, domain.ErrConflict
	}
	now := uc.now()
	inv.Status = entity.InvoiceStatusCancelled
	inv.UpdatedAt = now
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
		return nil, err
	}
	uc.log.Info().Str("invoice", inv.InvoiceNumber).Msg("factura anulada")
	return uc.respond(ctx, inv), nil
}

// GetByPeriod busca la factura de una cuenta para un período exacto.
func (uc *InvoiceStatusUseCase) GetByPeriod(ctx context.Context, accountID string, month, year int) (*dto.InvoiceResponse, error) {
	p, err := domainbilling.NewPeriod(month, year)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByAccountAndPeriod(ctx, accountID, p)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	uc.refreshOverdue(ctx, inv)
	return uc.respond(ctx, inv), nil
}

func (uc *InvoiceStatusUseCase) load(ctx context.Context, id string) (*entity.CorporateInvoice, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// refreshOverdue pasa a overdue una factura sent cuyo vencimiento ya pasó.
// Persistencia best-effort: si falla, la siguiente lectura reintenta.
func (uc *InvoiceStatusUseCase) refreshOverdue(ctx context.Context, inv *entity.CorporateInvoice) {
	if inv.Status != entity.InvoiceStatusSent || !uc.now().After(inv.DueDate) {
		return
	}
	inv.Status = entity.InvoiceStatusOverdue
	inv.UpdatedAt = uc.now()
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
		uc.log.Warn().Err(err).Str("invoice", inv.InvoiceNumber).Msg("marcar factura vencida")
	}
}

func (uc *InvoiceStatusUseCase) respond(ctx context.Context, inv *entity.CorporateInvoice) *dto.InvoiceResponse {
	companyName := ""
	if account, err := uc.accountRepo.GetByID(ctx, inv.CorporateAccountID); err == nil && account != nil {
		companyName = account.CompanyName
	}
	emailSent := inv.SentAt != nil && inv.DispatchError == ""
	return toInvoiceResponse(inv, companyName, emailSent)
}
