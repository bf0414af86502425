package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	domainbilling "github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

// GenerateInvoiceUseCase consolida los pedidos corporativos de un período en
// una factura única por (cuenta, mes, año). La lectura de pedidos, la reserva
// del consecutivo y la inserción ocurren en una sola transacción; el
// constraint único de la base serializa los intentos concurrentes.
type GenerateInvoiceUseCase struct {
	txRunner    TxRunner
	accountRepo repository.CorporateAccountRepository
	invoiceRepo repository.CorporateInvoiceRepository
	dispatcher  *DispatchInvoiceUseCase
	log         *logger.Logger
}

// NewGenerateInvoiceUseCase construye el caso de uso.
func NewGenerateInvoiceUseCase(
	txRunner TxRunner,
	accountRepo repository.CorporateAccountRepository,
	invoiceRepo repository.CorporateInvoiceRepository,
	dispatcher *DispatchInvoiceUseCase,
	log *logger.Logger,
) *GenerateInvoiceUseCase {
	return &GenerateInvoiceUseCase{
		txRunner:    txRunner,
		accountRepo: accountRepo,
		invoiceRepo: invoiceRepo,
		dispatcher:  dispatcher,
		log:         log,
	}
}

// Generate emite la factura del período para la cuenta:
//  1. Rechaza si ya existe factura para (cuenta, mes, año) — guardia de
//     idempotencia contra doble facturación.
//  2. Lee los pedidos corporate_monthly no cancelados del período.
//  3. Sin pedidos: rechaza con ErrNothingToInvoice, sin escribir nada.
//  4. Calcula subtotal, IVA y total con redondeo decimal a 2 en cada derivado.
//  5. Reserva el consecutivo del mes y persiste la factura.
//  6. Salvo draft, despacha (PDF + correo). El fallo del despacho no revierte
//     la factura: se reporta como éxito parcial con el error registrado.
func (uc *GenerateInvoiceUseCase) Generate(ctx context.Context, in dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CorporateAccountID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := domainbilling.NewPeriod(in.Month, in.Year)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	account, err := uc.accountRepo.GetByID(ctx, in.CorporateAccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}

	// Pre-chequeo amable; el constraint único de la base es la barrera real
	// contra generaciones concurrentes.
	existing, err := uc.invoiceRepo.GetByAccountAndPeriod(ctx, account.ID, p)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now().UTC()
	var inv *entity.CorporateInvoice

	err = uc.txRunner.RunInvoice(ctx, func(
		orderRepo repository.OrderRepository,
		invoiceRepo repository.CorporateInvoiceRepository,
	) error {
		orders, err := orderRepo.Find(ctx, repository.OrderFilter{
			CorporateAccountID: account.ID,
			PaymentMethod:      entity.PaymentMethodCorporateMonthly,
			From:               p.Start(),
			To:                 p.End(),
		})
		if err != nil {
			return err
		}
		qualifying := make([]*entity.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status != entity.OrderStatusCancelled {
				qualifying = append(qualifying, o)
			}
		}
		if len(qualifying) == 0 {
			return domain.ErrNothingToInvoice
		}

		items := make([]entity.InvoiceItem, 0, len(qualifying))
		subtotal := decimal.Zero
		for _, o := range qualifying {
			items = append(items, entity.InvoiceItem{
				OrderID:     o.ID,
				OrderNumber: o.OrderNumber,
				OrderDate:   o.CreatedAt,
				Description: describeOrder(o),
				Amount:      o.TotalAmount.Round(2),
			})
			subtotal = subtotal.Add(o.TotalAmount)
		}
		subtotal = subtotal.Round(2)
		vatAmount := subtotal.Mul(account.VATRate).Round(2)
		total := subtotal.Add(vatAmount).Round(2)

		seq, err := invoiceRepo.NextSequence(ctx, now.Year(), int(now.Month()))
		if err != nil {
			return err
		}

		status := entity.InvoiceStatusSent
		var sentAt *time.Time
		if in.Draft {
			status = entity.InvoiceStatusDraft
		} else {
			t := now
			sentAt = &t
		}

		termDays := account.PaymentTermDays
		if termDays <= 0 {
			termDays = 30
		}

		inv = &entity.CorporateInvoice{
			ID:                 uuid.New().String(),
			InvoiceNumber:      domainbilling.FormatInvoiceNumber(p, seq),
			Sequence:           seq,
			CorporateAccountID: account.ID,
			PeriodMonth:        p.Month,
			PeriodYear:         p.Year,
			PeriodStart:        p.Start(),
			PeriodEnd:          p.End(),
			Items:              items,
			Subtotal:           subtotal,
			VATRate:            account.VATRate,
			VATAmount:          vatAmount,
			TotalAmount:        total,
			Status:             status,
			DueDate:            now.AddDate(0, 0, termDays),
			SentAt:             sentAt,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		return invoiceRepo.Create(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	// Despacho fuera de la transacción: render y SMTP son I/O lentos y no
	// deben retener ningún lock. El fallo no revierte la factura.
	emailSent := false
	if !in.Draft {
		if dispatchErr := uc.dispatcher.Dispatch(ctx, inv, account); dispatchErr != nil {
			uc.log.Error().Err(dispatchErr).
				Str("invoice", inv.InvoiceNumber).
				Str("account", account.ID).
				Msg("factura creada, envío de correo fallido — usar reenvío")
		} else {
			emailSent = true
		}
	}

	return toInvoiceResponse(inv, account.CompanyName, emailSent), nil
}

// describeOrder arma la descripción legible de la línea: nombres de los
// artículos del pedido (snapshot, no catálogo vivo).
func describeOrder(o *entity.Order) string {
	if len(o.Items) == 0 {
		return fmt.Sprintf("Pedido %s", o.OrderNumber)
	}
	desc := ""
	for i, it := range o.Items {
		if i > 0 {
			desc += ", "
		}
		if it.Quantity > 1 {
			desc += fmt.Sprintf("%d× %s", it.Quantity, it.Name)
		} else {
			desc += it.Name
		}
	}
	return desc
}

// toInvoiceResponse mapea la entidad al DTO de respuesta.
func toInvoiceResponse(inv *entity.CorporateInvoice, companyName string, emailSent bool) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:                 inv.ID,
		InvoiceNumber:      inv.InvoiceNumber,
		CorporateAccountID: inv.CorporateAccountID,
		CompanyName:        companyName,
		Period:             fmt.Sprintf("%04d-%02d", inv.PeriodYear, inv.PeriodMonth),
		Items:              make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
		Subtotal:           inv.Subtotal,
		VATRate:            inv.VATRate,
		VATAmount:          inv.VATAmount,
		TotalAmount:        inv.TotalAmount,
		Status:             inv.Status,
		DueDate:            inv.DueDate.Format("2006-01-02"),
		EmailSent:          emailSent,
		DispatchError:      inv.DispatchError,
	}
	if inv.SentAt != nil {
		resp.SentAt = inv.SentAt.Format(time.RFC3339)
	}
	if inv.PaidAt != nil {
		resp.PaidAt = inv.PaidAt.Format(time.RFC3339)
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			OrderID:     it.OrderID,
			OrderNumber: it.OrderNumber,
			OrderDate:   it.OrderDate.Format("2006-01-02"),
			Description: it.Description,
			Amount:      it.Amount,
		})
	}
	return resp
}
