package orders

import (
	"context"
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

// CreateOrderUseCase procesa el checkout. Para pedidos corporativos aplica la
// puerta de admisión ANTES de persistir nada: si el monto propuesto haría que
// el gasto del mes supere el límite de la cuenta, el pedido se rechaza con
// ErrBudgetExceeded y no se escribe ningún registro.
type CreateOrderUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
	now      func() time.Time
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(txRunner TxRunner, log *logger.Logger) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner: txRunner,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock reemplaza el reloj (solo tests).
func (uc *CreateOrderUseCase) WithClock(now func() time.Time) *CreateOrderUseCase {
	uc.now = now
	return uc
}

// CreateOrder valida y persiste el pedido. isAdmin habilita AdminOverride:
// un admin puede saltar la puerta de admisión, pero la cuenta debe seguir
// activa en todos los casos.
func (uc *CreateOrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest, isAdmin bool) (*dto.OrderResponse, error) {
	if in.CustomerName == "" || in.CustomerEmail == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.PaymentMethod != entity.PaymentMethodCard && in.PaymentMethod != entity.PaymentMethodCorporateMonthly {
		return nil, domain.ErrInvalidInput
	}
	corporate := in.PaymentMethod == entity.PaymentMethodCorporateMonthly
	if corporate && in.CorporateAccountID == "" {
		return nil, domain.ErrInvalidInput
	}

	items := make([]entity.OrderItem, 0, len(in.Items))
	total := decimal.Zero
	for _, it := range in.Items {
		if it.Name == "" || it.Quantity <= 0 || it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		items = append(items, entity.OrderItem{
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}
	total = total.Round(2)

	var deliveryDate *time.Time
	if in.DeliveryDate != "" {
		d, err := time.Parse("2006-01-02", in.DeliveryDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		deliveryDate = &d
	}

	now := uc.now()
	order := &entity.Order{
		ID:                 uuid.New().String(),
		OrderNumber:        domainbilling.FormatOrderNumber(now.Unix()),
		CorporateAccountID: in.CorporateAccountID,
		CustomerName:       in.CustomerName,
		CustomerEmail:      in.CustomerEmail,
		PaymentMethod:      in.PaymentMethod,
		Items:              items,
		TotalAmount:        total,
		Status:             entity.OrderStatusPaid,
		DeliveryAddress:    in.DeliveryAddress,
		DeliveryDate:       deliveryDate,
		DeliverySlot:       in.DeliverySlot,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := uc.txRunner.RunCheckout(ctx, func(
		accountRepo repository.CorporateAccountRepository,
		orderRepo repository.OrderRepository,
	) error {
		if corporate {
			// Bloquea la fila de la cuenta: serializa checkouts concurrentes
			// de la misma cuenta frente a la verificación de presupuesto.
			account, err := accountRepo.GetByIDForUpdate(ctx, in.CorporateAccountID)
			if err != nil {
				return err
			}
			if account == nil {
				return domain.ErrNotFound
			}
			if !account.IsActive() {
				return domain.ErrAccountNotActive
			}
			override := isAdmin && in.AdminOverride
			if !override {
				p := domainbilling.CurrentPeriod(now)
				count, spent, err := orderRepo.SumCorporateForPeriod(ctx, account.ID, p.Start(), p.End())
				if err != nil {
					return err
				}
				usage := domainbilling.Usage{
					Period:       p,
					OrdersCount:  count,
					TotalAmount:  spent,
					MonthlyLimit: account.MonthlyLimit,
				}
				if !usage.CanAdmit(total) {
					return domain.ErrBudgetExceeded
				}
			}
		}
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("order", order.OrderNumber).
		Str("payment_method", order.PaymentMethod).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("pedido creado")
	return toOrderResponse(order), nil
}

// toOrderResponse mapea la entidad al DTO de respuesta.
func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		CorporateAccountID: o.CorporateAccountID,
		CustomerName:       o.CustomerName,
		CustomerEmail:      o.CustomerEmail,
		PaymentMethod:      o.PaymentMethod,
		Items:              make([]dto.OrderItemResponse, 0, len(o.Items)),
		TotalAmount:        o.TotalAmount,
		Status:             o.Status,
		DeliveryAddress:    o.DeliveryAddress,
		DeliverySlot:       o.DeliverySlot,
		CreatedAt:          o.CreatedAt.Format(time.RFC3339),
	}
	if o.DeliveryDate != nil {
		resp.DeliveryDate = o.DeliveryDate.Format("2006-01-02")
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal,
		})
	}
	return resp
}
