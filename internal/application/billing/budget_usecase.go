package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	domainbilling "github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// BudgetUseCase es el Budget Tracker: calcula bajo demanda el consumo de una
// cuenta corporativa contra su límite mensual. Sin efectos secundarios ni
// caché — cada llamada agrega de nuevo sobre los pedidos (lecturas
// concurrentes seguras: una sola consulta de solo lectura).
type BudgetUseCase struct {
	accountRepo repository.CorporateAccountRepository
	orderRepo   repository.OrderRepository
}

// NewBudgetUseCase construye el caso de uso.
func NewBudgetUseCase(
	accountRepo repository.CorporateAccountRepository,
	orderRepo repository.OrderRepository,
) *BudgetUseCase {
	return &BudgetUseCase{accountRepo: accountRepo, orderRepo: orderRepo}
}

// usageFor agrega el consumo del período con los repos indicados. Lo reutiliza
// la puerta de admisión dentro de su transacción (misma lógica, repos de la tx).
func usageFor(
	ctx context.Context,
	orderRepo repository.OrderRepository,
	account *entity.CorporateAccount,
	p domainbilling.Period,
) (domainbilling.Usage, error) {
	count, total, err := orderRepo.SumCorporateForPeriod(ctx, account.ID, p.Start(), p.End())
	if err != nil {
		return domainbilling.Usage{}, err
	}
	return domainbilling.Usage{
		Period:       p,
		OrdersCount:  count,
		TotalAmount:  total,
		MonthlyLimit: account.MonthlyLimit,
	}, nil
}

// resolvePeriod devuelve el período pedido, o el mes en curso si month y year
// vienen en cero (el valor por defecto del tracker).
func resolvePeriod(month, year int) (domainbilling.Period, error) {
	if month == 0 && year == 0 {
		return domainbilling.CurrentPeriod(time.Now().UTC()), nil
	}
	return domainbilling.NewPeriod(month, year)
}

// MonthlyUsage calcula {ordersCount, totalAmount, remaining, utilization} de
// la cuenta para el período pedido (mes en curso por defecto).
func (uc *BudgetUseCase) MonthlyUsage(ctx context.Context, accountID string, month, year int) (*dto.MonthlyUsageResponse, error) {
	if accountID == "" {
		return nil, domain.ErrInvalidInput
	}
	p, err := resolvePeriod(month, year)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	usage, err := usageFor(ctx, uc.orderRepo, account, p)
	if err != nil {
		return nil, err
	}
	return &dto.MonthlyUsageResponse{
		AccountID:          account.ID,
		Period:             p.String(),
		OrdersCount:        usage.OrdersCount,
		TotalAmount:        usage.TotalAmount,
		MonthlyLimit:       usage.MonthlyLimit,
		RemainingBudget:    usage.Remaining(),
		UtilizationPercent: usage.UtilizationPercent(),
		Exceeded:           usage.Exceeded(),
	}, nil
}

// CheckAdmission es el dry-run de la puerta de admisión: responde si un pedido
// por `amount` cabría hoy en el presupuesto. Es solo informativo — la decisión
// vinculante se toma dentro de la transacción del checkout, sobre una lectura
// bloqueada de la cuenta.
func (uc *BudgetUseCase) CheckAdmission(ctx context.Context, accountID string, amount decimal.Decimal) (*dto.AdmissionResponse, error) {
	if accountID == "" || amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	p := domainbilling.CurrentPeriod(time.Now().UTC())
	usage, err := usageFor(ctx, uc.orderRepo, account, p)
	if err != nil {
		return nil, err
	}
	return &dto.AdmissionResponse{
		AccountID:       account.ID,
		ProposedAmount:  amount,
		CurrentSpend:    usage.TotalAmount,
		MonthlyLimit:    usage.MonthlyLimit,
		RemainingBudget: usage.Remaining(),
		CanOrder:        usage.CanAdmit(amount),
	}, nil
}
