package usecase

import (
	"context"
	"time"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// DashboardUseCase arma el panel corporativo de la consola admin: consumo por
// cuenta y contadores globales del período, resueltos del lado servidor.
type DashboardUseCase struct {
	stats repository.StatsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(stats repository.StatsRepository) *DashboardUseCase {
	return &DashboardUseCase{stats: stats}
}

// Dashboard devuelve el panel del período indicado (0,0 = mes corriente).
func (uc *DashboardUseCase) Dashboard(ctx context.Context, month, year int) (*dto.DashboardResponse, error) {
	var p billing.Period
	if month == 0 && year == 0 {
		p = billing.CurrentPeriod(time.Now().UTC())
	} else {
		var err error
		p, err = billing.NewPeriod(month, year)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	from, to := p.Start(), p.End()

	rows, err := uc.stats.AccountUsage(ctx, from, to)
	if err != nil {
		return nil, err
	}
	totals, err := uc.stats.Totals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	accounts := make([]dto.DashboardRowResponse, 0, len(rows))
	for _, r := range rows {
		usage := billing.Usage{
			Period:       p,
			OrdersCount:  r.OrdersCount,
			TotalAmount:  r.TotalSpent,
			MonthlyLimit: r.MonthlyLimit,
		}
		accounts = append(accounts, dto.DashboardRowResponse{
			AccountID:          r.AccountID,
			CompanyName:        r.CompanyName,
			Status:             r.Status,
			MonthlyLimit:       r.MonthlyLimit,
			OrdersCount:        r.OrdersCount,
			TotalSpent:         r.TotalSpent,
			UtilizationPercent: usage.UtilizationPercent(),
		})
	}

	return &dto.DashboardResponse{
		Period:            p.String(),
		ActiveAccounts:    totals.ActiveAccounts,
		PendingAccounts:   totals.PendingAccounts,
		SuspendedAccounts: totals.SuspendedAccounts,
		InvoicesSent:      totals.InvoicesSent,
		InvoicesOverdue:   totals.InvoicesOverdue,
		MonthRevenue:      totals.MonthRevenue,
		Accounts:          accounts,
	}, nil
}
