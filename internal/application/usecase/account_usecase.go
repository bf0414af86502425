package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// BillingDefaults valores por defecto para cuentas nuevas (desde configuración).
type BillingDefaults struct {
	VATRate         decimal.Decimal // fracción, ej. 0.20
	PaymentTermDays int
}

// CorporateAccountUseCase administración de cuentas corporativas B2B:
// alta (en pending), activación, suspensión y ajustes de límite/IVA/plazo.
type CorporateAccountUseCase struct {
	repo     repository.CorporateAccountRepository
	defaults BillingDefaults
}

// NewCorporateAccountUseCase construye el caso de uso.
func NewCorporateAccountUseCase(repo repository.CorporateAccountRepository, defaults BillingDefaults) *CorporateAccountUseCase {
	return &CorporateAccountUseCase{repo: repo, defaults: defaults}
}

// Create da de alta una cuenta corporativa en estado pending.
// El límite mensual debe ser un monto no negativo.
func (uc *CorporateAccountUseCase) Create(ctx context.Context, in dto.CreateCorporateAccountRequest) (*dto.CorporateAccountResponse, error) {
	if in.CompanyName == "" || in.TaxID == "" || in.ContactEmail == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MonthlyLimit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByTaxID(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	vatRate := in.VATRate
	if vatRate.IsZero() {
		vatRate = uc.defaults.VATRate
	}
	if vatRate.IsNegative() || vatRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, domain.ErrInvalidInput
	}
	term := in.PaymentTerm
	if term == "" {
		term = entity.PaymentTermMonthly
	}
	if term != entity.PaymentTermMonthly && term != entity.PaymentTermImmediate {
		return nil, domain.ErrInvalidInput
	}
	termDays := in.PaymentTermDays
	if termDays <= 0 {
		termDays = uc.defaults.PaymentTermDays
	}

	now := time.Now().UTC()
	account := &entity.CorporateAccount{
		ID:              uuid.New().String(),
		CompanyName:     in.CompanyName,
		TaxID:           in.TaxID,
		ContactEmail:    in.ContactEmail,
		MonthlyLimit:    in.MonthlyLimit,
		VATRate:         vatRate,
		PaymentTerm:     term,
		PaymentTermDays: termDays,
		Status:          entity.AccountStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Get devuelve una cuenta por ID.
func (uc *CorporateAccountUseCase) Get(ctx context.Context, id string) (*dto.CorporateAccountResponse, error) {
	account, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// List lista cuentas corporativas.
func (uc *CorporateAccountUseCase) List(ctx context.Context, limit, offset int) ([]*dto.CorporateAccountResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CorporateAccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	return out, nil
}

// Update ajusta contacto, límite, IVA o plazo. Solo campos presentes.
func (uc *CorporateAccountUseCase) Update(ctx context.Context, id string, in dto.UpdateCorporateAccountRequest) (*dto.CorporateAccountResponse, error) {
	account, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.ContactEmail != nil {
		if *in.ContactEmail == "" {
			return nil, domain.ErrInvalidInput
		}
		account.ContactEmail = *in.ContactEmail
	}
	if in.MonthlyLimit != nil {
		if in.MonthlyLimit.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		account.MonthlyLimit = *in.MonthlyLimit
	}
	if in.VATRate != nil {
		if in.VATRate.IsNegative() || in.VATRate.GreaterThan(decimal.NewFromInt(1)) {
			return nil, domain.ErrInvalidInput
		}
		account.VATRate = *in.VATRate
	}
	if in.PaymentTerm != nil {
		if *in.PaymentTerm != entity.PaymentTermMonthly && *in.PaymentTerm != entity.PaymentTermImmediate {
			return nil, domain.ErrInvalidInput
		}
		account.PaymentTerm = *in.PaymentTerm
	}
	if in.PaymentTermDays != nil {
		if *in.PaymentTermDays <= 0 {
			return nil, domain.ErrInvalidInput
		}
		account.PaymentTermDays = *in.PaymentTermDays
	}
	account.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

// Activate habilita la cuenta para pedidos corporativos.
func (uc *CorporateAccountUseCase) Activate(ctx context.Context, id string) (*dto.CorporateAccountResponse, error) {
	return uc.setStatus(ctx, id, entity.AccountStatusActive)
}

// Suspend bloquea la cuenta: no admite nuevos pedidos (las facturas
// existentes siguen su curso).
func (uc *CorporateAccountUseCase) Suspend(ctx context.Context, id string) (*dto.CorporateAccountResponse, error) {
	return uc.setStatus(ctx, id, entity.AccountStatusSuspended)
}

func (uc *CorporateAccountUseCase) setStatus(ctx context.Context, id, status string) (*dto.CorporateAccountResponse, error) {
	account, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Status == status {
		return nil, domain.ErrConflict
	}
	account.Status = status
	account.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, account); err != nil {
		return nil, err
	}
	return toAccountResponse(account), nil
}

func (uc *CorporateAccountUseCase) load(ctx context.Context, id string) (*entity.CorporateAccount, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	account, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrNotFound
	}
	return account, nil
}

func toAccountResponse(a *entity.CorporateAccount) *dto.CorporateAccountResponse {
	return &dto.CorporateAccountResponse{
		ID:              a.ID,
		CompanyName:     a.CompanyName,
		TaxID:           a.TaxID,
		ContactEmail:    a.ContactEmail,
		MonthlyLimit:    a.MonthlyLimit,
		VATRate:         a.VATRate,
		PaymentTerm:     a.PaymentTerm,
		PaymentTermDays: a.PaymentTermDays,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
	}
}
