package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// Asegura que CorporateAccountRepo implementa el puerto.
var _ repository.CorporateAccountRepository = (*CorporateAccountRepo)(nil)

// CorporateAccountRepo implementación de CorporateAccountRepository (usable con pool o tx).
type CorporateAccountRepo struct {
	q Querier
}

// NewCorporateAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCorporateAccountRepository(q Querier) *CorporateAccountRepo {
	return &CorporateAccountRepo{q: q}
}

const accountColumns = `id, company_name, tax_id, contact_email, monthly_limit,
	vat_rate, payment_term, payment_term_days, status, created_at, updated_at`

// Create persiste una nueva cuenta corporativa.
func (r *CorporateAccountRepo) Create(ctx context.Context, a *entity.CorporateAccount) error {
	query := `
		INSERT INTO corporate_accounts (id, company_name, tax_id, contact_email, monthly_limit,
			vat_rate, payment_term, payment_term_days, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyName, a.TaxID, a.ContactEmail, a.MonthlyLimit,
		a.VATRate, a.PaymentTerm, a.PaymentTermDays, a.Status,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert corporate account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *CorporateAccountRepo) GetByID(ctx context.Context, id string) (*entity.CorporateAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM corporate_accounts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate obtiene la cuenta bloqueando su fila (SELECT ... FOR UPDATE).
// Solo tiene sentido dentro de una transacción: serializa los checkouts
// concurrentes de la misma cuenta.
func (r *CorporateAccountRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.CorporateAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM corporate_accounts WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByTaxID obtiene una cuenta por su identificación fiscal (SIRET).
func (r *CorporateAccountRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.CorporateAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM corporate_accounts WHERE tax_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, taxID))
}

// List lista cuentas ordenadas por nombre.
func (r *CorporateAccountRepo) List(ctx context.Context, limit, offset int) ([]*entity.CorporateAccount, error) {
	query := `SELECT ` + accountColumns + `
		FROM corporate_accounts
		ORDER BY company_name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list corporate accounts: %w", err)
	}
	defer rows.Close()

	var out []*entity.CorporateAccount
	for rows.Next() {
		a, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update actualiza los campos mutables de la cuenta.
func (r *CorporateAccountRepo) Update(ctx context.Context, a *entity.CorporateAccount) error {
	query := `
		UPDATE corporate_accounts
		SET contact_email = $2, monthly_limit = $3, vat_rate = $4,
		    payment_term = $5, payment_term_days = $6, status = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		a.ID, a.ContactEmail, a.MonthlyLimit, a.VATRate,
		a.PaymentTerm, a.PaymentTermDays, a.Status, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update corporate account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CorporateAccountRepo) scanOne(row pgx.Row) (*entity.CorporateAccount, error) {
	a, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get corporate account: %w", err)
	}
	return a, nil
}

func (r *CorporateAccountRepo) scanRow(row pgx.Row) (*entity.CorporateAccount, error) {
	var a entity.CorporateAccount
	err := row.Scan(
		&a.ID, &a.CompanyName, &a.TaxID, &a.ContactEmail, &a.MonthlyLimit,
		&a.VATRate, &a.PaymentTerm, &a.PaymentTermDays, &a.Status,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
