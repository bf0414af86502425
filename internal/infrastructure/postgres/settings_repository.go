package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// Asegura que SettingsRepo implementa el puerto.
var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository. La configuración es un
// registro único versionado: la escritura condiciona sobre la versión leída
// (control optimista) y falla con conflicto si otro admin escribió antes.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devuelve la configuración vigente (nil si nunca se creó).
func (r *SettingsRepo) Get(ctx context.Context) (*entity.ShopSettings, error) {
	query := `
		SELECT id, version, shop_name, legal_name, tax_id, address, phone, email,
		       delivery_slots, updated_by, created_at, updated_at
		FROM shop_settings
		ORDER BY created_at
		LIMIT 1`
	var s entity.ShopSettings
	var slots []byte
	err := r.q.QueryRow(ctx, query).Scan(
		&s.ID, &s.Version, &s.ShopName, &s.LegalName, &s.TaxID, &s.Address,
		&s.Phone, &s.Email, &slots, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop settings: %w", err)
	}
	if len(slots) > 0 {
		if err := json.Unmarshal(slots, &s.DeliverySlots); err != nil {
			return nil, fmt.Errorf("unmarshal delivery slots: %w", err)
		}
	}
	return &s, nil
}

// Create persiste la configuración inicial (versión 1).
func (r *SettingsRepo) Create(ctx context.Context, s *entity.ShopSettings) error {
	slots, err := json.Marshal(s.DeliverySlots)
	if err != nil {
		return fmt.Errorf("marshal delivery slots: %w", err)
	}
	query := `
		INSERT INTO shop_settings (id, version, shop_name, legal_name, tax_id, address,
			phone, email, delivery_slots, updated_by, created_at, updated_at)
		VALUES ($1, 1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		s.ID, s.ShopName, s.LegalName, s.TaxID, s.Address,
		s.Phone, s.Email, slots, s.UpdatedBy, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shop settings: %w", err)
	}
	return nil
}

// Update escribe la nueva versión solo si s.Version sigue siendo la vigente;
// en ese caso la incrementa en uno. Cero filas afectadas = conflicto.
func (r *SettingsRepo) Update(ctx context.Context, s *entity.ShopSettings) error {
	slots, err := json.Marshal(s.DeliverySlots)
	if err != nil {
		return fmt.Errorf("marshal delivery slots: %w", err)
	}
	query := `
		UPDATE shop_settings
		SET version = version + 1, shop_name = $3, legal_name = $4, tax_id = $5,
		    address = $6, phone = $7, email = $8, delivery_slots = $9,
		    updated_by = $10, updated_at = $11
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Version, s.ShopName, s.LegalName, s.TaxID,
		s.Address, s.Phone, s.Email, slots,
		s.UpdatedBy, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shop settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
