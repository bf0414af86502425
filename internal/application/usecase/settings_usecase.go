package usecase

import (
	"context"
	"time"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// SettingsUseCase lectura y actualización versionada de la configuración de la
// tienda. El cliente envía la versión que leyó; si otro admin escribió entre
// medias la actualización se rechaza y debe releer.
type SettingsUseCase struct {
	repo repository.SettingsRepository
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Get devuelve la configuración vigente.
func (uc *SettingsUseCase) Get(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, domain.ErrNotFound
	}
	return toSettingsResponse(settings), nil
}

// Update escribe una nueva versión de la configuración. in.Version debe ser la
// versión vigente; el repositorio falla con conflicto si ya no lo es.
func (uc *SettingsUseCase) Update(ctx context.Context, in dto.UpdateSettingsRequest, updatedBy string) (*dto.SettingsResponse, error) {
	if in.ShopName == "" || in.LegalName == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	current, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if in.Version != current.Version {
		return nil, domain.ErrConflict
	}

	current.ShopName = in.ShopName
	current.LegalName = in.LegalName
	current.TaxID = in.TaxID
	current.Address = in.Address
	current.Phone = in.Phone
	current.Email = in.Email
	current.DeliverySlots = in.DeliverySlots
	current.UpdatedBy = updatedBy
	current.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	current.Version++ // el repositorio incrementó la versión persistida
	return toSettingsResponse(current), nil
}

func toSettingsResponse(s *entity.ShopSettings) *dto.SettingsResponse {
	return &dto.SettingsResponse{
		Version:       s.Version,
		ShopName:      s.ShopName,
		LegalName:     s.LegalName,
		TaxID:         s.TaxID,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		DeliverySlots: s.DeliverySlots,
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}
