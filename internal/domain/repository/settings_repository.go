package repository

import (
	"context"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// SettingsRepository define el puerto del servicio de configuración de la tienda.
// La configuración es un registro versionado: Update falla con conflicto si la
// versión esperada ya no es la vigente (control optimista).
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.ShopSettings, error)
	Create(ctx context.Context, settings *entity.ShopSettings) error
	// Update escribe la nueva versión solo si settings.Version coincide con la
	// versión almacenada; en ese caso incrementa Version en uno.
	Update(ctx context.Context, settings *entity.ShopSettings) error
}
