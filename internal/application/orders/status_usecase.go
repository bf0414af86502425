package orders

import (
	"context"
	"time"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

// StatusUseCase opera el ciclo de vida del pedido desde la consola admin.
// Solo admite las transiciones válidas de la entidad; los pedidos nunca se
// eliminan físicamente.
type StatusUseCase struct {
	orderRepo repository.OrderRepository
	log       *logger.Logger
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(orderRepo repository.OrderRepository, log *logger.Logger) *StatusUseCase {
	return &StatusUseCase{orderRepo: orderRepo, log: log}
}

// Get devuelve un pedido por ID.
func (uc *StatusUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// List lista pedidos según filtro.
func (uc *StatusUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]*dto.OrderResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	list, err := uc.orderRepo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

// UpdateStatus avanza el pedido al estado indicado si la transición es válida.
func (uc *StatusUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error) {
	if id == "" || !entity.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.CanTransitionTo(status) {
		return nil, domain.ErrConflict
	}
	now := time.Now().UTC()
	if err := uc.orderRepo.UpdateStatus(ctx, id, status, now); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order", order.OrderNumber).
		Str("from", order.Status).
		Str("to", status).
		Msg("estado del pedido actualizado")
	order.Status = status
	order.UpdatedAt = now
	return toOrderResponse(order), nil
}
