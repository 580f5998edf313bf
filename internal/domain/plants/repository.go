package plants

import "context"

type Repository interface {
	Create(ctx context.Context, p Plant) error
	Update(ctx context.Context, p Plant) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Plant, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Plant, error)

	// ListOwners devuelve los dueños con al menos una planta registrada.
	// Lo usa el loop de despacho de recordatorios.
	ListOwners(ctx context.Context) ([]string, error)
}
