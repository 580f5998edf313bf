package caretakers

import "context"

type Repository interface {
	Create(ctx context.Context, g Grant) error
	Update(ctx context.Context, g Grant) error
	GetByID(ctx context.Context, id string) (Grant, error)
	ListByPlant(ctx context.Context, plantID string) ([]Grant, error)
	ListByCaretaker(ctx context.Context, caretakerUserID string) ([]Grant, error)
	GetActiveGrant(ctx context.Context, plantID, caretakerUserID string) (Grant, error)
}
