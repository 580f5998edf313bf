package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	Category   Category
	Difficulty Difficulty
	Query      string
	Limit      int
}
