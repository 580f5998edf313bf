package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"planter-care/internal/domain/catalog"
)

var (
	ErrNotFound = errors.New("not found")
)

type catalogRepo struct {
	mu   sync.RWMutex
	byID map[string]catalog.Entry
}

func NewCatalogRepo() catalog.Repository {
	return &catalogRepo{
		byID: make(map[string]catalog.Entry),
	}
}

func (r *catalogRepo) Create(ctx context.Context, e catalog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(e.ID) == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *catalogRepo) GetByID(ctx context.Context, id string) (catalog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return catalog.Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *catalogRepo) List(ctx context.Context, filter catalog.ListFilter) ([]catalog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]catalog.Entry, 0)
	for _, e := range r.byID {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && e.Difficulty != filter.Difficulty {
			continue
		}
		if q := strings.TrimSpace(filter.Query); q != "" {
			hay := strings.ToLower(e.Name + " " + e.ScientificName + " " + e.Description)
			if !strings.Contains(hay, strings.ToLower(q)) {
				continue
			}
		}
		out = append(out, e)
	}

	// Orden estable por nombre (el catálogo se navega alfabéticamente)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
