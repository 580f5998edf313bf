package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"planter-care/internal/domain/care"
)

type careLogRepo struct {
	mu   sync.RWMutex
	byID map[string]care.LogEntry
}

func NewCareLogRepo() care.Repository {
	return &careLogRepo{
		byID: make(map[string]care.LogEntry),
	}
}

func (r *careLogRepo) Create(ctx context.Context, e care.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("log id required")
	}
	// El historial es append-only: un ID repetido es un duplicado, no un update.
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("log already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *careLogRepo) GetByID(ctx context.Context, id string) (care.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return care.LogEntry{}, ErrNotFound
	}
	return e, nil
}

func (r *careLogRepo) ListByPlant(ctx context.Context, plantID string, filter care.ListFilter) ([]care.LogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]care.LogEntry, 0)

	for _, e := range r.byID {
		if e.PlantID != plantID {
			continue
		}

		// Activity filter
		if len(filter.Activities) > 0 {
			ok := false
			for _, a := range filter.Activities {
				if e.Activity == a {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Date filters (performed_at)
		if filter.From != nil {
			if e.PerformedAt.Before((*filter.From).Add(-1 * time.Nanosecond)) {
				continue
			}
		}
		if filter.To != nil {
			if e.PerformedAt.After(*filter.To) {
				continue
			}
		}

		// Query filter
		if q := strings.TrimSpace(filter.Query); q != "" {
			if !strings.Contains(strings.ToLower(e.Notes), strings.ToLower(q)) {
				continue
			}
		}

		out = append(out, e)
	}

	// Orden por performed_at desc (más reciente primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].PerformedAt.After(out[j].PerformedAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}
