package memory

import (
	"context"
	"errors"
	"sync"

	"planter-care/internal/domain/caretakers"
)

type grantRepo struct {
	mu   sync.RWMutex
	byID map[string]caretakers.Grant
}

func NewCaretakersRepo() caretakers.Repository {
	return &grantRepo{
		byID: make(map[string]caretakers.Grant),
	}
}

func (r *grantRepo) Create(ctx context.Context, g caretakers.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; exists {
		return errors.New("grant already exists")
	}
	r.byID[g.ID] = g
	return nil
}

func (r *grantRepo) Update(ctx context.Context, g caretakers.Grant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g.ID == "" {
		return errors.New("grant id required")
	}
	if _, exists := r.byID[g.ID]; !exists {
		return ErrNotFound
	}
	r.byID[g.ID] = g
	return nil
}

func (r *grantRepo) GetByID(ctx context.Context, id string) (caretakers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.byID[id]
	if !ok {
		return caretakers.Grant{}, ErrNotFound
	}
	return g, nil
}

func (r *grantRepo) ListByPlant(ctx context.Context, plantID string) ([]caretakers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]caretakers.Grant, 0)
	for _, g := range r.byID {
		if g.PlantID == plantID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *grantRepo) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]caretakers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]caretakers.Grant, 0)
	for _, g := range r.byID {
		if g.CaretakerUserID == caretakerUserID {
			out = append(out, g)
		}
	}
	return out, nil
}

// Defensivo: si por data sucia existieran múltiples grants activos,
// devolvemos el más reciente por UpdatedAt (y en empate, por CreatedAt).
func (r *grantRepo) GetActiveGrant(ctx context.Context, plantID, caretakerUserID string) (caretakers.Grant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner caretakers.Grant
	has := false

	for _, g := range r.byID {
		if g.PlantID != plantID {
			continue
		}
		if g.CaretakerUserID != caretakerUserID {
			continue
		}
		if g.Status != caretakers.StatusActive {
			continue
		}

		if !has {
			winner = g
			has = true
			continue
		}

		if g.UpdatedAt.After(winner.UpdatedAt) {
			winner = g
			continue
		}
		if g.UpdatedAt.Equal(winner.UpdatedAt) && g.CreatedAt.After(winner.CreatedAt) {
			winner = g
		}
	}

	if !has {
		return caretakers.Grant{}, ErrNotFound
	}
	return winner, nil
}
