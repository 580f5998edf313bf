package plants

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	CatalogID  string
	Nickname   string
	Location   string
	Notes      string
	AcquiredAt time.Time

	WateringReminder    ReminderConfig
	FertilizingReminder ReminderConfig
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Plant, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Plant{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.CatalogID) == "" {
		return Plant{}, ErrInvalidInput
	}
	if err := in.WateringReminder.Validate(); err != nil {
		return Plant{}, err
	}
	if err := in.FertilizingReminder.Validate(); err != nil {
		return Plant{}, err
	}

	now := s.now()

	acquired := in.AcquiredAt
	if acquired.IsZero() {
		acquired = now
	}

	p := Plant{
		ID:                  uuid.NewString(),
		OwnerUserID:         ownerUserID,
		CatalogID:           strings.TrimSpace(in.CatalogID),
		Nickname:            strings.TrimSpace(in.Nickname),
		Location:            strings.TrimSpace(in.Location),
		Notes:               strings.TrimSpace(in.Notes),
		AcquiredAt:          acquired,
		WateringReminder:    in.WateringReminder,
		FertilizingReminder: in.FertilizingReminder,
		// Sin historial ni recordatorios vencidos todavía: arranca en good
		// (información insuficiente no se lee como falla).
		Health:    HealthGood,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Plant{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Plant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Plant{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Plant, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ListOwners devuelve los dueños con al menos una planta registrada.
// Lo usa el loop de despacho de notificaciones.
func (s *Service) ListOwners(ctx context.Context) ([]string, error) {
	return s.repo.ListOwners(ctx)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Nickname *string
	Location *string
	Notes    *string

	WateringReminder    *ReminderConfig
	FertilizingReminder *ReminderConfig
}

// Update modifica el perfil y los recordatorios de la planta.
// LastWateredAt/LastFertilizedAt y Health son propiedad del módulo care:
// acá nunca se tocan.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Plant, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Plant{}, err
	}

	if in.Nickname != nil {
		p.Nickname = strings.TrimSpace(*in.Nickname)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Notes != nil {
		p.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.WateringReminder != nil {
		if err := in.WateringReminder.Validate(); err != nil {
			return Plant{}, err
		}
		p.WateringReminder = *in.WateringReminder
	}
	if in.FertilizingReminder != nil {
		if err := in.FertilizingReminder.Validate(); err != nil {
			return Plant{}, err
		}
		p.FertilizingReminder = *in.FertilizingReminder
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Plant{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// OwnerOf expone el ownerUserID de una planta.
// Se usa para evitar ciclos de imports entre módulos (plants <-> caretakers).
func (s *Service) OwnerOf(ctx context.Context, plantID string) (string, error) {
	p, err := s.GetByID(ctx, plantID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}
