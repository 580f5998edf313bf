package care

import (
	"context"
	"strings"
	"time"

	"planter-care/internal/domain/plants"

	"github.com/google/uuid"
)

// Service orquesta el procesamiento de logs de cuidado: valida, agrega al
// historial inmutable, actualiza las últimas fechas de la planta y recalcula
// salud y vencimientos. Solo toca la planta afectada.
type Service struct {
	plants  plants.Repository
	logs    Repository
	windows Windows
	loc     *time.Location
	now     func() time.Time
}

func NewService(plantsRepo plants.Repository, logsRepo Repository, w Windows, loc *time.Location) *Service {
	if w.Lookahead == 0 && w.Grace == 0 {
		w = DefaultWindows()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		plants:  plantsRepo,
		logs:    logsRepo,
		windows: w,
		loc:     loc,
		now:     time.Now,
	}
}

type LogInput struct {
	Activity        ActivityType
	PerformedAt     time.Time
	Notes           string
	ProblemObserved bool
}

// LogCare registra una actividad de cuidado sobre una planta.
//
// Rechaza con ErrInvalidTimestamp logs fechados en el futuro o antes de la
// adquisición. Para watering/fertilizing aplica max monotónico sobre la
// última fecha: un log rezagado (backfill) nunca la retrocede, lo que además
// hace la operación conmutativa e idempotente. Las demás actividades solo
// alimentan el historial y al evaluador de salud.
func (s *Service) LogCare(ctx context.Context, plantID string, in LogInput) (LogEntry, plants.Plant, error) {
	plantID = strings.TrimSpace(plantID)
	if plantID == "" {
		return LogEntry{}, plants.Plant{}, ErrInvalidInput
	}
	if !validActivity(in.Activity) {
		return LogEntry{}, plants.Plant{}, ErrInvalidInput
	}
	if in.PerformedAt.IsZero() {
		return LogEntry{}, plants.Plant{}, ErrInvalidInput
	}

	p, err := s.plants.GetByID(ctx, plantID)
	if err != nil {
		return LogEntry{}, plants.Plant{}, err
	}

	now := s.now()
	if in.PerformedAt.After(now) {
		return LogEntry{}, plants.Plant{}, ErrInvalidTimestamp
	}
	if in.PerformedAt.Before(p.AcquiredAt) {
		return LogEntry{}, plants.Plant{}, ErrInvalidTimestamp
	}

	updated := applyActivity(p, in.Activity, in.PerformedAt)
	updated.UpdatedAt = now

	entry := LogEntry{
		ID:              uuid.NewString(),
		PlantID:         plantID,
		Activity:        in.Activity,
		PerformedAt:     in.PerformedAt,
		RecordedAt:      now,
		Notes:           strings.TrimSpace(in.Notes),
		ProblemObserved: in.ProblemObserved,
	}

	// Snapshot informativo del próximo vencimiento tras este log. La
	// autoridad sigue siendo derivable del estado de la planta.
	switch in.Activity {
	case ActivityWatering:
		entry.NextScheduledAt, _ = NextDue(updated.LastWateredAt, updated.AcquiredAt, updated.WateringReminder, s.loc)
	case ActivityFertilizing:
		entry.NextScheduledAt, _ = NextDue(updated.LastFertilizedAt, updated.AcquiredAt, updated.FertilizingReminder, s.loc)
	}

	history, err := s.logs.ListByPlant(ctx, plantID, ListFilter{})
	if err != nil {
		return LogEntry{}, plants.Plant{}, err
	}
	updated.Health = EvaluateHealth(updated, append(history, entry), now, s.loc, s.windows)

	if err := s.logs.Create(ctx, entry); err != nil {
		return LogEntry{}, plants.Plant{}, err
	}
	if err := s.plants.Update(ctx, updated); err != nil {
		return LogEntry{}, plants.Plant{}, err
	}

	return entry, updated, nil
}

// applyActivity aplica el max monotónico de la última fecha por actividad.
func applyActivity(p plants.Plant, activity ActivityType, performedAt time.Time) plants.Plant {
	switch activity {
	case ActivityWatering:
		if p.LastWateredAt == nil || performedAt.After(*p.LastWateredAt) {
			t := performedAt
			p.LastWateredAt = &t
		}
	case ActivityFertilizing:
		if p.LastFertilizedAt == nil || performedAt.After(*p.LastFertilizedAt) {
			t := performedAt
			p.LastFertilizedAt = &t
		}
	}
	return p
}

func (s *Service) ListLogs(ctx context.Context, plantID string, filter ListFilter) ([]LogEntry, error) {
	plantID = strings.TrimSpace(plantID)
	if plantID == "" {
		return nil, ErrInvalidInput
	}
	return s.logs.ListByPlant(ctx, plantID, filter)
}

// Health recalcula el estado de salud a demanda. No persiste nada: el valor
// guardado en la planta solo se actualiza al procesar logs.
func (s *Service) Health(ctx context.Context, plantID string, at time.Time, loc *time.Location) (plants.HealthStatus, error) {
	p, err := s.plants.GetByID(ctx, strings.TrimSpace(plantID))
	if err != nil {
		return "", err
	}
	history, err := s.logs.ListByPlant(ctx, p.ID, ListFilter{})
	if err != nil {
		return "", err
	}
	if at.IsZero() {
		at = s.now()
	}
	if loc == nil {
		loc = s.loc
	}
	return EvaluateHealth(p, history, at, loc, s.windows), nil
}

// Reminders lista los DueState de todas las plantas del usuario.
func (s *Service) Reminders(ctx context.Context, ownerUserID string, at time.Time, loc *time.Location) ([]DueState, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.plants.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = s.now()
	}
	if loc == nil {
		loc = s.loc
	}
	return ListReminders(items, at, loc, s.windows), nil
}

// Windows expone las ventanas configuradas (las usa el loop de despacho).
func (s *Service) Windows() Windows { return s.windows }
