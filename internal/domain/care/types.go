package care

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidTimestamp indica un log fechado en el futuro o anterior a la
	// adquisición de la planta. Parte de la taxonomía de errores del motor.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	ErrInvalidInput = errors.New("invalid input")
)

// ActivityType define las actividades de cuidado registrables.
// @Enum watering, fertilizing, pruning, repotting, propagation, pest_treatment, disease_treatment, inspection
type ActivityType string

const (
	ActivityWatering         ActivityType = "watering"
	ActivityFertilizing      ActivityType = "fertilizing"
	ActivityPruning          ActivityType = "pruning"
	ActivityRepotting        ActivityType = "repotting"
	ActivityPropagation      ActivityType = "propagation"
	ActivityPestTreatment    ActivityType = "pest_treatment"
	ActivityDiseaseTreatment ActivityType = "disease_treatment"
	ActivityInspection       ActivityType = "inspection"
)

func validActivity(a ActivityType) bool {
	switch a {
	case ActivityWatering, ActivityFertilizing, ActivityPruning, ActivityRepotting,
		ActivityPropagation, ActivityPestTreatment, ActivityDiseaseTreatment, ActivityInspection:
		return true
	}
	return false
}

// LogEntry es un registro de cuidado. Es inmutable una vez creado: el
// historial es append-only y las correcciones son entradas nuevas.
type LogEntry struct {
	ID      string
	PlantID string

	Activity    ActivityType
	PerformedAt time.Time
	RecordedAt  time.Time

	Notes string

	// ProblemObserved es la señal estructurada de problema que alimenta al
	// evaluador de salud (el texto libre de Notes no alcanza como señal).
	ProblemObserved bool

	// NextScheduledAt es un snapshot informativo calculado al registrar;
	// la autoridad del próximo vencimiento siempre es derivable del estado.
	NextScheduledAt *time.Time
}

type ListFilter struct {
	Activities []ActivityType
	From       *time.Time
	To         *time.Time
	Query      string
	Limit      int // <= 0: sin límite
}

type Repository interface {
	Create(ctx context.Context, e LogEntry) error
	GetByID(ctx context.Context, id string) (LogEntry, error)
	ListByPlant(ctx context.Context, plantID string, filter ListFilter) ([]LogEntry, error)
}

// DueStatus clasifica un vencimiento respecto del instante de consulta.
// @Enum upcoming, due, overdue
type DueStatus string

const (
	DueUpcoming DueStatus = "upcoming"
	DueDue      DueStatus = "due"
	DueOverdue  DueStatus = "overdue"
)

// DueState es un valor derivado, recalculado a demanda y jamás persistido
// como fuente de verdad (evita bugs de vencimientos cacheados).
type DueState struct {
	PlantID     string
	Activity    ActivityType
	DueAt       time.Time
	Status      DueStatus
	DaysOverdue int
}

// Windows parametriza la clasificación del scheduler.
type Windows struct {
	Lookahead time.Duration // antes del vencimiento: se muestra como upcoming
	Grace     time.Duration // tolerancia después del vencimiento antes de overdue
}

func DefaultWindows() Windows {
	return Windows{
		Lookahead: 48 * time.Hour,
		Grace:     12 * time.Hour,
	}
}
