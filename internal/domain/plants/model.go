package plants

import "time"

// Plant representa una planta concreta de un usuario (instancia, no especie).
// LastWateredAt/LastFertilizedAt en nil significa "nunca": se distingue de
// "regada en el instante cero" a propósito.
type Plant struct {
	ID          string
	OwnerUserID string
	CatalogID   string

	Nickname string
	Location string
	Notes    string

	AcquiredAt time.Time

	LastWateredAt    *time.Time
	LastFertilizedAt *time.Time

	WateringReminder    ReminderConfig
	FertilizingReminder ReminderConfig

	Health HealthStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
