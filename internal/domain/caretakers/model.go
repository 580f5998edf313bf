package caretakers

import "time"

type Scope string

const (
	ScopePlantRead  Scope = "plants:read"
	ScopePlantEdit  Scope = "plants:edit"
	ScopeLogsRead   Scope = "logs:read"
	ScopeLogsCreate Scope = "logs:create"
)

type Status string

const (
	StatusInvited Status = "invited"
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Grant representa la delegación de cuidado de una planta:
// el dueño invita a un cuidador (plant-sitter) con scopes acotados.
type Grant struct {
	ID string

	PlantID string

	OwnerUserID     string // quien comparte
	CaretakerUserID string // cuidador

	Scopes []Scope
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}
