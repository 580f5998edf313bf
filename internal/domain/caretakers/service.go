package caretakers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
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

type InviteInput struct {
	PlantID         string
	OwnerUserID     string
	CaretakerUserID string
	Scopes          []Scope
}

func (s *Service) Invite(ctx context.Context, in InviteInput) (Grant, error) {
	plantID := strings.TrimSpace(in.PlantID)
	ownerID := strings.TrimSpace(in.OwnerUserID)
	caretakerID := strings.TrimSpace(in.CaretakerUserID)

	if plantID == "" || ownerID == "" || caretakerID == "" {
		return Grant{}, ErrInvalidInput
	}
	if ownerID == caretakerID {
		return Grant{}, ErrInvalidInput
	}

	// Scopes: si viene vacío, aplicamos default útil para un cuidador
	// (ver la planta + registrar cuidados). Si viene con valores, se
	// validan estrictamente.
	var scopes []Scope
	var err error
	if len(in.Scopes) == 0 {
		scopes = []Scope{ScopePlantRead, ScopeLogsCreate}
	} else {
		scopes, err = normalizeScopesStrict(in.Scopes)
		if err != nil {
			return Grant{}, err
		}
		if len(scopes) == 0 {
			return Grant{}, ErrInvalidInput
		}
	}

	now := s.now()

	// Deduplicar: si ya existe un grant no-revocado para
	// (plantID, ownerID, caretakerID), se actualizan sus scopes.
	existing, allMatches, err := s.findLatestMatch(ctx, plantID, ownerID, caretakerID)
	if err == nil && existing.ID != "" {
		if existing.Status != StatusRevoked {
			_ = s.revokeOtherMatches(ctx, existing.ID, allMatches, now)

			existing.Scopes = scopes
			existing.UpdatedAt = now

			if err := s.repo.Update(ctx, existing); err != nil {
				return Grant{}, err
			}
			return existing, nil
		}
	}

	g := Grant{
		ID:              uuid.NewString(),
		PlantID:         plantID,
		OwnerUserID:     ownerID,
		CaretakerUserID: caretakerID,
		Scopes:          scopes,
		Status:          StatusInvited,
		CreatedAt:       now,
		UpdatedAt:       now,
		RevokedAt:       nil,
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (s *Service) Accept(ctx context.Context, grantID, caretakerUserID string) (Grant, error) {
	grantID = strings.TrimSpace(grantID)
	caretakerUserID = strings.TrimSpace(caretakerUserID)

	if grantID == "" || caretakerUserID == "" {
		return Grant{}, ErrInvalidInput
	}

	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return Grant{}, ErrNotFound
	}

	if g.CaretakerUserID != caretakerUserID {
		return Grant{}, ErrForbidden
	}
	if g.Status == StatusRevoked {
		return Grant{}, ErrBadState
	}

	// Idempotente
	if g.Status == StatusActive {
		return g, nil
	}
	if g.Status != StatusInvited {
		return Grant{}, ErrBadState
	}

	now := s.now()
	g.Status = StatusActive
	g.UpdatedAt = now

	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}

	// Si hubiera otros grants activos/invited para el mismo par, se revocan:
	// debe quedar exactamente uno activo por (planta, cuidador).
	if _, matches, ferr := s.findLatestMatch(ctx, g.PlantID, g.OwnerUserID, g.CaretakerUserID); ferr == nil {
		_ = s.revokeOtherMatches(ctx, g.ID, matches, now)
	}

	return g, nil
}

func (s *Service) Revoke(ctx context.Context, grantID, ownerUserID string) (Grant, error) {
	grantID = strings.TrimSpace(grantID)
	ownerUserID = strings.TrimSpace(ownerUserID)

	if grantID == "" || ownerUserID == "" {
		return Grant{}, ErrInvalidInput
	}

	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return Grant{}, ErrNotFound
	}

	if g.OwnerUserID != ownerUserID {
		return Grant{}, ErrForbidden
	}

	// Idempotente
	if g.Status == StatusRevoked {
		return g, nil
	}

	now := s.now()
	g.Status = StatusRevoked
	g.UpdatedAt = now
	g.RevokedAt = &now

	if err := s.repo.Update(ctx, g); err != nil {
		return Grant{}, err
	}
	return g, nil
}

func (s *Service) ListByPlant(ctx context.Context, plantID string) ([]Grant, error) {
	plantID = strings.TrimSpace(plantID)
	if plantID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPlant(ctx, plantID)
}

func (s *Service) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]Grant, error) {
	caretakerUserID = strings.TrimSpace(caretakerUserID)
	if caretakerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCaretaker(ctx, caretakerUserID)
}

func (s *Service) GetActiveGrant(ctx context.Context, plantID, caretakerUserID string) (Grant, error) {
	plantID = strings.TrimSpace(plantID)
	caretakerUserID = strings.TrimSpace(caretakerUserID)

	if plantID == "" || caretakerUserID == "" {
		return Grant{}, ErrInvalidInput
	}
	g, err := s.repo.GetActiveGrant(ctx, plantID, caretakerUserID)
	if err != nil {
		return Grant{}, ErrNotFound
	}
	return g, nil
}

// HasScope valida si el grant incluye un scope.
func HasScope(g Grant, scope Scope) bool {
	for _, s := range g.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

func (s *Service) findLatestMatch(ctx context.Context, plantID, ownerID, caretakerID string) (Grant, []Grant, error) {
	items, err := s.repo.ListByPlant(ctx, plantID)
	if err != nil {
		return Grant{}, nil, err
	}

	matches := make([]Grant, 0)
	var winner Grant
	hasWinner := false

	for _, g := range items {
		if g.PlantID != plantID || g.OwnerUserID != ownerID || g.CaretakerUserID != caretakerID {
			continue
		}
		matches = append(matches, g)

		if !hasWinner || g.UpdatedAt.After(winner.UpdatedAt) {
			winner = g
			hasWinner = true
		}
	}

	if !hasWinner {
		return Grant{}, matches, ErrNotFound
	}
	return winner, matches, nil
}

func (s *Service) revokeOtherMatches(ctx context.Context, winnerID string, matches []Grant, now time.Time) error {
	for _, g := range matches {
		if g.ID == "" || g.ID == winnerID {
			continue
		}
		if g.Status == StatusRevoked {
			continue
		}
		g.Status = StatusRevoked
		g.UpdatedAt = now
		g.RevokedAt = &now
		_ = s.repo.Update(ctx, g) // best-effort
	}
	return nil
}

func normalizeScopesStrict(in []Scope) ([]Scope, error) {
	allowed := map[Scope]struct{}{
		ScopePlantRead:  {},
		ScopePlantEdit:  {},
		ScopeLogsRead:   {},
		ScopeLogsCreate: {},
	}

	seen := map[Scope]struct{}{}
	out := make([]Scope, 0, len(in))

	for _, raw := range in {
		s := Scope(strings.TrimSpace(string(raw)))
		if s == "" {
			continue
		}
		if _, ok := allowed[s]; !ok {
			return nil, ErrInvalidInput
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out, nil
}
