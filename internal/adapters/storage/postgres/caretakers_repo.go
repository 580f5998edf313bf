package postgres

import (
	"context"
	"database/sql"
	"strings"

	"planter-care/internal/domain/caretakers"
)

type CaretakersRepo struct {
	db *sql.DB
}

func NewCaretakersRepo(db *sql.DB) *CaretakersRepo {
	return &CaretakersRepo{db: db}
}

func (r *CaretakersRepo) Create(ctx context.Context, g caretakers.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO caretaker_grants (
			id, plant_id, owner_user_id, caretaker_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		g.ID,
		g.PlantID,
		g.OwnerUserID,
		g.CaretakerUserID,
		scopesToTextArray(g.Scopes),
		string(g.Status),
		g.CreatedAt,
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	return err
}

func (r *CaretakersRepo) Update(ctx context.Context, g caretakers.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE caretaker_grants
		SET
			scopes = $2,
			status = $3,
			updated_at = $4,
			revoked_at = $5
		WHERE id = $1
	`,
		g.ID,
		scopesToTextArray(g.Scopes),
		string(g.Status),
		g.UpdatedAt,
		toNullTime(g.RevokedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGrant(row interface{ Scan(...any) error }) (caretakers.Grant, error) {
	var g caretakers.Grant
	var status string
	var scopes []string
	var revokedAt sql.NullTime

	if err := row.Scan(
		&g.ID,
		&g.PlantID,
		&g.OwnerUserID,
		&g.CaretakerUserID,
		&scopes,
		&status,
		&g.CreatedAt,
		&g.UpdatedAt,
		&revokedAt,
	); err != nil {
		return caretakers.Grant{}, err
	}

	g.Status = caretakers.Status(status)
	g.Scopes = textArrayToScopes(scopes)
	g.RevokedAt = fromNullTime(revokedAt)
	return g, nil
}

func (r *CaretakersRepo) GetByID(ctx context.Context, id string) (caretakers.Grant, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return caretakers.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, plant_id, owner_user_id, caretaker_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		FROM caretaker_grants
		WHERE id = $1
	`, id)

	g, err := scanGrant(row)
	if err == sql.ErrNoRows {
		return caretakers.Grant{}, ErrNotFound
	}
	if err != nil {
		return caretakers.Grant{}, err
	}
	return g, nil
}

func (r *CaretakersRepo) ListByPlant(ctx context.Context, plantID string) ([]caretakers.Grant, error) {
	plantID = strings.TrimSpace(plantID)
	if plantID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, plant_id, owner_user_id, caretaker_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		FROM caretaker_grants
		WHERE plant_id = $1
		ORDER BY created_at ASC
	`, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]caretakers.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *CaretakersRepo) ListByCaretaker(ctx context.Context, caretakerUserID string) ([]caretakers.Grant, error) {
	caretakerUserID = strings.TrimSpace(caretakerUserID)
	if caretakerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, plant_id, owner_user_id, caretaker_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		FROM caretaker_grants
		WHERE caretaker_user_id = $1
		ORDER BY updated_at DESC
	`, caretakerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]caretakers.Grant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *CaretakersRepo) GetActiveGrant(ctx context.Context, plantID, caretakerUserID string) (caretakers.Grant, error) {
	plantID = strings.TrimSpace(plantID)
	caretakerUserID = strings.TrimSpace(caretakerUserID)
	if plantID == "" || caretakerUserID == "" {
		return caretakers.Grant{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, plant_id, owner_user_id, caretaker_user_id,
			scopes, status,
			created_at, updated_at, revoked_at
		FROM caretaker_grants
		WHERE plant_id = $1
		  AND caretaker_user_id = $2
		  AND status = 'active'
		ORDER BY updated_at DESC
		LIMIT 1
	`, plantID, caretakerUserID)

	g, err := scanGrant(row)
	if err == sql.ErrNoRows {
		return caretakers.Grant{}, ErrNotFound
	}
	if err != nil {
		return caretakers.Grant{}, err
	}
	return g, nil
}

// helpers
func scopesToTextArray(in []caretakers.Scope) []string {
	if len(in) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func textArrayToScopes(in []string) []caretakers.Scope {
	if len(in) == 0 {
		return []caretakers.Scope{}
	}
	out := make([]caretakers.Scope, 0, len(in))
	for _, s := range in {
		out = append(out, caretakers.Scope(s))
	}
	return out
}
