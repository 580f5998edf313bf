package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"planter-care/internal/domain/caretakers"
)

type CaretakersRepo struct {
	db *sql.DB
}

func NewCaretakersRepo(db *sql.DB) *CaretakersRepo {
	return &CaretakersRepo{db: db}
}

const grantColumns = `
	id, plant_id, owner_user_id, caretaker_user_id,
	scopes, status, created_at, updated_at, revoked_at`

func (r *CaretakersRepo) Create(ctx context.Context, g caretakers.Grant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO caretaker_grants (
			id, plant_id, owner_user_id, caretaker_user_id,
			scopes, status, created_at, updated_at, revoked_at
		) VALUES (?,?,?,?,?,?,?,?,?)
	`,
		g.ID, g.PlantID, g.OwnerUserID, g.CaretakerUserID,
		joinScopes(g.Scopes), string(g.Status), g.CreatedAt, g.UpdatedAt, toNullTime(g.RevokedAt),
	)
	return err
}

func (r *CaretakersRepo) Update(ctx context.Context, g caretakers.Grant) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE caretaker_grants
		SET scopes = ?, status = ?, updated_at = ?, revoked_at = ?
		WHERE id = ?
	`,
		joinScopes(g.Scopes), string(g.Status), g.UpdatedAt, toNullTime(g.RevokedAt), g.ID,
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
	var scopes, status string
	var revokedAt sql.NullTime

	if err := row.Scan(
		&g.ID, &g.PlantID, &g.OwnerUserID, &g.CaretakerUserID,
		&scopes, &status, &g.CreatedAt, &g.UpdatedAt, &revokedAt,
	); err != nil {
		return caretakers.Grant{}, err
	}

	g.Scopes = splitScopes(scopes)
	g.Status = caretakers.Status(status)
	g.RevokedAt = fromNullTime(revokedAt)
	return g, nil
}

func (r *CaretakersRepo) GetByID(ctx context.Context, id string) (caretakers.Grant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+grantColumns+` FROM caretaker_grants WHERE id = ?`, id)
	g, err := scanGrant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return caretakers.Grant{}, ErrNotFound
	}
	if err != nil {
		return caretakers.Grant{}, err
	}
	return g, nil
}

func (r *CaretakersRepo) ListByPlant(ctx context.Context, plantID string) ([]caretakers.Grant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+grantColumns+`
		FROM caretaker_grants
		WHERE plant_id = ?
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
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+grantColumns+`
		FROM caretaker_grants
		WHERE caretaker_user_id = ?
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
	row := r.db.QueryRowContext(ctx, `
		SELECT`+grantColumns+`
		FROM caretaker_grants
		WHERE plant_id = ?
		  AND caretaker_user_id = ?
		  AND status = 'active'
		ORDER BY updated_at DESC
		LIMIT 1
	`, plantID, caretakerUserID)

	g, err := scanGrant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return caretakers.Grant{}, ErrNotFound
	}
	if err != nil {
		return caretakers.Grant{}, err
	}
	return g, nil
}

// scopes se guardan como CSV; SQLite no tiene arrays.
func joinScopes(in []caretakers.Scope) string {
	parts := make([]string, 0, len(in))
	for _, s := range in {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ",")
}

func splitScopes(in string) []caretakers.Scope {
	if in == "" {
		return []caretakers.Scope{}
	}
	parts := strings.Split(in, ",")
	out := make([]caretakers.Scope, 0, len(parts))
	for _, p := range parts {
		out = append(out, caretakers.Scope(p))
	}
	return out
}
