package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"planter-care/internal/domain/plants"
)

type PlantsRepo struct {
	db *sql.DB
}

func NewPlantsRepo(db *sql.DB) *PlantsRepo {
	return &PlantsRepo{db: db}
}

const plantColumns = `
	id, owner_user_id, catalog_id, nickname, location, notes,
	acquired_at, last_watered_at, last_fertilized_at,
	watering_reminder, fertilizing_reminder, health, created_at, updated_at`

func (r *PlantsRepo) Create(ctx context.Context, p plants.Plant) error {
	watering, err := json.Marshal(p.WateringReminder)
	if err != nil {
		return err
	}
	fertilizing, err := json.Marshal(p.FertilizingReminder)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO plants (
			id, owner_user_id, catalog_id, nickname, location, notes,
			acquired_at, last_watered_at, last_fertilized_at,
			watering_reminder, fertilizing_reminder, health, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID, p.OwnerUserID, p.CatalogID, p.Nickname, p.Location, p.Notes,
		p.AcquiredAt, toNullTime(p.LastWateredAt), toNullTime(p.LastFertilizedAt),
		watering, fertilizing, string(p.Health), p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PlantsRepo) Update(ctx context.Context, p plants.Plant) error {
	watering, err := json.Marshal(p.WateringReminder)
	if err != nil {
		return err
	}
	fertilizing, err := json.Marshal(p.FertilizingReminder)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE plants SET
			nickname = $1,
			location = $2,
			notes = $3,
			acquired_at = $4,
			last_watered_at = $5,
			last_fertilized_at = $6,
			watering_reminder = $7,
			fertilizing_reminder = $8,
			health = $9,
			updated_at = $10
		WHERE id = $11
	`,
		p.Nickname, p.Location, p.Notes, p.AcquiredAt,
		toNullTime(p.LastWateredAt), toNullTime(p.LastFertilizedAt),
		watering, fertilizing, string(p.Health), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PlantsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPlant(row interface{ Scan(...any) error }) (plants.Plant, error) {
	var p plants.Plant
	var lastWatered, lastFertilized sql.NullTime
	var watering, fertilizing []byte
	var health string

	err := row.Scan(
		&p.ID, &p.OwnerUserID, &p.CatalogID, &p.Nickname, &p.Location, &p.Notes,
		&p.AcquiredAt, &lastWatered, &lastFertilized,
		&watering, &fertilizing, &health, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return plants.Plant{}, err
	}

	p.LastWateredAt = fromNullTime(lastWatered)
	p.LastFertilizedAt = fromNullTime(lastFertilized)
	p.Health = plants.HealthStatus(health)

	if err := json.Unmarshal(watering, &p.WateringReminder); err != nil {
		return plants.Plant{}, err
	}
	if err := json.Unmarshal(fertilizing, &p.FertilizingReminder); err != nil {
		return plants.Plant{}, err
	}
	return p, nil
}

func (r *PlantsRepo) GetByID(ctx context.Context, id string) (plants.Plant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+plantColumns+` FROM plants WHERE id = $1`, id)
	p, err := scanPlant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return plants.Plant{}, ErrNotFound
	}
	if err != nil {
		return plants.Plant{}, err
	}
	return p, nil
}

func (r *PlantsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]plants.Plant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+plantColumns+`
		FROM plants
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []plants.Plant{}
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlantsRepo) ListOwners(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT owner_user_id FROM plants ORDER BY owner_user_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}
