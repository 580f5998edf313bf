package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("not found")
)

// Open abre (o crea) la base SQLite y aplica el esquema.
// Pensado para instalaciones de un solo nodo; Postgres cubre el resto.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// el driver no tolera escritores concurrentes
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS catalog_entries (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		scientific_name TEXT,
		description TEXT,
		image_url TEXT,
		category TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		watering_frequency TEXT NOT NULL,
		light_requirement TEXT NOT NULL,
		humidity TEXT,
		soil_type TEXT,
		growth_rate TEXT,
		bloom_season TEXT,
		toxicity TEXT,
		pet_friendly INTEGER DEFAULT 0,
		child_friendly INTEGER DEFAULT 0,
		details TEXT NOT NULL DEFAULT '{}',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plants (
		id TEXT PRIMARY KEY,
		owner_user_id TEXT NOT NULL,
		catalog_id TEXT NOT NULL,
		nickname TEXT NOT NULL,
		location TEXT,
		notes TEXT,
		acquired_at DATETIME NOT NULL,
		last_watered_at DATETIME,
		last_fertilized_at DATETIME,
		watering_reminder TEXT NOT NULL DEFAULT '{}',
		fertilizing_reminder TEXT NOT NULL DEFAULT '{}',
		health TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_plants_owner ON plants(owner_user_id);

	CREATE TABLE IF NOT EXISTS care_logs (
		id TEXT PRIMARY KEY,
		plant_id TEXT NOT NULL,
		activity TEXT NOT NULL,
		performed_at DATETIME NOT NULL,
		recorded_at DATETIME NOT NULL,
		notes TEXT,
		problem_observed INTEGER DEFAULT 0,
		next_scheduled_at DATETIME,
		FOREIGN KEY (plant_id) REFERENCES plants(id)
	);
	CREATE INDEX IF NOT EXISTS idx_care_logs_plant ON care_logs(plant_id, performed_at);

	CREATE TABLE IF NOT EXISTS caretaker_grants (
		id TEXT PRIMARY KEY,
		plant_id TEXT NOT NULL,
		owner_user_id TEXT NOT NULL,
		caretaker_user_id TEXT NOT NULL,
		scopes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		revoked_at DATETIME
	);
	CREATE INDEX IF NOT EXISTS idx_grants_plant ON caretaker_grants(plant_id);
	CREATE INDEX IF NOT EXISTS idx_grants_caretaker ON caretaker_grants(caretaker_user_id);
	`
	_, err := db.Exec(schema)
	return err
}

// helpers compartidos por los repos

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	out := t.Time
	return &out
}
