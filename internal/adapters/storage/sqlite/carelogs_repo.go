package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"planter-care/internal/domain/care"
)

type CareLogsRepo struct {
	db *sql.DB
}

func NewCareLogsRepo(db *sql.DB) *CareLogsRepo {
	return &CareLogsRepo{db: db}
}

func (r *CareLogsRepo) Create(ctx context.Context, e care.LogEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO care_logs (
			id, plant_id, activity, performed_at, recorded_at,
			notes, problem_observed, next_scheduled_at
		) VALUES (?,?,?,?,?,?,?,?)
	`,
		e.ID, e.PlantID, string(e.Activity), e.PerformedAt, e.RecordedAt,
		e.Notes, e.ProblemObserved, toNullTime(e.NextScheduledAt),
	)
	return err
}

func scanLogEntry(row interface{ Scan(...any) error }) (care.LogEntry, error) {
	var e care.LogEntry
	var activity string
	var next sql.NullTime

	err := row.Scan(
		&e.ID, &e.PlantID, &activity, &e.PerformedAt, &e.RecordedAt,
		&e.Notes, &e.ProblemObserved, &next,
	)
	if err != nil {
		return care.LogEntry{}, err
	}
	e.Activity = care.ActivityType(activity)
	e.NextScheduledAt = fromNullTime(next)
	return e, nil
}

func (r *CareLogsRepo) GetByID(ctx context.Context, id string) (care.LogEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, plant_id, activity, performed_at, recorded_at,
		       notes, problem_observed, next_scheduled_at
		FROM care_logs WHERE id = ?
	`, id)
	e, err := scanLogEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return care.LogEntry{}, ErrNotFound
	}
	if err != nil {
		return care.LogEntry{}, err
	}
	return e, nil
}

func (r *CareLogsRepo) ListByPlant(ctx context.Context, plantID string, filter care.ListFilter) ([]care.LogEntry, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT id, plant_id, activity, performed_at, recorded_at,
		       notes, problem_observed, next_scheduled_at
		FROM care_logs
		WHERE plant_id = ?`)

	args := []any{plantID}

	if len(filter.Activities) > 0 {
		placeholders := make([]string, 0, len(filter.Activities))
		for _, a := range filter.Activities {
			placeholders = append(placeholders, "?")
			args = append(args, string(a))
		}
		sb.WriteString(" AND activity IN (" + strings.Join(placeholders, ",") + ")")
	}
	if filter.From != nil {
		sb.WriteString(" AND performed_at >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		sb.WriteString(" AND performed_at <= ?")
		args = append(args, *filter.To)
	}
	if filter.Query != "" {
		sb.WriteString(" AND notes LIKE ?")
		args = append(args, "%"+filter.Query+"%")
	}

	sb.WriteString(" ORDER BY performed_at DESC")

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []care.LogEntry{}
	for rows.Next() {
		e, err := scanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
