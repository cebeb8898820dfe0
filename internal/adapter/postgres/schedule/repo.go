// Package schedule implements the InspectionSchedule repository using
// PostgreSQL. Listing takes an optional filter, so the list query is built
// dynamically with squirrel; everything else is raw SQL.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres"
	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Repo provides inspection schedule persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new schedule repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const scheduleColumns = `id, slot_id, scheduled_at, title, notes, status, session_id, created_by, created_at, updated_at`

const createSQL = `
INSERT INTO inspection_schedules (id, slot_id, scheduled_at, title, notes, status, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING ` + scheduleColumns

const getByIDSQL = `
SELECT ` + scheduleColumns + `
FROM inspection_schedules
WHERE id = $1`

const updateSQL = `
UPDATE inspection_schedules
SET scheduled_at = $2, title = $3, notes = $4, updated_at = now()
WHERE id = $1 AND status = 'SCHEDULED'
RETURNING ` + scheduleColumns

const setStatusSQL = `
UPDATE inspection_schedules
SET status = $2, session_id = $3, updated_at = now()
WHERE id = $1
RETURNING ` + scheduleColumns

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Create inserts a new schedule and returns the persisted domain record.
func (r *Repo) Create(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	scheduledAt := sched.ScheduledAt.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		sched.ID,
		sched.SlotID,
		scheduledAt,
		sched.Title,
		sched.Notes,
		string(sched.Status),
		sched.CreatedBy,
		now,
	)

	created, err := scanSchedule(row)
	if err != nil {
		return nil, postgres.MapError(err, "schedule", sched.ID)
	}

	return created, nil
}

// GetByID returns a schedule by primary key.
// Returns domain.ErrNotFound if the schedule does not exist.
func (r *Repo) GetByID(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, scheduleID)

	sched, err := scanSchedule(row)
	if err != nil {
		return nil, postgres.MapError(err, "schedule", scheduleID)
	}

	return sched, nil
}

// Update rewrites time, title and notes of a still-SCHEDULED schedule.
// Returns domain.ErrNotFound once the schedule has moved past SCHEDULED.
func (r *Repo) Update(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	scheduledAt := sched.ScheduledAt.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, updateSQL, sched.ID, scheduledAt, sched.Title, sched.Notes)

	updated, err := scanSchedule(row)
	if err != nil {
		return nil, postgres.MapError(err, "schedule", sched.ID)
	}

	return updated, nil
}

// SetStatus transitions a schedule and optionally back-links the session
// that consumed it (nil for transitions without a session).
func (r *Repo) SetStatus(ctx context.Context, scheduleID uuid.UUID, status domain.ScheduleStatus, sessionID *uuid.UUID) (*domain.InspectionSchedule, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, setStatusSQL, scheduleID, string(status), sessionID)

	updated, err := scanSchedule(row)
	if err != nil {
		return nil, postgres.MapError(err, "schedule", scheduleID)
	}

	return updated, nil
}

// List returns schedules matching the filter, soonest first.
func (r *Repo) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.InspectionSchedule, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := squirrel.Select(scheduleColumns).
		From("inspection_schedules").
		OrderBy("scheduled_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.SlotID != uuid.Nil {
		builder = builder.Where(squirrel.Eq{"slot_id": filter.SlotID})
	}
	if filter.Status != "" {
		builder = builder.Where(squirrel.Eq{"status": string(filter.Status)})
	}
	if !filter.From.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"scheduled_at": filter.From.UTC()})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(squirrel.Lt{"scheduled_at": filter.To.UTC()})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list schedules query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	schedules := []*domain.InspectionSchedule{}
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("list schedules: %w", err)
		}
		schedules = append(schedules, sched)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	return schedules, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanSchedule scans a single schedule row from pgx.Row.
func scanSchedule(row pgx.Row) (*domain.InspectionSchedule, error) {
	var (
		sched  domain.InspectionSchedule
		status string
	)

	if err := row.Scan(
		&sched.ID,
		&sched.SlotID,
		&sched.ScheduledAt,
		&sched.Title,
		&sched.Notes,
		&status,
		&sched.SessionID,
		&sched.CreatedBy,
		&sched.CreatedAt,
		&sched.UpdatedAt,
	); err != nil {
		return nil, err
	}

	sched.Status = domain.ScheduleStatus(status)

	return &sched, nil
}
