// Package penalty implements the penalty ledger using PostgreSQL.
package penalty

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres"
	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Repo provides penalty persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new penalty repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const penaltyColumns = `id, user_id, session_id, action_id, points, reason, issued_at, expires_at`

const insertSQL = `
INSERT INTO penalties (id, user_id, session_id, action_id, points, reason, issued_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + penaltyColumns

const listByUserSQL = `
SELECT ` + penaltyColumns + `
FROM penalties
WHERE user_id = $1
ORDER BY issued_at DESC`

const listActiveByUserSQL = `
SELECT ` + penaltyColumns + `
FROM penalties
WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > $2)
ORDER BY issued_at DESC`

const listBySessionSQL = `
SELECT ` + penaltyColumns + `
FROM penalties
WHERE session_id = $1
ORDER BY action_id, id`

const activePointsByUserSQL = `
SELECT coalesce(sum(points), 0)
FROM penalties
WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > $2)`

const deleteByActionSQL = `
DELETE FROM penalties
WHERE session_id = $1 AND action_id = $2`

const deleteBySessionSQL = `
DELETE FROM penalties
WHERE session_id = $1`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Insert records one penalty and returns it as persisted.
func (r *Repo) Insert(ctx context.Context, record *domain.PenaltyRecord) (*domain.PenaltyRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	issuedAt := record.IssuedAt.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, insertSQL,
		record.ID,
		record.UserID,
		record.SessionID,
		record.ActionID,
		record.Points,
		record.Reason,
		issuedAt,
		record.ExpiresAt,
	)

	inserted, err := scanPenalty(row)
	if err != nil {
		return nil, postgres.MapError(err, "penalty", record.ID)
	}

	return inserted, nil
}

// DeleteByAction removes the penalties issued for one action. Used when an
// action is reverted before submission.
func (r *Repo) DeleteByAction(ctx context.Context, sessionID uuid.UUID, actionID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteByActionSQL, sessionID, actionID); err != nil {
		return postgres.MapError(err, "penalty", sessionID)
	}

	return nil
}

// DeleteBySession removes every penalty issued in one session. Used when a
// session is canceled so abandoned findings never count against anyone.
func (r *Repo) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteBySessionSQL, sessionID); err != nil {
		return postgres.MapError(err, "penalty", sessionID)
	}

	return nil
}

// ListByUser returns every penalty issued to a user, newest first.
// When activeOnly is set, expired penalties are excluded.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]domain.PenaltyRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if activeOnly {
		rows, err = querier.Query(ctx, listActiveByUserSQL, userID, time.Now().UTC())
	} else {
		rows, err = querier.Query(ctx, listByUserSQL, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("list penalties by user: %w", err)
	}
	defer rows.Close()

	records, err := scanPenalties(rows)
	if err != nil {
		return nil, fmt.Errorf("list penalties by user: %w", err)
	}

	return records, nil
}

// ListBySession returns the penalties issued in one session in action order.
func (r *Repo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.PenaltyRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listBySessionSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list penalties by session: %w", err)
	}
	defer rows.Close()

	records, err := scanPenalties(rows)
	if err != nil {
		return nil, fmt.Errorf("list penalties by session: %w", err)
	}

	return records, nil
}

// ActivePointsByUser returns the sum of unexpired penalty points for a user.
func (r *Repo) ActivePointsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var points int
	if err := querier.QueryRow(ctx, activePointsByUserSQL, userID, time.Now().UTC()).Scan(&points); err != nil {
		return 0, fmt.Errorf("active points by user: %w", err)
	}

	return points, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanPenalty scans a single penalty row from pgx.Row.
func scanPenalty(row pgx.Row) (*domain.PenaltyRecord, error) {
	var record domain.PenaltyRecord

	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.SessionID,
		&record.ActionID,
		&record.Points,
		&record.Reason,
		&record.IssuedAt,
		&record.ExpiresAt,
	); err != nil {
		return nil, err
	}

	return &record, nil
}

// scanPenalties scans multiple penalty rows from pgx.Rows.
func scanPenalties(rows pgx.Rows) ([]domain.PenaltyRecord, error) {
	records := []domain.PenaltyRecord{}
	for rows.Next() {
		record, err := scanPenalty(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
