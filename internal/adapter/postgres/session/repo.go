// Package session implements the InspectionSession repository using
// PostgreSQL. All queries use raw SQL since the summary column is JSONB
// requiring custom marshal/unmarshal logic.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres"
	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Repo provides inspection session persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new session repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const sessionColumns = `id, slot_id, schedule_id, status, started_by, started_at, ended_at, summary`

const createSQL = `
INSERT INTO inspection_sessions (id, slot_id, schedule_id, status, started_by, started_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + sessionColumns

const getByIDSQL = `
SELECT ` + sessionColumns + `
FROM inspection_sessions
WHERE id = $1`

// getByIDForUpdateSQL takes a row lock on the session. Everything that
// mutates a session or its action log acquires this lock first, which
// serializes log edits against submit and cancel.
const getByIDForUpdateSQL = getByIDSQL + `
FOR UPDATE`

const getActiveBySlotSQL = `
SELECT ` + sessionColumns + `
FROM inspection_sessions
WHERE slot_id = $1 AND status = 'IN_PROGRESS'`

const submitSQL = `
UPDATE inspection_sessions
SET status = 'SUBMITTED', ended_at = $2, summary = $3
WHERE id = $1 AND status = 'IN_PROGRESS'
RETURNING ` + sessionColumns

const cancelSQL = `
UPDATE inspection_sessions
SET status = 'CANCELED', ended_at = $2
WHERE id = $1 AND status = 'IN_PROGRESS'
RETURNING ` + sessionColumns

const countBySlotSQL = `
SELECT count(*) FROM inspection_sessions WHERE slot_id = $1`

const listBySlotSQL = `
SELECT ` + sessionColumns + `
FROM inspection_sessions
WHERE slot_id = $1
ORDER BY started_at DESC
LIMIT $2 OFFSET $3`

const insertItemSQL = `
INSERT INTO inspection_items (session_id, unit_id, bundle_id, owner_id, label_number, seq_no, unit_name, expiry_date, display_code)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const listItemsSQL = `
SELECT session_id, unit_id, bundle_id, owner_id, label_number, seq_no, unit_name, expiry_date, display_code
FROM inspection_items
WHERE session_id = $1
ORDER BY label_number, seq_no`

const actionColumns = `id, session_id, kind, unit_id, bundle_id, action_type, note, recorded_by, recorded_at`

const insertActionSQL = `
INSERT INTO inspection_actions (session_id, kind, unit_id, bundle_id, action_type, note, recorded_by, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + actionColumns

const deleteActionSQL = `
DELETE FROM inspection_actions
WHERE id = $1 AND session_id = $2`

const listActionsSQL = `
SELECT ` + actionColumns + `
FROM inspection_actions
WHERE session_id = $1
ORDER BY id`

// ---------------------------------------------------------------------------
// Session operations
// ---------------------------------------------------------------------------

// Create inserts a new session row and returns the persisted session without
// items or actions loaded. A partial unique index over IN_PROGRESS rows maps
// a second concurrent start to domain.ErrSessionAlreadyActive.
func (r *Repo) Create(ctx context.Context, session *domain.InspectionSession) (*domain.InspectionSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	startedAt := session.StartedAt.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		session.ID,
		session.SlotID,
		session.ScheduleID,
		string(session.Status),
		session.StartedBy,
		startedAt,
	)

	created, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", session.ID)
	}

	return created, nil
}

// GetByID returns a session by primary key, without items or actions.
// Returns domain.ErrNotFound if the session does not exist.
func (r *Repo) GetByID(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, sessionID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}

	return session, nil
}

// GetByIDForUpdate returns a session and holds a row lock until the
// enclosing transaction ends. Must be called inside a transaction.
func (r *Repo) GetByIDForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDForUpdateSQL, sessionID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", sessionID)
	}

	return session, nil
}

// GetActiveBySlot returns the IN_PROGRESS session for a slot.
// Returns domain.ErrNotFound if no session is in progress.
func (r *Repo) GetActiveBySlot(ctx context.Context, slotID uuid.UUID) (*domain.InspectionSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getActiveBySlotSQL, slotID)

	session, err := scanSession(row)
	if err != nil {
		return nil, postgres.MapError(err, "session", uuid.Nil)
	}

	return session, nil
}

// Submit finalizes an IN_PROGRESS session: status becomes SUBMITTED and the
// derived summary is frozen into the JSONB column.
// Returns domain.ErrSessionNotActive if the session exists but is terminal,
// domain.ErrNotFound if it does not exist.
func (r *Repo) Submit(ctx context.Context, sessionID uuid.UUID, endedAt time.Time, summary domain.SessionSummary) (*domain.InspectionSession, error) {
	return r.finalize(ctx, submitSQL, sessionID, endedAt, &summary)
}

// Cancel marks an IN_PROGRESS session CANCELED. Nothing else changes: the
// snapshot and action log stay for the record, the summary stays NULL.
// Returns domain.ErrSessionNotActive if the session exists but is terminal.
func (r *Repo) Cancel(ctx context.Context, sessionID uuid.UUID, endedAt time.Time) (*domain.InspectionSession, error) {
	return r.finalize(ctx, cancelSQL, sessionID, endedAt, nil)
}

func (r *Repo) finalize(ctx context.Context, sql string, sessionID uuid.UUID, endedAt time.Time, summary *domain.SessionSummary) (*domain.InspectionSession, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	endedAt = endedAt.UTC().Truncate(time.Microsecond)

	args := []any{sessionID, endedAt}
	if summary != nil {
		summaryBytes, err := marshalSummary(summary)
		if err != nil {
			return nil, fmt.Errorf("session %s: marshal summary: %w", sessionID, err)
		}
		args = append(args, summaryBytes)
	}

	row := querier.QueryRow(ctx, sql, args...)

	finalized, err := scanSession(row)
	if err != nil {
		// No matching row: distinguish "gone" from "already terminal".
		mapped := postgres.MapError(err, "session", sessionID)
		if errors.Is(mapped, domain.ErrNotFound) {
			if _, getErr := r.GetByID(ctx, sessionID); getErr == nil {
				return nil, fmt.Errorf("session %s: %w", sessionID, domain.ErrSessionNotActive)
			}
		}
		return nil, mapped
	}

	return finalized, nil
}

// ListBySlot returns session history for a slot with pagination (newest
// first). Returns sessions, total count, and error.
func (r *Repo) ListBySlot(ctx context.Context, slotID uuid.UUID, limit, offset int) ([]*domain.InspectionSession, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := querier.QueryRow(ctx, countBySlotSQL, slotID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sessions by slot: %w", err)
	}

	rows, err := querier.Query(ctx, listBySlotSQL, slotID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions by slot: %w", err)
	}
	defer rows.Close()

	sessions := []*domain.InspectionSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list sessions by slot: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list sessions by slot: %w", err)
	}

	return sessions, total, nil
}

// ---------------------------------------------------------------------------
// Snapshot items
// ---------------------------------------------------------------------------

// InsertItems writes the snapshot rows for a freshly created session. The
// snapshot is append-once: nothing ever updates or deletes these rows.
func (r *Repo) InsertItems(ctx context.Context, items []domain.SessionItem) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	for _, item := range items {
		if _, err := querier.Exec(ctx, insertItemSQL,
			item.SessionID,
			item.UnitID,
			item.BundleID,
			item.OwnerID,
			item.LabelNumber,
			item.SeqNo,
			item.UnitName,
			item.ExpiryDate,
			item.DisplayCode,
		); err != nil {
			return postgres.MapError(err, "session item", item.UnitID)
		}
	}

	return nil
}

// ListItems returns the snapshot rows of a session ordered by label and
// sequence number.
func (r *Repo) ListItems(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listItemsSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session items: %w", err)
	}
	defer rows.Close()

	items := []domain.SessionItem{}
	for rows.Next() {
		var item domain.SessionItem
		if err := rows.Scan(
			&item.SessionID,
			&item.UnitID,
			&item.BundleID,
			&item.OwnerID,
			&item.LabelNumber,
			&item.SeqNo,
			&item.UnitName,
			&item.ExpiryDate,
			&item.DisplayCode,
		); err != nil {
			return nil, fmt.Errorf("list session items: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list session items: %w", err)
	}

	return items, nil
}

// ---------------------------------------------------------------------------
// Action log
// ---------------------------------------------------------------------------

// InsertAction appends an action to the session log and returns it with its
// store-assigned ID. A partial unique index over (session_id, unit_id) maps a
// second action for the same unit to domain.ErrDuplicateAction.
func (r *Repo) InsertAction(ctx context.Context, action *domain.InspectionAction) (*domain.InspectionAction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	recordedAt := action.RecordedAt.UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, insertActionSQL,
		action.SessionID,
		string(action.Kind),
		action.UnitID,
		action.BundleID,
		string(action.Type),
		action.Note,
		action.RecordedBy,
		recordedAt,
	)

	inserted, err := scanAction(row)
	if err != nil {
		return nil, postgres.MapError(err, "action", action.SessionID)
	}

	return inserted, nil
}

// DeleteAction removes one action row, reverting it. The partial unique
// index then admits a replacement action for the same unit.
// Returns domain.ErrNotFound if the action does not exist in the session.
func (r *Repo) DeleteAction(ctx context.Context, sessionID uuid.UUID, actionID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, deleteActionSQL, actionID, sessionID)
	if err != nil {
		return postgres.MapError(err, "action", sessionID)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("action %d in session %s: %w", actionID, sessionID, domain.ErrNotFound)
	}

	return nil
}

// ListActions returns the action log of a session in insertion order.
func (r *Repo) ListActions(ctx context.Context, sessionID uuid.UUID) ([]domain.InspectionAction, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listActionsSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session actions: %w", err)
	}
	defer rows.Close()

	actions := []domain.InspectionAction{}
	for rows.Next() {
		action, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("list session actions: %w", err)
		}
		actions = append(actions, *action)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list session actions: %w", err)
	}

	return actions, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanSession scans a single session row from pgx.Row.
func scanSession(row pgx.Row) (*domain.InspectionSession, error) {
	var (
		session     domain.InspectionSession
		status      string
		summaryJSON []byte
	)

	if err := row.Scan(
		&session.ID,
		&session.SlotID,
		&session.ScheduleID,
		&status,
		&session.StartedBy,
		&session.StartedAt,
		&session.EndedAt,
		&summaryJSON,
	); err != nil {
		return nil, err
	}

	session.Status = domain.SessionStatus(status)

	summary, err := unmarshalSummary(summaryJSON)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", session.ID, err)
	}
	session.Summary = summary

	return &session, nil
}

// scanAction scans a single action row from pgx.Row.
func scanAction(row pgx.Row) (*domain.InspectionAction, error) {
	var (
		action     domain.InspectionAction
		kind       string
		actionType string
	)

	if err := row.Scan(
		&action.ID,
		&action.SessionID,
		&kind,
		&action.UnitID,
		&action.BundleID,
		&actionType,
		&action.Note,
		&action.RecordedBy,
		&action.RecordedAt,
	); err != nil {
		return nil, err
	}

	action.Kind = domain.TargetKind(kind)
	action.Type = domain.ActionType(actionType)

	return &action, nil
}

// ---------------------------------------------------------------------------
// JSONB serialization helpers for SessionSummary
// ---------------------------------------------------------------------------

// sessionSummaryJSON is an intermediate struct for JSON marshaling of
// domain.SessionSummary. Domain types have no json tags, so the repo layer
// handles serialization.
type sessionSummaryJSON struct {
	Pass                int `json:"pass"`
	DisposeExpired      int `json:"dispose_expired"`
	UnregisteredDispose int `json:"unregistered_dispose"`
	WarnStoragePoor     int `json:"warn_storage_poor"`
	WarnInfoMismatch    int `json:"warn_info_mismatch"`
	TotalActions        int `json:"total_actions"`
	PenaltyPoints       int `json:"penalty_points"`
}

// marshalSummary converts a *domain.SessionSummary to JSON bytes for JSONB
// storage. Returns nil for nil input (stored as NULL in DB).
func marshalSummary(s *domain.SessionSummary) ([]byte, error) {
	if s == nil {
		return nil, nil
	}

	j := sessionSummaryJSON{
		Pass:                s.Pass,
		DisposeExpired:      s.DisposeExpired,
		UnregisteredDispose: s.UnregisteredDispose,
		WarnStoragePoor:     s.WarnStoragePoor,
		WarnInfoMismatch:    s.WarnInfoMismatch,
		TotalActions:        s.TotalActions,
		PenaltyPoints:       s.PenaltyPoints,
	}

	return json.Marshal(j)
}

// unmarshalSummary converts JSON bytes from JSONB storage to a
// *domain.SessionSummary. Returns nil for nil/empty input (NULL in DB).
func unmarshalSummary(data []byte) (*domain.SessionSummary, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var j sessionSummaryJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("unmarshal session summary: %w", err)
	}

	return &domain.SessionSummary{
		Pass:                j.Pass,
		DisposeExpired:      j.DisposeExpired,
		UnregisteredDispose: j.UnregisteredDispose,
		WarnStoragePoor:     j.WarnStoragePoor,
		WarnInfoMismatch:    j.WarnInfoMismatch,
		TotalActions:        j.TotalActions,
		PenaltyPoints:       j.PenaltyPoints,
	}, nil
}
