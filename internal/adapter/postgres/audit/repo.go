// Package audit implements the audit log repository using PostgreSQL.
// It provides append-only operations for audit log records.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres"
	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const insertSQL = `
INSERT INTO audit_log (user_id, entity_type, entity_id, action, changes)
VALUES ($1, $2, $3, $4, $5)`

const listByEntitySQL = `
SELECT user_id, entity_type, entity_id, action, changes
FROM audit_log
WHERE entity_type = $1 AND entity_id = $2
ORDER BY created_at DESC
LIMIT $3`

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

// Record appends one audit record (fire-and-forget). Callers treat failures
// as non-fatal: the mutation an audit record describes must never be rolled
// back because its audit write failed.
func (r *Repo) Record(ctx context.Context, record domain.AuditRecord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	changesJSON, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("audit record marshal changes: %w", err)
	}

	if _, err := querier.Exec(ctx, insertSQL,
		record.UserID,
		string(record.EntityType),
		record.EntityID,
		string(record.Action),
		changesJSON,
	); err != nil {
		return postgres.MapError(err, "audit record", record.UserID)
	}

	return nil
}

// ListByEntity returns the change history for one entity, newest first,
// limited to `limit` records.
func (r *Repo) ListByEntity(ctx context.Context, entityType domain.AuditEntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByEntitySQL, string(entityType), entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit records by entity: %w", err)
	}
	defer rows.Close()

	records := []domain.AuditRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list audit records by entity: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list audit records by entity: %w", err)
	}

	return records, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanRecord scans a single audit row from pgx.Row.
func scanRecord(row pgx.Row) (*domain.AuditRecord, error) {
	var (
		record      domain.AuditRecord
		entityType  string
		action      string
		changesJSON []byte
	)

	if err := row.Scan(
		&record.UserID,
		&entityType,
		&record.EntityID,
		&action,
		&changesJSON,
	); err != nil {
		return nil, err
	}

	record.EntityType = domain.AuditEntityType(entityType)
	record.Action = domain.AuditAction(action)

	if len(changesJSON) > 0 {
		changes := make(map[string]any)
		if err := json.Unmarshal(changesJSON, &changes); err != nil {
			return nil, fmt.Errorf("audit record unmarshal changes: %w", err)
		}
		record.Changes = changes
	}

	return &record, nil
}
