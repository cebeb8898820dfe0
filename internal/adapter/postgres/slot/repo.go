// Package slot implements the Slot repository using PostgreSQL.
package slot

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

// Repo provides slot persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new slot repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const slotColumns = `id, floor_no, slot_index, slot_letter, label_range_start, label_range_end, capacity, status, locked, created_at, updated_at`

const createSQL = `
INSERT INTO slots (id, floor_no, slot_index, slot_letter, label_range_start, label_range_end, capacity, status, locked, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING ` + slotColumns

const getByIDSQL = `
SELECT ` + slotColumns + `
FROM slots
WHERE id = $1`

// getByIDForUpdateSQL takes a row lock. All mutations scoped to one slot
// acquire this lock first, which serializes them per compartment.
const getByIDForUpdateSQL = getByIDSQL + `
FOR UPDATE`

const listSQL = `
SELECT ` + slotColumns + `
FROM slots
ORDER BY floor_no, slot_index`

const setStatusSQL = `
UPDATE slots
SET status = $2, updated_at = now()
WHERE id = $1
RETURNING ` + slotColumns

const setLockedSQL = `
UPDATE slots
SET locked = $2, updated_at = now()
WHERE id = $1`

const updateSQL = `
UPDATE slots
SET label_range_start = $2, label_range_end = $3, capacity = $4, updated_at = now()
WHERE id = $1
RETURNING ` + slotColumns

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a slot by primary key.
// Returns domain.ErrNotFound if the slot does not exist.
func (r *Repo) GetByID(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, slotID)

	slot, err := scanSlot(row)
	if err != nil {
		return nil, postgres.MapError(err, "slot", slotID)
	}

	return slot, nil
}

// GetByIDForUpdate returns a slot and holds a row lock until the enclosing
// transaction ends. Must be called inside a transaction.
func (r *Repo) GetByIDForUpdate(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDForUpdateSQL, slotID)

	slot, err := scanSlot(row)
	if err != nil {
		return nil, postgres.MapError(err, "slot", slotID)
	}

	return slot, nil
}

// List returns all slots ordered by floor and index.
func (r *Repo) List(ctx context.Context) ([]*domain.Slot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	return slots, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new slot and returns the persisted domain.Slot.
// A unique constraint on (floor_no, slot_index) yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createSQL,
		slot.ID,
		slot.FloorNo,
		slot.SlotIndex,
		slot.SlotLetter,
		slot.LabelRangeStart,
		slot.LabelRangeEnd,
		slot.Capacity,
		string(slot.Status),
		slot.Locked,
		now,
	)

	created, err := scanSlot(row)
	if err != nil {
		return nil, postgres.MapError(err, "slot", slot.ID)
	}

	return created, nil
}

// SetStatus updates the slot lifecycle status and returns the updated slot.
func (r *Repo) SetStatus(ctx context.Context, slotID uuid.UUID, status domain.SlotStatus) (*domain.Slot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, setStatusSQL, slotID, string(status))

	updated, err := scanSlot(row)
	if err != nil {
		return nil, postgres.MapError(err, "slot", slotID)
	}

	return updated, nil
}

// SetLocked flips the inspection lock flag.
// Returns domain.ErrNotFound if the slot does not exist.
func (r *Repo) SetLocked(ctx context.Context, slotID uuid.UUID, locked bool) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, setLockedSQL, slotID, locked)
	if err != nil {
		return postgres.MapError(err, "slot", slotID)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("slot %s: %w", slotID, domain.ErrNotFound)
	}

	return nil
}

// Update rewrites the label range and capacity of a slot.
func (r *Repo) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL,
		slot.ID,
		slot.LabelRangeStart,
		slot.LabelRangeEnd,
		slot.Capacity,
	)

	updated, err := scanSlot(row)
	if err != nil {
		return nil, postgres.MapError(err, "slot", slot.ID)
	}

	return updated, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanSlot scans a single slot row from pgx.Row.
func scanSlot(row pgx.Row) (*domain.Slot, error) {
	var (
		slot   domain.Slot
		status string
	)

	if err := row.Scan(
		&slot.ID,
		&slot.FloorNo,
		&slot.SlotIndex,
		&slot.SlotLetter,
		&slot.LabelRangeStart,
		&slot.LabelRangeEnd,
		&slot.Capacity,
		&status,
		&slot.Locked,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	); err != nil {
		return nil, err
	}

	slot.Status = domain.SlotStatus(status)

	return &slot, nil
}

// scanSlots scans multiple slot rows from pgx.Rows.
func scanSlots(rows pgx.Rows) ([]*domain.Slot, error) {
	var slots []*domain.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if slots == nil {
		slots = []*domain.Slot{}
	}

	return slots, nil
}
