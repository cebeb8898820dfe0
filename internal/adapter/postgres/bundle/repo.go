// Package bundle implements the Bundle and Unit repositories using PostgreSQL.
// Removal is soft: rows keep their data and gain a removed_at timestamp, and
// every read filters on removed_at IS NULL unless stated otherwise.
package bundle

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

// Repo provides bundle and unit persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new bundle repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL constants
// ---------------------------------------------------------------------------

const bundleColumns = `id, slot_id, label_number, name, memo, owner_id, created_at, updated_at, removed_at`

const createBundleSQL = `
INSERT INTO bundles (id, slot_id, label_number, name, memo, owner_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING ` + bundleColumns

const getBundleByIDSQL = `
SELECT ` + bundleColumns + `
FROM bundles
WHERE id = $1 AND removed_at IS NULL`

const updateBundleSQL = `
UPDATE bundles
SET name = $2, memo = $3, updated_at = now()
WHERE id = $1 AND removed_at IS NULL
RETURNING ` + bundleColumns

const removeBundleSQL = `
UPDATE bundles
SET removed_at = $2, updated_at = $2
WHERE id = $1 AND removed_at IS NULL`

const usedLabelNumbersSQL = `
SELECT label_number
FROM bundles
WHERE slot_id = $1 AND removed_at IS NULL
ORDER BY label_number`

const countLiveBySlotSQL = `
SELECT count(*)
FROM bundles
WHERE slot_id = $1 AND removed_at IS NULL`

const unitColumns = `id, bundle_id, seq_no, name, expiry_date, quantity, unit_code, created_at, updated_at, removed_at`

const createUnitSQL = `
INSERT INTO units (id, bundle_id, seq_no, name, expiry_date, quantity, unit_code, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING ` + unitColumns

const getUnitByIDSQL = `
SELECT ` + unitColumns + `
FROM units
WHERE id = $1 AND removed_at IS NULL`

const updateUnitSQL = `
UPDATE units
SET name = $2, expiry_date = $3, quantity = $4, unit_code = $5, updated_at = now()
WHERE id = $1 AND removed_at IS NULL
RETURNING ` + unitColumns

const removeUnitSQL = `
UPDATE units
SET removed_at = $2, updated_at = $2
WHERE id = $1 AND removed_at IS NULL`

// maxSeqNoSQL counts removed units too: sequence numbers are never reused.
const maxSeqNoSQL = `
SELECT coalesce(max(seq_no), 0)
FROM units
WHERE bundle_id = $1`

const countLiveUnitsSQL = `
SELECT count(*)
FROM units
WHERE bundle_id = $1 AND removed_at IS NULL`

const listUnitsByBundleSQL = `
SELECT ` + unitColumns + `
FROM units
WHERE bundle_id = $1 AND removed_at IS NULL
ORDER BY seq_no`

const itemColumns = `
u.id, u.bundle_id, b.slot_id, s.floor_no, s.slot_letter,
b.label_number, u.seq_no, b.name, u.name, b.owner_id,
u.expiry_date, u.quantity, u.unit_code`

const itemFromSQL = `
FROM units u
JOIN bundles b ON b.id = u.bundle_id AND b.removed_at IS NULL
JOIN slots s ON s.id = b.slot_id
WHERE u.removed_at IS NULL`

const listItemsBySlotSQL = `
SELECT ` + itemColumns + itemFromSQL + `
AND b.slot_id = $1
ORDER BY b.label_number, u.seq_no`

const listItemsByOwnerSQL = `
SELECT ` + itemColumns + itemFromSQL + `
AND b.owner_id = $1
ORDER BY s.floor_no, s.slot_index, b.label_number, u.seq_no`

// ---------------------------------------------------------------------------
// Bundle operations
// ---------------------------------------------------------------------------

// CreateBundle inserts a new bundle and returns the persisted domain.Bundle.
// A partial unique index over live bundles maps a label collision to
// domain.ErrAlreadyExists; the caller retries with a fresh label number.
func (r *Repo) CreateBundle(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createBundleSQL,
		bundle.ID,
		bundle.SlotID,
		bundle.LabelNumber,
		bundle.Name,
		bundle.Memo,
		bundle.OwnerID,
		now,
	)

	created, err := scanBundle(row)
	if err != nil {
		return nil, postgres.MapError(err, "bundle", bundle.ID)
	}

	return created, nil
}

// GetBundleByID returns a live bundle by primary key.
// Returns domain.ErrNotFound if the bundle does not exist or was removed.
func (r *Repo) GetBundleByID(ctx context.Context, bundleID uuid.UUID) (*domain.Bundle, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getBundleByIDSQL, bundleID)

	bundle, err := scanBundle(row)
	if err != nil {
		return nil, postgres.MapError(err, "bundle", bundleID)
	}

	return bundle, nil
}

// UpdateBundle rewrites the bundle name and memo.
// Returns domain.ErrNotFound if the bundle does not exist or was removed.
func (r *Repo) UpdateBundle(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateBundleSQL, bundle.ID, bundle.Name, bundle.Memo)

	updated, err := scanBundle(row)
	if err != nil {
		return nil, postgres.MapError(err, "bundle", bundle.ID)
	}

	return updated, nil
}

// RemoveBundle soft-deletes a bundle, freeing its label number for reissue.
// Idempotent at the caller's risk: a second call returns domain.ErrNotFound.
func (r *Repo) RemoveBundle(ctx context.Context, bundleID uuid.UUID, removedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, removeBundleSQL, bundleID, removedAt.UTC().Truncate(time.Microsecond))
	if err != nil {
		return postgres.MapError(err, "bundle", bundleID)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("bundle %s: %w", bundleID, domain.ErrNotFound)
	}

	return nil
}

// UsedLabelNumbers returns the label numbers currently held by live bundles
// of a slot, ascending.
func (r *Repo) UsedLabelNumbers(ctx context.Context, slotID uuid.UUID) ([]int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, usedLabelNumbersSQL, slotID)
	if err != nil {
		return nil, fmt.Errorf("used label numbers: %w", err)
	}
	defer rows.Close()

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("used label numbers: %w", err)
		}
		numbers = append(numbers, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("used label numbers: %w", err)
	}

	return numbers, nil
}

// CountLiveBySlot returns the number of live bundles in a slot.
func (r *Repo) CountLiveBySlot(ctx context.Context, slotID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countLiveBySlotSQL, slotID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bundles by slot: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Unit operations
// ---------------------------------------------------------------------------

// CreateUnit inserts a new unit and returns the persisted domain.Unit.
func (r *Repo) CreateUnit(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)

	row := querier.QueryRow(ctx, createUnitSQL,
		unit.ID,
		unit.BundleID,
		unit.SeqNo,
		unit.Name,
		unit.ExpiryDate,
		unit.Quantity,
		unit.UnitCode,
		now,
	)

	created, err := scanUnit(row)
	if err != nil {
		return nil, postgres.MapError(err, "unit", unit.ID)
	}

	return created, nil
}

// GetUnitByID returns a live unit by primary key.
// Returns domain.ErrNotFound if the unit does not exist or was removed.
func (r *Repo) GetUnitByID(ctx context.Context, unitID uuid.UUID) (*domain.Unit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getUnitByIDSQL, unitID)

	unit, err := scanUnit(row)
	if err != nil {
		return nil, postgres.MapError(err, "unit", unitID)
	}

	return unit, nil
}

// UpdateUnit rewrites the mutable unit fields.
// Returns domain.ErrNotFound if the unit does not exist or was removed.
func (r *Repo) UpdateUnit(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateUnitSQL,
		unit.ID,
		unit.Name,
		unit.ExpiryDate,
		unit.Quantity,
		unit.UnitCode,
	)

	updated, err := scanUnit(row)
	if err != nil {
		return nil, postgres.MapError(err, "unit", unit.ID)
	}

	return updated, nil
}

// RemoveUnit soft-deletes a unit. Its seq_no is retired with it.
// Returns domain.ErrNotFound if the unit does not exist or was removed.
func (r *Repo) RemoveUnit(ctx context.Context, unitID uuid.UUID, removedAt time.Time) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	ct, err := querier.Exec(ctx, removeUnitSQL, unitID, removedAt.UTC().Truncate(time.Microsecond))
	if err != nil {
		return postgres.MapError(err, "unit", unitID)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("unit %s: %w", unitID, domain.ErrNotFound)
	}

	return nil
}

// MaxSeqNo returns the highest sequence number ever assigned in a bundle,
// removed units included. Zero for a bundle with no units.
func (r *Repo) MaxSeqNo(ctx context.Context, bundleID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var max int
	if err := querier.QueryRow(ctx, maxSeqNoSQL, bundleID).Scan(&max); err != nil {
		return 0, fmt.Errorf("max seq_no: %w", err)
	}

	return max, nil
}

// CountLiveUnits returns the number of live units in a bundle.
func (r *Repo) CountLiveUnits(ctx context.Context, bundleID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := querier.QueryRow(ctx, countLiveUnitsSQL, bundleID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count units by bundle: %w", err)
	}

	return count, nil
}

// ListUnitsByBundle returns the live units of a bundle ordered by seq_no.
func (r *Repo) ListUnitsByBundle(ctx context.Context, bundleID uuid.UUID) ([]*domain.Unit, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listUnitsByBundleSQL, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list units by bundle: %w", err)
	}
	defer rows.Close()

	units := []*domain.Unit{}
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("list units by bundle: %w", err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list units by bundle: %w", err)
	}

	return units, nil
}

// ---------------------------------------------------------------------------
// Item read model
// ---------------------------------------------------------------------------

// ListItemsBySlot returns one Item per live unit in a slot, ordered by label
// and sequence number. SlotCode and DisplayCode are derived here; Freshness
// and DDay are left zero for the service layer to fill in (they depend on the
// configured warning window).
func (r *Repo) ListItemsBySlot(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listItemsBySlotSQL, slotID)
	if err != nil {
		return nil, fmt.Errorf("list items by slot: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("list items by slot: %w", err)
	}

	return items, nil
}

// ListItemsByOwner returns one Item per live unit owned by a user, across
// all slots.
func (r *Repo) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listItemsByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list items by owner: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("list items by owner: %w", err)
	}

	return items, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// scanBundle scans a single bundle row from pgx.Row.
func scanBundle(row pgx.Row) (*domain.Bundle, error) {
	var bundle domain.Bundle

	if err := row.Scan(
		&bundle.ID,
		&bundle.SlotID,
		&bundle.LabelNumber,
		&bundle.Name,
		&bundle.Memo,
		&bundle.OwnerID,
		&bundle.CreatedAt,
		&bundle.UpdatedAt,
		&bundle.RemovedAt,
	); err != nil {
		return nil, err
	}

	return &bundle, nil
}

// scanUnit scans a single unit row from pgx.Row.
func scanUnit(row pgx.Row) (*domain.Unit, error) {
	var unit domain.Unit

	if err := row.Scan(
		&unit.ID,
		&unit.BundleID,
		&unit.SeqNo,
		&unit.Name,
		&unit.ExpiryDate,
		&unit.Quantity,
		&unit.UnitCode,
		&unit.CreatedAt,
		&unit.UpdatedAt,
		&unit.RemovedAt,
	); err != nil {
		return nil, err
	}

	return &unit, nil
}

// scanItems scans Item rows from pgx.Rows.
func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	items := []domain.Item{}
	for rows.Next() {
		var (
			item       domain.Item
			floorNo    int
			slotLetter string
		)

		if err := rows.Scan(
			&item.UnitID,
			&item.BundleID,
			&item.SlotID,
			&floorNo,
			&slotLetter,
			&item.LabelNumber,
			&item.SeqNo,
			&item.BundleName,
			&item.UnitName,
			&item.OwnerID,
			&item.ExpiryDate,
			&item.Quantity,
			&item.UnitCode,
		); err != nil {
			return nil, err
		}

		item.SlotCode = fmt.Sprintf("%dF-%s", floorNo, slotLetter)
		item.DisplayCode = domain.UnitDisplayCode(item.SlotCode, item.LabelNumber, item.SeqNo)

		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
