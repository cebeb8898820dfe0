package testhelper

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// floorCounter hands out unique floor numbers so parallel tests never collide
// on the (floor_no, slot_index) unique constraint.
var floorCounter atomic.Int64

// NextFloor returns a process-unique floor number for tests that create
// slots through the API instead of SeedSlot.
func NextFloor() int64 {
	return floorCounter.Add(1)
}

// SeedSlot creates an ACTIVE, unlocked slot with a wide label range on a
// unique floor. Returns a filled domain.Slot.
func SeedSlot(t *testing.T, pool *pgxpool.Pool) domain.Slot {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	slot := domain.Slot{
		ID:              uuid.New(),
		FloorNo:         int(floorCounter.Add(1)),
		SlotIndex:       1,
		SlotLetter:      "A",
		LabelRangeStart: 1,
		LabelRangeEnd:   100,
		Status:          domain.SlotStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO slots (id, floor_no, slot_index, slot_letter, label_range_start, label_range_end, capacity, status, locked, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		slot.ID, slot.FloorNo, slot.SlotIndex, slot.SlotLetter, slot.LabelRangeStart, slot.LabelRangeEnd,
		slot.Capacity, string(slot.Status), slot.Locked, slot.CreatedAt, slot.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSlot insert slot: %v", err)
	}

	return slot
}

// SeedBundle creates a live bundle in the given slot under the given label
// number. Returns a filled domain.Bundle.
func SeedBundle(t *testing.T, pool *pgxpool.Pool, slotID uuid.UUID, labelNumber int) domain.Bundle {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	bundle := domain.Bundle{
		ID:          uuid.New(),
		SlotID:      slotID,
		LabelNumber: labelNumber,
		Name:        "Test Bundle",
		OwnerID:     uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO bundles (id, slot_id, label_number, name, memo, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		bundle.ID, bundle.SlotID, bundle.LabelNumber, bundle.Name, bundle.Memo, bundle.OwnerID,
		bundle.CreatedAt, bundle.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBundle insert bundle: %v", err)
	}

	return bundle
}

// SeedUnit creates a live unit in the given bundle. expiryDays is relative to
// now: negative for already-expired units. Returns a filled domain.Unit.
func SeedUnit(t *testing.T, pool *pgxpool.Pool, bundleID uuid.UUID, seqNo, expiryDays int) domain.Unit {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	unit := domain.Unit{
		ID:         uuid.New(),
		BundleID:   bundleID,
		SeqNo:      seqNo,
		Name:       "Test Unit",
		ExpiryDate: now.AddDate(0, 0, expiryDays),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO units (id, bundle_id, seq_no, name, expiry_date, quantity, unit_code, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		unit.ID, unit.BundleID, unit.SeqNo, unit.Name, unit.ExpiryDate, unit.Quantity, unit.UnitCode,
		unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUnit insert unit: %v", err)
	}

	return unit
}

// SeedSession creates an IN_PROGRESS inspection session for the given slot,
// without snapshot items. Returns a filled domain.InspectionSession.
func SeedSession(t *testing.T, pool *pgxpool.Pool, slotID uuid.UUID) domain.InspectionSession {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	session := domain.InspectionSession{
		ID:        uuid.New(),
		SlotID:    slotID,
		Status:    domain.SessionStatusInProgress,
		StartedBy: uuid.New(),
		StartedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO inspection_sessions (id, slot_id, schedule_id, status, started_by, started_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		session.ID, session.SlotID, session.ScheduleID, string(session.Status), session.StartedBy,
		session.StartedAt, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSession insert session: %v", err)
	}

	return session
}
