package domain

import (
	"time"

	"github.com/google/uuid"
)

// Bundle is a registered package: one or more physical units grouped under a
// single label number, unique among the live bundles of its slot. A bundle has
// no independent existence: once its last unit is removed, it is removed too.
type Bundle struct {
	ID          uuid.UUID
	SlotID      uuid.UUID
	LabelNumber int
	Name        string
	Memo        *string // private to the owner
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	RemovedAt   *time.Time
}

// Removed reports whether the bundle has been soft-deleted.
func (b *Bundle) Removed() bool { return b.RemovedAt != nil }

// Unit is one discrete item inside a bundle. SeqNo is a per-bundle monotonic
// counter assigned at creation; it is never renumbered or reused after
// deletion within the same bundle.
type Unit struct {
	ID         uuid.UUID
	BundleID   uuid.UUID
	SeqNo      int
	Name       string
	ExpiryDate time.Time // date precision
	Quantity   *int
	UnitCode   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	RemovedAt  *time.Time
}

// Removed reports whether the unit has been soft-deleted.
func (u *Unit) Removed() bool { return u.RemovedAt != nil }

// Item is the canonical read model: one row per live unit, joined with its
// bundle and slot identity. Inspection snapshots and inventory listings are
// both built from this shape; no other read shape may diverge from it.
type Item struct {
	UnitID      uuid.UUID
	BundleID    uuid.UUID
	SlotID      uuid.UUID
	SlotCode    string
	LabelNumber int
	SeqNo       int
	BundleName  string
	UnitName    string
	OwnerID     uuid.UUID
	ExpiryDate  time.Time
	Quantity    *int
	UnitCode    *string
	DisplayCode string
	Freshness   Freshness
	DDay        string
}
