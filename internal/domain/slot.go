package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Slot is a storage compartment in a shared refrigerator. Each slot owns an
// inclusive label-number range from which its bundles draw their labels.
// Slots are provisioned administratively and never deleted, only RETIRED.
type Slot struct {
	ID              uuid.UUID
	FloorNo         int
	SlotIndex       int
	SlotLetter      string
	LabelRangeStart int
	LabelRangeEnd   int
	Capacity        *int // nil means unbounded
	Status          SlotStatus
	Locked          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Code returns the human-readable compartment code, e.g. "3F-A".
func (s *Slot) Code() string {
	return fmt.Sprintf("%dF-%s", s.FloorNo, s.SlotLetter)
}

// Usable reports whether the slot accepts mutations: ACTIVE and not locked.
// Locked is independent of status (a slot is locked mid-inspection).
func (s *Slot) Usable() bool {
	return s.Status == SlotStatusActive && !s.Locked
}

// RangeSize returns the number of label numbers the slot can issue.
func (s *Slot) RangeSize() int {
	return s.LabelRangeEnd - s.LabelRangeStart + 1
}
