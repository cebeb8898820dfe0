package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleFilter narrows a schedule listing. Zero-valued fields are ignored.
type ScheduleFilter struct {
	SlotID uuid.UUID
	Status ScheduleStatus
	From   time.Time
	To     time.Time
}

// InspectionSchedule is a planned inspection for a compartment. Multiple
// schedules may target the same compartment; no overlap invariant is
// enforced. SessionID back-links the session that completed this schedule.
type InspectionSchedule struct {
	ID          uuid.UUID
	SlotID      uuid.UUID
	ScheduledAt time.Time
	Title       *string
	Notes       *string
	Status      ScheduleStatus
	SessionID   *uuid.UUID
	CreatedBy   uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
