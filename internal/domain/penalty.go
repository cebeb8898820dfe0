package domain

import (
	"time"

	"github.com/google/uuid"
)

// PenaltyRecord is a point assessment issued as a consequence of an
// inspection action. UserID is nil for unregistered findings, which carry no
// owner attribution but still count toward the session's discard totals.
type PenaltyRecord struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	SessionID uuid.UUID
	ActionID  int64
	Points    int
	Reason    string
	IssuedAt  time.Time
	ExpiresAt *time.Time
}

// PenaltyPolicy decides how many points an action type costs. The session
// engine never hardcodes point values; they are policy-owned.
type PenaltyPolicy interface {
	PointsFor(actionType ActionType) int
}

// StaticPenaltyPolicy is the fixed table used in production, loaded from
// configuration.
type StaticPenaltyPolicy struct {
	WarningPoints int
	DisposePoints int
}

func (p StaticPenaltyPolicy) PointsFor(actionType ActionType) int {
	switch actionType {
	case ActionTypeDisposeExpired:
		return p.DisposePoints
	case ActionTypeWarnStoragePoor, ActionTypeWarnInfoMismatch:
		return p.WarningPoints
	case ActionTypePass, ActionTypeUnregisteredDispose:
		return 0
	default:
		return 0
	}
}
