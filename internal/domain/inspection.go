package domain

import (
	"time"

	"github.com/google/uuid"
)

// InspectionSession is one inspection pass over a compartment. Items are an
// immutable snapshot taken at start time; mutations to the live inventory
// never retroactively change what the session inspected. Summary is derived
// from the action log and frozen only on submission.
type InspectionSession struct {
	ID         uuid.UUID
	SlotID     uuid.UUID
	ScheduleID *uuid.UUID
	Status     SessionStatus
	StartedBy  uuid.UUID
	StartedAt  time.Time
	EndedAt    *time.Time
	Items      []SessionItem
	Actions    []InspectionAction
	Summary    *SessionSummary
}

// Complete reports whether every snapshot item has exactly one recorded
// action. This is a client-facing convenience; it never gates submission.
func (s *InspectionSession) Complete() bool {
	actioned := make(map[uuid.UUID]int, len(s.Actions))
	for _, a := range s.Actions {
		if a.UnitID != nil {
			actioned[*a.UnitID]++
		}
	}
	for _, item := range s.Items {
		if actioned[item.UnitID] != 1 {
			return false
		}
	}
	return true
}

// SessionItem is one snapshot row: the identity and state of a unit at the
// instant the session started.
type SessionItem struct {
	SessionID   uuid.UUID
	UnitID      uuid.UUID
	BundleID    uuid.UUID
	OwnerID     uuid.UUID
	LabelNumber int
	SeqNo       int
	UnitName    string
	ExpiryDate  time.Time
	DisplayCode string
}

// TargetKind tags the two variants of an inspection action: one aimed at a
// registered unit, one recording an unregistered (sticker-less) finding.
type TargetKind string

const (
	TargetRegistered   TargetKind = "REGISTERED"
	TargetUnregistered TargetKind = "UNREGISTERED"
)

func (k TargetKind) IsValid() bool {
	return k == TargetRegistered || k == TargetUnregistered
}

// InspectionAction is one recorded disposition in a session's append-only log.
// ID is assigned by the store and is monotonic within the session.
type InspectionAction struct {
	ID         int64
	SessionID  uuid.UUID
	Kind       TargetKind
	UnitID     *uuid.UUID // set iff Kind == TargetRegistered
	BundleID   *uuid.UUID // set iff Kind == TargetRegistered
	Type       ActionType
	Note       *string
	RecordedBy uuid.UUID
	RecordedAt time.Time
	Penalties  []PenaltyRecord
}

// Validate enforces the tagged-variant shape: a registered action names a
// unit and bundle, an unregistered one names neither.
func (a *InspectionAction) Validate() error {
	var errs []FieldError

	if !a.Type.IsValid() {
		errs = append(errs, FieldError{Field: "action_type", Message: "unknown action type"})
	}

	switch a.Kind {
	case TargetRegistered:
		if a.UnitID == nil || *a.UnitID == uuid.Nil {
			errs = append(errs, FieldError{Field: "unit_id", Message: "required for registered action"})
		}
		if a.BundleID == nil || *a.BundleID == uuid.Nil {
			errs = append(errs, FieldError{Field: "bundle_id", Message: "required for registered action"})
		}
		if a.Type == ActionTypeUnregisteredDispose {
			errs = append(errs, FieldError{Field: "action_type", Message: "UNREGISTERED_DISPOSE cannot target a registered unit"})
		}
	case TargetUnregistered:
		if a.UnitID != nil || a.BundleID != nil {
			errs = append(errs, FieldError{Field: "unit_id", Message: "must be empty for unregistered action"})
		}
		if a.Type != ActionTypeUnregisteredDispose {
			errs = append(errs, FieldError{Field: "action_type", Message: "unregistered action must be UNREGISTERED_DISPOSE"})
		}
	default:
		errs = append(errs, FieldError{Field: "kind", Message: "unknown target kind"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// SessionSummary is the per-action-type count aggregate. It is always
// recomputed from the action log; the copy stored on a SUBMITTED session is a
// frozen derivation, never an independent source of truth.
type SessionSummary struct {
	Pass                int
	DisposeExpired      int
	UnregisteredDispose int
	WarnStoragePoor     int
	WarnInfoMismatch    int
	TotalActions        int
	PenaltyPoints       int
}

// Summarize recomputes the summary from an action log.
func Summarize(actions []InspectionAction) SessionSummary {
	var sum SessionSummary
	for _, a := range actions {
		switch a.Type {
		case ActionTypePass:
			sum.Pass++
		case ActionTypeDisposeExpired:
			sum.DisposeExpired++
		case ActionTypeUnregisteredDispose:
			sum.UnregisteredDispose++
		case ActionTypeWarnStoragePoor:
			sum.WarnStoragePoor++
		case ActionTypeWarnInfoMismatch:
			sum.WarnInfoMismatch++
		}
		sum.TotalActions++
		for _, p := range a.Penalties {
			sum.PenaltyPoints += p.Points
		}
	}
	return sum
}
