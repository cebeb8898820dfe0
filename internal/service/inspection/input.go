package inspection

import (
	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

const maxNoteLen = 500

// StartSessionInput holds the parameters for starting an inspection.
type StartSessionInput struct {
	SlotID     uuid.UUID
	ScheduleID *uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i *StartSessionInput) Validate() error {
	var errs []domain.FieldError

	if i.SlotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "slot_id", Message: "required"})
	}
	if i.ScheduleID != nil && *i.ScheduleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "schedule_id", Message: "must not be empty when set"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ActionInput describes one disposition to record. UnitID is set for
// registered targets and empty for unregistered findings.
type ActionInput struct {
	UnitID *uuid.UUID
	Type   domain.ActionType
	Note   *string
}

// RecordActionsInput holds a batch of dispositions for one session.
type RecordActionsInput struct {
	SessionID uuid.UUID
	Actions   []ActionInput
}

// Validate checks all fields and collects all errors. Variant-shape rules
// (unit presence vs. action type) are enforced later against the snapshot,
// where the bundle reference is known.
func (i *RecordActionsInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if len(i.Actions) == 0 {
		errs = append(errs, domain.FieldError{Field: "actions", Message: "at least one action required"})
	}
	for _, a := range i.Actions {
		if !a.Type.IsValid() {
			errs = append(errs, domain.FieldError{Field: "actions", Message: "unknown action type"})
		}
		if a.UnitID != nil && *a.UnitID == uuid.Nil {
			errs = append(errs, domain.FieldError{Field: "actions", Message: "unit_id must not be empty when set"})
		}
		if a.Note != nil && len(*a.Note) > maxNoteLen {
			errs = append(errs, domain.FieldError{Field: "actions", Message: "note too long"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// RevertActionInput holds the parameters for reverting a recorded action.
type RevertActionInput struct {
	SessionID uuid.UUID
	ActionID  int64
}

// Validate checks all fields and collects all errors.
func (i *RevertActionInput) Validate() error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.ActionID <= 0 {
		errs = append(errs, domain.FieldError{Field: "action_id", Message: "required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
