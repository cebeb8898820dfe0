package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

const (
	maxTitleLen = 100
	maxNotesLen = 500
)

// CreateScheduleInput holds the parameters for planning an inspection.
type CreateScheduleInput struct {
	SlotID      uuid.UUID
	ScheduledAt time.Time
	Title       *string
	Notes       *string
}

// Validate checks all fields and collects all errors.
func (i *CreateScheduleInput) Validate() error {
	var errs []domain.FieldError

	if i.SlotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "slot_id", Message: "required"})
	}
	if i.ScheduledAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduled_at", Message: "required"})
	} else if i.ScheduledAt.Before(time.Now().UTC()) {
		errs = append(errs, domain.FieldError{Field: "scheduled_at", Message: "must be in the future"})
	}
	errs = append(errs, validateTexts(i.Title, i.Notes)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateScheduleInput holds the parameters for amending a planned inspection.
type UpdateScheduleInput struct {
	ScheduleID  uuid.UUID
	ScheduledAt time.Time
	Title       *string
	Notes       *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateScheduleInput) Validate() error {
	var errs []domain.FieldError

	if i.ScheduleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "schedule_id", Message: "required"})
	}
	if i.ScheduledAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduled_at", Message: "required"})
	}
	errs = append(errs, validateTexts(i.Title, i.Notes)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateTexts(title, notes *string) []domain.FieldError {
	var errs []domain.FieldError

	if title != nil && len(*title) > maxTitleLen {
		errs = append(errs, domain.FieldError{Field: "title", Message: "too long"})
	}
	if notes != nil && len(*notes) > maxNotesLen {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "too long"})
	}

	return errs
}
