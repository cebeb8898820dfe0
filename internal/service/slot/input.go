package slot

import (
	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// CreateSlotInput holds the parameters for provisioning a compartment.
type CreateSlotInput struct {
	FloorNo         int
	SlotIndex       int
	SlotLetter      string
	LabelRangeStart int
	LabelRangeEnd   int
	Capacity        *int
}

// Validate checks all fields and collects all errors.
func (i *CreateSlotInput) Validate() error {
	var errs []domain.FieldError

	if i.FloorNo <= 0 {
		errs = append(errs, domain.FieldError{Field: "floor_no", Message: "must be positive"})
	}
	if i.SlotIndex <= 0 {
		errs = append(errs, domain.FieldError{Field: "slot_index", Message: "must be positive"})
	}
	if i.SlotLetter == "" {
		errs = append(errs, domain.FieldError{Field: "slot_letter", Message: "required"})
	}
	errs = append(errs, validateRange(i.LabelRangeStart, i.LabelRangeEnd, i.Capacity)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateSlotInput holds the parameters for adjusting a compartment.
type UpdateSlotInput struct {
	SlotID          uuid.UUID
	LabelRangeStart int
	LabelRangeEnd   int
	Capacity        *int
}

// Validate checks all fields and collects all errors.
func (i *UpdateSlotInput) Validate() error {
	var errs []domain.FieldError

	if i.SlotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "slot_id", Message: "required"})
	}
	errs = append(errs, validateRange(i.LabelRangeStart, i.LabelRangeEnd, i.Capacity)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateRange(start, end int, capacity *int) []domain.FieldError {
	var errs []domain.FieldError

	if start <= 0 {
		errs = append(errs, domain.FieldError{Field: "label_range_start", Message: "must be positive"})
	}
	if end < start {
		errs = append(errs, domain.FieldError{Field: "label_range_end", Message: "must not precede the range start"})
	}
	if capacity != nil && *capacity <= 0 {
		errs = append(errs, domain.FieldError{Field: "capacity", Message: "must be positive when set"})
	}

	return errs
}
