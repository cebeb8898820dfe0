package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

const (
	maxNameLen  = 100
	maxMemoLen  = 500
	maxUnits    = 50
	maxQuantity = 1000
)

// UnitInput describes one unit to register inside a new bundle.
type UnitInput struct {
	Name       string
	ExpiryDate time.Time
	Quantity   *int
	UnitCode   *string
}

// CreateBundleInput holds the parameters for registering a bundle.
type CreateBundleInput struct {
	SlotID uuid.UUID
	Name   string
	Memo   *string
	Units  []UnitInput
}

// Validate checks all fields and collects all errors.
func (i *CreateBundleInput) Validate() error {
	var errs []domain.FieldError

	if i.SlotID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "slot_id", Message: "required"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Memo != nil && len(*i.Memo) > maxMemoLen {
		errs = append(errs, domain.FieldError{Field: "memo", Message: "too long"})
	}
	if len(i.Units) == 0 {
		errs = append(errs, domain.FieldError{Field: "units", Message: "at least one unit required"})
	}
	if len(i.Units) > maxUnits {
		errs = append(errs, domain.FieldError{Field: "units", Message: "too many units"})
	}
	for _, u := range i.Units {
		errs = append(errs, validateUnitFields(u)...)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateUnitFields(u UnitInput) []domain.FieldError {
	var errs []domain.FieldError

	if u.Name == "" {
		errs = append(errs, domain.FieldError{Field: "units", Message: "unit name required"})
	}
	if len(u.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "units", Message: "unit name too long"})
	}
	if u.ExpiryDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "units", Message: "expiry date required"})
	}
	if u.Quantity != nil && (*u.Quantity <= 0 || *u.Quantity > maxQuantity) {
		errs = append(errs, domain.FieldError{Field: "units", Message: "quantity out of range"})
	}
	return errs
}

// AddUnitInput holds the parameters for adding a unit to an existing bundle.
type AddUnitInput struct {
	BundleID   uuid.UUID
	Name       string
	ExpiryDate time.Time
	Quantity   *int
	UnitCode   *string
}

// Validate checks all fields and collects all errors.
func (i *AddUnitInput) Validate() error {
	var errs []domain.FieldError

	if i.BundleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "bundle_id", Message: "required"})
	}
	errs = append(errs, validateUnitFields(UnitInput{
		Name:       i.Name,
		ExpiryDate: i.ExpiryDate,
		Quantity:   i.Quantity,
		UnitCode:   i.UnitCode,
	})...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateUnitInput holds the parameters for editing a unit. Nil pointer fields
// keep their current value; the non-pointer Name is required.
type UpdateUnitInput struct {
	UnitID     uuid.UUID
	Name       string
	ExpiryDate time.Time
	Quantity   *int
	UnitCode   *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateUnitInput) Validate() error {
	var errs []domain.FieldError

	if i.UnitID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "unit_id", Message: "required"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.ExpiryDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "expiry_date", Message: "required"})
	}
	if i.Quantity != nil && (*i.Quantity <= 0 || *i.Quantity > maxQuantity) {
		errs = append(errs, domain.FieldError{Field: "quantity", Message: "out of range"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateBundleInput holds the parameters for renaming a bundle or editing
// its memo.
type UpdateBundleInput struct {
	BundleID uuid.UUID
	Name     string
	Memo     *string
}

// Validate checks all fields and collects all errors.
func (i *UpdateBundleInput) Validate() error {
	var errs []domain.FieldError

	if i.BundleID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "bundle_id", Message: "required"})
	}
	if i.Name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(i.Name) > maxNameLen {
		errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
	}
	if i.Memo != nil && len(*i.Memo) > maxMemoLen {
		errs = append(errs, domain.FieldError{Field: "memo", Message: "too long"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
