package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func registeredAction(unitID uuid.UUID, typ ActionType) InspectionAction {
	bundleID := uuid.New()
	return InspectionAction{
		Kind:     TargetRegistered,
		UnitID:   &unitID,
		BundleID: &bundleID,
		Type:     typ,
	}
}

func TestInspectionAction_Validate_Registered(t *testing.T) {
	t.Parallel()

	a := registeredAction(uuid.New(), ActionTypePass)
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInspectionAction_Validate_RegisteredMissingUnit(t *testing.T) {
	t.Parallel()

	bundleID := uuid.New()
	a := InspectionAction{
		Kind:     TargetRegistered,
		BundleID: &bundleID,
		Type:     ActionTypePass,
	}
	if err := a.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestInspectionAction_Validate_UnregisteredMustBeDispose(t *testing.T) {
	t.Parallel()

	a := InspectionAction{Kind: TargetUnregistered, Type: ActionTypePass}
	if err := a.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	a = InspectionAction{Kind: TargetUnregistered, Type: ActionTypeUnregisteredDispose}
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInspectionAction_Validate_RegisteredCannotBeUnregisteredDispose(t *testing.T) {
	t.Parallel()

	a := registeredAction(uuid.New(), ActionTypeUnregisteredDispose)
	if err := a.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	actions := []InspectionAction{
		registeredAction(uuid.New(), ActionTypePass),
		registeredAction(uuid.New(), ActionTypePass),
		registeredAction(uuid.New(), ActionTypeDisposeExpired),
		registeredAction(uuid.New(), ActionTypeWarnStoragePoor),
		{Kind: TargetUnregistered, Type: ActionTypeUnregisteredDispose},
	}
	actions[2].Penalties = []PenaltyRecord{{UserID: &userID, Points: 3}}
	actions[3].Penalties = []PenaltyRecord{{UserID: &userID, Points: 1}}

	sum := Summarize(actions)

	if sum.Pass != 2 {
		t.Errorf("Pass = %d, want 2", sum.Pass)
	}
	if sum.DisposeExpired != 1 {
		t.Errorf("DisposeExpired = %d, want 1", sum.DisposeExpired)
	}
	if sum.UnregisteredDispose != 1 {
		t.Errorf("UnregisteredDispose = %d, want 1", sum.UnregisteredDispose)
	}
	if sum.WarnStoragePoor != 1 {
		t.Errorf("WarnStoragePoor = %d, want 1", sum.WarnStoragePoor)
	}
	if sum.TotalActions != 5 {
		t.Errorf("TotalActions = %d, want 5", sum.TotalActions)
	}
	if sum.PenaltyPoints != 4 {
		t.Errorf("PenaltyPoints = %d, want 4", sum.PenaltyPoints)
	}
}

func TestSession_Complete(t *testing.T) {
	t.Parallel()

	u1, u2 := uuid.New(), uuid.New()
	session := InspectionSession{
		Status:    SessionStatusInProgress,
		StartedAt: time.Now(),
		Items: []SessionItem{
			{UnitID: u1},
			{UnitID: u2},
		},
	}

	if session.Complete() {
		t.Error("empty action log should not be complete")
	}

	session.Actions = []InspectionAction{registeredAction(u1, ActionTypePass)}
	session.Actions[0].UnitID = &u1
	if session.Complete() {
		t.Error("one of two items actioned should not be complete")
	}

	session.Actions = append(session.Actions, registeredAction(u2, ActionTypeDisposeExpired))
	session.Actions[1].UnitID = &u2
	if !session.Complete() {
		t.Error("all items actioned exactly once should be complete")
	}

	// Unregistered actions never count toward item completeness.
	session.Actions = append(session.Actions, InspectionAction{
		Kind: TargetUnregistered,
		Type: ActionTypeUnregisteredDispose,
	})
	if !session.Complete() {
		t.Error("extra unregistered action should not break completeness")
	}
}

func TestStaticPenaltyPolicy(t *testing.T) {
	t.Parallel()

	policy := StaticPenaltyPolicy{WarningPoints: 1, DisposePoints: 3}

	tests := []struct {
		typ  ActionType
		want int
	}{
		{ActionTypePass, 0},
		{ActionTypeWarnStoragePoor, 1},
		{ActionTypeWarnInfoMismatch, 1},
		{ActionTypeDisposeExpired, 3},
		{ActionTypeUnregisteredDispose, 0},
	}

	for _, tt := range tests {
		if got := policy.PointsFor(tt.typ); got != tt.want {
			t.Errorf("PointsFor(%s) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}
