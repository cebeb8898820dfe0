package slot

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

func ptr[T any](v T) *T { return &v }

func newService(slots slotRepo) *Service {
	return NewService(slog.Default(), slots, &auditLoggerMock{})
}

// adminCtx returns a context carrying an ADMIN identity.
func adminCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithIdentity(context.Background(), ctxutil.Identity{
		UserID: userID,
		Roles:  []domain.Role{domain.RoleAdmin},
	})
}

// managerCtx returns a context carrying a FLOOR_MANAGER identity.
func managerCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithIdentity(context.Background(), ctxutil.Identity{
		UserID: userID,
		Roles:  []domain.Role{domain.RoleFloorManager},
	})
}

func validCreateInput() CreateSlotInput {
	return CreateSlotInput{
		FloorNo:         3,
		SlotIndex:       1,
		SlotLetter:      "A",
		LabelRangeStart: 1,
		LabelRangeEnd:   40,
		Capacity:        ptr(20),
	}
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	slots := &slotRepoMock{
		CreateFunc: func(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
			if slot.Status != domain.SlotStatusActive {
				t.Errorf("expected new slot ACTIVE, got %s", slot.Status)
			}
			return slot, nil
		},
	}

	svc := newService(slots)

	created, err := svc.Create(adminCtx(uuid.New()), validCreateInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Code() != "3F-A" {
		t.Errorf("expected code 3F-A, got %s", created.Code())
	}
}

func TestService_Create_ManagerForbidden(t *testing.T) {
	t.Parallel()

	svc := newService(&slotRepoMock{})

	_, err := svc.Create(managerCtx(uuid.New()), validCreateInput())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestService_Create_InvertedRange(t *testing.T) {
	t.Parallel()

	svc := newService(&slotRepoMock{})

	input := validCreateInput()
	input.LabelRangeStart = 10
	input.LabelRangeEnd = 5

	_, err := svc.Create(adminCtx(uuid.New()), input)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestService_SetStatus_RetiredIsFinal(t *testing.T) {
	t.Parallel()

	slotID := uuid.New()

	slots := &slotRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
			return &domain.Slot{ID: slotID, Status: domain.SlotStatusRetired}, nil
		},
	}

	svc := newService(slots)

	_, err := svc.SetStatus(adminCtx(uuid.New()), slotID, domain.SlotStatusActive)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestService_SetStatus(t *testing.T) {
	t.Parallel()

	slotID := uuid.New()

	slots := &slotRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Slot, error) {
			return &domain.Slot{ID: slotID, Status: domain.SlotStatusActive}, nil
		},
		SetStatusFunc: func(ctx context.Context, id uuid.UUID, status domain.SlotStatus) (*domain.Slot, error) {
			return &domain.Slot{ID: slotID, Status: status}, nil
		},
	}

	svc := newService(slots)

	updated, err := svc.SetStatus(adminCtx(uuid.New()), slotID, domain.SlotStatusSuspended)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.SlotStatusSuspended {
		t.Errorf("expected SUSPENDED, got %s", updated.Status)
	}
}

func TestService_List_RequiresIdentity(t *testing.T) {
	t.Parallel()

	svc := newService(&slotRepoMock{})

	_, err := svc.List(context.Background())
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
