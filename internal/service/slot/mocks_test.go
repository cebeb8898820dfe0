package slot

import (
	"context"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Hand-maintained mocks: a struct per consumer interface with one Func field
// per method. A nil Func panics, which makes unexpected calls fail loudly.

var _ slotRepo = &slotRepoMock{}

type slotRepoMock struct {
	GetByIDFunc   func(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
	ListFunc      func(ctx context.Context) ([]*domain.Slot, error)
	CreateFunc    func(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
	SetStatusFunc func(ctx context.Context, slotID uuid.UUID, status domain.SlotStatus) (*domain.Slot, error)
	UpdateFunc    func(ctx context.Context, slot *domain.Slot) (*domain.Slot, error)
}

func (m *slotRepoMock) GetByID(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	if m.GetByIDFunc == nil {
		panic("slotRepoMock.GetByIDFunc: method is nil but slotRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, slotID)
}

func (m *slotRepoMock) List(ctx context.Context) ([]*domain.Slot, error) {
	if m.ListFunc == nil {
		panic("slotRepoMock.ListFunc: method is nil but slotRepo.List was just called")
	}
	return m.ListFunc(ctx)
}

func (m *slotRepoMock) Create(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if m.CreateFunc == nil {
		panic("slotRepoMock.CreateFunc: method is nil but slotRepo.Create was just called")
	}
	return m.CreateFunc(ctx, slot)
}

func (m *slotRepoMock) SetStatus(ctx context.Context, slotID uuid.UUID, status domain.SlotStatus) (*domain.Slot, error) {
	if m.SetStatusFunc == nil {
		panic("slotRepoMock.SetStatusFunc: method is nil but slotRepo.SetStatus was just called")
	}
	return m.SetStatusFunc(ctx, slotID, status)
}

func (m *slotRepoMock) Update(ctx context.Context, slot *domain.Slot) (*domain.Slot, error) {
	if m.UpdateFunc == nil {
		panic("slotRepoMock.UpdateFunc: method is nil but slotRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, slot)
}

var _ auditLogger = &auditLoggerMock{}

type auditLoggerMock struct {
	RecordFunc func(ctx context.Context, record domain.AuditRecord) error
}

func (m *auditLoggerMock) Record(ctx context.Context, record domain.AuditRecord) error {
	if m.RecordFunc == nil {
		return nil
	}
	return m.RecordFunc(ctx, record)
}
