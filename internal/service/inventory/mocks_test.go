package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Hand-maintained mocks: a struct per consumer interface with one Func field
// per method. A nil Func panics, which makes unexpected calls fail loudly.

var _ slotRepo = &slotRepoMock{}

type slotRepoMock struct {
	GetByIDFunc          func(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
	GetByIDForUpdateFunc func(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
}

func (m *slotRepoMock) GetByID(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	if m.GetByIDFunc == nil {
		panic("slotRepoMock.GetByIDFunc: method is nil but slotRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, slotID)
}

func (m *slotRepoMock) GetByIDForUpdate(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	if m.GetByIDForUpdateFunc == nil {
		panic("slotRepoMock.GetByIDForUpdateFunc: method is nil but slotRepo.GetByIDForUpdate was just called")
	}
	return m.GetByIDForUpdateFunc(ctx, slotID)
}

var _ bundleRepo = &bundleRepoMock{}

type bundleRepoMock struct {
	CreateBundleFunc      func(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error)
	GetBundleByIDFunc     func(ctx context.Context, bundleID uuid.UUID) (*domain.Bundle, error)
	UpdateBundleFunc      func(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error)
	RemoveBundleFunc      func(ctx context.Context, bundleID uuid.UUID, removedAt time.Time) error
	UsedLabelNumbersFunc  func(ctx context.Context, slotID uuid.UUID) ([]int, error)
	CountLiveBySlotFunc   func(ctx context.Context, slotID uuid.UUID) (int, error)
	CreateUnitFunc        func(ctx context.Context, unit *domain.Unit) (*domain.Unit, error)
	GetUnitByIDFunc       func(ctx context.Context, unitID uuid.UUID) (*domain.Unit, error)
	UpdateUnitFunc        func(ctx context.Context, unit *domain.Unit) (*domain.Unit, error)
	RemoveUnitFunc        func(ctx context.Context, unitID uuid.UUID, removedAt time.Time) error
	MaxSeqNoFunc          func(ctx context.Context, bundleID uuid.UUID) (int, error)
	CountLiveUnitsFunc    func(ctx context.Context, bundleID uuid.UUID) (int, error)
	ListUnitsByBundleFunc func(ctx context.Context, bundleID uuid.UUID) ([]*domain.Unit, error)
	ListItemsBySlotFunc   func(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error)
	ListItemsByOwnerFunc  func(ctx context.Context, ownerID uuid.UUID) ([]domain.Item, error)
}

func (m *bundleRepoMock) CreateBundle(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error) {
	if m.CreateBundleFunc == nil {
		panic("bundleRepoMock.CreateBundleFunc: method is nil but bundleRepo.CreateBundle was just called")
	}
	return m.CreateBundleFunc(ctx, bundle)
}

func (m *bundleRepoMock) GetBundleByID(ctx context.Context, bundleID uuid.UUID) (*domain.Bundle, error) {
	if m.GetBundleByIDFunc == nil {
		panic("bundleRepoMock.GetBundleByIDFunc: method is nil but bundleRepo.GetBundleByID was just called")
	}
	return m.GetBundleByIDFunc(ctx, bundleID)
}

func (m *bundleRepoMock) UpdateBundle(ctx context.Context, bundle *domain.Bundle) (*domain.Bundle, error) {
	if m.UpdateBundleFunc == nil {
		panic("bundleRepoMock.UpdateBundleFunc: method is nil but bundleRepo.UpdateBundle was just called")
	}
	return m.UpdateBundleFunc(ctx, bundle)
}

func (m *bundleRepoMock) RemoveBundle(ctx context.Context, bundleID uuid.UUID, removedAt time.Time) error {
	if m.RemoveBundleFunc == nil {
		panic("bundleRepoMock.RemoveBundleFunc: method is nil but bundleRepo.RemoveBundle was just called")
	}
	return m.RemoveBundleFunc(ctx, bundleID, removedAt)
}

func (m *bundleRepoMock) UsedLabelNumbers(ctx context.Context, slotID uuid.UUID) ([]int, error) {
	if m.UsedLabelNumbersFunc == nil {
		panic("bundleRepoMock.UsedLabelNumbersFunc: method is nil but bundleRepo.UsedLabelNumbers was just called")
	}
	return m.UsedLabelNumbersFunc(ctx, slotID)
}

func (m *bundleRepoMock) CountLiveBySlot(ctx context.Context, slotID uuid.UUID) (int, error) {
	if m.CountLiveBySlotFunc == nil {
		panic("bundleRepoMock.CountLiveBySlotFunc: method is nil but bundleRepo.CountLiveBySlot was just called")
	}
	return m.CountLiveBySlotFunc(ctx, slotID)
}

func (m *bundleRepoMock) CreateUnit(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	if m.CreateUnitFunc == nil {
		panic("bundleRepoMock.CreateUnitFunc: method is nil but bundleRepo.CreateUnit was just called")
	}
	return m.CreateUnitFunc(ctx, unit)
}

func (m *bundleRepoMock) GetUnitByID(ctx context.Context, unitID uuid.UUID) (*domain.Unit, error) {
	if m.GetUnitByIDFunc == nil {
		panic("bundleRepoMock.GetUnitByIDFunc: method is nil but bundleRepo.GetUnitByID was just called")
	}
	return m.GetUnitByIDFunc(ctx, unitID)
}

func (m *bundleRepoMock) UpdateUnit(ctx context.Context, unit *domain.Unit) (*domain.Unit, error) {
	if m.UpdateUnitFunc == nil {
		panic("bundleRepoMock.UpdateUnitFunc: method is nil but bundleRepo.UpdateUnit was just called")
	}
	return m.UpdateUnitFunc(ctx, unit)
}

func (m *bundleRepoMock) RemoveUnit(ctx context.Context, unitID uuid.UUID, removedAt time.Time) error {
	if m.RemoveUnitFunc == nil {
		panic("bundleRepoMock.RemoveUnitFunc: method is nil but bundleRepo.RemoveUnit was just called")
	}
	return m.RemoveUnitFunc(ctx, unitID, removedAt)
}

func (m *bundleRepoMock) MaxSeqNo(ctx context.Context, bundleID uuid.UUID) (int, error) {
	if m.MaxSeqNoFunc == nil {
		panic("bundleRepoMock.MaxSeqNoFunc: method is nil but bundleRepo.MaxSeqNo was just called")
	}
	return m.MaxSeqNoFunc(ctx, bundleID)
}

func (m *bundleRepoMock) CountLiveUnits(ctx context.Context, bundleID uuid.UUID) (int, error) {
	if m.CountLiveUnitsFunc == nil {
		panic("bundleRepoMock.CountLiveUnitsFunc: method is nil but bundleRepo.CountLiveUnits was just called")
	}
	return m.CountLiveUnitsFunc(ctx, bundleID)
}

func (m *bundleRepoMock) ListUnitsByBundle(ctx context.Context, bundleID uuid.UUID) ([]*domain.Unit, error) {
	if m.ListUnitsByBundleFunc == nil {
		panic("bundleRepoMock.ListUnitsByBundleFunc: method is nil but bundleRepo.ListUnitsByBundle was just called")
	}
	return m.ListUnitsByBundleFunc(ctx, bundleID)
}

func (m *bundleRepoMock) ListItemsBySlot(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error) {
	if m.ListItemsBySlotFunc == nil {
		panic("bundleRepoMock.ListItemsBySlotFunc: method is nil but bundleRepo.ListItemsBySlot was just called")
	}
	return m.ListItemsBySlotFunc(ctx, slotID)
}

func (m *bundleRepoMock) ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Item, error) {
	if m.ListItemsByOwnerFunc == nil {
		panic("bundleRepoMock.ListItemsByOwnerFunc: method is nil but bundleRepo.ListItemsByOwner was just called")
	}
	return m.ListItemsByOwnerFunc(ctx, ownerID)
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

var _ txManager = &txManagerMock{}

// txManagerMock runs the callback directly: unit tests exercise the logic,
// not the transaction plumbing.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
