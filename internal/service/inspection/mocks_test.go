package inspection

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
	GetByIDForUpdateFunc func(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
	SetLockedFunc        func(ctx context.Context, slotID uuid.UUID, locked bool) error
}

func (m *slotRepoMock) GetByIDForUpdate(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	if m.GetByIDForUpdateFunc == nil {
		panic("slotRepoMock.GetByIDForUpdateFunc: method is nil but slotRepo.GetByIDForUpdate was just called")
	}
	return m.GetByIDForUpdateFunc(ctx, slotID)
}

func (m *slotRepoMock) SetLocked(ctx context.Context, slotID uuid.UUID, locked bool) error {
	if m.SetLockedFunc == nil {
		panic("slotRepoMock.SetLockedFunc: method is nil but slotRepo.SetLocked was just called")
	}
	return m.SetLockedFunc(ctx, slotID, locked)
}

var _ sessionRepo = &sessionRepoMock{}

type sessionRepoMock struct {
	CreateFunc           func(ctx context.Context, session *domain.InspectionSession) (*domain.InspectionSession, error)
	GetByIDFunc          func(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error)
	GetByIDForUpdateFunc func(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error)
	GetActiveBySlotFunc  func(ctx context.Context, slotID uuid.UUID) (*domain.InspectionSession, error)
	SubmitFunc           func(ctx context.Context, sessionID uuid.UUID, endedAt time.Time, summary domain.SessionSummary) (*domain.InspectionSession, error)
	CancelFunc           func(ctx context.Context, sessionID uuid.UUID, endedAt time.Time) (*domain.InspectionSession, error)
	ListBySlotFunc       func(ctx context.Context, slotID uuid.UUID, limit, offset int) ([]*domain.InspectionSession, int, error)
	InsertItemsFunc      func(ctx context.Context, items []domain.SessionItem) error
	ListItemsFunc        func(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionItem, error)
	InsertActionFunc     func(ctx context.Context, action *domain.InspectionAction) (*domain.InspectionAction, error)
	DeleteActionFunc     func(ctx context.Context, sessionID uuid.UUID, actionID int64) error
	ListActionsFunc      func(ctx context.Context, sessionID uuid.UUID) ([]domain.InspectionAction, error)
}

func (m *sessionRepoMock) Create(ctx context.Context, session *domain.InspectionSession) (*domain.InspectionSession, error) {
	if m.CreateFunc == nil {
		panic("sessionRepoMock.CreateFunc: method is nil but sessionRepo.Create was just called")
	}
	return m.CreateFunc(ctx, session)
}

func (m *sessionRepoMock) GetByID(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error) {
	if m.GetByIDFunc == nil {
		panic("sessionRepoMock.GetByIDFunc: method is nil but sessionRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, sessionID)
}

func (m *sessionRepoMock) GetByIDForUpdate(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error) {
	if m.GetByIDForUpdateFunc == nil {
		panic("sessionRepoMock.GetByIDForUpdateFunc: method is nil but sessionRepo.GetByIDForUpdate was just called")
	}
	return m.GetByIDForUpdateFunc(ctx, sessionID)
}

func (m *sessionRepoMock) GetActiveBySlot(ctx context.Context, slotID uuid.UUID) (*domain.InspectionSession, error) {
	if m.GetActiveBySlotFunc == nil {
		panic("sessionRepoMock.GetActiveBySlotFunc: method is nil but sessionRepo.GetActiveBySlot was just called")
	}
	return m.GetActiveBySlotFunc(ctx, slotID)
}

func (m *sessionRepoMock) Submit(ctx context.Context, sessionID uuid.UUID, endedAt time.Time, summary domain.SessionSummary) (*domain.InspectionSession, error) {
	if m.SubmitFunc == nil {
		panic("sessionRepoMock.SubmitFunc: method is nil but sessionRepo.Submit was just called")
	}
	return m.SubmitFunc(ctx, sessionID, endedAt, summary)
}

func (m *sessionRepoMock) Cancel(ctx context.Context, sessionID uuid.UUID, endedAt time.Time) (*domain.InspectionSession, error) {
	if m.CancelFunc == nil {
		panic("sessionRepoMock.CancelFunc: method is nil but sessionRepo.Cancel was just called")
	}
	return m.CancelFunc(ctx, sessionID, endedAt)
}

func (m *sessionRepoMock) ListBySlot(ctx context.Context, slotID uuid.UUID, limit, offset int) ([]*domain.InspectionSession, int, error) {
	if m.ListBySlotFunc == nil {
		panic("sessionRepoMock.ListBySlotFunc: method is nil but sessionRepo.ListBySlot was just called")
	}
	return m.ListBySlotFunc(ctx, slotID, limit, offset)
}

func (m *sessionRepoMock) InsertItems(ctx context.Context, items []domain.SessionItem) error {
	if m.InsertItemsFunc == nil {
		panic("sessionRepoMock.InsertItemsFunc: method is nil but sessionRepo.InsertItems was just called")
	}
	return m.InsertItemsFunc(ctx, items)
}

func (m *sessionRepoMock) ListItems(ctx context.Context, sessionID uuid.UUID) ([]domain.SessionItem, error) {
	if m.ListItemsFunc == nil {
		panic("sessionRepoMock.ListItemsFunc: method is nil but sessionRepo.ListItems was just called")
	}
	return m.ListItemsFunc(ctx, sessionID)
}

func (m *sessionRepoMock) InsertAction(ctx context.Context, action *domain.InspectionAction) (*domain.InspectionAction, error) {
	if m.InsertActionFunc == nil {
		panic("sessionRepoMock.InsertActionFunc: method is nil but sessionRepo.InsertAction was just called")
	}
	return m.InsertActionFunc(ctx, action)
}

func (m *sessionRepoMock) DeleteAction(ctx context.Context, sessionID uuid.UUID, actionID int64) error {
	if m.DeleteActionFunc == nil {
		panic("sessionRepoMock.DeleteActionFunc: method is nil but sessionRepo.DeleteAction was just called")
	}
	return m.DeleteActionFunc(ctx, sessionID, actionID)
}

func (m *sessionRepoMock) ListActions(ctx context.Context, sessionID uuid.UUID) ([]domain.InspectionAction, error) {
	if m.ListActionsFunc == nil {
		panic("sessionRepoMock.ListActionsFunc: method is nil but sessionRepo.ListActions was just called")
	}
	return m.ListActionsFunc(ctx, sessionID)
}

var _ inventoryRepo = &inventoryRepoMock{}

type inventoryRepoMock struct {
	ListItemsBySlotFunc func(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error)
	RemoveUnitFunc      func(ctx context.Context, unitID uuid.UUID, removedAt time.Time) error
	RemoveBundleFunc    func(ctx context.Context, bundleID uuid.UUID, removedAt time.Time) error
	CountLiveUnitsFunc  func(ctx context.Context, bundleID uuid.UUID) (int, error)
}

func (m *inventoryRepoMock) ListItemsBySlot(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error) {
	if m.ListItemsBySlotFunc == nil {
		panic("inventoryRepoMock.ListItemsBySlotFunc: method is nil but inventoryRepo.ListItemsBySlot was just called")
	}
	return m.ListItemsBySlotFunc(ctx, slotID)
}

func (m *inventoryRepoMock) RemoveUnit(ctx context.Context, unitID uuid.UUID, removedAt time.Time) error {
	if m.RemoveUnitFunc == nil {
		panic("inventoryRepoMock.RemoveUnitFunc: method is nil but inventoryRepo.RemoveUnit was just called")
	}
	return m.RemoveUnitFunc(ctx, unitID, removedAt)
}

func (m *inventoryRepoMock) RemoveBundle(ctx context.Context, bundleID uuid.UUID, removedAt time.Time) error {
	if m.RemoveBundleFunc == nil {
		panic("inventoryRepoMock.RemoveBundleFunc: method is nil but inventoryRepo.RemoveBundle was just called")
	}
	return m.RemoveBundleFunc(ctx, bundleID, removedAt)
}

func (m *inventoryRepoMock) CountLiveUnits(ctx context.Context, bundleID uuid.UUID) (int, error) {
	if m.CountLiveUnitsFunc == nil {
		panic("inventoryRepoMock.CountLiveUnitsFunc: method is nil but inventoryRepo.CountLiveUnits was just called")
	}
	return m.CountLiveUnitsFunc(ctx, bundleID)
}

var _ scheduleRepo = &scheduleRepoMock{}

type scheduleRepoMock struct {
	GetByIDFunc   func(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error)
	SetStatusFunc func(ctx context.Context, scheduleID uuid.UUID, status domain.ScheduleStatus, sessionID *uuid.UUID) (*domain.InspectionSchedule, error)
}

func (m *scheduleRepoMock) GetByID(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error) {
	if m.GetByIDFunc == nil {
		panic("scheduleRepoMock.GetByIDFunc: method is nil but scheduleRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, scheduleID)
}

func (m *scheduleRepoMock) SetStatus(ctx context.Context, scheduleID uuid.UUID, status domain.ScheduleStatus, sessionID *uuid.UUID) (*domain.InspectionSchedule, error) {
	if m.SetStatusFunc == nil {
		panic("scheduleRepoMock.SetStatusFunc: method is nil but scheduleRepo.SetStatus was just called")
	}
	return m.SetStatusFunc(ctx, scheduleID, status, sessionID)
}

var _ penaltyLedger = &penaltyLedgerMock{}

type penaltyLedgerMock struct {
	InsertFunc             func(ctx context.Context, record *domain.PenaltyRecord) (*domain.PenaltyRecord, error)
	DeleteByActionFunc     func(ctx context.Context, sessionID uuid.UUID, actionID int64) error
	DeleteBySessionFunc    func(ctx context.Context, sessionID uuid.UUID) error
	ListBySessionFunc      func(ctx context.Context, sessionID uuid.UUID) ([]domain.PenaltyRecord, error)
	ListByUserFunc         func(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]domain.PenaltyRecord, error)
	ActivePointsByUserFunc func(ctx context.Context, userID uuid.UUID) (int, error)
}

func (m *penaltyLedgerMock) Insert(ctx context.Context, record *domain.PenaltyRecord) (*domain.PenaltyRecord, error) {
	if m.InsertFunc == nil {
		panic("penaltyLedgerMock.InsertFunc: method is nil but penaltyLedger.Insert was just called")
	}
	return m.InsertFunc(ctx, record)
}

func (m *penaltyLedgerMock) DeleteByAction(ctx context.Context, sessionID uuid.UUID, actionID int64) error {
	if m.DeleteByActionFunc == nil {
		panic("penaltyLedgerMock.DeleteByActionFunc: method is nil but penaltyLedger.DeleteByAction was just called")
	}
	return m.DeleteByActionFunc(ctx, sessionID, actionID)
}

func (m *penaltyLedgerMock) DeleteBySession(ctx context.Context, sessionID uuid.UUID) error {
	if m.DeleteBySessionFunc == nil {
		panic("penaltyLedgerMock.DeleteBySessionFunc: method is nil but penaltyLedger.DeleteBySession was just called")
	}
	return m.DeleteBySessionFunc(ctx, sessionID)
}

func (m *penaltyLedgerMock) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]domain.PenaltyRecord, error) {
	if m.ListBySessionFunc == nil {
		panic("penaltyLedgerMock.ListBySessionFunc: method is nil but penaltyLedger.ListBySession was just called")
	}
	return m.ListBySessionFunc(ctx, sessionID)
}

func (m *penaltyLedgerMock) ListByUser(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]domain.PenaltyRecord, error) {
	if m.ListByUserFunc == nil {
		panic("penaltyLedgerMock.ListByUserFunc: method is nil but penaltyLedger.ListByUser was just called")
	}
	return m.ListByUserFunc(ctx, userID, activeOnly)
}

func (m *penaltyLedgerMock) ActivePointsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.ActivePointsByUserFunc == nil {
		panic("penaltyLedgerMock.ActivePointsByUserFunc: method is nil but penaltyLedger.ActivePointsByUser was just called")
	}
	return m.ActivePointsByUserFunc(ctx, userID)
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

// txManagerMock runs the callback directly; the service's transactional
// composition is covered by the repository integration tests.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
