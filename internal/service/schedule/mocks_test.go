package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

// Hand-maintained mocks: a struct per consumer interface with one Func field
// per method. A nil Func panics, which makes unexpected calls fail loudly.

var _ scheduleRepo = &scheduleRepoMock{}

type scheduleRepoMock struct {
	CreateFunc    func(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error)
	GetByIDFunc   func(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error)
	UpdateFunc    func(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error)
	SetStatusFunc func(ctx context.Context, scheduleID uuid.UUID, status domain.ScheduleStatus, sessionID *uuid.UUID) (*domain.InspectionSchedule, error)
	ListFunc      func(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.InspectionSchedule, error)
}

func (m *scheduleRepoMock) Create(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error) {
	if m.CreateFunc == nil {
		panic("scheduleRepoMock.CreateFunc: method is nil but scheduleRepo.Create was just called")
	}
	return m.CreateFunc(ctx, sched)
}

func (m *scheduleRepoMock) GetByID(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error) {
	if m.GetByIDFunc == nil {
		panic("scheduleRepoMock.GetByIDFunc: method is nil but scheduleRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, scheduleID)
}

func (m *scheduleRepoMock) Update(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error) {
	if m.UpdateFunc == nil {
		panic("scheduleRepoMock.UpdateFunc: method is nil but scheduleRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, sched)
}

func (m *scheduleRepoMock) SetStatus(ctx context.Context, scheduleID uuid.UUID, status domain.ScheduleStatus, sessionID *uuid.UUID) (*domain.InspectionSchedule, error) {
	if m.SetStatusFunc == nil {
		panic("scheduleRepoMock.SetStatusFunc: method is nil but scheduleRepo.SetStatus was just called")
	}
	return m.SetStatusFunc(ctx, scheduleID, status, sessionID)
}

func (m *scheduleRepoMock) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.InspectionSchedule, error) {
	if m.ListFunc == nil {
		panic("scheduleRepoMock.ListFunc: method is nil but scheduleRepo.List was just called")
	}
	return m.ListFunc(ctx, filter)
}

var _ slotRepo = &slotRepoMock{}

type slotRepoMock struct {
	GetByIDFunc func(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
}

func (m *slotRepoMock) GetByID(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error) {
	if m.GetByIDFunc == nil {
		panic("slotRepoMock.GetByIDFunc: method is nil but slotRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, slotID)
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
