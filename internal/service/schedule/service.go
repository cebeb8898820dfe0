// Package schedule implements planning of upcoming inspections: creating,
// amending and canceling schedule entries for compartments.
package schedule

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
)

type scheduleRepo interface {
	Create(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error)
	GetByID(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error)
	Update(ctx context.Context, sched *domain.InspectionSchedule) (*domain.InspectionSchedule, error)
	SetStatus(ctx context.Context, scheduleID uuid.UUID, status domain.ScheduleStatus, sessionID *uuid.UUID) (*domain.InspectionSchedule, error)
	List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.InspectionSchedule, error)
}

type slotRepo interface {
	GetByID(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
}

type auditLogger interface {
	Record(ctx context.Context, record domain.AuditRecord) error
}

// Service implements the schedule business logic.
type Service struct {
	schedules scheduleRepo
	slots     slotRepo
	audit     auditLogger
	log       *slog.Logger
}

// NewService creates a new Schedule service.
func NewService(log *slog.Logger, schedules scheduleRepo, slots slotRepo, audit auditLogger) *Service {
	return &Service{
		schedules: schedules,
		slots:     slots,
		audit:     audit,
		log:       log.With("service", "schedule"),
	}
}

// recordAudit writes an audit record; failures are logged and swallowed.
func (s *Service) recordAudit(ctx context.Context, record domain.AuditRecord) {
	if err := s.audit.Record(ctx, record); err != nil {
		s.log.WarnContext(ctx, "audit record failed",
			slog.String("entity_type", record.EntityType.String()),
			slog.String("error", err.Error()),
		)
	}
}
