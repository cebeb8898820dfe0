package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// Create plans a future inspection for a compartment. Inspector only.
// Multiple open schedules may target the same compartment.
func (s *Service) Create(ctx context.Context, input CreateScheduleInput) (*domain.InspectionSchedule, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.slots.GetByID(ctx, input.SlotID); err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}

	created, err := s.schedules.Create(ctx, &domain.InspectionSchedule{
		ID:          uuid.New(),
		SlotID:      input.SlotID,
		ScheduledAt: input.ScheduledAt.UTC(),
		Title:       input.Title,
		Notes:       input.Notes,
		Status:      domain.ScheduleStatusScheduled,
		CreatedBy:   identity.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create schedule: %w", err)
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySchedule,
		EntityID:   &created.ID,
		Action:     domain.AuditActionCreate,
		Changes: map[string]any{
			"slot_id":      created.SlotID.String(),
			"scheduled_at": created.ScheduledAt.Format(time.RFC3339),
		},
	})

	s.log.InfoContext(ctx, "schedule created",
		slog.String("schedule_id", created.ID.String()),
		slog.String("slot_id", created.SlotID.String()),
	)

	return created, nil
}

// Update amends an open schedule's time, title and notes. Completed and
// canceled schedules are immutable.
func (s *Service) Update(ctx context.Context, input UpdateScheduleInput) (*domain.InspectionSchedule, error) {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.schedules.GetByID(ctx, input.ScheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	if existing.Status != domain.ScheduleStatusScheduled {
		return nil, domain.NewValidationError("schedule_id", "schedule is not open")
	}

	updated, err := s.schedules.Update(ctx, &domain.InspectionSchedule{
		ID:          input.ScheduleID,
		ScheduledAt: input.ScheduledAt.UTC(),
		Title:       input.Title,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySchedule,
		EntityID:   &updated.ID,
		Action:     domain.AuditActionUpdate,
		Changes: map[string]any{
			"scheduled_at": updated.ScheduledAt.Format(time.RFC3339),
		},
	})

	return updated, nil
}

// Cancel withdraws a schedule. Canceling twice is a no-op. A completed
// schedule may also be canceled; the session it produced keeps its record
// and is not touched.
func (s *Service) Cancel(ctx context.Context, scheduleID uuid.UUID) error {
	identity, ok := ctxutil.IdentityFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !identity.Inspector() {
		return domain.ErrForbidden
	}

	existing, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("get schedule: %w", err)
	}
	if existing.Status == domain.ScheduleStatusCanceled {
		return nil
	}

	if _, err := s.schedules.SetStatus(ctx, scheduleID, domain.ScheduleStatusCanceled, existing.SessionID); err != nil {
		return fmt.Errorf("cancel schedule: %w", err)
	}

	s.recordAudit(ctx, domain.AuditRecord{
		UserID:     identity.UserID,
		EntityType: domain.AuditEntitySchedule,
		EntityID:   &scheduleID,
		Action:     domain.AuditActionUpdate,
		Changes:    map[string]any{"status": string(domain.ScheduleStatusCanceled)},
	})

	s.log.InfoContext(ctx, "schedule canceled",
		slog.String("schedule_id", scheduleID.String()),
	)

	return nil
}

// Get returns one schedule.
func (s *Service) Get(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	sched, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	return sched, nil
}

// List returns schedules matching the filter, soonest first.
func (s *Service) List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.InspectionSchedule, error) {
	if _, ok := ctxutil.IdentityFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	schedules, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	return schedules, nil
}
