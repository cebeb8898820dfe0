package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/internal/service/schedule"
)

// scheduleService defines the minimal interface needed by ScheduleHandler.
type scheduleService interface {
	Create(ctx context.Context, input schedule.CreateScheduleInput) (*domain.InspectionSchedule, error)
	Update(ctx context.Context, input schedule.UpdateScheduleInput) (*domain.InspectionSchedule, error)
	Cancel(ctx context.Context, scheduleID uuid.UUID) error
	Get(ctx context.Context, scheduleID uuid.UUID) (*domain.InspectionSchedule, error)
	List(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.InspectionSchedule, error)
}

// ScheduleHandler serves inspection schedule REST endpoints.
type ScheduleHandler struct {
	svc scheduleService
	log *slog.Logger
}

// NewScheduleHandler creates a ScheduleHandler.
func NewScheduleHandler(svc scheduleService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{svc: svc, log: logger.With("handler", "schedule")}
}

type createScheduleRequest struct {
	SlotID      string  `json:"slotId"`
	ScheduledAt string  `json:"scheduledAt"`
	Title       *string `json:"title,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type updateScheduleRequest struct {
	ScheduledAt string  `json:"scheduledAt"`
	Title       *string `json:"title,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

type scheduleResponse struct {
	ID          string    `json:"id"`
	SlotID      string    `json:"slotId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Title       *string   `json:"title,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Status      string    `json:"status"`
	SessionID   *string   `json:"sessionId,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Create plans an inspection.
// POST /schedules
func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), domain.NewValidationError("slotId", "must be a UUID"))
		return
	}
	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), domain.NewValidationError("scheduledAt", "must be RFC 3339"))
		return
	}

	created, err := h.svc.Create(r.Context(), schedule.CreateScheduleInput{
		SlotID:      slotID,
		ScheduledAt: scheduledAt,
		Title:       req.Title,
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusCreated, toScheduleResponse(created))
}

// Update amends an open schedule.
// PATCH /schedules/{id}
func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	var req updateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), domain.NewValidationError("scheduledAt", "must be RFC 3339"))
		return
	}

	updated, err := h.svc.Update(r.Context(), schedule.UpdateScheduleInput{
		ScheduleID:  scheduleID,
		ScheduledAt: scheduledAt,
		Title:       req.Title,
		Notes:       req.Notes,
	})
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponse(updated))
}

// Cancel withdraws an open schedule.
// DELETE /schedules/{id}
func (h *ScheduleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	if err := h.svc.Cancel(r.Context(), scheduleID); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get returns one schedule.
// GET /schedules/{id}
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	sched, err := h.svc.Get(r.Context(), scheduleID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponse(sched))
}

// List returns schedules matching the query filters, soonest first.
// GET /schedules?slotId=…&status=SCHEDULED&from=…&to=…
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.ScheduleFilter

	if v := r.URL.Query().Get("slotId"); v != "" {
		slotID, err := uuid.Parse(v)
		if err != nil {
			writeDomainError(w, h.log, r.Context(), domain.NewValidationError("slotId", "must be a UUID"))
			return
		}
		filter.SlotID = slotID
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.ScheduleStatus(v)
		if !status.IsValid() {
			writeDomainError(w, h.log, r.Context(), domain.NewValidationError("status", "unknown status"))
			return
		}
		filter.Status = status
	}
	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeDomainError(w, h.log, r.Context(), domain.NewValidationError("from", "must be RFC 3339"))
			return
		}
		filter.From = from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeDomainError(w, h.log, r.Context(), domain.NewValidationError("to", "must be RFC 3339"))
			return
		}
		filter.To = to
	}

	schedules, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	resp := make([]scheduleResponse, len(schedules))
	for i, sched := range schedules {
		resp[i] = toScheduleResponse(sched)
	}
	writeJSON(w, http.StatusOK, resp)
}

func toScheduleResponse(sched *domain.InspectionSchedule) scheduleResponse {
	resp := scheduleResponse{
		ID:          sched.ID.String(),
		SlotID:      sched.SlotID.String(),
		ScheduledAt: sched.ScheduledAt,
		Title:       sched.Title,
		Notes:       sched.Notes,
		Status:      string(sched.Status),
		CreatedBy:   sched.CreatedBy.String(),
		CreatedAt:   sched.CreatedAt,
	}
	if sched.SessionID != nil {
		id := sched.SessionID.String()
		resp.SessionID = &id
	}
	return resp
}
