package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/internal/service/slot"
)

// slotService defines the minimal interface needed by SlotHandler.
type slotService interface {
	List(ctx context.Context) ([]*domain.Slot, error)
	Get(ctx context.Context, slotID uuid.UUID) (*domain.Slot, error)
	Create(ctx context.Context, input slot.CreateSlotInput) (*domain.Slot, error)
	SetStatus(ctx context.Context, slotID uuid.UUID, status domain.SlotStatus) (*domain.Slot, error)
	Update(ctx context.Context, input slot.UpdateSlotInput) (*domain.Slot, error)
}

// SlotHandler serves compartment administration REST endpoints.
type SlotHandler struct {
	svc slotService
	log *slog.Logger
}

// NewSlotHandler creates a SlotHandler.
func NewSlotHandler(svc slotService, logger *slog.Logger) *SlotHandler {
	return &SlotHandler{svc: svc, log: logger.With("handler", "slot")}
}

type createSlotRequest struct {
	FloorNo         int    `json:"floorNo"`
	SlotIndex       int    `json:"slotIndex"`
	SlotLetter      string `json:"slotLetter"`
	LabelRangeStart int    `json:"labelRangeStart"`
	LabelRangeEnd   int    `json:"labelRangeEnd"`
	Capacity        *int   `json:"capacity,omitempty"`
}

type updateSlotRequest struct {
	LabelRangeStart int  `json:"labelRangeStart"`
	LabelRangeEnd   int  `json:"labelRangeEnd"`
	Capacity        *int `json:"capacity,omitempty"`
}

type setSlotStatusRequest struct {
	Status string `json:"status"`
}

type slotResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	FloorNo         int       `json:"floorNo"`
	SlotIndex       int       `json:"slotIndex"`
	SlotLetter      string    `json:"slotLetter"`
	LabelRangeStart int       `json:"labelRangeStart"`
	LabelRangeEnd   int       `json:"labelRangeEnd"`
	Capacity        *int      `json:"capacity,omitempty"`
	Status          string    `json:"status"`
	Locked          bool      `json:"locked"`
	CreatedAt       time.Time `json:"createdAt"`
}

// List returns every compartment.
// GET /slots
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	slots, err := h.svc.List(r.Context())
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	resp := make([]slotResponse, len(slots))
	for i, s := range slots {
		resp[i] = toSlotResponse(s)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one compartment.
// GET /slots/{id}
func (h *SlotHandler) Get(w http.ResponseWriter, r *http.Request) {
	slotID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	s, err := h.svc.Get(r.Context(), slotID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toSlotResponse(s))
}

// Create provisions a compartment. Admin only.
// POST /slots
func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	created, err := h.svc.Create(r.Context(), slot.CreateSlotInput{
		FloorNo:         req.FloorNo,
		SlotIndex:       req.SlotIndex,
		SlotLetter:      req.SlotLetter,
		LabelRangeStart: req.LabelRangeStart,
		LabelRangeEnd:   req.LabelRangeEnd,
		Capacity:        req.Capacity,
	})
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusCreated, toSlotResponse(created))
}

// SetStatus changes a compartment's lifecycle status. Admin only.
// PATCH /slots/{id}/status
func (h *SlotHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	slotID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	var req setSlotStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	updated, err := h.svc.SetStatus(r.Context(), slotID, domain.SlotStatus(req.Status))
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toSlotResponse(updated))
}

// Update adjusts a compartment's label range and capacity. Admin only.
// PATCH /slots/{id}
func (h *SlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	slotID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	var req updateSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	updated, err := h.svc.Update(r.Context(), slot.UpdateSlotInput{
		SlotID:          slotID,
		LabelRangeStart: req.LabelRangeStart,
		LabelRangeEnd:   req.LabelRangeEnd,
		Capacity:        req.Capacity,
	})
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toSlotResponse(updated))
}

func toSlotResponse(s *domain.Slot) slotResponse {
	return slotResponse{
		ID:              s.ID.String(),
		Code:            s.Code(),
		FloorNo:         s.FloorNo,
		SlotIndex:       s.SlotIndex,
		SlotLetter:      s.SlotLetter,
		LabelRangeStart: s.LabelRangeStart,
		LabelRangeEnd:   s.LabelRangeEnd,
		Capacity:        s.Capacity,
		Status:          string(s.Status),
		Locked:          s.Locked,
		CreatedAt:       s.CreatedAt,
	}
}
