package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/internal/service/inventory"
)

// inventoryService defines the minimal interface needed by InventoryHandler.
type inventoryService interface {
	CreateBundle(ctx context.Context, input inventory.CreateBundleInput) (*domain.Bundle, []*domain.Unit, error)
	GetBundle(ctx context.Context, bundleID uuid.UUID) (*domain.Bundle, []*domain.Unit, error)
	UpdateBundle(ctx context.Context, input inventory.UpdateBundleInput) (*domain.Bundle, error)
	AddUnit(ctx context.Context, input inventory.AddUnitInput) (*domain.Unit, error)
	UpdateUnit(ctx context.Context, input inventory.UpdateUnitInput) (*domain.Unit, error)
	RemoveUnit(ctx context.Context, unitID uuid.UUID) error
	ListSlotItems(ctx context.Context, slotID uuid.UUID) ([]domain.Item, error)
	ListMyItems(ctx context.Context) ([]domain.Item, error)
}

// InventoryHandler serves bundle and unit REST endpoints.
type InventoryHandler struct {
	svc inventoryService
	log *slog.Logger
}

// NewInventoryHandler creates an InventoryHandler.
func NewInventoryHandler(svc inventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{svc: svc, log: logger.With("handler", "inventory")}
}

type unitRequest struct {
	Name       string  `json:"name"`
	ExpiryDate string  `json:"expiryDate"`
	Quantity   *int    `json:"quantity,omitempty"`
	UnitCode   *string `json:"unitCode,omitempty"`
}

type createBundleRequest struct {
	SlotID string        `json:"slotId"`
	Name   string        `json:"name"`
	Memo   *string       `json:"memo,omitempty"`
	Units  []unitRequest `json:"units"`
}

type updateBundleRequest struct {
	Name string  `json:"name"`
	Memo *string `json:"memo,omitempty"`
}

type bundleResponse struct {
	ID          string         `json:"id"`
	SlotID      string         `json:"slotId"`
	LabelNumber int            `json:"labelNumber"`
	Name        string         `json:"name"`
	Memo        *string        `json:"memo,omitempty"`
	OwnerID     string         `json:"ownerId"`
	Units       []unitResponse `json:"units,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

type unitResponse struct {
	ID         string  `json:"id"`
	BundleID   string  `json:"bundleId"`
	SeqNo      int     `json:"seqNo"`
	Name       string  `json:"name"`
	ExpiryDate string  `json:"expiryDate"`
	Quantity   *int    `json:"quantity,omitempty"`
	UnitCode   *string `json:"unitCode,omitempty"`
}

type itemResponse struct {
	UnitID      string  `json:"unitId"`
	BundleID    string  `json:"bundleId"`
	SlotID      string  `json:"slotId"`
	SlotCode    string  `json:"slotCode"`
	LabelNumber int     `json:"labelNumber"`
	SeqNo       int     `json:"seqNo"`
	BundleName  string  `json:"bundleName"`
	UnitName    string  `json:"unitName"`
	OwnerID     string  `json:"ownerId"`
	ExpiryDate  string  `json:"expiryDate"`
	Quantity    *int    `json:"quantity,omitempty"`
	UnitCode    *string `json:"unitCode,omitempty"`
	DisplayCode string  `json:"displayCode"`
	Freshness   string  `json:"freshness"`
	DDay        string  `json:"dDay"`
}

// CreateBundle registers a bundle with its initial units.
// POST /bundles
func (h *InventoryHandler) CreateBundle(w http.ResponseWriter, r *http.Request) {
	var req createBundleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), domain.NewValidationError("slotId", "must be a UUID"))
		return
	}

	input := inventory.CreateBundleInput{
		SlotID: slotID,
		Name:   req.Name,
		Memo:   req.Memo,
	}
	for _, u := range req.Units {
		unitInput, err := parseUnitRequest(u)
		if err != nil {
			writeDomainError(w, h.log, r.Context(), err)
			return
		}
		input.Units = append(input.Units, unitInput)
	}

	bundle, units, err := h.svc.CreateBundle(r.Context(), input)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusCreated, toBundleResponse(bundle, units))
}

// GetBundle returns one bundle with its live units.
// GET /bundles/{id}
func (h *InventoryHandler) GetBundle(w http.ResponseWriter, r *http.Request) {
	bundleID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	bundle, units, err := h.svc.GetBundle(r.Context(), bundleID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toBundleResponse(bundle, units))
}

// UpdateBundle renames a bundle or edits its memo. Owner only.
// PATCH /bundles/{id}
func (h *InventoryHandler) UpdateBundle(w http.ResponseWriter, r *http.Request) {
	bundleID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	var req updateBundleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	bundle, err := h.svc.UpdateBundle(r.Context(), inventory.UpdateBundleInput{
		BundleID: bundleID,
		Name:     req.Name,
		Memo:     req.Memo,
	})
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toBundleResponse(bundle, nil))
}

// AddUnit appends a unit to an existing bundle.
// POST /bundles/{id}/units
func (h *InventoryHandler) AddUnit(w http.ResponseWriter, r *http.Request) {
	bundleID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	var req unitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	unitInput, err := parseUnitRequest(req)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	unit, err := h.svc.AddUnit(r.Context(), inventory.AddUnitInput{
		BundleID:   bundleID,
		Name:       unitInput.Name,
		ExpiryDate: unitInput.ExpiryDate,
		Quantity:   unitInput.Quantity,
		UnitCode:   unitInput.UnitCode,
	})
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusCreated, toUnitResponse(unit))
}

// UpdateUnit edits a unit's details.
// PATCH /units/{id}
func (h *InventoryHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	var req unitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	unitInput, err := parseUnitRequest(req)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	unit, err := h.svc.UpdateUnit(r.Context(), inventory.UpdateUnitInput{
		UnitID:     unitID,
		Name:       unitInput.Name,
		ExpiryDate: unitInput.ExpiryDate,
		Quantity:   unitInput.Quantity,
		UnitCode:   unitInput.UnitCode,
	})
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toUnitResponse(unit))
}

// RemoveUnit soft-deletes a unit; the bundle cascades away with its last unit.
// DELETE /units/{id}
func (h *InventoryHandler) RemoveUnit(w http.ResponseWriter, r *http.Request) {
	unitID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	if err := h.svc.RemoveUnit(r.Context(), unitID); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSlotItems returns the live contents of a compartment.
// GET /slots/{id}/items
func (h *InventoryHandler) ListSlotItems(w http.ResponseWriter, r *http.Request) {
	slotID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	items, err := h.svc.ListSlotItems(r.Context(), slotID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// ListMyItems returns every live item registered by the caller.
// GET /me/items
func (h *InventoryHandler) ListMyItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListMyItems(r.Context())
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponses(items))
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

const dateLayout = "2006-01-02"

func parseIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}

func parseUnitRequest(req unitRequest) (inventory.UnitInput, error) {
	expiry, err := time.Parse(dateLayout, req.ExpiryDate)
	if err != nil {
		return inventory.UnitInput{}, domain.NewValidationError("expiryDate", "must be YYYY-MM-DD")
	}
	return inventory.UnitInput{
		Name:       req.Name,
		ExpiryDate: expiry,
		Quantity:   req.Quantity,
		UnitCode:   req.UnitCode,
	}, nil
}

func toBundleResponse(bundle *domain.Bundle, units []*domain.Unit) bundleResponse {
	resp := bundleResponse{
		ID:          bundle.ID.String(),
		SlotID:      bundle.SlotID.String(),
		LabelNumber: bundle.LabelNumber,
		Name:        bundle.Name,
		Memo:        bundle.Memo,
		OwnerID:     bundle.OwnerID.String(),
		CreatedAt:   bundle.CreatedAt,
	}
	for _, unit := range units {
		resp.Units = append(resp.Units, toUnitResponse(unit))
	}
	return resp
}

func toUnitResponse(unit *domain.Unit) unitResponse {
	return unitResponse{
		ID:         unit.ID.String(),
		BundleID:   unit.BundleID.String(),
		SeqNo:      unit.SeqNo,
		Name:       unit.Name,
		ExpiryDate: unit.ExpiryDate.Format(dateLayout),
		Quantity:   unit.Quantity,
		UnitCode:   unit.UnitCode,
	}
}

func toItemResponses(items []domain.Item) []itemResponse {
	resp := make([]itemResponse, len(items))
	for i, item := range items {
		resp[i] = itemResponse{
			UnitID:      item.UnitID.String(),
			BundleID:    item.BundleID.String(),
			SlotID:      item.SlotID.String(),
			SlotCode:    item.SlotCode,
			LabelNumber: item.LabelNumber,
			SeqNo:       item.SeqNo,
			BundleName:  item.BundleName,
			UnitName:    item.UnitName,
			OwnerID:     item.OwnerID.String(),
			ExpiryDate:  item.ExpiryDate.Format(dateLayout),
			Quantity:    item.Quantity,
			UnitCode:    item.UnitCode,
			DisplayCode: item.DisplayCode,
			Freshness:   string(item.Freshness),
			DDay:        item.DDay,
		}
	}
	return resp
}
