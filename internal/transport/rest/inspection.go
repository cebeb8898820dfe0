package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hyessol/fridgecheck-backend/internal/domain"
	"github.com/hyessol/fridgecheck-backend/internal/service/inspection"
)

// inspectionService defines the minimal interface needed by InspectionHandler.
type inspectionService interface {
	StartSession(ctx context.Context, input inspection.StartSessionInput) (*inspection.StartResult, error)
	RecordActions(ctx context.Context, input inspection.RecordActionsInput) ([]domain.InspectionAction, error)
	RevertAction(ctx context.Context, input inspection.RevertActionInput) error
	SubmitSession(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error)
	CancelSession(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.InspectionSession, error)
	ActiveSession(ctx context.Context, slotID uuid.UUID) (*domain.InspectionSession, error)
	ListSessions(ctx context.Context, slotID uuid.UUID, limit, offset int) ([]*domain.InspectionSession, int, error)
	MyPenalties(ctx context.Context, activeOnly bool) ([]domain.PenaltyRecord, int, error)
	UserPenalties(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]domain.PenaltyRecord, int, error)
}

// InspectionHandler serves inspection session REST endpoints.
type InspectionHandler struct {
	svc inspectionService
	log *slog.Logger
}

// NewInspectionHandler creates an InspectionHandler.
func NewInspectionHandler(svc inspectionService, logger *slog.Logger) *InspectionHandler {
	return &InspectionHandler{svc: svc, log: logger.With("handler", "inspection")}
}

type startSessionRequest struct {
	SlotID     string  `json:"slotId"`
	ScheduleID *string `json:"scheduleId,omitempty"`
}

type actionRequest struct {
	UnitID *string `json:"unitId,omitempty"`
	Type   string  `json:"type"`
	Note   *string `json:"note,omitempty"`
}

type recordActionsRequest struct {
	Actions []actionRequest `json:"actions"`
}

type sessionResponse struct {
	ID         string                `json:"id"`
	SlotID     string                `json:"slotId"`
	ScheduleID *string               `json:"scheduleId,omitempty"`
	Status     string                `json:"status"`
	StartedBy  string                `json:"startedBy"`
	StartedAt  time.Time             `json:"startedAt"`
	EndedAt    *time.Time            `json:"endedAt,omitempty"`
	Resumed    bool                  `json:"resumed,omitempty"`
	Complete   bool                  `json:"complete"`
	Items      []sessionItemResponse `json:"items,omitempty"`
	Actions    []actionResponse      `json:"actions,omitempty"`
	Summary    *summaryResponse      `json:"summary,omitempty"`
}

type sessionItemResponse struct {
	UnitID      string `json:"unitId"`
	BundleID    string `json:"bundleId"`
	OwnerID     string `json:"ownerId"`
	LabelNumber int    `json:"labelNumber"`
	SeqNo       int    `json:"seqNo"`
	UnitName    string `json:"unitName"`
	ExpiryDate  string `json:"expiryDate"`
	DisplayCode string `json:"displayCode"`
}

type actionResponse struct {
	ID         int64             `json:"id"`
	Kind       string            `json:"kind"`
	UnitID     *string           `json:"unitId,omitempty"`
	BundleID   *string           `json:"bundleId,omitempty"`
	Type       string            `json:"type"`
	Note       *string           `json:"note,omitempty"`
	RecordedBy string            `json:"recordedBy"`
	RecordedAt time.Time         `json:"recordedAt"`
	Penalties  []penaltyResponse `json:"penalties,omitempty"`
}

type penaltyResponse struct {
	ID        string     `json:"id"`
	UserID    *string    `json:"userId,omitempty"`
	SessionID string     `json:"sessionId"`
	ActionID  int64      `json:"actionId"`
	Points    int        `json:"points"`
	Reason    string     `json:"reason"`
	IssuedAt  time.Time  `json:"issuedAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type summaryResponse struct {
	Pass                int `json:"pass"`
	DisposeExpired      int `json:"disposeExpired"`
	UnregisteredDispose int `json:"unregisteredDispose"`
	WarnStoragePoor     int `json:"warnStoragePoor"`
	WarnInfoMismatch    int `json:"warnInfoMismatch"`
	TotalActions        int `json:"totalActions"`
	PenaltyPoints       int `json:"penaltyPoints"`
}

type sessionListResponse struct {
	Sessions []sessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}

type penaltyListResponse struct {
	Penalties    []penaltyResponse `json:"penalties"`
	ActivePoints int               `json:"activePoints"`
}

// StartSession opens (or resumes) an inspection over a compartment.
// POST /sessions
func (h *InspectionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	slotID, err := uuid.Parse(req.SlotID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), domain.NewValidationError("slotId", "must be a UUID"))
		return
	}

	input := inspection.StartSessionInput{SlotID: slotID}
	if req.ScheduleID != nil {
		scheduleID, err := uuid.Parse(*req.ScheduleID)
		if err != nil {
			writeDomainError(w, h.log, r.Context(), domain.NewValidationError("scheduleId", "must be a UUID"))
			return
		}
		input.ScheduleID = &scheduleID
	}

	result, err := h.svc.StartSession(r.Context(), input)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	status := http.StatusCreated
	if result.Resumed {
		status = http.StatusOK
	}
	resp := toSessionResponse(result.Session)
	resp.Resumed = result.Resumed
	writeJSON(w, status, resp)
}

// GetSession returns the full session view.
// GET /sessions/{id}
func (h *InspectionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	session, err := h.svc.GetSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// ActiveSession returns the in-progress session for a compartment.
// GET /slots/{id}/sessions/active
func (h *InspectionHandler) ActiveSession(w http.ResponseWriter, r *http.Request) {
	slotID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	session, err := h.svc.ActiveSession(r.Context(), slotID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// ListSessions returns a compartment's session history.
// GET /slots/{id}/sessions?limit=20&offset=0
func (h *InspectionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	slotID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	limit, offset := parsePagination(r)
	sessions, total, err := h.svc.ListSessions(r.Context(), slotID, limit, offset)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	resp := sessionListResponse{Sessions: make([]sessionResponse, len(sessions)), Total: total}
	for i, session := range sessions {
		resp.Sessions[i] = toSessionResponse(session)
	}
	writeJSON(w, http.StatusOK, resp)
}

// RecordActions appends a batch of dispositions to a session.
// POST /sessions/{id}/actions
func (h *InspectionHandler) RecordActions(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	var req recordActionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	input := inspection.RecordActionsInput{SessionID: sessionID}
	for _, a := range req.Actions {
		actionInput := inspection.ActionInput{
			Type: domain.ActionType(a.Type),
			Note: a.Note,
		}
		if a.UnitID != nil {
			unitID, err := uuid.Parse(*a.UnitID)
			if err != nil {
				writeDomainError(w, h.log, r.Context(), domain.NewValidationError("unitId", "must be a UUID"))
				return
			}
			actionInput.UnitID = &unitID
		}
		input.Actions = append(input.Actions, actionInput)
	}

	recorded, err := h.svc.RecordActions(r.Context(), input)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	resp := make([]actionResponse, len(recorded))
	for i, action := range recorded {
		resp[i] = toActionResponse(action)
	}
	writeJSON(w, http.StatusCreated, resp)
}

// RevertAction removes a recorded action and its penalties.
// DELETE /sessions/{id}/actions/{actionId}
func (h *InspectionHandler) RevertAction(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	actionID, err := strconv.ParseInt(r.PathValue("actionId"), 10, 64)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), domain.NewValidationError("actionId", "must be an integer"))
		return
	}

	if err := h.svc.RevertAction(r.Context(), inspection.RevertActionInput{
		SessionID: sessionID,
		ActionID:  actionID,
	}); err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SubmitSession finalizes a session.
// POST /sessions/{id}/submit
func (h *InspectionHandler) SubmitSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	session, err := h.svc.SubmitSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// CancelSession abandons a session. Hitting a session that already reached
// a terminal status returns it unchanged.
// POST /sessions/{id}/cancel
func (h *InspectionHandler) CancelSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	session, err := h.svc.CancelSession(r.Context(), sessionID)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// MyPenalties returns the caller's penalty history.
// GET /me/penalties?active=true
func (h *InspectionHandler) MyPenalties(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"

	records, points, err := h.svc.MyPenalties(r.Context(), activeOnly)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toPenaltyListResponse(records, points))
}

// UserPenalties returns another user's penalty history. Inspector only.
// GET /users/{id}/penalties?active=true
func (h *InspectionHandler) UserPenalties(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "id")
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	activeOnly := r.URL.Query().Get("active") == "true"

	records, points, err := h.svc.UserPenalties(r.Context(), userID, activeOnly)
	if err != nil {
		writeDomainError(w, h.log, r.Context(), err)
		return
	}

	writeJSON(w, http.StatusOK, toPenaltyListResponse(records, points))
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func parsePagination(r *http.Request) (limit, offset int) {
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, _ = strconv.Atoi(v)
	}
	return limit, offset
}

func toSessionResponse(session *domain.InspectionSession) sessionResponse {
	resp := sessionResponse{
		ID:        session.ID.String(),
		SlotID:    session.SlotID.String(),
		Status:    string(session.Status),
		StartedBy: session.StartedBy.String(),
		StartedAt: session.StartedAt,
		EndedAt:   session.EndedAt,
		Complete:  session.Complete(),
	}
	if session.ScheduleID != nil {
		id := session.ScheduleID.String()
		resp.ScheduleID = &id
	}
	for _, item := range session.Items {
		resp.Items = append(resp.Items, sessionItemResponse{
			UnitID:      item.UnitID.String(),
			BundleID:    item.BundleID.String(),
			OwnerID:     item.OwnerID.String(),
			LabelNumber: item.LabelNumber,
			SeqNo:       item.SeqNo,
			UnitName:    item.UnitName,
			ExpiryDate:  item.ExpiryDate.Format(dateLayout),
			DisplayCode: item.DisplayCode,
		})
	}
	for _, action := range session.Actions {
		resp.Actions = append(resp.Actions, toActionResponse(action))
	}
	if session.Summary != nil {
		resp.Summary = &summaryResponse{
			Pass:                session.Summary.Pass,
			DisposeExpired:      session.Summary.DisposeExpired,
			UnregisteredDispose: session.Summary.UnregisteredDispose,
			WarnStoragePoor:     session.Summary.WarnStoragePoor,
			WarnInfoMismatch:    session.Summary.WarnInfoMismatch,
			TotalActions:        session.Summary.TotalActions,
			PenaltyPoints:       session.Summary.PenaltyPoints,
		}
	}
	return resp
}

func toActionResponse(action domain.InspectionAction) actionResponse {
	resp := actionResponse{
		ID:         action.ID,
		Kind:       string(action.Kind),
		Type:       string(action.Type),
		Note:       action.Note,
		RecordedBy: action.RecordedBy.String(),
		RecordedAt: action.RecordedAt,
	}
	if action.UnitID != nil {
		id := action.UnitID.String()
		resp.UnitID = &id
	}
	if action.BundleID != nil {
		id := action.BundleID.String()
		resp.BundleID = &id
	}
	for _, record := range action.Penalties {
		resp.Penalties = append(resp.Penalties, toPenaltyResponse(record))
	}
	return resp
}

func toPenaltyResponse(record domain.PenaltyRecord) penaltyResponse {
	resp := penaltyResponse{
		ID:        record.ID.String(),
		SessionID: record.SessionID.String(),
		ActionID:  record.ActionID,
		Points:    record.Points,
		Reason:    record.Reason,
		IssuedAt:  record.IssuedAt,
		ExpiresAt: record.ExpiresAt,
	}
	if record.UserID != nil {
		id := record.UserID.String()
		resp.UserID = &id
	}
	return resp
}

func toPenaltyListResponse(records []domain.PenaltyRecord, points int) penaltyListResponse {
	resp := penaltyListResponse{
		Penalties:    make([]penaltyResponse, len(records)),
		ActivePoints: points,
	}
	for i, record := range records {
		resp.Penalties[i] = toPenaltyResponse(record)
	}
	return resp
}
