package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health     *HealthHandler
	Slots      *SlotHandler
	Inventory  *InventoryHandler
	Inspection *InspectionHandler
	Schedules  *ScheduleHandler
}

// NewRouter mounts all REST routes on a fresh mux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /slots", h.Slots.List)
	mux.HandleFunc("POST /slots", h.Slots.Create)
	mux.HandleFunc("GET /slots/{id}", h.Slots.Get)
	mux.HandleFunc("PATCH /slots/{id}", h.Slots.Update)
	mux.HandleFunc("PATCH /slots/{id}/status", h.Slots.SetStatus)
	mux.HandleFunc("GET /slots/{id}/items", h.Inventory.ListSlotItems)
	mux.HandleFunc("GET /slots/{id}/sessions", h.Inspection.ListSessions)
	mux.HandleFunc("GET /slots/{id}/sessions/active", h.Inspection.ActiveSession)

	mux.HandleFunc("POST /bundles", h.Inventory.CreateBundle)
	mux.HandleFunc("GET /bundles/{id}", h.Inventory.GetBundle)
	mux.HandleFunc("PATCH /bundles/{id}", h.Inventory.UpdateBundle)
	mux.HandleFunc("POST /bundles/{id}/units", h.Inventory.AddUnit)
	mux.HandleFunc("PATCH /units/{id}", h.Inventory.UpdateUnit)
	mux.HandleFunc("DELETE /units/{id}", h.Inventory.RemoveUnit)
	mux.HandleFunc("GET /me/items", h.Inventory.ListMyItems)

	mux.HandleFunc("POST /sessions", h.Inspection.StartSession)
	mux.HandleFunc("GET /sessions/{id}", h.Inspection.GetSession)
	mux.HandleFunc("POST /sessions/{id}/actions", h.Inspection.RecordActions)
	mux.HandleFunc("DELETE /sessions/{id}/actions/{actionId}", h.Inspection.RevertAction)
	mux.HandleFunc("POST /sessions/{id}/submit", h.Inspection.SubmitSession)
	mux.HandleFunc("POST /sessions/{id}/cancel", h.Inspection.CancelSession)
	mux.HandleFunc("GET /me/penalties", h.Inspection.MyPenalties)
	mux.HandleFunc("GET /users/{id}/penalties", h.Inspection.UserPenalties)

	mux.HandleFunc("GET /schedules", h.Schedules.List)
	mux.HandleFunc("POST /schedules", h.Schedules.Create)
	mux.HandleFunc("GET /schedules/{id}", h.Schedules.Get)
	mux.HandleFunc("PATCH /schedules/{id}", h.Schedules.Update)
	mux.HandleFunc("DELETE /schedules/{id}", h.Schedules.Cancel)

	return mux
}
