//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/hyessol/fridgecheck-backend/internal/adapter/postgres"
	auditrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/audit"
	bundlerepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/bundle"
	penaltyrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/penalty"
	schedulerepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/schedule"
	sessionrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/session"
	slotrepo "github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/slot"
	"github.com/hyessol/fridgecheck-backend/internal/adapter/postgres/testhelper"
	"github.com/hyessol/fridgecheck-backend/internal/auth"
	"github.com/hyessol/fridgecheck-backend/internal/config"
	"github.com/hyessol/fridgecheck-backend/internal/domain"
	inspectionsvc "github.com/hyessol/fridgecheck-backend/internal/service/inspection"
	inventorysvc "github.com/hyessol/fridgecheck-backend/internal/service/inventory"
	schedulesvc "github.com/hyessol/fridgecheck-backend/internal/service/schedule"
	slotsvc "github.com/hyessol/fridgecheck-backend/internal/service/slot"
	"github.com/hyessol/fridgecheck-backend/internal/transport/middleware"
	"github.com/hyessol/fridgecheck-backend/internal/transport/rest"
	"github.com/hyessol/fridgecheck-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL       string
	Client    *http.Client
	Pool      *pgxpool.Pool
	validator *auth.TokenValidator
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	auditRepo := auditrepo.New(pool)
	bundleRepo := bundlerepo.New(pool)
	penaltyRepo := penaltyrepo.New(pool)
	scheduleRepo := schedulerepo.New(pool)
	sessionRepo := sessionrepo.New(pool)
	slotRepo := slotrepo.New(pool)

	inventoryService := inventorysvc.NewService(logger, slotRepo, bundleRepo, auditRepo, txm, 3)

	inspectionService := inspectionsvc.NewService(
		logger, slotRepo, sessionRepo, bundleRepo, scheduleRepo, penaltyRepo,
		domain.StaticPenaltyPolicy{WarningPoints: 1, DisposePoints: 3},
		auditRepo, txm, 180,
	)

	scheduleService := schedulesvc.NewService(logger, scheduleRepo, slotRepo, auditRepo)
	slotService := slotsvc.NewService(logger, slotRepo, auditRepo)

	validator := auth.NewTokenValidator("test-secret-at-least-32-chars-long!!", "test-issuer")

	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, "test-version"),
		Slots:      rest.NewSlotHandler(slotService, logger),
		Inventory:  rest.NewInventoryHandler(inventoryService, logger),
		Inspection: rest.NewInspectionHandler(inspectionService, logger),
		Schedules:  rest.NewScheduleHandler(scheduleService, logger),
	})

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(validator),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:       srv.URL,
		Client:    srv.Client(),
		Pool:      pool,
		validator: validator,
	}
}

// ---------------------------------------------------------------------------
// Token helpers
// ---------------------------------------------------------------------------

func (ts *testServer) tokenFor(t *testing.T, userID uuid.UUID, roles ...domain.Role) string {
	t.Helper()
	token, err := ts.validator.Mint(ctxutil.Identity{UserID: userID, Roles: roles}, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func (ts *testServer) residentToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, ts.tokenFor(t, id, domain.RoleResident)
}

func (ts *testServer) managerToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, ts.tokenFor(t, id, domain.RoleFloorManager)
}

func (ts *testServer) adminToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()
	id := uuid.New()
	return id, ts.tokenFor(t, id, domain.RoleAdmin)
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// doJSON sends a request with an optional JSON body and bearer token, and
// decodes the JSON response body into a map (nil for 204s).
func (ts *testServer) doJSON(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}

	var result map[string]any
	require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	return resp.StatusCode, result
}

// doJSONList is doJSON for endpoints that return a top-level JSON array.
func (ts *testServer) doJSONList(t *testing.T, method, path string, body any, token string) (int, []any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result []any
	require.NoError(t, json.Unmarshal(raw, &result), "body: %s", raw)
	return resp.StatusCode, result
}

// ---------------------------------------------------------------------------
// Fixture helpers
// ---------------------------------------------------------------------------

// createSlot provisions a fresh ACTIVE slot through the admin API.
func (ts *testServer) createSlot(t *testing.T) map[string]any {
	t.Helper()

	_, admin := ts.adminToken(t)
	status, slot := ts.doJSON(t, http.MethodPost, "/slots", map[string]any{
		"floorNo":         int(nextFloor()),
		"slotIndex":       1,
		"slotLetter":      "A",
		"labelRangeStart": 1,
		"labelRangeEnd":   100,
	}, admin)
	require.Equal(t, http.StatusCreated, status, "create slot: %v", slot)
	return slot
}

// createBundle registers a bundle with one unit owned by the token's user.
func (ts *testServer) createBundle(t *testing.T, slotID, token, unitName, expiry string) map[string]any {
	t.Helper()

	status, bundle := ts.doJSON(t, http.MethodPost, "/bundles", map[string]any{
		"slotId": slotID,
		"name":   "groceries",
		"units": []map[string]any{
			{"name": unitName, "expiryDate": expiry},
		},
	}, token)
	require.Equal(t, http.StatusCreated, status, "create bundle: %v", bundle)
	return bundle
}

// nextFloor proxies the testhelper counter so fixtures built through the
// API never collide on (floor_no, slot_index).
func nextFloor() int64 {
	return testhelper.NextFloor()
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
