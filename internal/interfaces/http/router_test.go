package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bakery-erp/internal/application/auth"
	"github.com/jhoicas/bakery-erp/internal/application/dashboard"
	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/inventory"
	"github.com/jhoicas/bakery-erp/internal/application/report"
	"github.com/jhoicas/bakery-erp/internal/application/usecase"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/api"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/storage"
	"github.com/jhoicas/bakery-erp/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/bakery-erp/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/bakery-erp/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// backend simula el ERP remoto; cuenta las llamadas por recurso.
type backend struct {
	mu          sync.Mutex
	role        string
	loginErr    error
	balancesErr error
	calls       map[string]int
}

func newBackend(role string) *backend {
	return &backend{role: role, calls: map[string]int{}}
}

func (b *backend) hit(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[name]++
}

func (b *backend) count(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

func (b *backend) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	b.hit("login")
	if b.loginErr != nil {
		return nil, b.loginErr
	}
	access, err := pkgjwt.Generate("secreto", "7", "access", time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Access:  access,
		Refresh: "refresh",
		User:    dto.UserRecord{ID: "7", Name: "Ana", EmpCode: in.EmpCode, Role: b.role},
	}, nil
}

func (b *backend) ListWarehouses(context.Context) ([]dto.WarehouseRecord, error) {
	b.hit("warehouses")
	return []dto.WarehouseRecord{
		{ID: "w1", Name: "Central", Code: "CEN"},
		{ID: "w2", Name: "Norte", Code: "NOR"},
	}, nil
}

func (b *backend) ListMovements(context.Context, string) ([]dto.MovementRecord, error) {
	b.hit("movements")
	return []dto.MovementRecord{
		{ID: "m1", Batch: "l1", ProductName: "Baguette", MovementType: "in", Quantity: json.RawMessage(`"4"`), CreatedAt: time.Now().Format(time.RFC3339)},
	}, nil
}

func (b *backend) CreateMovement(_ context.Context, in dto.CreateMovementRequest) (*dto.MovementRecord, error) {
	b.hit("create")
	return &dto.MovementRecord{
		ID:           "m2",
		Warehouse:    dto.FlexString(in.Warehouse),
		Batch:        dto.FlexString(in.Batch),
		MovementType: string(in.MovementType),
		Quantity:     json.RawMessage(in.Quantity.String()),
	}, nil
}

func (b *backend) ListBalances(context.Context, string) ([]dto.BalanceRecord, error) {
	b.hit("balances")
	if b.balancesErr != nil {
		return nil, b.balancesErr
	}
	return []dto.BalanceRecord{
		{ID: "s1", Product: "Harina", QuantityOnHand: json.RawMessage(`"2.5"`), Status: "LOW_STOCK"},
		{ID: "s2", Product: "Azúcar", QuantityOnHand: json.RawMessage(`10`), Status: "IN_STOCK"},
	}, nil
}

func (b *backend) ListBatches(context.Context, string) ([]dto.BatchRecord, error) {
	b.hit("batches")
	exp := time.Now().AddDate(0, 0, 3).Format(time.DateOnly)
	return []dto.BatchRecord{
		{ID: "l1", BatchNumber: "LOT-1", Product: "Baguette", ExpiryDate: exp, Quantity: json.RawMessage(`5`)},
	}, nil
}

// buildTestApp arma el BFF completo sobre el backend simulado y un estado en memoria.
func buildTestApp(t *testing.T, b *backend, cfg apphttp.AppConfig) *fiber.App {
	t.Helper()
	log := zerolog.Nop()
	state := storage.NewFileStateStore(afero.NewMemMapFs(), "/estado/state.json", log)
	store := inventory.NewStore(inventory.NewService(b, nil), time.Minute)
	warehouses := usecase.NewWarehouseUseCase(b, state, store, log)
	authUC := auth.NewUseCase(b, state, log)

	return apphttp.NewApp(cfg, apphttp.RouterDeps{
		AuthUC:        authUC,
		WarehouseUC:   warehouses,
		PreferencesUC: usecase.NewPreferencesUseCase(state),
		ModuleService: usecase.NewModuleService(),
		DashboardUC:   dashboard.NewUseCase(authUC, warehouses, store),
		Store:         store,
		ReportUC:      report.NewUseCase(store, xlsx.NewExporter(), pdf.NewStockReportGenerator(), nil, log),
		Log:           log,
	})
}

// doRequest ejecuta la petición contra la app (sin red real).
func doRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App) dto.SessionResponse {
	t.Helper()
	resp := doRequest(t, app, http.MethodPost, "/api/session/login", dto.LoginRequest{EmpCode: "abc-123", Password: "x"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return decode[dto.SessionResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_OK(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{Name: "bakery-erp"})
	resp := doRequest(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "bakery-erp", body["service"])
}

func TestMetrics_SoloSiHayGatherer(t *testing.T) {
	sin := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})
	assert.Equal(t, fiber.StatusNotFound, doRequest(t, sin, http.MethodGet, "/metrics", nil).StatusCode)

	con := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{Gatherer: prometheus.NewRegistry()})
	assert.Equal(t, fiber.StatusOK, doRequest(t, con, http.MethodGet, "/metrics", nil).StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesión
// ──────────────────────────────────────────────────────────────────────────────

func TestSession_SinLoginDevuelve401(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})

	for _, path := range []string{"/api/dashboard", "/api/navigation", "/api/warehouses", "/api/inventory/movements"} {
		resp := doRequest(t, app, http.MethodGet, path, nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, "NOT_LOGGED_IN", decode[dto.ErrorResponse](t, resp).Code, path)
	}

	status := decode[dto.SessionResponse](t, doRequest(t, app, http.MethodGet, "/api/session", nil))
	assert.False(t, status.LoggedIn)
}

func TestLogin_FormatoInvalidoNoLlamaAlBackend(t *testing.T) {
	b := newBackend("Admin")
	app := buildTestApp(t, b, apphttp.AppConfig{})

	resp := doRequest(t, app, http.MethodPost, "/api/session/login", dto.LoginRequest{EmpCode: "abc123", Password: "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, auth.MsgFormatError, decode[dto.ErrorResponse](t, resp).Message)
	assert.Zero(t, b.count("login"))
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	b := newBackend("Admin")
	b.loginErr = &api.Error{Kind: api.KindServer, Method: "POST", Path: "/account/login/", StatusCode: 401, Detail: "Invalid Credentials"}
	app := buildTestApp(t, b, apphttp.AppConfig{})

	resp := doRequest(t, app, http.MethodPost, "/api/session/login", dto.LoginRequest{EmpCode: "abc-123", Password: "mala"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid Credentials", decode[dto.ErrorResponse](t, resp).Message)
}

func TestLogin_SinRespuestaDelServidor(t *testing.T) {
	b := newBackend("Admin")
	b.loginErr = &api.Error{Kind: api.KindTransport, Method: "POST", Path: "/account/login/", Err: errors.New("dial tcp: refused")}
	app := buildTestApp(t, b, apphttp.AppConfig{})

	resp := doRequest(t, app, http.MethodPost, "/api/session/login", dto.LoginRequest{EmpCode: "abc-123", Password: "x"})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "NO_RESPONSE", body.Code)
	assert.Equal(t, api.MsgNoResponse, body.Message)
}

func TestLogin_AutoseleccionaPrimeraBodega(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})

	status := login(t, app)
	assert.True(t, status.LoggedIn)
	require.NotNil(t, status.User)
	assert.Equal(t, "Ana", status.User.Name)
	require.NotNil(t, status.Warehouse)
	assert.Equal(t, "w1", status.Warehouse.ID)
	require.NotNil(t, status.TokenExpiresAt)
	assert.False(t, status.TokenExpired)

	list := decode[dto.WarehouseListResponse](t, doRequest(t, app, http.MethodGet, "/api/warehouses", nil))
	assert.Len(t, list.Items, 2)
	assert.Equal(t, "w1", list.ActiveID)
}

func TestLogout_BorraSesion(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})
	login(t, app)

	assert.Equal(t, fiber.StatusNoContent, doRequest(t, app, http.MethodPost, "/api/session/logout", nil).StatusCode)
	assert.Equal(t, fiber.StatusUnauthorized, doRequest(t, app, http.MethodGet, "/api/dashboard", nil).StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas, navegación y preferencias
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectWarehouse(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})
	login(t, app)

	resp := doRequest(t, app, http.MethodPut, "/api/warehouses/active", dto.SelectWarehouseRequest{ID: "w2"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	status := decode[dto.SessionResponse](t, doRequest(t, app, http.MethodGet, "/api/session", nil))
	assert.Equal(t, "w2", status.Warehouse.ID)

	resp = doRequest(t, app, http.MethodPut, "/api/warehouses/active", dto.SelectWarehouseRequest{ID: "w9"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, http.MethodPut, "/api/warehouses/active", dto.SelectWarehouseRequest{})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestNavigation_PorRolYActivo(t *testing.T) {
	app := buildTestApp(t, newBackend("Sales"), apphttp.AppConfig{})
	login(t, app)

	nav := decode[dto.NavigationResponse](t, doRequest(t, app, http.MethodGet, "/api/navigation?path=/sales/orders", nil))
	ids := make([]string, 0, len(nav.Items))
	for _, it := range nav.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"dashboard", "sales", "reports"}, ids)
	assert.Equal(t, "sales", nav.ActiveID)
	assert.Equal(t, "settings", nav.Settings.ID)
}

func TestPreferences_ActualizaTema(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})

	resp := doRequest(t, app, http.MethodPut, "/api/preferences", map[string]any{"theme": "dark"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	prefs := decode[map[string]any](t, doRequest(t, app, http.MethodGet, "/api/preferences", nil))
	assert.Equal(t, "dark", prefs["theme"])

	resp = doRequest(t, app, http.MethodPut, "/api/preferences", map[string]any{"theme": "sepia"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestInventory_RolSinModuloDevuelve403(t *testing.T) {
	app := buildTestApp(t, newBackend("Sales"), apphttp.AppConfig{})
	login(t, app)

	resp := doRequest(t, app, http.MethodGet, "/api/inventory/balances", nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "MODULE_FORBIDDEN", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInventory_CacheYBusqueda(t *testing.T) {
	b := newBackend("Warehouse")
	app := buildTestApp(t, b, apphttp.AppConfig{})
	login(t, app)

	first := decode[dto.BalanceListResponse](t, doRequest(t, app, http.MethodGet, "/api/inventory/balances", nil))
	assert.Equal(t, 2, first.Total)
	assert.Equal(t, "w1", first.Cache.WarehouseID)
	assert.False(t, first.Cache.IsStale)

	filtered := decode[dto.BalanceListResponse](t, doRequest(t, app, http.MethodGet, "/api/inventory/balances?search=HARINA", nil))
	require.Equal(t, 1, filtered.Total)
	assert.Equal(t, "Harina", filtered.Items[0].Product)
	assert.Equal(t, 1, b.count("balances"), "la segunda lectura sale de la caché")

	doRequest(t, app, http.MethodGet, "/api/inventory/balances?force=true", nil)
	assert.Equal(t, 2, b.count("balances"))

	st := decode[dto.InventoryStateDTO](t, doRequest(t, app, http.MethodGet, "/api/inventory/cache", nil))
	assert.Equal(t, "balances", st.ActiveTab)
	assert.Equal(t, "w1", st.SelectedWarehouseID)
	assert.NotNil(t, st.Balances.LastFetched)
	assert.Nil(t, st.Batches.LastFetched)
}

func TestInventory_LotesConVencimiento(t *testing.T) {
	app := buildTestApp(t, newBackend("Production"), apphttp.AppConfig{})
	login(t, app)

	out := decode[map[string]any](t, doRequest(t, app, http.MethodGet, "/api/inventory/batches", nil))
	items := out["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "near", items[0].(map[string]any)["expiry_status"])
}

func TestInventory_ErrorDelBackend(t *testing.T) {
	b := newBackend("Admin")
	b.balancesErr = &api.Error{Kind: api.KindServer, Method: "GET", Path: "/inventory/stock-balances/", StatusCode: 500, Detail: "boom"}
	app := buildTestApp(t, b, apphttp.AppConfig{})
	login(t, app)

	resp := doRequest(t, app, http.MethodGet, "/api/inventory/balances", nil)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "boom", decode[dto.ErrorResponse](t, resp).Message)

	st := decode[dto.InventoryStateDTO](t, doRequest(t, app, http.MethodGet, "/api/inventory/cache", nil))
	assert.Equal(t, "boom", st.Error)
}

func TestInventory_AddMovementRecargaMovimientosYSaldos(t *testing.T) {
	b := newBackend("Admin")
	app := buildTestApp(t, b, apphttp.AppConfig{})
	login(t, app)
	doRequest(t, app, http.MethodGet, "/api/inventory/movements", nil)
	doRequest(t, app, http.MethodGet, "/api/inventory/balances", nil)
	doRequest(t, app, http.MethodGet, "/api/inventory/batches", nil)

	resp := doRequest(t, app, http.MethodPost, "/api/inventory/movements",
		map[string]any{"batch": "l1", "movement_type": "out", "quantity": "2"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, resp)
	assert.Equal(t, "m2", created["id"])

	assert.Equal(t, 1, b.count("create"))
	assert.Equal(t, 2, b.count("movements"))
	assert.Equal(t, 2, b.count("balances"))
	assert.Equal(t, 1, b.count("batches"))
}

func TestInventory_AddMovementValidaAntesDeLaRed(t *testing.T) {
	b := newBackend("Admin")
	app := buildTestApp(t, b, apphttp.AppConfig{})
	login(t, app)

	resp := doRequest(t, app, http.MethodPost, "/api/inventory/movements",
		map[string]any{"batch": "l1", "movement_type": "IN", "quantity": "0"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, b.count("create"))
}

func TestInventory_Invalidate(t *testing.T) {
	b := newBackend("Admin")
	app := buildTestApp(t, b, apphttp.AppConfig{})
	login(t, app)
	doRequest(t, app, http.MethodGet, "/api/inventory/movements", nil)

	assert.Equal(t, fiber.StatusBadRequest, doRequest(t, app, http.MethodPost, "/api/inventory/invalidate?tab=ventas", nil).StatusCode)
	assert.Equal(t, fiber.StatusNoContent, doRequest(t, app, http.MethodPost, "/api/inventory/invalidate?tab=movements", nil).StatusCode)

	doRequest(t, app, http.MethodGet, "/api/inventory/movements", nil)
	assert.Equal(t, 2, b.count("movements"))
}

func TestInventory_ExportYReporte(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})
	login(t, app)

	resp := doRequest(t, app, http.MethodGet, "/api/inventory/export?tab=balances", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario-balances-w1.xlsx")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")))

	resp = doRequest(t, app, http.MethodGet, "/api/inventory/report", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	assert.Equal(t, fiber.StatusBadRequest, doRequest(t, app, http.MethodGet, "/api/inventory/export?tab=ventas", nil).StatusCode)
}

func TestDashboard_AlertasParaAdmin(t *testing.T) {
	app := buildTestApp(t, newBackend("Admin"), apphttp.AppConfig{})
	login(t, app)

	summary := decode[dto.DashboardSummaryDTO](t, doRequest(t, app, http.MethodGet, "/api/dashboard", nil))
	assert.True(t, summary.ShowKPIs)
	require.NotNil(t, summary.Alerts)
	assert.Equal(t, 1, summary.Alerts.LowStock)
	assert.Equal(t, 1, summary.Alerts.NearExpiry)
	assert.Equal(t, 1, summary.Alerts.MovementsToday)
}
