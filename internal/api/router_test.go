package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"oficina-api/internal/api/handlers"
	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/period"
	"oficina-api/internal/report"
	"oficina-api/internal/service"
	"oficina-api/pkg/auth"
	"oficina-api/pkg/money"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestApp wires handlers without storage. Every request in these tests is
// rejected or answered before a store would be touched.
func newTestApp(t *testing.T) (*fiber.App, *auth.JWTManager) {
	t.Helper()

	log := zap.NewNop()
	jwtManager := auth.NewJWTManager("router-secret", time.Hour, 2*time.Hour)
	resolver := period.New(log)

	categories := service.NewCategoryService(nil, log)
	h := Handlers{
		Auth:        handlers.NewAuthHandler(service.NewAuthService(nil, nil, jwtManager, log), log),
		Employee:    handlers.NewEmployeeHandler(service.NewEmployeeService(nil, nil, log), service.NewRoleService(nil, nil, log), log),
		Client:      handlers.NewClientHandler(service.NewClientService(nil, log), log),
		Assistant:   handlers.NewAssistantHandler(service.NewAssistantService(nil, nil, resolver, nil, log), log),
		Quote:       handlers.NewQuoteHandler(service.NewQuoteService(nil, report.Header{}, nil, log), log),
		Transaction: handlers.NewTransactionHandler(service.NewTransactionService(nil, nil, log), categories, log),
		Report:      handlers.NewReportHandler(service.NewReportService(nil, nil, resolver, "Oficina", nil, log), log),
		Dashboard:   handlers.NewDashboardHandler(service.NewDashboardService(nil, nil, log), log),
	}

	return SetupRouter(h, jwtManager, log), jwtManager
}

func accessToken(t *testing.T, m *auth.JWTManager, role string) string {
	t.Helper()
	token, err := m.GenerateToken("0b6f9b9e-6c1f-4b8e-9a59-3f1f2f4c1a10", "Paula", "paula@oficina.com", role)
	require.NoError(t, err)
	return token
}

func do(t *testing.T, app *fiber.App, method, target, token, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestHealth(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := do(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestProtectedRoutesRequireAccessToken(t *testing.T) {
	app, jwtManager := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/api/v1/dashboard/stats", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	refresh, err := jwtManager.GenerateRefreshToken("0b6f9b9e-6c1f-4b8e-9a59-3f1f2f4c1a10")
	require.NoError(t, err)
	status, _ = do(t, app, http.MethodGet, "/api/v1/dashboard/stats", refresh, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestResolvePeriodEndpoint(t *testing.T) {
	app, jwtManager := newTestApp(t)
	token := accessToken(t, jwtManager, "Mecânico")

	status, body := do(t, app, http.MethodGet, "/api/v1/assistant/period?text="+url.QueryEscape("janeiro de 2024"), token, "")
	require.Equal(t, http.StatusOK, status)

	var resp dto.PeriodResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	assert.True(t, resp.Recognized)
	assert.Equal(t, "2024-01-01", resp.Period.StartDate())
	assert.Equal(t, "2024-01-31", resp.Period.EndDate())

	status, body = do(t, app, http.MethodGet, "/api/v1/assistant/period?text=nunca", token, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"text":"nunca","period":{},"recognized":false}`, body)
}

func TestChatErrors(t *testing.T) {
	app, jwtManager := newTestApp(t)
	token := accessToken(t, jwtManager, "Mecânico")

	status, _ := do(t, app, http.MethodPost, "/api/v1/assistant/chat", token, `{"question":"  "}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/assistant/chat", token, `{"question":"oi"}`)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestManagerOnlyRoutes(t *testing.T) {
	app, jwtManager := newTestApp(t)
	token := accessToken(t, jwtManager, "Mecânico")

	status, body := do(t, app, http.MethodPost, "/api/v1/categories", token, `{"name":"Peças"}`)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, body, "Insufficient permissions")

	status, _ = do(t, app, http.MethodPost, "/api/v1/employees", token, `{"name":"A"}`)
	assert.Equal(t, http.StatusForbidden, status)

	manager := accessToken(t, jwtManager, models.RoleManager)
	status, body = do(t, app, http.MethodPost, "/api/v1/categories", manager, `{"name":" "}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, service.ErrNameRequired.Error())
}

func TestValidationErrorsMapTo400(t *testing.T) {
	app, jwtManager := newTestApp(t)
	token := accessToken(t, jwtManager, "Mecânico")

	status, _ := do(t, app, http.MethodGet, "/api/v1/quotes/not-a-uuid", token, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := do(t, app, http.MethodPost, "/api/v1/transactions", token,
		`{"name":"Peças","type":"transfer","amount":10,"transaction_date":"2025-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, service.ErrInvalidTransactionType.Error())

	status, _ = do(t, app, http.MethodGet, "/api/v1/transactions?from=2025-02-01&to=2025-01-01", token, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = do(t, app, http.MethodPost, "/api/v1/reports", token, `{"type":"transfer"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, service.ErrInvalidReportType.Error())

	status, _ = do(t, app, http.MethodPost, "/api/v1/quotes", token, `{"client_name":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUnrepresentableAmountsMapTo400(t *testing.T) {
	app, jwtManager := newTestApp(t)
	token := accessToken(t, jwtManager, "Mecânico")

	status, body := do(t, app, http.MethodPost, "/api/v1/transactions", token,
		`{"name":"Peças","type":"expense","amount":100000000000000000,"transaction_date":"2025-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, money.ErrInvalidAmount.Error())

	status, body = do(t, app, http.MethodPost, "/api/v1/transactions", token,
		`{"name":"Peças","type":"expense","amount":"dez reais","transaction_date":"2025-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, money.ErrInvalidAmount.Error())

	status, _ = do(t, app, http.MethodPost, "/api/v1/quotes", token,
		`{"client_name":"Ana","services":[{"name":"Motor","price":"R$ 99.999.999.999.999.999,00"}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestQuoteEditRoutes(t *testing.T) {
	app, jwtManager := newTestApp(t)
	token := accessToken(t, jwtManager, "Mecânico")
	id := "5d3c6f8e-2b1a-4c9d-8e7f-0a1b2c3d4e5f"

	status, body := do(t, app, http.MethodPut, "/api/v1/quotes/"+id, token,
		`{"client_name":"Ana","services":[{"id":"abc","name":"Motor","price":10}]}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, service.ErrInvalidServiceItem.Error())

	status, _ = do(t, app, http.MethodPut, "/api/v1/quotes/"+id, token,
		`{"client_name":"Ana","services_to_delete":["nope"]}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/quotes/bad/pdf", token, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = do(t, app, http.MethodGet, "/api/v1/quotes/bad/services", token, "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStaffAndClientRoutes(t *testing.T) {
	app, jwtManager := newTestApp(t)
	mechanic := accessToken(t, jwtManager, "Mecânico")
	manager := accessToken(t, jwtManager, models.RoleManager)

	status, _ := do(t, app, http.MethodGet, "/api/v1/employees", mechanic, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = do(t, app, http.MethodPost, "/api/v1/roles", mechanic, `{"name":"Pintor"}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := do(t, app, http.MethodPost, "/api/v1/roles", manager, `{"name":"GERENTE"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, service.ErrReservedRole.Error())

	status, body = do(t, app, http.MethodPut, "/api/v1/me/password", mechanic, `{"current_password":"x","new_password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, service.ErrWeakPassword.Error())

	status, body = do(t, app, http.MethodPost, "/api/v1/vehicles", mechanic, `{"client_id":"x","model":"Gol"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, service.ErrInvalidClientID.Error())

	status, _ = do(t, app, http.MethodPost, "/api/v1/clients", mechanic, `{"name":" "}`)
	assert.Equal(t, http.StatusBadRequest, status)
}
