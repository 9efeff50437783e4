package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/api/http/handlers"
	"github.com/spec-kit/employee-service/internal/auth"
	"github.com/spec-kit/employee-service/internal/config"
	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/observability"
	"github.com/spec-kit/employee-service/internal/persistence"
	"github.com/spec-kit/employee-service/internal/service"
	"github.com/spec-kit/employee-service/internal/worker"
)

// memRepo backs the end-to-end tests without a database.
type memRepo struct {
	mu        sync.Mutex
	nextID    int64
	employees map[int64]domain.Employee
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, employees: make(map[int64]domain.Employee)}
}

func (r *memRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee.EmpID = r.nextID
	employee.CreatedAt = time.Now()
	r.nextID++
	r.employees[employee.EmpID] = *employee
	return nil
}

func (r *memRepo) Update(_ context.Context, employee *domain.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.employees[employee.EmpID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Username = employee.Username
	stored.Email = employee.Email
	stored.Role = employee.Role
	r.employees[employee.EmpID] = stored
	return nil
}

func (r *memRepo) Delete(_ context.Context, empID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.employees[empID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.employees, empID)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, empID int64) (*domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[empID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	employee.PasswordHash = ""
	return &employee, nil
}

func (r *memRepo) GetAll(_ context.Context) ([]domain.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Employee, 0, len(r.employees))
	for _, employee := range r.employees {
		employee.PasswordHash = ""
		all = append(all, employee)
	}
	return all, nil
}

func (r *memRepo) GetPasswordHash(_ context.Context, empID int64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	employee, ok := r.employees[empID]
	if !ok {
		return "", pgx.ErrNoRows
	}
	return employee.PasswordHash, nil
}

func (r *memRepo) seed(t *testing.T, empID int64, username, role, password string) {
	t.Helper()
	digest, err := auth.HashPassword(password)
	require.NoError(t, err)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.employees[empID] = domain.Employee{
		EmpID:        empID,
		Username:     username,
		Email:        username + "@example.com",
		Role:         role,
		PasswordHash: digest,
		CreatedAt:    time.Now(),
	}
	if empID >= r.nextID {
		r.nextID = empID + 1
	}
}

func newTestServer(t *testing.T) (*fiber.App, *memRepo) {
	t.Helper()

	repo := newMemRepo()
	repo.seed(t, 1001, "jdoe", domain.RoleAdmin, "secret")
	repo.seed(t, 1002, "asmith", domain.RoleUser, "hunter2")

	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	authService, err := service.NewAuthService(config.AuthConfig{
		JWTSecret:       "test-jwt-secret",
		Issuer:          "employee-service-test",
		Audience:        "employee-service-clients",
		TokenTTLMinutes: 60,
	}, repo, dispatcher)
	require.NoError(t, err)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Auth:           handlers.NewAuthHandler(authService),
		Employees:      handlers.NewEmployeesHandler(service.NewEmployeeService(repo, dispatcher)),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager(), logger),
		Health:         handlers.NewHealthHandler("employee-service-test", "dev", &persistence.Postgres{}, &persistence.Redis{}),
	})
	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func loginToken(t *testing.T, app *fiber.App, empID int64, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"empId": empID, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestLogin_Success(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"empId": 1001, "password": "secret",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["token"])
	employee, ok := body["employee"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1001), employee["empId"])
	assert.Equal(t, "jdoe", employee["username"])
	assert.Equal(t, "Admin", employee["role"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"empId": 1001, "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestLogin_UnknownEmployee_SameResponse(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"empId": 4242, "password": "secret",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestLogin_MissingPassword(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"empId": 1001,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListEmployees_AdminOnly(t *testing.T) {
	app, _ := newTestServer(t)

	adminToken := loginToken(t, app, 1001, "secret")
	userToken := loginToken(t, app, 1002, "hunter2")

	resp := doJSON(t, app, http.MethodGet, "/employees/", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/employees/", userToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/employees/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetEmployee_AdminOrUser(t *testing.T) {
	app, _ := newTestServer(t)

	userToken := loginToken(t, app, 1002, "hunter2")

	resp := doJSON(t, app, http.MethodGet, "/employees/1001", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jdoe", data["username"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)
}

func TestGetEmployee_NotFound(t *testing.T) {
	app, _ := newTestServer(t)

	adminToken := loginToken(t, app, 1001, "secret")
	resp := doJSON(t, app, http.MethodGet, "/employees/9999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateEmployee(t *testing.T) {
	app, repo := newTestServer(t)

	adminToken := loginToken(t, app, 1001, "secret")

	resp := doJSON(t, app, http.MethodPost, "/employees/", adminToken, map[string]any{
		"username": "newhire", "email": "newhire@example.com", "role": "User", "password": "w3lcome",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "newhire", data["username"])
	_, hasPassword := data["password"]
	assert.False(t, hasPassword)

	// The stored digest must verify against the submitted password.
	empID := int64(data["empId"].(float64))
	digest, err := repo.GetPasswordHash(context.Background(), empID)
	require.NoError(t, err)
	assert.True(t, auth.VerifyPassword("w3lcome", digest))

	// The new account can log in immediately.
	loginToken(t, app, empID, "w3lcome")
}

func TestCreateEmployee_MissingPassword(t *testing.T) {
	app, _ := newTestServer(t)

	adminToken := loginToken(t, app, 1001, "secret")
	resp := doJSON(t, app, http.MethodPost, "/employees/", adminToken, map[string]any{
		"username": "newhire",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateEmployee_UserForbidden(t *testing.T) {
	app, _ := newTestServer(t)

	userToken := loginToken(t, app, 1002, "hunter2")
	resp := doJSON(t, app, http.MethodPost, "/employees/", userToken, map[string]any{
		"username": "newhire", "password": "w3lcome",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdateAndDeleteEmployee(t *testing.T) {
	app, _ := newTestServer(t)

	adminToken := loginToken(t, app, 1001, "secret")

	resp := doJSON(t, app, http.MethodPut, "/employees/1002", adminToken, map[string]any{
		"username": "asmith", "email": "a.smith@example.com", "role": "Admin",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/employees/1002", adminToken, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/employees/1002", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTamperedTokenRejected(t *testing.T) {
	app, _ := newTestServer(t)

	adminToken := loginToken(t, app, 1001, "secret")
	tampered := adminToken[:len(adminToken)-2] + "xx"

	resp := doJSON(t, app, http.MethodGet, "/employees/", tampered, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequestIDHeaderSet(t *testing.T) {
	app, _ := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", "", map[string]any{
		"empId": 1001, "password": "secret",
	})
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
