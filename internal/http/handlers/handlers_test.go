package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/mehrabhossain1/midwife-backend/internal/config"
	"github.com/mehrabhossain1/midwife-backend/internal/http/handlers"
	"github.com/mehrabhossain1/midwife-backend/internal/http/router"
	"github.com/mehrabhossain1/midwife-backend/internal/models"
	"github.com/mehrabhossain1/midwife-backend/internal/repository"
	"github.com/mehrabhossain1/midwife-backend/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// memUserRepo is an in-memory stand-in for the user collection. It satisfies
// both service.AuthRepository and service.UserAdminRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (m *memUserRepo) Create(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	user.ID = primitive.NewObjectID()
	m.users[user.Email] = user
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memUserRepo) SetVerification(ctx context.Context, email string, isVerified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.IsVerified = isVerified
	return nil
}

func (m *memUserRepo) SetBlockedAndVerified(ctx context.Context, email string, isBlocked, isVerified bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[email]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.IsBlocked = isBlocked
	user.IsVerified = isVerified
	return nil
}

func (m *memUserRepo) Delete(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[email]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.users, email)
	return nil
}

func (m *memUserRepo) List(ctx context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []models.User{}
	for _, u := range m.users {
		sanitized := *u
		sanitized.PasswordHash = ""
		users = append(users, sanitized)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

func (m *memUserRepo) CreatedSince(ctx context.Context, since time.Time) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	users := []models.User{}
	for _, u := range m.users {
		if !u.CreatedAt.Before(since) {
			sanitized := *u
			sanitized.PasswordHash = ""
			users = append(users, sanitized)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	return users, nil
}

// memReportRepo is an in-memory stand-in for the report collection.
type memReportRepo struct {
	mu      sync.Mutex
	reports map[primitive.ObjectID]*models.Report
}

func newMemReportRepo() *memReportRepo {
	return &memReportRepo{reports: make(map[primitive.ObjectID]*models.Report)}
}

func (m *memReportRepo) Create(ctx context.Context, report *models.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	report.ID = primitive.NewObjectID()
	m.reports[report.ID] = report
	return nil
}

func (m *memReportRepo) List(ctx context.Context) ([]models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Report{}
	for _, r := range m.reports {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memReportRepo) Resolve(ctx context.Context, id primitive.ObjectID, solution, solverName string, solvedAt time.Time) (*models.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	report, ok := m.reports[id]
	if !ok {
		return nil, repository.ErrReportNotFound
	}
	report.IsSolved = true
	report.Solution = &solution
	report.SolverName = &solverName
	report.SolvedAt = &solvedAt
	copied := *report
	return &copied, nil
}

// testEnv wires the real services and route table over in-memory storage.
type testEnv struct {
	engine  *gin.Engine
	users   *memUserRepo
	reports *memReportRepo
	tokens  *service.TokenManager
}

func newTestEnv() *testEnv {
	cfg := &config.Config{
		Env:             "test",
		AllowedOrigins:  []string{"http://localhost:3000"},
		RateLimitLimit:  1000,
		RateLimitPeriod: time.Minute,
	}

	users := newMemUserRepo()
	reports := newMemReportRepo()
	tokens := service.NewTokenManager("test-secret", time.Hour)

	authHandler := handlers.NewAuthHandler(service.NewAuthService(users, tokens, bcrypt.MinCost))
	adminHandler := handlers.NewAdminHandler(service.NewUserService(users))
	reportHandler := handlers.NewReportHandler(service.NewReportService(reports))
	healthHandler := handlers.NewHealthHandler(nil)

	engine := router.SetupRouter(cfg, authHandler, adminHandler, reportHandler, healthHandler, tokens)

	return &testEnv{engine: engine, users: users, reports: reports, tokens: tokens}
}

// adminToken mints a token carrying the admin role.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Generate(service.Claims{
		Email:      "admin@x.com",
		Role:       models.RoleAdmin,
		IsVerified: true,
	})
	if err != nil {
		t.Fatalf("failed to mint admin token: %v", err)
	}
	return token
}

// userToken mints a token carrying the plain user role.
func (e *testEnv) userToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.Generate(service.Claims{
		Email: "user@x.com",
		Role:  models.RoleUser,
	})
	if err != nil {
		t.Fatalf("failed to mint user token: %v", err)
	}
	return token
}

// do performs a request against the route table and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.engine.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func registerBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"name":            "A",
		"email":           email,
		"password":        "secret1",
		"confirmPassword": "secret1",
		"location":        map[string]float64{"lat": 23.8, "lng": 90.4},
		"institution":     "I",
		"mobileNumber":    "01712345678",
	}
}

func reportBody() map[string]interface{} {
	return map[string]interface{}{
		"name":         "R",
		"mobileNumber": "01712345678",
		"address":      "Dhaka",
		"location":     map[string]float64{"lat": 23.8, "lng": 90.4},
		"cause":        "eclampsia",
	}
}
