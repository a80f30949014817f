package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobboard_backend/internal/app/di"
	"jobboard_backend/internal/app/seed"
	"jobboard_backend/internal/platform/config"
	"jobboard_backend/internal/platform/kv"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:       config.JWT{Secret: "router-test-secret", Issuer: "jobboard", AccessTokenTTLMin: 60},
		Storage:   config.Storage{Backend: "memory", Namespace: "cft_jobs_", MaxRetries: 3},
		Session:   config.Session{TTLHours: 24, RevalidateSec: 60},
		Payment:   config.Payment{RegistrationFee: "29.99", Currency: "USD"},
		RateLimit: config.RateLimit{LoginRPS: 100, LoginBurst: 100},
	}
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	cfg := testConfig()
	store := kv.NewMemoryStore()
	_, err := seed.Initialize(context.Background(), store, cfg.Storage.Namespace, seed.Options{})
	require.NoError(t, err)
	c := di.NewContainer(store, cfg, zap.NewNop())
	return NewRouter(c, Options{
		RequestTimeout: 5 * time.Second,
		LoginRPS:       cfg.RateLimit.LoginRPS,
		LoginBurst:     cfg.RateLimit.LoginBurst,
	}, zap.NewNop())
}

func call(t *testing.T, r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func login(t *testing.T, r http.Handler, email, password string) string {
	t.Helper()
	w := call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[struct {
		Token string `json:"token"`
	}](t, w).Token
}

func TestRouter_PublicEndpoints(t *testing.T) {
	r := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/healthz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/v1/jobs?keyword=react", http.StatusOK},
		{"/api/v1/jobs/featured?limit=2", http.StatusOK},
		{"/api/v1/jobs/job-001", http.StatusOK},
		{"/api/v1/jobs/job-999", http.StatusNotFound},
		{"/api/v1/categories", http.StatusOK},
		{"/api/v1/categories/Technology/jobs", http.StatusOK},
		{"/api/v1/companies?limit=2", http.StatusOK},
		{"/api/v1/stats", http.StatusOK},
		{"/api/v1/auth/me", http.StatusUnauthorized},
		{"/api/v1/admin/users", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := call(t, r, http.MethodGet, tt.path, "", nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouter_SearchScenario(t *testing.T) {
	r := newTestServer(t)

	w := call(t, r, http.MethodGet, "/api/v1/jobs?keyword=React&category=Technology", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	jobs := decode[[]struct {
		ID string `json:"id"`
	}](t, w)
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	assert.ElementsMatch(t, []string{"job-001", "job-004"}, ids)
}

func TestRouter_AccountLifecycle(t *testing.T) {
	r := newTestServer(t)
	const email, password = "jane@example.com", "Secret123"

	w := call(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": email, "password": password, "fullName": "Jane Doe",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	userID := decode[struct {
		ID string `json:"id"`
	}](t, w).ID

	// Pending users cannot log in yet.
	w = call(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, r, http.MethodPost, "/api/v1/payments", "", gin.H{
		"email": email, "method": "paypal", "proof": "data:image/png;base64,AAAA",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	paymentID := decode[struct {
		ID string `json:"id"`
	}](t, w).ID

	admin := login(t, r, seed.AdminEmail, seed.AdminPassword)

	w = call(t, r, http.MethodGet, "/api/v1/admin/payments?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), paymentID)

	w = call(t, r, http.MethodPost, "/api/v1/admin/payments/"+paymentID+"/confirm", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := login(t, r, email, password)
	w = call(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"paymentStatus"`
	}](t, w)
	assert.Equal(t, "active", me.Status)
	assert.Equal(t, "confirmed", me.PaymentStatus)

	// Regular users stay out of the admin area.
	w = call(t, r, http.MethodGet, "/api/v1/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, r, http.MethodPost, "/api/v1/jobs/job-003/applications", token, gin.H{"resume": "https://cv.example.com/jane"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = call(t, r, http.MethodPost, "/api/v1/jobs/job-003/applications", token, gin.H{"resume": "again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, r, http.MethodGet, "/api/v1/jobs/job-003", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[struct {
		Job struct {
			Applications int `json:"applications"`
		} `json:"job"`
	}](t, w)
	assert.Equal(t, 13, detail.Job.Applications)

	// Suspension takes effect on the very next request.
	w = call(t, r, http.MethodPost, "/api/v1/admin/users/"+userID+"/suspend", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = call(t, r, http.MethodGet, "/api/v1/me/applications", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = call(t, r, http.MethodPost, "/api/v1/auth/logout", admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = call(t, r, http.MethodGet, "/api/v1/admin/users", admin, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
