package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	authmw "jobboard_backend/internal/feature/auth/transport/middleware"
	"jobboard_backend/internal/feature/payments/domain/entity"
	"jobboard_backend/internal/feature/payments/usecase"
	"jobboard_backend/internal/platform/recordstore"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockPaymentUsecase struct {
	SubmitFunc  func(in usecase.SubmitInput) (entity.Payment, error)
	ConfirmFunc func(id, adminID string) (entity.Payment, error)
	pendingOnly bool
}

func (m *mockPaymentUsecase) Submit(ctx context.Context, in usecase.SubmitInput) (entity.Payment, error) {
	return m.SubmitFunc(in)
}

func (m *mockPaymentUsecase) Confirm(ctx context.Context, id, adminID string) (entity.Payment, error) {
	return m.ConfirmFunc(id, adminID)
}

func (m *mockPaymentUsecase) Reject(ctx context.Context, id, adminID string) (entity.Payment, error) {
	return entity.Payment{}, usecase.ErrPaymentNotPending
}

func (m *mockPaymentUsecase) Get(ctx context.Context, id string) (entity.Payment, error) {
	return entity.Payment{ID: id, QRCodeImage: "proof"}, nil
}

func (m *mockPaymentUsecase) All(ctx context.Context) ([]entity.Payment, error) { return nil, nil }

func (m *mockPaymentUsecase) Pending(ctx context.Context) ([]entity.Payment, error) {
	m.pendingOnly = true
	return nil, nil
}

func (m *mockPaymentUsecase) ByUser(ctx context.Context, userID string) ([]entity.Payment, error) {
	return []entity.Payment{{ID: "pay-1", UserID: userID, QRCodeImage: "proof"}}, nil
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newRouter(m *mockPaymentUsecase) *gin.Engine {
	h := NewPaymentHandler(m, nil)
	r := gin.New()
	r.POST("/payments", h.Submit)
	g := r.Group("/", func(c *gin.Context) {
		authmw.SetCurrentUser(c, authentity.User{ID: "admin-001", Role: authentity.RoleAdmin, Status: authentity.StatusActive})
	})
	g.GET("/me/payments", h.Mine)
	g.GET("/admin/payments", h.List)
	g.GET("/admin/payments/:id", h.Get)
	g.POST("/admin/payments/:id/confirm", h.Confirm)
	g.POST("/admin/payments/:id/reject", h.Reject)
	return r
}

func TestPaymentHandler_Submit(t *testing.T) {
	tests := []struct {
		name           string
		body           gin.H
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"created", gin.H{"email": "new@example.com", "method": "paypal", "proof": "img"}, nil, http.StatusCreated, ""},
		{"missing proof", gin.H{"email": "new@example.com", "method": "paypal"}, nil, http.StatusBadRequest, "INVALID_REQUEST"},
		{"unknown email", gin.H{"email": "x@example.com", "method": "paypal", "proof": "img"}, usecase.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{"active", gin.H{"email": "a@example.com", "method": "paypal", "proof": "img"}, usecase.ErrAlreadyActive, http.StatusConflict, "ALREADY_ACTIVE"},
		{"suspended", gin.H{"email": "s@example.com", "method": "paypal", "proof": "img"}, usecase.ErrAccountSuspended, http.StatusForbidden, "ACCOUNT_SUSPENDED"},
		{"bad method", gin.H{"email": "new@example.com", "method": "btc", "proof": "img"}, fmt.Errorf("%w: method", usecase.ErrInvalidInput), http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockPaymentUsecase{SubmitFunc: func(in usecase.SubmitInput) (entity.Payment, error) {
				if tt.err != nil {
					return entity.Payment{}, tt.err
				}
				return entity.Payment{ID: "pay-1", Amount: decimal.RequireFromString("29.99"), Currency: "USD", Method: in.Method, Status: entity.StatePending, QRCodeImage: in.Proof}, nil
			}}

			w := doJSON(newRouter(m), http.MethodPost, "/payments", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["code"])
				return
			}
			assert.Equal(t, "29.99", body["amount"])
			assert.NotContains(t, body, "qrCodeImage", "the proof is not echoed back")
		})
	}
}

func TestPaymentHandler_Admin(t *testing.T) {
	m := &mockPaymentUsecase{ConfirmFunc: func(id, adminID string) (entity.Payment, error) {
		switch id {
		case "pay-1":
			return entity.Payment{ID: id, Status: entity.StateCompleted, ConfirmedBy: adminID}, nil
		case "pay-rollback":
			return entity.Payment{}, fmt.Errorf("%w: confirm payment: boom", recordstore.ErrCascadeFailed)
		}
		return entity.Payment{}, usecase.ErrPaymentNotFound
	}}
	r := newRouter(m)

	w := doJSON(r, http.MethodPost, "/admin/payments/pay-1/confirm", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmedBy":"admin-001"`)

	w = doJSON(r, http.MethodPost, "/admin/payments/pay-9/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, "/admin/payments/pay-rollback/confirm", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "CASCADE_FAILED")

	w = doJSON(r, http.MethodPost, "/admin/payments/pay-1/reject", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/payments?status=pending", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.True(t, m.pendingOnly)

	w = doJSON(r, http.MethodGet, "/admin/payments?status=failed", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/payments/pay-1", nil)
	assert.Contains(t, w.Body.String(), `"qrCodeImage":"proof"`)

	w = doJSON(r, http.MethodGet, "/me/payments", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "proof")
}
