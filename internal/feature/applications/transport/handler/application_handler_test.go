package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard_backend/internal/feature/applications/domain/entity"
	"jobboard_backend/internal/feature/applications/usecase"
	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	authmw "jobboard_backend/internal/feature/auth/transport/middleware"
	"jobboard_backend/internal/platform/recordstore"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type mockApplicationUsecase struct {
	ApplyFunc func(userID, jobID string, in usecase.ApplyInput) (entity.Application, error)
	byUser    string
}

func (m *mockApplicationUsecase) Apply(ctx context.Context, userID, jobID string, in usecase.ApplyInput) (entity.Application, error) {
	return m.ApplyFunc(userID, jobID, in)
}

func (m *mockApplicationUsecase) ByUser(ctx context.Context, userID string) ([]entity.Application, error) {
	m.byUser = userID
	return nil, nil
}

func (m *mockApplicationUsecase) ByJob(ctx context.Context, jobID string) ([]entity.Application, error) {
	return []entity.Application{{ID: "app-1", JobID: jobID}}, nil
}

func (m *mockApplicationUsecase) HasApplied(ctx context.Context, userID, jobID string) (bool, error) {
	return jobID == "job-001", nil
}

func (m *mockApplicationUsecase) All(ctx context.Context) ([]entity.Application, error) {
	return nil, nil
}

func (m *mockApplicationUsecase) SetStatus(ctx context.Context, id string, status entity.ApplicationStatus) (entity.Application, error) {
	if !status.Valid() {
		return entity.Application{}, fmt.Errorf("%w: status", usecase.ErrInvalidInput)
	}
	return entity.Application{ID: id, Status: status}, nil
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

func newRouter(m *mockApplicationUsecase) *gin.Engine {
	h := NewApplicationHandler(m, nil)
	r := gin.New()
	g := r.Group("/", func(c *gin.Context) {
		authmw.SetCurrentUser(c, authentity.User{ID: "user-1", Status: authentity.StatusActive})
	})
	g.POST("/jobs/:id/applications", h.Apply)
	g.GET("/jobs/:id/applications/me", h.Applied)
	g.GET("/me/applications", h.Mine)
	g.GET("/admin/jobs/:id/applications", h.ByJob)
	g.PATCH("/admin/applications/:id", h.SetStatus)
	return r
}

func TestApplicationHandler_Apply(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"created", nil, http.StatusCreated, ""},
		{"not active", usecase.ErrAccountNotActive, http.StatusForbidden, "ACCOUNT_NOT_ACTIVE"},
		{"unknown job", usecase.ErrJobNotFound, http.StatusNotFound, "JOB_NOT_FOUND"},
		{"closed job", usecase.ErrJobClosed, http.StatusConflict, "JOB_CLOSED"},
		{"duplicate", usecase.ErrAlreadyApplied, http.StatusConflict, "ALREADY_APPLIED"},
		{"rolled back", fmt.Errorf("%w: counter", recordstore.ErrCascadeFailed), http.StatusInternalServerError, "CASCADE_FAILED"},
		{"backend", errors.New("redis down"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser, gotJob string
			m := &mockApplicationUsecase{ApplyFunc: func(userID, jobID string, in usecase.ApplyInput) (entity.Application, error) {
				gotUser, gotJob = userID, jobID
				if tt.err != nil {
					return entity.Application{}, tt.err
				}
				return entity.Application{ID: "app-1", UserID: userID, JobID: jobID, Resume: in.Resume}, nil
			}}

			w := doJSON(newRouter(m), http.MethodPost, "/jobs/job-001/applications", gin.H{"resume": "cv.pdf"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "user-1", gotUser)
			assert.Equal(t, "job-001", gotJob)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, body["code"])
			} else {
				assert.Equal(t, "cv.pdf", body["resume"])
			}
		})
	}
}

func TestApplicationHandler_Reads(t *testing.T) {
	m := &mockApplicationUsecase{}
	r := newRouter(m)

	w := doJSON(r, http.MethodGet, "/me/applications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, "user-1", m.byUser)

	w = doJSON(r, http.MethodGet, "/jobs/job-001/applications/me", nil)
	assert.JSONEq(t, `{"applied":true}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/admin/jobs/job-002/applications", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"jobId":"job-002"`)
}

func TestApplicationHandler_SetStatus(t *testing.T) {
	r := newRouter(&mockApplicationUsecase{})

	w := doJSON(r, http.MethodPatch, "/admin/applications/app-1", gin.H{"status": "shortlisted"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPatch, "/admin/applications/app-1", gin.H{"status": "ghosted"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPatch, "/admin/applications/app-1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
