package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"jobboard_backend/internal/platform/recordstore"
)

var errDomain = errors.New("job is closed")

func domainMapper(err error) *HTTPError {
	if errors.Is(err, errDomain) {
		return New(http.StatusConflict, err.Error(), "JOB_CLOSED")
	}
	return nil
}

func TestMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"domain error via mapper", fmt.Errorf("apply: %w", errDomain), http.StatusConflict, "JOB_CLOSED"},
		{"explicit http error", NotFound("job"), http.StatusNotFound, "NOT_FOUND"},
		{"store conflict", fmt.Errorf("update: %w", recordstore.ErrConflict), http.StatusConflict, "CONFLICT"},
		{"corrupt data", recordstore.ErrCorrupt, http.StatusInternalServerError, "DATA_CORRUPT"},
		{"cascade failed", fmt.Errorf("%w: confirm", recordstore.ErrCascadeFailed), http.StatusInternalServerError, "CASCADE_FAILED"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			he := Map(tt.err, domainMapper)
			assert.Equal(t, tt.wantStatus, he.StatusCode)
			assert.Equal(t, tt.wantCode, he.Code)
		})
	}
}

func TestRespond_LogsServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)
	l := zap.New(core)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, l, errors.New("boom"), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error","code":"INTERNAL_ERROR"}`, w.Body.String())
	assert.Equal(t, 1, logs.Len())
	assert.True(t, c.IsAborted())
}

func TestRespond_ClientErrorsAreNotLogged(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Respond(c, zap.New(core), errDomain, domainMapper)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, logs.Len())
}
