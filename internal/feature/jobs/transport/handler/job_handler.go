// Package handler provides the HTTP handlers of the jobs feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authmw "jobboard_backend/internal/feature/auth/transport/middleware"
	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/transport/http/dto"
	"jobboard_backend/internal/feature/jobs/usecase"
	"jobboard_backend/internal/platform/http/httperr"
)

// JobUsecase defines the job operations used by the handlers.
// Interfaces are defined by the consumer (handler), not the provider (usecase).
type JobUsecase interface {
	Featured(ctx context.Context, limit int) ([]entity.Job, error)
	ByCategory(ctx context.Context, category string) ([]entity.Job, error)
	Search(ctx context.Context, f usecase.JobFilters) ([]entity.Job, error)
	List(ctx context.Context) ([]entity.Job, error)
	Detail(ctx context.Context, id string) (usecase.JobDetail, error)
	CreateJob(ctx context.Context, postedBy string, j entity.Job) (entity.Job, error)
	UpdateJob(ctx context.Context, id string, p entity.JobPatch) (entity.Job, error)
	DeleteJob(ctx context.Context, id string) error
	ReconcileApplicationCounts(ctx context.Context) (int, error)
}

type JobHandler struct {
	jobs JobUsecase
	log  *zap.Logger
}

// NewJobHandler returns a handler backed by jobs.
func NewJobHandler(jobs JobUsecase, l *zap.Logger) *JobHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &JobHandler{jobs: jobs, log: l}
}

func mapError(err error) *httperr.HTTPError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrUnknownStat):
		return httperr.New(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	case errors.Is(err, usecase.ErrJobNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "JOB_NOT_FOUND")
	case errors.Is(err, usecase.ErrCategoryNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "CATEGORY_NOT_FOUND")
	case errors.Is(err, usecase.ErrCompanyNotFound):
		return httperr.New(http.StatusNotFound, err.Error(), "COMPANY_NOT_FOUND")
	}
	return nil
}

func (h *JobHandler) fail(c *gin.Context, err error) {
	httperr.Respond(c, h.log, err, mapError)
}

// Search handles GET /jobs.
func (h *JobHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	jobs, err := h.jobs.Search(c.Request.Context(), q.Filters())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NonNil(jobs))
}

// Featured handles GET /jobs/featured?limit=.
func (h *JobHandler) Featured(c *gin.Context) {
	var q dto.LimitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	jobs, err := h.jobs.Featured(c.Request.Context(), q.Limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NonNil(jobs))
}

// Detail handles GET /jobs/:id. Each call counts as a view.
func (h *JobHandler) Detail(c *gin.Context) {
	d, err := h.jobs.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewJobDetailRes(d))
}

// ByCategory handles GET /categories/:name/jobs.
func (h *JobHandler) ByCategory(c *gin.Context) {
	jobs, err := h.jobs.ByCategory(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NonNil(jobs))
}

// List handles GET /admin/jobs; drafts and closed jobs included.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.jobs.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NonNil(jobs))
}

// Create handles POST /jobs.
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	admin, _ := authmw.CurrentUser(c)
	j, err := h.jobs.CreateJob(c.Request.Context(), admin.ID, req.Entity())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, j)
}

// Update handles PATCH /jobs/:id.
func (h *JobHandler) Update(c *gin.Context) {
	var req dto.JobPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	j, err := h.jobs.UpdateJob(c.Request.Context(), c.Param("id"), req.Patch())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, j)
}

// Delete handles DELETE /jobs/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobs.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reconcile handles POST /admin/jobs/reconcile.
func (h *JobHandler) Reconcile(c *gin.Context) {
	n, err := h.jobs.ReconcileApplicationCounts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReconcileRes{JobsChanged: n})
}
