package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/transport/http/dto"
	"jobboard_backend/internal/platform/http/httperr"
)

type CatalogUsecase interface {
	Categories(ctx context.Context) ([]entity.Category, error)
	CreateCategory(ctx context.Context, c entity.Category) (entity.Category, error)
	UpdateCategory(ctx context.Context, id string, p entity.CategoryPatch) (entity.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	AdjustCategoryJobCount(ctx context.Context, name string, delta int) (entity.Category, error)

	Companies(ctx context.Context, limit int) ([]entity.Company, error)
	CreateCompany(ctx context.Context, c entity.Company) (entity.Company, error)
	UpdateCompany(ctx context.Context, id string, p entity.CompanyPatch) (entity.Company, error)
	DeleteCompany(ctx context.Context, id string) error

	Stats(ctx context.Context) (entity.Stats, error)
	UpdateStats(ctx context.Context, p entity.StatsPatch) (entity.Stats, error)
	IncrementStat(ctx context.Context, key entity.StatKey, delta int) (entity.Stats, error)
}

// CatalogHandler serves categories, companies and stats.
type CatalogHandler struct {
	catalog CatalogUsecase
	log     *zap.Logger
}

// NewCatalogHandler returns a handler backed by catalog.
func NewCatalogHandler(catalog CatalogUsecase, l *zap.Logger) *CatalogHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, log: l}
}

func (h *CatalogHandler) fail(c *gin.Context, err error) {
	httperr.Respond(c, h.log, err, mapError)
}

// respond writes v with status, or the mapped error.
func respond[T any](h *CatalogHandler, c *gin.Context, status int, v T, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, v)
}

// Categories handles GET /categories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	cats, err := h.catalog.Categories(c.Request.Context())
	respond(h, c, http.StatusOK, dto.NonNil(cats), err)
}

// CreateCategory handles POST /categories.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), req.Entity())
	respond(h, c, http.StatusCreated, cat, err)
}

// UpdateCategory handles PATCH /categories/:id.
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req dto.CategoryPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	cat, err := h.catalog.UpdateCategory(c.Request.Context(), c.Param("id"), req.Patch())
	respond(h, c, http.StatusOK, cat, err)
}

// DeleteCategory handles DELETE /categories/:id.
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdjustJobCount handles POST /admin/categories/by-name/:name/job-count.
func (h *CatalogHandler) AdjustJobCount(c *gin.Context) {
	var req dto.DeltaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	cat, err := h.catalog.AdjustCategoryJobCount(c.Request.Context(), c.Param("name"), req.Delta)
	respond(h, c, http.StatusOK, cat, err)
}

// Companies handles GET /companies?limit=.
func (h *CatalogHandler) Companies(c *gin.Context) {
	var q dto.LimitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	cs, err := h.catalog.Companies(c.Request.Context(), q.Limit)
	respond(h, c, http.StatusOK, dto.NonNil(cs), err)
}

// CreateCompany handles POST /companies.
func (h *CatalogHandler) CreateCompany(c *gin.Context) {
	var req dto.CompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	co, err := h.catalog.CreateCompany(c.Request.Context(), req.Entity())
	respond(h, c, http.StatusCreated, co, err)
}

// UpdateCompany handles PATCH /companies/:id.
func (h *CatalogHandler) UpdateCompany(c *gin.Context) {
	var req dto.CompanyPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	co, err := h.catalog.UpdateCompany(c.Request.Context(), c.Param("id"), req.Patch())
	respond(h, c, http.StatusOK, co, err)
}

// DeleteCompany handles DELETE /companies/:id.
func (h *CatalogHandler) DeleteCompany(c *gin.Context) {
	if err := h.catalog.DeleteCompany(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stats handles GET /stats.
func (h *CatalogHandler) Stats(c *gin.Context) {
	st, err := h.catalog.Stats(c.Request.Context())
	respond(h, c, http.StatusOK, st, err)
}

// UpdateStats handles PATCH /stats.
func (h *CatalogHandler) UpdateStats(c *gin.Context) {
	var req dto.StatsPatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, httperr.BadRequest(err))
		return
	}
	st, err := h.catalog.UpdateStats(c.Request.Context(), req.Patch())
	respond(h, c, http.StatusOK, st, err)
}

// IncrementStat handles POST /admin/stats/:key/increment. An empty body
// increments by one.
func (h *CatalogHandler) IncrementStat(c *gin.Context) {
	var req dto.DeltaReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.fail(c, httperr.BadRequest(err))
			return
		}
	}
	st, err := h.catalog.IncrementStat(c.Request.Context(), entity.StatKey(c.Param("key")), req.Delta)
	respond(h, c, http.StatusOK, st, err)
}
