package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
)

type mockCatalogUsecase struct {
	incKey   entity.StatKey
	incDelta int
	limit    int
}

func (m *mockCatalogUsecase) Categories(ctx context.Context) ([]entity.Category, error) {
	return []entity.Category{{ID: "cat-001", Name: "Technology", JobCount: 1250}}, nil
}

func (m *mockCatalogUsecase) CreateCategory(ctx context.Context, c entity.Category) (entity.Category, error) {
	c.ID = "cat-new"
	return c, nil
}

func (m *mockCatalogUsecase) UpdateCategory(ctx context.Context, id string, p entity.CategoryPatch) (entity.Category, error) {
	return entity.Category{}, usecase.ErrCategoryNotFound
}

func (m *mockCatalogUsecase) DeleteCategory(ctx context.Context, id string) error { return nil }

func (m *mockCatalogUsecase) AdjustCategoryJobCount(ctx context.Context, name string, delta int) (entity.Category, error) {
	if name != "Technology" {
		return entity.Category{}, usecase.ErrCategoryNotFound
	}
	return entity.Category{Name: name, JobCount: max(0, 1250+delta)}, nil
}

func (m *mockCatalogUsecase) Companies(ctx context.Context, limit int) ([]entity.Company, error) {
	m.limit = limit
	return nil, nil
}

func (m *mockCatalogUsecase) CreateCompany(ctx context.Context, c entity.Company) (entity.Company, error) {
	if !c.Size.Valid() {
		return entity.Company{}, fmt.Errorf("%w: size", usecase.ErrInvalidInput)
	}
	return c, nil
}

func (m *mockCatalogUsecase) UpdateCompany(ctx context.Context, id string, p entity.CompanyPatch) (entity.Company, error) {
	return entity.Company{}, usecase.ErrCompanyNotFound
}

func (m *mockCatalogUsecase) DeleteCompany(ctx context.Context, id string) error { return nil }

func (m *mockCatalogUsecase) Stats(ctx context.Context) (entity.Stats, error) {
	return entity.Stats{TotalJobs: 12500, TotalCompanies: 5200, TotalCandidates: 50000, TotalPlaced: 10000}, nil
}

func (m *mockCatalogUsecase) UpdateStats(ctx context.Context, p entity.StatsPatch) (entity.Stats, error) {
	var s entity.Stats
	p.Apply(&s)
	return s, nil
}

func (m *mockCatalogUsecase) IncrementStat(ctx context.Context, key entity.StatKey, delta int) (entity.Stats, error) {
	m.incKey, m.incDelta = key, delta
	if key != entity.StatTotalJobs {
		return entity.Stats{}, usecase.ErrUnknownStat
	}
	return entity.Stats{TotalJobs: 12501}, nil
}

func newCatalogRouter(m *mockCatalogUsecase) *gin.Engine {
	h := NewCatalogHandler(m, nil)
	r := gin.New()
	r.GET("/categories", h.Categories)
	r.GET("/companies", h.Companies)
	r.GET("/stats", h.Stats)
	r.POST("/admin/categories", h.CreateCategory)
	r.PATCH("/admin/categories/:id", h.UpdateCategory)
	r.POST("/admin/categories/by-name/:name/job-count", h.AdjustJobCount)
	r.POST("/admin/companies", h.CreateCompany)
	r.PATCH("/admin/companies/:id", h.UpdateCompany)
	r.PATCH("/admin/stats", h.UpdateStats)
	r.POST("/admin/stats/:key/increment", h.IncrementStat)
	return r
}

func TestCatalogHandler_Routes(t *testing.T) {
	tests := []struct {
		name           string
		method, path   string
		body           any
		expectedStatus int
		expectedBody   string
	}{
		{"categories", http.MethodGet, "/categories", nil, http.StatusOK, `[{"id":"cat-001","name":"Technology","icon":"","jobCount":1250,"color":""}]`},
		{"empty companies", http.MethodGet, "/companies?limit=4", nil, http.StatusOK, `[]`},
		{"stats", http.MethodGet, "/stats", nil, http.StatusOK, `{"totalJobs":12500,"totalCompanies":5200,"totalCandidates":50000,"totalPlaced":10000}`},
		{"create category", http.MethodPost, "/admin/categories", gin.H{"name": "Legal"}, http.StatusCreated, ""},
		{"update missing category", http.MethodPatch, "/admin/categories/cat-9", gin.H{"icon": "x"}, http.StatusNotFound, ""},
		{"job count clamps", http.MethodPost, "/admin/categories/by-name/Technology/job-count", gin.H{"delta": -5000}, http.StatusOK, ""},
		{"job count unknown category", http.MethodPost, "/admin/categories/by-name/Cooking/job-count", gin.H{"delta": 1}, http.StatusNotFound, ""},
		{"invalid company size", http.MethodPost, "/admin/companies", gin.H{"name": "X", "size": "huge"}, http.StatusBadRequest, ""},
		{"update missing company", http.MethodPatch, "/admin/companies/comp-9", gin.H{}, http.StatusNotFound, ""},
		{"update stats", http.MethodPatch, "/admin/stats", gin.H{"totalPlaced": 3}, http.StatusOK, `{"totalJobs":0,"totalCompanies":0,"totalCandidates":0,"totalPlaced":3}`},
		{"unknown stat", http.MethodPost, "/admin/stats/totalUnicorns/increment", gin.H{"delta": 1}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(newCatalogRouter(&mockCatalogUsecase{}), tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestCatalogHandler_IncrementStatEmptyBody(t *testing.T) {
	m := &mockCatalogUsecase{}
	w := doJSON(newCatalogRouter(m), http.MethodPost, "/admin/stats/totalJobs/increment", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.StatTotalJobs, m.incKey)
	assert.Equal(t, 0, m.incDelta, "the usecase turns zero into one")
}

func TestCatalogHandler_CompaniesLimit(t *testing.T) {
	m := &mockCatalogUsecase{}
	w := doJSON(newCatalogRouter(m), http.MethodGet, "/companies?limit=4", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, m.limit)
}
