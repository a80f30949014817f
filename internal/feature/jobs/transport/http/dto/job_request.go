// Package dto defines data transfer objects for the jobs feature's HTTP transport layer.
package dto

import (
	"time"

	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
)

// SearchQuery is the query string of GET /jobs.
type SearchQuery struct {
	Keyword   string   `form:"keyword"`
	Location  string   `form:"location"`
	Category  string   `form:"category"`
	Type      string   `form:"type"`
	SalaryMin *float64 `form:"salaryMin"`
	SalaryMax *float64 `form:"salaryMax"`
}

// Filters converts the query string into search filters.
func (q SearchQuery) Filters() usecase.JobFilters {
	return usecase.JobFilters{
		Keyword:   q.Keyword,
		Location:  q.Location,
		Category:  q.Category,
		Type:      entity.JobType(q.Type),
		SalaryMin: q.SalaryMin,
		SalaryMax: q.SalaryMax,
	}
}

// LimitQuery is the optional ?limit= of list endpoints.
type LimitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=0"`
}

// JobReq is the body of POST /admin/jobs. Counters and ids are assigned by
// the server.
type JobReq struct {
	Title            string        `json:"title"`
	Company          string        `json:"company"`
	CompanyLogo      string        `json:"companyLogo"`
	Location         string        `json:"location"`
	Type             string        `json:"type"`
	Salary           entity.Salary `json:"salary"`
	Description      string        `json:"description"`
	Requirements     []string      `json:"requirements"`
	Responsibilities []string      `json:"responsibilities"`
	Benefits         []string      `json:"benefits"`
	Category         string        `json:"category"`
	Tags             []string      `json:"tags"`
	Status           string        `json:"status"`
	Featured         bool          `json:"featured"`
	ExpiresAt        *time.Time    `json:"expiresAt"`
}

// Entity converts the request into a job.
func (r JobReq) Entity() entity.Job {
	j := entity.Job{
		Title:            r.Title,
		Company:          r.Company,
		CompanyLogo:      r.CompanyLogo,
		Location:         r.Location,
		Type:             entity.JobType(r.Type),
		Salary:           r.Salary,
		Description:      r.Description,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		Benefits:         r.Benefits,
		Category:         r.Category,
		Tags:             r.Tags,
		Status:           entity.JobStatus(r.Status),
		Featured:         r.Featured,
	}
	if r.ExpiresAt != nil {
		j.ExpiresAt = r.ExpiresAt.UTC()
	}
	return j
}

// JobPatchReq is the body of PATCH /admin/jobs/:id. Absent fields are unchanged.
type JobPatchReq struct {
	Title            *string           `json:"title"`
	Company          *string           `json:"company"`
	CompanyLogo      *string           `json:"companyLogo"`
	Location         *string           `json:"location"`
	Type             *entity.JobType   `json:"type"`
	Salary           *entity.Salary    `json:"salary"`
	Description      *string           `json:"description"`
	Requirements     *[]string         `json:"requirements"`
	Responsibilities *[]string         `json:"responsibilities"`
	Benefits         *[]string         `json:"benefits"`
	Category         *string           `json:"category"`
	Tags             *[]string         `json:"tags"`
	Status           *entity.JobStatus `json:"status"`
	Featured         *bool             `json:"featured"`
	ExpiresAt        *time.Time        `json:"expiresAt"`
}

// Patch converts the request into a job patch.
func (r JobPatchReq) Patch() entity.JobPatch {
	return entity.JobPatch{
		Title:            r.Title,
		Company:          r.Company,
		CompanyLogo:      r.CompanyLogo,
		Location:         r.Location,
		Type:             r.Type,
		Salary:           r.Salary,
		Description:      r.Description,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		Benefits:         r.Benefits,
		Category:         r.Category,
		Tags:             r.Tags,
		Status:           r.Status,
		Featured:         r.Featured,
		ExpiresAt:        r.ExpiresAt,
	}
}
