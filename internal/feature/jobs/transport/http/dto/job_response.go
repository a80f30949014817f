package dto

import (
	"jobboard_backend/internal/feature/jobs/domain/entity"
	"jobboard_backend/internal/feature/jobs/usecase"
)

// JobDetailRes is the body of GET /jobs/:id. Company is null when no company
// record carries the job's company name.
type JobDetailRes struct {
	Job     entity.Job      `json:"job"`
	Company *entity.Company `json:"company"`
}

// NewJobDetailRes builds the response for a job with its company.
func NewJobDetailRes(d usecase.JobDetail) JobDetailRes {
	return JobDetailRes{Job: d.Job, Company: d.Company}
}

// ReconcileRes reports how many job counters were corrected.
type ReconcileRes struct {
	JobsChanged int `json:"jobsChanged"`
}

// NonNil returns s, or an empty slice so lists always render as [].
func NonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
