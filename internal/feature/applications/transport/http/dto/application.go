// Package dto defines data transfer objects for the applications feature's HTTP transport layer.
package dto

import "jobboard_backend/internal/feature/applications/domain/entity"

// ApplyReq is the body of POST /jobs/:id/applications.
type ApplyReq struct {
	Resume      string `json:"resume" binding:"max=2048"`
	CoverLetter string `json:"coverLetter" binding:"max=10000"`
}

// StatusReq is the body of PATCH /admin/applications/:id.
type StatusReq struct {
	Status string `json:"status" binding:"required"`
}

// AppliedRes answers whether the current user applied to a job.
type AppliedRes struct {
	Applied bool `json:"applied"`
}

// NewApplicationList renders nil as an empty list.
func NewApplicationList(apps []entity.Application) []entity.Application {
	if apps == nil {
		return []entity.Application{}
	}
	return apps
}
