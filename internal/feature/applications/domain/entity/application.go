// Package entity defines the job application entity.
package entity

import "time"

type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewing   ApplicationStatus = "reviewing"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// Valid reports whether s is a known application status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusRejected, StatusHired:
		return true
	}
	return false
}

// Application links a user to a job. A user applies to a job at most once.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	UserID      string            `json:"userId"`
	Resume      string            `json:"resume,omitempty"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}
