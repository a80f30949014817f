// Package entity defines the listing entities: jobs, categories, companies
// and the site stats.
package entity

import "time"

type JobType string

const (
	TypeFullTime   JobType = "full-time"
	TypePartTime   JobType = "part-time"
	TypeContract   JobType = "contract"
	TypeRemote     JobType = "remote"
	TypeInternship JobType = "internship"
)

// Valid reports whether t is a known job type.
func (t JobType) Valid() bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeRemote, TypeInternship:
		return true
	}
	return false
}

type SalaryPeriod string

const (
	PeriodHour  SalaryPeriod = "hour"
	PeriodDay   SalaryPeriod = "day"
	PeriodWeek  SalaryPeriod = "week"
	PeriodMonth SalaryPeriod = "month"
	PeriodYear  SalaryPeriod = "year"
)

// Valid reports whether p is a known salary period.
func (p SalaryPeriod) Valid() bool {
	switch p {
	case PeriodHour, PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobActive, JobClosed, JobDraft:
		return true
	}
	return false
}

type Salary struct {
	Min      float64      `json:"min"`
	Max      float64      `json:"max"`
	Currency string       `json:"currency"`
	Period   SalaryPeriod `json:"period"`
}

// Job is a posting. Company is free text matched by name against Company
// records; the two are not kept in sync.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	CompanyLogo      string    `json:"companyLogo,omitempty"`
	Location         string    `json:"location"`
	Type             JobType   `json:"type"`
	Salary           Salary    `json:"salary"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Benefits         []string  `json:"benefits"`
	Category         string    `json:"category"`
	Tags             []string  `json:"tags"`
	Status           JobStatus `json:"status"`
	Featured         bool      `json:"featured"`
	Views            int       `json:"views"`
	Applications     int       `json:"applications"`
	PostedBy         string    `json:"postedBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

// IsActive reports whether the job is listed.
func (j Job) IsActive() bool { return j.Status == JobActive }

// JobPatch is a partial update of the editable fields. Counters are not
// editable here.
type JobPatch struct {
	Title            *string
	Company          *string
	CompanyLogo      *string
	Location         *string
	Type             *JobType
	Salary           *Salary
	Description      *string
	Requirements     *[]string
	Responsibilities *[]string
	Benefits         *[]string
	Category         *string
	Tags             *[]string
	Status           *JobStatus
	Featured         *bool
	ExpiresAt        *time.Time
}

// Apply merges the patch into j and stamps UpdatedAt.
func (p JobPatch) Apply(j *Job, now time.Time) {
	setIf(&j.Title, p.Title)
	setIf(&j.Company, p.Company)
	setIf(&j.CompanyLogo, p.CompanyLogo)
	setIf(&j.Location, p.Location)
	setIf(&j.Type, p.Type)
	setIf(&j.Salary, p.Salary)
	setIf(&j.Description, p.Description)
	setIf(&j.Requirements, p.Requirements)
	setIf(&j.Responsibilities, p.Responsibilities)
	setIf(&j.Benefits, p.Benefits)
	setIf(&j.Category, p.Category)
	setIf(&j.Tags, p.Tags)
	setIf(&j.Status, p.Status)
	setIf(&j.Featured, p.Featured)
	setIf(&j.ExpiresAt, p.ExpiresAt)
	j.UpdatedAt = now
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
