package dto

import "jobboard_backend/internal/feature/jobs/domain/entity"

type CategoryReq struct {
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	JobCount int    `json:"jobCount"`
	Color    string `json:"color"`
}

// Entity converts the request into a category.
func (r CategoryReq) Entity() entity.Category {
	return entity.Category{Name: r.Name, Icon: r.Icon, JobCount: r.JobCount, Color: r.Color}
}

type CategoryPatchReq struct {
	Name     *string `json:"name"`
	Icon     *string `json:"icon"`
	JobCount *int    `json:"jobCount"`
	Color    *string `json:"color"`
}

// Patch converts the request into a category patch.
func (r CategoryPatchReq) Patch() entity.CategoryPatch {
	return entity.CategoryPatch{Name: r.Name, Icon: r.Icon, JobCount: r.JobCount, Color: r.Color}
}

type CompanyReq struct {
	Name          string `json:"name"`
	Logo          string `json:"logo"`
	Description   string `json:"description"`
	Website       string `json:"website"`
	Location      string `json:"location"`
	Industry      string `json:"industry"`
	Size          string `json:"size"`
	OpenPositions int    `json:"openPositions"`
}

// Entity converts the request into a company.
func (r CompanyReq) Entity() entity.Company {
	return entity.Company{
		Name:          r.Name,
		Logo:          r.Logo,
		Description:   r.Description,
		Website:       r.Website,
		Location:      r.Location,
		Industry:      r.Industry,
		Size:          entity.CompanySize(r.Size),
		OpenPositions: r.OpenPositions,
	}
}

type CompanyPatchReq struct {
	Name          *string             `json:"name"`
	Logo          *string             `json:"logo"`
	Description   *string             `json:"description"`
	Website       *string             `json:"website"`
	Location      *string             `json:"location"`
	Industry      *string             `json:"industry"`
	Size          *entity.CompanySize `json:"size"`
	OpenPositions *int                `json:"openPositions"`
}

// Patch converts the request into a company patch.
func (r CompanyPatchReq) Patch() entity.CompanyPatch {
	return entity.CompanyPatch{
		Name:          r.Name,
		Logo:          r.Logo,
		Description:   r.Description,
		Website:       r.Website,
		Location:      r.Location,
		Industry:      r.Industry,
		Size:          r.Size,
		OpenPositions: r.OpenPositions,
	}
}

type StatsPatchReq struct {
	TotalJobs       *int `json:"totalJobs"`
	TotalCompanies  *int `json:"totalCompanies"`
	TotalCandidates *int `json:"totalCandidates"`
	TotalPlaced     *int `json:"totalPlaced"`
}

// Patch converts the request into a stats patch.
func (r StatsPatchReq) Patch() entity.StatsPatch {
	return entity.StatsPatch{
		TotalJobs:       r.TotalJobs,
		TotalCompanies:  r.TotalCompanies,
		TotalCandidates: r.TotalCandidates,
		TotalPlaced:     r.TotalPlaced,
	}
}

// DeltaReq carries a counter adjustment. A missing delta is zero.
type DeltaReq struct {
	Delta int `json:"delta"`
}
