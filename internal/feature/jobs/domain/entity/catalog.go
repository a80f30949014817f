package entity

// Category groups jobs by name. JobCount is maintained by admins and is not
// derived from the job collection.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	JobCount int    `json:"jobCount"`
	Color    string `json:"color"`
}

type CategoryPatch struct {
	Name     *string
	Icon     *string
	JobCount *int
	Color    *string
}

// Apply merges the set fields into c.
func (p CategoryPatch) Apply(c *Category) {
	setIf(&c.Name, p.Name)
	setIf(&c.Icon, p.Icon)
	setIf(&c.JobCount, p.JobCount)
	setIf(&c.Color, p.Color)
}

type CompanySize string

const (
	Size1To10     CompanySize = "1-10"
	Size11To50    CompanySize = "11-50"
	Size51To200   CompanySize = "51-200"
	Size201To500  CompanySize = "201-500"
	Size501To1000 CompanySize = "501-1000"
	Size1000Plus  CompanySize = "1000+"
)

// Valid reports whether s is a known size band.
func (s CompanySize) Valid() bool {
	switch s {
	case Size1To10, Size11To50, Size51To200, Size201To500, Size501To1000, Size1000Plus:
		return true
	}
	return false
}

type Company struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Logo          string      `json:"logo,omitempty"`
	Description   string      `json:"description"`
	Website       string      `json:"website,omitempty"`
	Location      string      `json:"location"`
	Industry      string      `json:"industry"`
	Size          CompanySize `json:"size"`
	OpenPositions int         `json:"openPositions"`
}

type CompanyPatch struct {
	Name          *string
	Logo          *string
	Description   *string
	Website       *string
	Location      *string
	Industry      *string
	Size          *CompanySize
	OpenPositions *int
}

// Apply merges the set fields into c.
func (p CompanyPatch) Apply(c *Company) {
	setIf(&c.Name, p.Name)
	setIf(&c.Logo, p.Logo)
	setIf(&c.Description, p.Description)
	setIf(&c.Website, p.Website)
	setIf(&c.Location, p.Location)
	setIf(&c.Industry, p.Industry)
	setIf(&c.Size, p.Size)
	setIf(&c.OpenPositions, p.OpenPositions)
}

// Stats is the site-wide counter set shown on the landing page. It is stored
// on its own and not derived from the collections.
type Stats struct {
	TotalJobs       int `json:"totalJobs"`
	TotalCompanies  int `json:"totalCompanies"`
	TotalCandidates int `json:"totalCandidates"`
	TotalPlaced     int `json:"totalPlaced"`
}

// StatKey names one counter of Stats.
type StatKey string

const (
	StatTotalJobs       StatKey = "totalJobs"
	StatTotalCompanies  StatKey = "totalCompanies"
	StatTotalCandidates StatKey = "totalCandidates"
	StatTotalPlaced     StatKey = "totalPlaced"
)

// Field returns a pointer to the counter named by k, or nil for an unknown key.
func (s *Stats) Field(k StatKey) *int {
	switch k {
	case StatTotalJobs:
		return &s.TotalJobs
	case StatTotalCompanies:
		return &s.TotalCompanies
	case StatTotalCandidates:
		return &s.TotalCandidates
	case StatTotalPlaced:
		return &s.TotalPlaced
	}
	return nil
}

type StatsPatch struct {
	TotalJobs       *int
	TotalCompanies  *int
	TotalCandidates *int
	TotalPlaced     *int
}

// Apply overwrites the counters set in p.
func (p StatsPatch) Apply(s *Stats) {
	setIf(&s.TotalJobs, p.TotalJobs)
	setIf(&s.TotalCompanies, p.TotalCompanies)
	setIf(&s.TotalCandidates, p.TotalCandidates)
	setIf(&s.TotalPlaced, p.TotalPlaced)
}
