package seed

import (
	"time"

	authentity "jobboard_backend/internal/feature/auth/domain/entity"
	jobentity "jobboard_backend/internal/feature/jobs/domain/entity"
)

const (
	AdminID       = "admin-001"
	AdminEmail    = "admin@cftjobs.com"
	AdminPassword = "admin123"

	jobLifetime = 30 * 24 * time.Hour
)

func adminUser(hash string, now time.Time) authentity.User {
	return authentity.User{
		ID:            AdminID,
		Email:         AdminEmail,
		PasswordHash:  hash,
		FullName:      "CFT Admin",
		Role:          authentity.RoleAdmin,
		Status:        authentity.StatusActive,
		PaymentStatus: authentity.PaymentConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func yearly(lo, hi float64) jobentity.Salary {
	return jobentity.Salary{Min: lo, Max: hi, Currency: "USD", Period: jobentity.PeriodYear}
}

func defaultJobs(now time.Time) []jobentity.Job {
	jobs := []jobentity.Job{
		{
			ID:               "job-001",
			Title:            "Senior Frontend Developer",
			Company:          "TechCorp Solutions",
			CompanyLogo:      "https://ui-avatars.com/api/?name=TechCorp&background=4CAF50&color=fff",
			Location:         "San Francisco, CA",
			Type:             jobentity.TypeFullTime,
			Salary:           yearly(120000, 160000),
			Description:      "We are looking for an experienced Frontend Developer to join our growing team. You will be responsible for building scalable web applications using React and modern JavaScript.",
			Requirements:     []string{"5+ years React experience", "TypeScript proficiency", "CSS/Tailwind expertise"},
			Responsibilities: []string{"Develop frontend features", "Code reviews", "Mentor junior developers"},
			Benefits:         []string{"Health insurance", "Remote work", "401k matching"},
			Category:         "Technology",
			Tags:             []string{"React", "TypeScript", "Frontend"},
			Featured:         true,
			Views:            245,
			Applications:     18,
		},
		{
			ID:               "job-002",
			Title:            "UX/UI Designer",
			Company:          "Creative Studio",
			CompanyLogo:      "https://ui-avatars.com/api/?name=Creative&background=2196F3&color=fff",
			Location:         "New York, NY",
			Type:             jobentity.TypeRemote,
			Salary:           yearly(90000, 130000),
			Description:      "Join our design team to create beautiful and intuitive user experiences for our clients.",
			Requirements:     []string{"3+ years UX/UI experience", "Figma expertise", "Portfolio required"},
			Responsibilities: []string{"Design user interfaces", "Create prototypes", "User research"},
			Benefits:         []string{"Flexible hours", "Home office stipend", "Unlimited PTO"},
			Category:         "Design",
			Tags:             []string{"Figma", "UI", "UX"},
			Featured:         true,
			Views:            189,
			Applications:     24,
		},
		{
			ID:               "job-003",
			Title:            "Marketing Manager",
			Company:          "GrowthLabs",
			CompanyLogo:      "https://ui-avatars.com/api/?name=Growth&background=FFC107&color=fff",
			Location:         "Austin, TX",
			Type:             jobentity.TypeFullTime,
			Salary:           yearly(85000, 110000),
			Description:      "Lead our marketing efforts and drive growth across all channels.",
			Requirements:     []string{"4+ years marketing experience", "Digital marketing expertise", "Analytics skills"},
			Responsibilities: []string{"Develop marketing strategy", "Manage campaigns", "Analyze performance"},
			Benefits:         []string{"Stock options", "Health benefits", "Team events"},
			Category:         "Marketing",
			Tags:             []string{"Marketing", "Digital", "Growth"},
			Views:            156,
			Applications:     12,
		},
		{
			ID:               "job-004",
			Title:            "Full Stack Developer",
			Company:          "StartupHub",
			CompanyLogo:      "https://ui-avatars.com/api/?name=Startup&background=FF9800&color=fff",
			Location:         "Remote",
			Type:             jobentity.TypeRemote,
			Salary:           yearly(100000, 140000),
			Description:      "Build innovative products from scratch in a fast-paced startup environment.",
			Requirements:     []string{"Node.js and React experience", "Database design", "AWS knowledge"},
			Responsibilities: []string{"Full stack development", "Architecture decisions", "Deploy applications"},
			Benefits:         []string{"Equity", "Remote-first", "Learning budget"},
			Category:         "Technology",
			Tags:             []string{"Node.js", "React", "Full Stack"},
			Featured:         true,
			Views:            312,
			Applications:     45,
		},
		{
			ID:               "job-005",
			Title:            "Data Scientist",
			Company:          "DataDriven Inc",
			CompanyLogo:      "https://ui-avatars.com/api/?name=DataDriven&background=4CAF50&color=fff",
			Location:         "Boston, MA",
			Type:             jobentity.TypeFullTime,
			Salary:           yearly(130000, 170000),
			Description:      "Analyze complex datasets and build machine learning models.",
			Requirements:     []string{"Python expertise", "ML/AI experience", "Statistics background"},
			Responsibilities: []string{"Build ML models", "Data analysis", "Present insights"},
			Benefits:         []string{"Conference budget", "Research time", "Top-tier benefits"},
			Category:         "Technology",
			Tags:             []string{"Python", "Machine Learning", "Data"},
			Views:            198,
			Applications:     22,
		},
		{
			ID:               "job-006",
			Title:            "Sales Representative",
			Company:          "SalesPro",
			CompanyLogo:      "https://ui-avatars.com/api/?name=SalesPro&background=2196F3&color=fff",
			Location:         "Chicago, IL",
			Type:             jobentity.TypeFullTime,
			Salary:           yearly(60000, 90000),
			Description:      "Drive sales growth and build relationships with enterprise clients.",
			Requirements:     []string{"2+ years sales experience", "B2B sales background", "Communication skills"},
			Responsibilities: []string{"Generate leads", "Close deals", "Maintain client relationships"},
			Benefits:         []string{"Commission structure", "Car allowance", "Travel perks"},
			Category:         "Sales",
			Tags:             []string{"Sales", "B2B", "Enterprise"},
			Views:            134,
			Applications:     19,
		},
	}
	for i := range jobs {
		jobs[i].Status = jobentity.JobActive
		jobs[i].PostedBy = AdminID
		jobs[i].CreatedAt = now
		jobs[i].UpdatedAt = now
		jobs[i].ExpiresAt = now.Add(jobLifetime)
	}
	return jobs
}

func defaultCategories() []jobentity.Category {
	return []jobentity.Category{
		{ID: "cat-001", Name: "Technology", Icon: "Code", JobCount: 1250, Color: "#4CAF50"},
		{ID: "cat-002", Name: "Design", Icon: "Palette", JobCount: 680, Color: "#2196F3"},
		{ID: "cat-003", Name: "Marketing", Icon: "TrendingUp", JobCount: 540, Color: "#FFC107"},
		{ID: "cat-004", Name: "Sales", Icon: "DollarSign", JobCount: 420, Color: "#FF9800"},
		{ID: "cat-005", Name: "Finance", Icon: "BarChart3", JobCount: 380, Color: "#4CAF50"},
		{ID: "cat-006", Name: "Healthcare", Icon: "Heart", JobCount: 620, Color: "#2196F3"},
		{ID: "cat-007", Name: "Education", Icon: "GraduationCap", JobCount: 290, Color: "#FFC107"},
		{ID: "cat-008", Name: "Engineering", Icon: "Settings", JobCount: 510, Color: "#FF9800"},
	}
}

func defaultCompanies() []jobentity.Company {
	return []jobentity.Company{
		{
			ID:            "comp-001",
			Name:          "TechCorp Solutions",
			Logo:          "https://ui-avatars.com/api/?name=TechCorp&background=4CAF50&color=fff",
			Description:   "Leading technology solutions provider",
			Website:       "https://techcorp.com",
			Location:      "San Francisco, CA",
			Industry:      "Technology",
			Size:          jobentity.Size201To500,
			OpenPositions: 12,
		},
		{
			ID:            "comp-002",
			Name:          "Creative Studio",
			Logo:          "https://ui-avatars.com/api/?name=Creative&background=2196F3&color=fff",
			Description:   "Award-winning design agency",
			Website:       "https://creativestudio.com",
			Location:      "New York, NY",
			Industry:      "Design",
			Size:          jobentity.Size11To50,
			OpenPositions: 5,
		},
		{
			ID:            "comp-003",
			Name:          "GrowthLabs",
			Logo:          "https://ui-avatars.com/api/?name=Growth&background=FFC107&color=fff",
			Description:   "Growth marketing experts",
			Website:       "https://growthlabs.com",
			Location:      "Austin, TX",
			Industry:      "Marketing",
			Size:          jobentity.Size51To200,
			OpenPositions: 8,
		},
		{
			ID:            "comp-004",
			Name:          "StartupHub",
			Logo:          "https://ui-avatars.com/api/?name=Startup&background=FF9800&color=fff",
			Description:   "Innovation-driven startup incubator",
			Website:       "https://startuphub.com",
			Location:      "Remote",
			Industry:      "Technology",
			Size:          jobentity.Size11To50,
			OpenPositions: 15,
		},
	}
}

func defaultStats() jobentity.Stats {
	return jobentity.Stats{TotalJobs: 12500, TotalCompanies: 5200, TotalCandidates: 50000, TotalPlaced: 10000}
}
