package entities

// SearchFilters is the structured query accepted by the search router.
// Values are validated at the HTTP boundary; the engine assumes well-formed
// input.
type SearchFilters struct {
	Query           string `validate:"max=500"`
	Page            int    `validate:"gte=0"`
	Limit           int    `validate:"gte=0,lte=50"`
	Location        string
	Remote          *bool
	EmploymentType  string `validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP TEMPORARY"`
	ExperienceLevel string `validate:"omitempty,oneof=ENTRY MID_LEVEL SENIOR EXECUTIVE"`
	SalaryMin       *int   `validate:"omitempty,gte=0"`
	SalaryMax       *int   `validate:"omitempty,gte=0"`
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type FacetCounts map[string]map[string]int

// SearchResultPage is computed per query and never persisted.
type SearchResultPage struct {
	Jobs       []JobPosting `json:"jobs"`
	Source     string       `json:"source"`
	Pagination Pagination   `json:"pagination"`
	Facets     FacetCounts  `json:"facets"`
}

// Recommendation is a transient (job, score) pair with enough fields for the
// dashboard widget. Score is cosine similarity in [0,1], rounded to four
// decimals.
type Recommendation struct {
	Job   RecommendedJob `json:"job"`
	Score float64        `json:"score"`
}

type RecommendedJob struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Location        *string         `json:"location"`
	Remote          bool            `json:"remote"`
	EmploymentType  EmploymentType  `json:"employmentType"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Company         Company         `json:"company"`
}
