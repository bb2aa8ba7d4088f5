package searchhost

import (
	"fmt"
	"time"
)

// Record is the searchable object mirrored to the hosted service for one
// published job. The service is a locator only: queries return object ids and
// the caller re-reads full rows from the relational store.
type Record struct {
	ObjectID        string  `json:"objectID"`
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Requirements    *string `json:"requirements"`
	Location        *string `json:"location"`
	Remote          bool    `json:"remote"`
	SalaryMin       *int    `json:"salaryMin"`
	SalaryMax       *int    `json:"salaryMax"`
	SalaryCurrency  string  `json:"salaryCurrency"`
	EmploymentType  string  `json:"employmentType"`
	ExperienceLevel string  `json:"experienceLevel"`
	CompanyName     string  `json:"companyName"`
	CompanyID       string  `json:"companyId"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
	Status          string  `json:"status"`
	Facets          Facets  `json:"facets"`
}

// Facets duplicates the filterable fields in the shape the service's
// facet-filter syntax addresses them.
type Facets struct {
	Location        *string `json:"location"`
	Remote          bool    `json:"remote"`
	EmploymentType  string  `json:"employmentType"`
	ExperienceLevel string  `json:"experienceLevel"`
	SalaryRange     *string `json:"salaryRange"`
	CompanyName     string  `json:"companyName"`
}

// SalaryRangeFacet buckets a salary range to the nearest 10k for faceting.
func SalaryRangeFacet(min, max *int) *string {
	if min == nil && max == nil {
		return nil
	}

	var facet string
	switch {
	case min != nil && max != nil:
		facet = fmt.Sprintf("%d-%d", *min/10000*10000, (*max+9999)/10000*10000)
	case min != nil:
		facet = fmt.Sprintf("%d+", *min/10000*10000)
	default:
		facet = fmt.Sprintf("0-%d", (*max+9999)/10000*10000)
	}
	return &facet
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// QueryRequest is one page of a free-text query with facet filters. Each
// inner FacetFilters slice ORs its entries; the outer slice ANDs the groups.
type QueryRequest struct {
	Query          string     `json:"query"`
	Page           int        `json:"page"`
	HitsPerPage    int        `json:"hitsPerPage"`
	FacetFilters   [][]string `json:"facetFilters,omitempty"`
	NumericFilters [][]string `json:"numericFilters,omitempty"`
}

type Hit struct {
	ObjectID string `json:"objectID"`
}

type QueryResponse struct {
	Hits       []Hit `json:"hits"`
	Page       int   `json:"page"`
	TotalHits  int   `json:"nbHits"`
	TotalPages int   `json:"nbPages"`
}
