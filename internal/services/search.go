package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/clients/searchhost"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/logger"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	defaultPageSize = 20
	maxPageSize     = 50
)

const (
	sourceExternal   = "external"
	sourceRelational = "relational"
)

type searchJobsRepository interface {
	GetByIDs(ctx context.Context, jobIDs []string) ([]entities.JobPosting, error)
	Filter(ctx context.Context, filters entities.SearchFilters, offset, limit int) ([]entities.JobPosting, int64, error)
	TextSearch(ctx context.Context, query string, offset, limit int) ([]entities.JobPosting, int64, error)
}

type externalQuerier interface {
	Query(ctx context.Context, request searchhost.QueryRequest) (*searchhost.QueryResponse, error)
}

type searchBackend interface {
	search(ctx context.Context, filters entities.SearchFilters) (*entities.SearchResultPage, error)
}

// JobSearchService routes a query to the external search service when one is
// configured, or to the relational full-text fallback otherwise. The backend
// is picked once at construction; a query-time external failure falls back to
// the relational path for that request.
type JobSearchService struct {
	backend  searchBackend
	fallback searchBackend
}

func NewJobSearchService(jobs searchJobsRepository, external externalQuerier) *JobSearchService {

	fallback := &relationalBackend{jobs: jobs}

	service := &JobSearchService{backend: fallback, fallback: fallback}
	if external != nil {
		service.backend = &externalBackend{client: external, jobs: jobs}
	}
	return service
}

func (s *JobSearchService) Search(ctx context.Context, filters entities.SearchFilters) (*entities.SearchResultPage, error) {

	normalizeFilters(&filters)

	start := time.Now()
	page, err := s.backend.search(ctx, filters)

	if err != nil && s.backend != s.fallback {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeSearchAPI).
			Errorf("external search failed, falling back to relational: %v", err)
		page, err = s.fallback.search(ctx, filters)
	}
	if err != nil {
		return nil, err
	}

	metrics.SearchDuration.WithLabelValues(page.Source).Observe(time.Since(start).Seconds())

	page.Facets = AggregateFacets(page.Jobs)
	return page, nil
}

func normalizeFilters(filters *entities.SearchFilters) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageSize
	}
	if filters.Limit > maxPageSize {
		filters.Limit = maxPageSize
	}
}

type externalBackend struct {
	client externalQuerier
	jobs   searchJobsRepository
}

func (b *externalBackend) search(ctx context.Context, filters entities.SearchFilters) (*entities.SearchResultPage, error) {

	response, err := b.client.Query(ctx, buildQueryRequest(filters))
	if err != nil {
		return nil, errors.Wrap(err, "external query failed")
	}

	// the external service is a locator, not a data source: re-read the full
	// rows and keep the external ranking order
	hitIDs := make([]string, 0, len(response.Hits))
	for _, hit := range response.Hits {
		hitIDs = append(hitIDs, hit.ObjectID)
	}

	jobs, err := b.jobs.GetByIDs(ctx, hitIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hydrate external hits")
	}

	byID := make(map[string]entities.JobPosting, len(jobs))
	for _, job := range jobs {
		byID[job.ID] = job
	}
	ordered := make([]entities.JobPosting, 0, len(hitIDs))
	for _, id := range hitIDs {
		if job, ok := byID[id]; ok {
			ordered = append(ordered, job)
		}
	}

	return &entities.SearchResultPage{
		Jobs:   ordered,
		Source: sourceExternal,
		Pagination: entities.Pagination{
			Page:       response.Page + 1,
			Limit:      filters.Limit,
			Total:      int64(response.TotalHits),
			TotalPages: response.TotalPages,
		},
	}, nil
}

// buildQueryRequest translates structured filters into the service's filter
// syntax: every filter is its own AND group; values inside a group would OR,
// though each filter here carries a single value.
func buildQueryRequest(filters entities.SearchFilters) searchhost.QueryRequest {

	var facetFilters [][]string
	if filters.Location != "" {
		facetFilters = append(facetFilters, []string{"facets.location:" + filters.Location})
	}
	if filters.Remote != nil {
		facetFilters = append(facetFilters, []string{fmt.Sprintf("facets.remote:%t", *filters.Remote)})
	}
	if filters.EmploymentType != "" {
		facetFilters = append(facetFilters, []string{"facets.employmentType:" + filters.EmploymentType})
	}
	if filters.ExperienceLevel != "" {
		facetFilters = append(facetFilters, []string{"facets.experienceLevel:" + filters.ExperienceLevel})
	}

	// salary bounds OR inside one group: either overlapping bound matches
	var salaryGroup []string
	if filters.SalaryMin != nil {
		salaryGroup = append(salaryGroup, fmt.Sprintf("salaryMax >= %d", *filters.SalaryMin))
	}
	if filters.SalaryMax != nil {
		salaryGroup = append(salaryGroup, fmt.Sprintf("salaryMin <= %d", *filters.SalaryMax))
	}

	var numericFilters [][]string
	if len(salaryGroup) > 0 {
		numericFilters = append(numericFilters, salaryGroup)
	}

	return searchhost.QueryRequest{
		Query:          filters.Query,
		Page:           filters.Page - 1,
		HitsPerPage:    filters.Limit,
		FacetFilters:   facetFilters,
		NumericFilters: numericFilters,
	}
}

type relationalBackend struct {
	jobs searchJobsRepository
}

func (b *relationalBackend) search(ctx context.Context, filters entities.SearchFilters) (*entities.SearchResultPage, error) {

	offset := (filters.Page - 1) * filters.Limit

	var (
		jobs  []entities.JobPosting
		total int64
		err   error
	)

	if query := strings.TrimSpace(filters.Query); query != "" {
		jobs, total, err = b.jobs.TextSearch(ctx, query, offset, filters.Limit)
	} else {
		jobs, total, err = b.jobs.Filter(ctx, filters, offset, filters.Limit)
	}
	if err != nil {
		return nil, errors.Wrap(err, "relational search failed")
	}

	return &entities.SearchResultPage{
		Jobs:   jobs,
		Source: sourceRelational,
		Pagination: entities.Pagination{
			Page:       filters.Page,
			Limit:      filters.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(filters.Limit))),
		},
	}, nil
}
