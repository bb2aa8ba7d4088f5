package services

import (
	"context"
	"testing"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/clients/searchhost"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSearchRepo struct {
	mock.Mock
}

func (m *mockSearchRepo) GetByIDs(ctx context.Context, jobIDs []string) ([]entities.JobPosting, error) {
	args := m.Called(ctx, jobIDs)
	return args.Get(0).([]entities.JobPosting), args.Error(1)
}

func (m *mockSearchRepo) Filter(ctx context.Context, filters entities.SearchFilters, offset, limit int) ([]entities.JobPosting, int64, error) {
	args := m.Called(ctx, filters, offset, limit)
	return args.Get(0).([]entities.JobPosting), args.Get(1).(int64), args.Error(2)
}

func (m *mockSearchRepo) TextSearch(ctx context.Context, query string, offset, limit int) ([]entities.JobPosting, int64, error) {
	args := m.Called(ctx, query, offset, limit)
	return args.Get(0).([]entities.JobPosting), args.Get(1).(int64), args.Error(2)
}

type mockExternal struct {
	mock.Mock
}

func (m *mockExternal) Query(ctx context.Context, request searchhost.QueryRequest) (*searchhost.QueryResponse, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*searchhost.QueryResponse)
	return response, args.Error(1)
}

func job(id string) entities.JobPosting {
	return entities.JobPosting{ID: id, Status: entities.StatusPublished, EmploymentType: entities.FullTime, ExperienceLevel: entities.MidLevel}
}

func Test_Search_ExternalBackendPreservesRankingOrder(t *testing.T) {

	assert := assert.New(t)

	external := &mockExternal{}
	external.On("Query", mock.Anything, mock.MatchedBy(func(request searchhost.QueryRequest) bool {
		return request.Query == "golang" && request.Page == 0 && request.HitsPerPage == defaultPageSize
	})).Return(&searchhost.QueryResponse{
		Hits:       []searchhost.Hit{{ObjectID: "job-2"}, {ObjectID: "job-1"}},
		Page:       0,
		TotalHits:  2,
		TotalPages: 1,
	}, nil)

	repo := &mockSearchRepo{}
	repo.On("GetByIDs", mock.Anything, []string{"job-2", "job-1"}).
		Return([]entities.JobPosting{job("job-1"), job("job-2")}, nil)

	service := NewJobSearchService(repo, external)
	page, err := service.Search(context.Background(), entities.SearchFilters{Query: "golang"})

	assert.NoError(err)
	assert.Equal(sourceExternal, page.Source)
	assert.Len(page.Jobs, 2)
	assert.Equal("job-2", page.Jobs[0].ID)
	assert.Equal("job-1", page.Jobs[1].ID)
	assert.Equal(int64(2), page.Pagination.Total)
	assert.Equal(1, page.Pagination.Page)
}

func Test_Search_ExternalFailureFallsBackToRelational(t *testing.T) {

	external := &mockExternal{}
	external.On("Query", mock.Anything, mock.Anything).
		Return(nil, errors.New("timeout"))

	repo := &mockSearchRepo{}
	repo.On("TextSearch", mock.Anything, "golang", 0, defaultPageSize).
		Return([]entities.JobPosting{job("job-1")}, int64(1), nil)

	service := NewJobSearchService(repo, external)
	page, err := service.Search(context.Background(), entities.SearchFilters{Query: "golang"})

	assert.NoError(t, err)
	assert.Equal(t, sourceRelational, page.Source)
	assert.Len(t, page.Jobs, 1)
}

func Test_Search_WithoutExternalServiceUsesRelationalBackend(t *testing.T) {

	repo := &mockSearchRepo{}
	repo.On("Filter", mock.Anything, mock.Anything, 0, defaultPageSize).
		Return([]entities.JobPosting{job("job-1")}, int64(1), nil)

	service := NewJobSearchService(repo, nil)
	page, err := service.Search(context.Background(), entities.SearchFilters{})

	assert.NoError(t, err)
	assert.Equal(t, sourceRelational, page.Source)
}

func Test_Search_PaginationMetadataFromRelationalCount(t *testing.T) {

	// 25 matching jobs, limit 20, page 2: five rows on the last page
	pageJobs := make([]entities.JobPosting, 5)
	for i := range pageJobs {
		pageJobs[i] = job("job-x")
	}

	repo := &mockSearchRepo{}
	repo.On("Filter", mock.Anything, mock.Anything, 20, 20).
		Return(pageJobs, int64(25), nil)

	service := NewJobSearchService(repo, nil)
	page, err := service.Search(context.Background(), entities.SearchFilters{Page: 2, Limit: 20})

	assert.NoError(t, err)
	assert.Len(t, page.Jobs, 5)
	assert.Equal(t, int64(25), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.Equal(t, 2, page.Pagination.Page)
}

func Test_Search_LimitIsCappedAtMaximum(t *testing.T) {

	repo := &mockSearchRepo{}
	repo.On("Filter", mock.Anything, mock.Anything, 0, maxPageSize).
		Return([]entities.JobPosting{}, int64(0), nil)

	service := NewJobSearchService(repo, nil)
	_, err := service.Search(context.Background(), entities.SearchFilters{Limit: 500})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func Test_BuildQueryRequest_TranslatesFiltersToFacetGroups(t *testing.T) {

	remote := true
	salaryMin := 80000

	request := buildQueryRequest(entities.SearchFilters{
		Query:           "golang",
		Page:            2,
		Limit:           10,
		Location:        "Berlin",
		Remote:          &remote,
		EmploymentType:  "FULL_TIME",
		ExperienceLevel: "SENIOR",
		SalaryMin:       &salaryMin,
	})

	assert.Equal(t, 1, request.Page)
	assert.Equal(t, 10, request.HitsPerPage)
	assert.Equal(t, [][]string{
		{"facets.location:Berlin"},
		{"facets.remote:true"},
		{"facets.employmentType:FULL_TIME"},
		{"facets.experienceLevel:SENIOR"},
	}, request.FacetFilters)
	assert.Equal(t, [][]string{{"salaryMax >= 80000"}}, request.NumericFilters)
}

func Test_BuildQueryRequest_SalaryBoundsShareOneOrGroup(t *testing.T) {

	salaryMin, salaryMax := 80000, 120000

	request := buildQueryRequest(entities.SearchFilters{
		SalaryMin: &salaryMin,
		SalaryMax: &salaryMax,
	})

	assert.Equal(t, [][]string{{"salaryMax >= 80000", "salaryMin <= 120000"}}, request.NumericFilters)
}

func Test_Search_FacetsAreComputedOverReturnedPage(t *testing.T) {

	location := "Berlin"
	jobs := []entities.JobPosting{
		{ID: "1", Location: &location, Remote: true, EmploymentType: entities.FullTime, ExperienceLevel: entities.Senior},
		{ID: "2", Remote: false, EmploymentType: entities.FullTime, ExperienceLevel: entities.Entry},
	}

	repo := &mockSearchRepo{}
	repo.On("Filter", mock.Anything, mock.Anything, 0, defaultPageSize).
		Return(jobs, int64(2), nil)

	service := NewJobSearchService(repo, nil)
	page, err := service.Search(context.Background(), entities.SearchFilters{})

	assert.NoError(t, err)
	assert.Equal(t, 1, page.Facets["location"]["Berlin"])
	assert.Equal(t, 2, page.Facets["employmentType"]["FULL_TIME"])
	assert.Equal(t, 1, page.Facets["remote"]["Remote"])
	assert.Equal(t, 1, page.Facets["remote"]["Onsite"])
}
