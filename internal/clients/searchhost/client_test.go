package searchhost

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	return args.Get(0).(*http.Response), args.Error(1)
}

func jsonResponse(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func testConfig() Config {
	return Config{
		BaseURL:   "https://search.example.com",
		AppID:     "app",
		APIKey:    "key",
		IndexName: "jobs",
	}
}

func Test_NewClient_RejectsIncompleteConfig(t *testing.T) {

	_, err := NewClient(Config{BaseURL: "https://search.example.com"})
	assert.Error(t, err)
}

func Test_SaveObject_PutsRecordByObjectID(t *testing.T) {

	assert := assert.New(t)

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == "PUT" &&
			req.URL.String() == "https://search.example.com/indexes/jobs/objects/job-1" &&
			req.Header.Get("X-API-Key") == "key"
	})).Return(jsonResponse(200, `{}`))

	client, err := NewClient(testConfig())
	assert.NoError(err)
	client.SetHTTPClient(mockClient)

	err = client.SaveObject(context.Background(), Record{ObjectID: "job-1", Title: "Backend Engineer"})
	assert.NoError(err)
	mockClient.AssertExpectations(t)
}

func Test_DeleteObject_ReturnsErrorOnNon2xx(t *testing.T) {

	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.Anything).Return(jsonResponse(500, `{"error":"boom"}`))

	client, err := NewClient(testConfig())
	assert.NoError(t, err)
	client.SetHTTPClient(mockClient)

	err = client.DeleteObject(context.Background(), "job-1")
	assert.Error(t, err)
}

func Test_Query_DecodesHitsAndPagination(t *testing.T) {

	assert := assert.New(t)

	var sent QueryRequest
	mockClient := &mockHTTPClient{}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.URL.String() != "https://search.example.com/indexes/jobs/query" {
			return false
		}
		body, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(body))
		return json.Unmarshal(body, &sent) == nil
	})).Return(jsonResponse(200, `{"hits":[{"objectID":"job-2"},{"objectID":"job-1"}],"page":0,"nbHits":2,"nbPages":1}`))

	client, err := NewClient(testConfig())
	assert.NoError(err)
	client.SetHTTPClient(mockClient)

	response, err := client.Query(context.Background(), QueryRequest{
		Query:        "golang",
		HitsPerPage:  20,
		FacetFilters: [][]string{{"facets.remote:true"}},
	})
	assert.NoError(err)

	assert.Equal("golang", sent.Query)
	assert.Equal([][]string{{"facets.remote:true"}}, sent.FacetFilters)
	assert.Len(response.Hits, 2)
	assert.Equal("job-2", response.Hits[0].ObjectID)
	assert.Equal(2, response.TotalHits)
	assert.Equal(1, response.TotalPages)
}

func Test_SaveObjects_NoopOnEmptyBatch(t *testing.T) {

	client, err := NewClient(testConfig())
	assert.NoError(t, err)

	// no HTTP client configured that could be called
	client.SetHTTPClient(nil)
	assert.NoError(t, client.SaveObjects(context.Background(), nil))
}

func Test_SalaryRangeFacet_BucketsToTenThousands(t *testing.T) {

	min, max := 72000, 94500

	facet := SalaryRangeFacet(&min, &max)
	assert.Equal(t, "70000-100000", *facet)

	onlyMin := SalaryRangeFacet(&min, nil)
	assert.Equal(t, "70000+", *onlyMin)

	assert.Nil(t, SalaryRangeFacet(nil, nil))
}
