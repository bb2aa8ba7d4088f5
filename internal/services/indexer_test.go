package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/clients/searchhost"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/events"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockJobReader struct {
	mock.Mock
}

func (m *mockJobReader) GetByID(ctx context.Context, jobID string) (*entities.JobPosting, error) {
	args := m.Called(ctx, jobID)
	job, _ := args.Get(0).(*entities.JobPosting)
	return job, args.Error(1)
}

func (m *mockJobReader) GetPublished(ctx context.Context) ([]entities.JobPosting, error) {
	args := m.Called(ctx)
	return args.Get(0).([]entities.JobPosting), args.Error(1)
}

type mockEntries struct {
	mock.Mock
}

func (m *mockEntries) Upsert(ctx context.Context, entry entities.SearchEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockEntries) SetExternalObjectID(ctx context.Context, jobID string, externalObjectID *string) error {
	return m.Called(ctx, jobID, externalObjectID).Error(0)
}

func (m *mockEntries) DeleteByJobID(ctx context.Context, jobID string) error {
	return m.Called(ctx, jobID).Error(0)
}

func (m *mockEntries) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockEntries) CreateBatch(ctx context.Context, entries []entities.SearchEntry) error {
	return m.Called(ctx, entries).Error(0)
}

type mockMirror struct {
	mock.Mock
}

func (m *mockMirror) SaveObject(ctx context.Context, record searchhost.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *mockMirror) SaveObjects(ctx context.Context, records []searchhost.Record) error {
	return m.Called(ctx, records).Error(0)
}

func (m *mockMirror) DeleteObject(ctx context.Context, objectID string) error {
	return m.Called(ctx, objectID).Error(0)
}

func publishedJob() *entities.JobPosting {
	return &entities.JobPosting{
		ID:              "job-1",
		Title:           "Backend Engineer",
		Description:     "Build services in Go",
		Status:          entities.StatusPublished,
		EmploymentType:  entities.FullTime,
		ExperienceLevel: entities.Senior,
		CompanyID:       "company-1",
		Company:         entities.Company{ID: "company-1", Name: "Acme"},
	}
}

func Test_SyncJob_UpsertsEntryAndMirrorsPublishedJob(t *testing.T) {

	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)

	entries := &mockEntries{}
	entries.On("Upsert", mock.Anything, mock.MatchedBy(func(entry entities.SearchEntry) bool {
		return entry.JobID == "job-1" && strings.Contains(entry.SearchableText, "Acme")
	})).Return(nil)
	entries.On("SetExternalObjectID", mock.Anything, "job-1", mock.MatchedBy(func(id *string) bool {
		return id != nil && *id == "job-1"
	})).Return(nil)

	mirror := &mockMirror{}
	mirror.On("SaveObject", mock.Anything, mock.MatchedBy(func(record searchhost.Record) bool {
		return record.ObjectID == "job-1" && record.ID == "job-1" &&
			record.CompanyName == "Acme" && record.Facets.EmploymentType == "FULL_TIME"
	})).Return(nil)

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, mirror)
	assert.NoError(t, err)

	assert.NoError(t, indexer.SyncJob(context.Background(), "job-1"))
	entries.AssertExpectations(t)
	mirror.AssertExpectations(t)
}

func Test_SyncJob_ProducesIdenticalTextOnRepeatedCalls(t *testing.T) {

	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)

	var texts []string
	entries := &mockEntries{}
	entries.On("Upsert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			texts = append(texts, args.Get(1).(entities.SearchEntry).SearchableText)
		}).
		Return(nil)

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, nil)
	assert.NoError(t, err)

	assert.NoError(t, indexer.SyncJob(context.Background(), "job-1"))
	assert.NoError(t, indexer.SyncJob(context.Background(), "job-1"))

	assert.Len(t, texts, 2)
	assert.Equal(t, texts[0], texts[1])
}

func Test_SyncJob_UnpublishedJobIsDeletedFromMirror(t *testing.T) {

	job := publishedJob()
	job.Status = entities.StatusClosed

	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, "job-1").Return(job, nil)

	entries := &mockEntries{}
	entries.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	entries.On("SetExternalObjectID", mock.Anything, "job-1", (*string)(nil)).Return(nil)

	mirror := &mockMirror{}
	mirror.On("DeleteObject", mock.Anything, "job-1").Return(nil)

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, mirror)
	assert.NoError(t, err)

	assert.NoError(t, indexer.SyncJob(context.Background(), "job-1"))

	mirror.AssertNotCalled(t, "SaveObject", mock.Anything, mock.Anything)
	entries.AssertCalled(t, "Upsert", mock.Anything, mock.Anything)
	mirror.AssertExpectations(t)
}

func Test_SyncJob_MirrorFailureIsSwallowed(t *testing.T) {

	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)

	entries := &mockEntries{}
	entries.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	mirror := &mockMirror{}
	mirror.On("SaveObject", mock.Anything, mock.Anything).Return(errors.New("service unavailable"))

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, mirror)
	assert.NoError(t, err)

	assert.NoError(t, indexer.SyncJob(context.Background(), "job-1"))
	entries.AssertNotCalled(t, "SetExternalObjectID", mock.Anything, mock.Anything, mock.Anything)
}

func Test_SyncJob_RelationalFailurePropagates(t *testing.T) {

	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)

	entries := &mockEntries{}
	entries.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, nil)
	assert.NoError(t, err)

	assert.Error(t, indexer.SyncJob(context.Background(), "job-1"))
}

func Test_SyncJob_UnknownJobIsNoop(t *testing.T) {

	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, "missing").Return(nil, nil)

	entries := &mockEntries{}

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, nil)
	assert.NoError(t, err)

	assert.NoError(t, indexer.SyncJob(context.Background(), "missing"))
	entries.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func Test_RemoveJob_SafeForNeverSyncedJob(t *testing.T) {

	entries := &mockEntries{}
	entries.On("DeleteByJobID", mock.Anything, "job-9").Return(nil)

	mirror := &mockMirror{}
	mirror.On("DeleteObject", mock.Anything, "job-9").Return(errors.New("not found"))

	indexer, err := NewSearchIndexer(EventBus.New(), &mockJobReader{}, entries, mirror)
	assert.NoError(t, err)

	assert.NoError(t, indexer.RemoveJob(context.Background(), "job-9"))
	entries.AssertExpectations(t)
}

func Test_ResyncAll_RebuildsEntriesAndBulkMirrors(t *testing.T) {

	published := []entities.JobPosting{*publishedJob()}
	second := *publishedJob()
	second.ID = "job-2"
	published = append(published, second)

	jobs := &mockJobReader{}
	jobs.On("GetPublished", mock.Anything).Return(published, nil)

	entries := &mockEntries{}
	entries.On("DeleteAll", mock.Anything).Return(nil)
	entries.On("CreateBatch", mock.Anything, mock.MatchedBy(func(batch []entities.SearchEntry) bool {
		return len(batch) == 2
	})).Return(nil)

	mirror := &mockMirror{}
	mirror.On("SaveObjects", mock.Anything, mock.MatchedBy(func(records []searchhost.Record) bool {
		return len(records) == 2 && records[1].ObjectID == "job-2"
	})).Return(nil)

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, mirror)
	assert.NoError(t, err)

	synced, err := indexer.ResyncAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, synced)
	entries.AssertExpectations(t)
	mirror.AssertExpectations(t)
}

func Test_JobChangedEvent_TriggersSync(t *testing.T) {

	jobs := &mockJobReader{}
	jobs.On("GetByID", mock.Anything, "job-1").Return(publishedJob(), nil)

	entries := &mockEntries{}
	entries.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	bus := EventBus.New()
	_, err := NewSearchIndexer(bus, jobs, entries, nil)
	assert.NoError(t, err)

	bus.Publish(events.JobChangedTopic, events.JobChanged{JobID: "job-1"})
	bus.WaitAsync()

	entries.AssertCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func Test_BuildSearchableText_TruncatesToBoundRowSize(t *testing.T) {

	job := publishedJob()
	job.Description = strings.Repeat("distributed systems at scale ", 1000)

	text := buildSearchableText(job)
	assert.Len(t, text, maxSearchableTextLength)
	assert.True(t, strings.HasPrefix(text, "Backend Engineer"))
}

func Test_BuildSearchableText_TruncationKeepsValidUtf8(t *testing.T) {

	job := publishedJob()
	// two-byte runes guarantee the byte cap lands inside a rune
	job.Description = strings.Repeat("é", maxSearchableTextLength)

	text := buildSearchableText(job)
	assert.True(t, utf8.ValidString(text))
	assert.LessOrEqual(t, len(text), maxSearchableTextLength)
	assert.Greater(t, len(text), maxSearchableTextLength-utf8.UTFMax)
}

func Test_ResyncAll_BulkMirrorFailureIsReturned(t *testing.T) {

	jobs := &mockJobReader{}
	jobs.On("GetPublished", mock.Anything).Return([]entities.JobPosting{*publishedJob()}, nil)

	entries := &mockEntries{}
	entries.On("DeleteAll", mock.Anything).Return(nil)
	entries.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	mirror := &mockMirror{}
	mirror.On("SaveObjects", mock.Anything, mock.Anything).Return(errors.New("service unavailable"))

	indexer, err := NewSearchIndexer(EventBus.New(), jobs, entries, mirror)
	assert.NoError(t, err)

	synced, err := indexer.ResyncAll(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, synced)
	entries.AssertCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}
