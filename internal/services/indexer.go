package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/clients/searchhost"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/events"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/logger"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const maxSearchableTextLength = 10000

type jobReader interface {
	GetByID(ctx context.Context, jobID string) (*entities.JobPosting, error)
	GetPublished(ctx context.Context) ([]entities.JobPosting, error)
}

type searchEntryRepository interface {
	Upsert(ctx context.Context, entry entities.SearchEntry) error
	SetExternalObjectID(ctx context.Context, jobID string, externalObjectID *string) error
	DeleteByJobID(ctx context.Context, jobID string) error
	DeleteAll(ctx context.Context) error
	CreateBatch(ctx context.Context, entries []entities.SearchEntry) error
}

type searchMirror interface {
	SaveObject(ctx context.Context, record searchhost.Record) error
	SaveObjects(ctx context.Context, records []searchhost.Record) error
	DeleteObject(ctx context.Context, objectID string) error
}

// SearchIndexer keeps the derived search representation of every job
// consistent: the relational SearchEntry row is authoritative and written
// synchronously; the external mirror (when configured) is best-effort.
type SearchIndexer struct {
	jobs    jobReader
	entries searchEntryRepository
	mirror  searchMirror // nil when the external service is not configured
}

func NewSearchIndexer(bus EventBus.Bus, jobs jobReader, entries searchEntryRepository,
	mirror searchMirror) (*SearchIndexer, error) {

	indexer := &SearchIndexer{
		jobs:    jobs,
		entries: entries,
		mirror:  mirror,
	}

	if err := bus.SubscribeAsync(events.JobChangedTopic, indexer.onJobChanged, false); err != nil {
		return nil, err
	}
	if err := bus.SubscribeAsync(events.JobDeletedTopic, indexer.onJobDeleted, false); err != nil {
		return nil, err
	}

	return indexer, nil
}

func (i *SearchIndexer) onJobChanged(event events.JobChanged) {
	if err := i.SyncJob(context.Background(), event.JobID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to sync job %v: %v", event.JobID, err)
	}
}

func (i *SearchIndexer) onJobDeleted(event events.JobDeleted) {
	if err := i.RemoveJob(context.Background(), event.JobID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to remove job %v from index: %v", event.JobID, err)
	}
}

// SyncJob is an idempotent upsert of the derived entry for one job, plus the
// external mirror call when configured. A mirror failure is logged, never
// returned: the relational entry alone keeps the job searchable.
func (i *SearchIndexer) SyncJob(ctx context.Context, jobID string) error {

	job, err := i.jobs.GetByID(ctx, jobID)
	if err != nil {
		return errors.Wrap(err, "failed to load job")
	}
	if job == nil {
		return nil
	}

	now := time.Now()
	err = i.entries.Upsert(ctx, entities.SearchEntry{
		JobID:          job.ID,
		SearchableText: buildSearchableText(job),
		IndexedAt:      now,
		LastSyncedAt:   now,
	})
	if err != nil {
		return errors.Wrap(err, "failed to upsert search entry")
	}
	metrics.SyncedJobsCounter.Inc()

	if i.mirror == nil {
		return nil
	}

	if job.Status != entities.StatusPublished {
		// a job must never be externally discoverable unless published
		if err := i.mirror.DeleteObject(ctx, job.ID); err != nil {
			i.logMirrorError("failed to delete external object for job %v: %v", job.ID, err)
		} else if err := i.entries.SetExternalObjectID(ctx, job.ID, nil); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to clear external object id for job %v: %v", job.ID, err)
		}
		return nil
	}

	if err := i.mirror.SaveObject(ctx, recordFromJob(job)); err != nil {
		i.logMirrorError("failed to mirror job %v: %v", job.ID, err)
		return nil
	}

	if err := i.entries.SetExternalObjectID(ctx, job.ID, &job.ID); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to record external object id for job %v: %v", job.ID, err)
	}
	return nil
}

// RemoveJob deletes the external object (best-effort) and the relational
// entry. Safe to call for a job that was never synced.
func (i *SearchIndexer) RemoveJob(ctx context.Context, jobID string) error {

	if i.mirror != nil {
		if err := i.mirror.DeleteObject(ctx, jobID); err != nil {
			i.logMirrorError("failed to delete external object for job %v: %v", jobID, err)
		}
	}

	if err := i.entries.DeleteByJobID(ctx, jobID); err != nil {
		return errors.Wrap(err, "failed to delete search entry")
	}
	return nil
}

// ResyncAll is the recovery path for suspected drift: it wipes the derived
// rows, rebuilds one per currently published job and bulk-upserts the mirror.
// It does not depend on prior sync state and is safe to run repeatedly.
// Unlike SyncJob it is an explicit recovery operation, so a failed bulk
// mirror call is returned to the caller along with the rebuilt row count.
func (i *SearchIndexer) ResyncAll(ctx context.Context) (int, error) {

	jobs, err := i.jobs.GetPublished(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load published jobs")
	}

	if err := i.entries.DeleteAll(ctx); err != nil {
		return 0, errors.Wrap(err, "failed to wipe search entries")
	}

	now := time.Now()
	entries := make([]entities.SearchEntry, 0, len(jobs))
	for idx := range jobs {
		entries = append(entries, entities.SearchEntry{
			JobID:          jobs[idx].ID,
			SearchableText: buildSearchableText(&jobs[idx]),
			IndexedAt:      now,
			LastSyncedAt:   now,
		})
	}
	if err := i.entries.CreateBatch(ctx, entries); err != nil {
		return 0, errors.Wrap(err, "failed to recreate search entries")
	}

	if i.mirror == nil || len(jobs) == 0 {
		return len(jobs), nil
	}

	records := make([]searchhost.Record, 0, len(jobs))
	for idx := range jobs {
		records = append(records, recordFromJob(&jobs[idx]))
	}
	if err := i.mirror.SaveObjects(ctx, records); err != nil {
		metrics.ExternalSyncFailuresCounter.Inc()
		return len(jobs), errors.Wrapf(err, "rebuilt %d search entries but bulk mirror failed", len(records))
	}

	return len(jobs), nil
}

func (i *SearchIndexer) logMirrorError(format string, args ...interface{}) {
	metrics.ExternalSyncFailuresCounter.Inc()
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeSearchAPI).Errorf(format, args...)
}

// buildSearchableText joins the job's searchable fields with single spaces,
// dropping empties and truncating to bound row size.
func buildSearchableText(job *entities.JobPosting) string {

	parts := []string{job.Title, job.Description}
	if job.Requirements != nil {
		parts = append(parts, *job.Requirements)
	}
	parts = append(parts, job.Company.Name)
	if job.Location != nil {
		parts = append(parts, *job.Location)
	}
	parts = append(parts, string(job.EmploymentType), string(job.ExperienceLevel))

	var nonEmpty []string
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	text := strings.Join(nonEmpty, " ")
	if len(text) > maxSearchableTextLength {
		// cut on a rune boundary, postgres rejects invalid utf-8
		cut := maxSearchableTextLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

func recordFromJob(job *entities.JobPosting) searchhost.Record {
	return searchhost.Record{
		ObjectID:        job.ID,
		ID:              job.ID,
		Title:           job.Title,
		Description:     job.Description,
		Requirements:    job.Requirements,
		Location:        job.Location,
		Remote:          job.Remote,
		SalaryMin:       job.SalaryMin,
		SalaryMax:       job.SalaryMax,
		SalaryCurrency:  job.SalaryCurrency,
		EmploymentType:  string(job.EmploymentType),
		ExperienceLevel: string(job.ExperienceLevel),
		CompanyName:     job.Company.Name,
		CompanyID:       job.CompanyID,
		CreatedAt:       searchhost.FormatTime(job.CreatedAt),
		UpdatedAt:       searchhost.FormatTime(job.UpdatedAt),
		Status:          string(job.Status),
		Facets: searchhost.Facets{
			Location:        job.Location,
			Remote:          job.Remote,
			EmploymentType:  string(job.EmploymentType),
			ExperienceLevel: string(job.ExperienceLevel),
			SalaryRange:     searchhost.SalaryRangeFacet(job.SalaryMin, job.SalaryMax),
			CompanyName:     job.Company.Name,
		},
	}
}
