package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// IndexResyncer runs the full-corpus rebuild on a schedule as the periodic
// reconciliation against index drift. The rebuild is idempotent, so an
// overlap with live job mutations is harmless.
type IndexResyncer struct {
	indexer *SearchIndexer
	cron    *cron.Cron
}

func NewIndexResyncer(indexer *SearchIndexer, cronSpec string) (*IndexResyncer, error) {

	if cronSpec == "" {
		return nil, errors.New("cron spec must not be empty")
	}

	r := &IndexResyncer{
		indexer: indexer,
		cron:    cron.New(),
	}

	_, err := r.cron.AddFunc(cronSpec, r.resync)
	if err != nil {
		return nil, err
	}

	r.cron.Start()
	log.Infof("index resyncer started with schedule %q", cronSpec)
	return r, nil
}

func (r *IndexResyncer) Stop() {
	r.cron.Stop()
}

func (r *IndexResyncer) resync() {
	synced, err := r.indexer.ResyncAll(context.Background())
	if err != nil {
		// the cause may be either store, the wrapped error names it
		log.Errorf("scheduled resync failed: %v", err)
	} else {
		log.Infof("scheduled resync complete, %v jobs reindexed", synced)
	}
}
