package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/api"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/clients/searchhost"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/config"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/logger"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/metrics"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/repositories"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/services"
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.Dialect, cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.Migrate()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	resumes := repositories.NewResumesRepository(dbContext.DB)
	entries := repositories.NewSearchEntriesRepository(dbContext.DB)

	bus := EventBus.New()

	var (
		indexer       *services.SearchIndexer
		searchService *services.JobSearchService
	)

	if cfg.Search.Enabled() {
		searchClient, err := searchhost.NewClient(searchhost.Config{
			BaseURL:   cfg.Search.BaseURL,
			AppID:     cfg.Search.AppID,
			APIKey:    cfg.Search.APIKey,
			IndexName: cfg.Search.IndexName,
		})
		if err != nil {
			log.Fatalf("can't create search client: %v", err)
		}
		if cfg.Search.MaxRequestsPerSecond > 0 {
			searchClient.SetRateLimit(cfg.Search.MaxRequestsPerSecond)
		}

		indexer, err = services.NewSearchIndexer(bus, jobs, entries, searchClient)
		if err != nil {
			log.Fatalf("can't create search indexer: %v", err)
		}
		searchService = services.NewJobSearchService(jobs, searchClient)
		log.Info("external search service configured, routing queries to it")
	} else {
		indexer, err = services.NewSearchIndexer(bus, jobs, entries, nil)
		if err != nil {
			log.Fatalf("can't create search indexer: %v", err)
		}
		searchService = services.NewJobSearchService(jobs, nil)
		log.Info("external search service not configured, using relational search")
	}

	if cfg.Search.ResyncCron != "" {
		resyncer, err := services.NewIndexResyncer(indexer, cfg.Search.ResyncCron)
		if err != nil {
			log.Fatalf("can't create index resyncer: %v", err)
		}
		defer resyncer.Stop()
	}

	recommender := services.NewRecommender(resumes, jobs)

	server := api.NewServer(cfg.API, searchService, recommender, indexer)
	go server.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("api server shutdown failed: %v", err)
	}

	log.Info("Services stopped.")
}
