package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.APIConfig, search jobSearcher, recommender jobRecommender,
	indexer indexResyncer) *Server {

	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", NewSearchHandler(search).Handle)
	mux.HandleFunc("/api/recommendations", NewRecommendationsHandler(recommender).Handle)
	mux.HandleFunc("/api/admin/search/resync", NewAdminHandler(indexer).HandleResync)
	mux.Handle("/metrics", promhttp.Handler())

	corsOptions := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsOptions.AllowedOrigins = cfg.AllowedOrigins
	}

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", cfg.Port),
			Handler: cors.New(corsOptions).Handler(mux),
		},
	}
}

func (s *Server) Run() {
	log.Infof("api server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("api server failed: %v", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
