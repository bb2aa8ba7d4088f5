package api

import (
	"context"
	"net/http"

	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/entities"
	"github.com/YAGNESHPALLERLA/konnecthere-sub000/internal/logger"
	log "github.com/sirupsen/logrus"
)

const defaultRecommendationLimit = 5

type jobRecommender interface {
	Recommend(ctx context.Context, userID string, limit int) ([]entities.Recommendation, error)
}

type RecommendationsHandler struct {
	recommender jobRecommender
}

func NewRecommendationsHandler(recommender jobRecommender) *RecommendationsHandler {
	return &RecommendationsHandler{recommender: recommender}
}

func (h *RecommendationsHandler) Handle(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "userId is required")
		return
	}

	limit, err := intParam(r.URL.Query().Get("limit"), defaultRecommendationLimit)
	if err != nil || limit < 1 {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}

	recommendations, err := h.recommender.Recommend(r.Context(), userID, limit)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("recommendations failed: %v", err)
		writeError(w, http.StatusInternalServerError, "recommendations failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"recommendations": recommendations})
}
