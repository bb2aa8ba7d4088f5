package api

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type indexResyncer interface {
	ResyncAll(ctx context.Context) (int, error)
}

// AdminHandler exposes the operational resync entry point used when the
// relational and external indexes are suspected to have diverged.
type AdminHandler struct {
	indexer indexResyncer
}

func NewAdminHandler(indexer indexResyncer) *AdminHandler {
	return &AdminHandler{indexer: indexer}
}

func (h *AdminHandler) HandleResync(w http.ResponseWriter, r *http.Request) {

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	synced, err := h.indexer.ResyncAll(r.Context())
	if err != nil {
		log.Errorf("resync failed: %v", err)
		writeError(w, http.StatusInternalServerError, "resync failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"synced": synced})
}
