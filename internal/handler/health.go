package handler

import (
	"net/http"
	"time"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
)

// Health reports service liveness
// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
