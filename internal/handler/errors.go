package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
	"github.com/BattlescarZA/DocuMaster-Pro/internal/httputil"
)

// handleError maps domain errors to HTTP responses. Anything that does
// not implement HTTPError is treated as an internal error and logged.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode() >= http.StatusInternalServerError {
			logger.Error("request failed", "error", err)
		}
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("unexpected error", "error", err)
	httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
}
