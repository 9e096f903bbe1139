// Package http exposes the credential vault operations over a chi-routed
// JSON API. It is the Go stand-in for the out-of-scope SPA view layer:
// every route maps one-to-one onto a [service.RecordManager] operation.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/internal/service"
)

// Handler carries the service layer and the base logger for the HTTP
// surface.
type Handler struct {
	services *service.Services
	logger   *logger.Logger
}

// NewHandler constructs the HTTP handler over the given services.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	return &Handler{services: services, logger: logger}
}

// writeJSON serialises v with the given status. Serialisation failures are
// logged and answered with a bare 500 since the header may already be out.
func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.writeJSON").Msg("failed to encode response")
	}
}

// errorResponse is the JSON error envelope returned on every failure.
type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	h.writeJSON(w, r, statusFromError(err), errorResponse{Error: err.Error()})
}
