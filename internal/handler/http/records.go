package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ebalakin/credvault/internal/logger"
	"github.com/ebalakin/credvault/models"
)

// listPasswords answers GET /api/passwords. With a non-empty "q" query
// parameter it searches; otherwise it lists everything. The service layer
// treats a whitespace-only query the same as no query at all.
func (h *Handler) listPasswords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var (
		records []models.Record
		err     error
	)

	if query := r.URL.Query().Get("q"); query != "" {
		records, err = h.services.Records.Search(r.Context(), query)
	} else {
		records, err = h.services.Records.GetAll(r.Context())
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.listPasswords").Msg("error listing records")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, records)
}

func (h *Handler) addPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var input models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Str("func", "*Handler.addPassword").Msg("invalid JSON was passed")
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid JSON was passed"})
		return
	}

	record, err := h.services.Records.Add(r.Context(), input)
	if err != nil {
		log.Err(err).Str("func", "*Handler.addPassword").Msg("error adding record")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, record)
}

func (h *Handler) batchAddPasswords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var inputs []models.RecordInput
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		log.Err(err).Str("func", "*Handler.batchAddPasswords").Msg("invalid JSON was passed")
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid JSON was passed"})
		return
	}

	records, err := h.services.Records.BatchAdd(r.Context(), inputs)
	if err != nil {
		log.Err(err).Str("func", "*Handler.batchAddPasswords").Msg("error batch adding records")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, records)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	var patch models.RecordPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Err(err).Str("func", "*Handler.updatePassword").Msg("invalid JSON was passed")
		h.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid JSON was passed"})
		return
	}

	record, err := h.services.Records.Update(r.Context(), id, patch)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updatePassword").Str("id", id).Msg("error updating record")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, record)
}

func (h *Handler) deletePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	id := chi.URLParam(r, "id")

	deleted, err := h.services.Records.Remove(r.Context(), id)
	if err != nil {
		log.Err(err).Str("func", "*Handler.deletePassword").Str("id", id).Msg("error deleting record")
		h.writeError(w, r, err)
		return
	}

	if !deleted {
		h.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "record not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	stats, err := h.services.Records.GetStats(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getStats").Msg("error getting stats")
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, stats)
}

// health reports the backend connectivity probe. The endpoint itself is
// always 200; the probe result lives in the body.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	status := h.services.Records.TestConnection(r.Context())
	h.writeJSON(w, r, http.StatusOK, status)
}
