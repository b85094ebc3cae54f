package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/aoc-web/internal/models"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeStoreError maps repository and service errors onto responses. Anything
// unclassified is logged in full and answered with a generic 500.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	log := s.logger.WithFields(logrus.Fields{
		"request_id": RequestID(r.Context()),
		"path":       r.URL.Path,
	})

	var dayErr *models.DayOutOfRangeError
	switch {
	case errors.Is(err, models.ErrNotFound):
		log.WithError(err).Debug("Entity not found")
		writeError(w, http.StatusNotFound, "not_found", "Not found")
	case errors.Is(err, models.ErrEmptyBatch):
		log.WithError(err).Debug("Empty batch")
		writeError(w, http.StatusBadRequest, "empty_batch", "Empty batch")
	case errors.As(err, &dayErr):
		log.WithError(err).Debug("Day out of range")
		writeError(w, http.StatusBadRequest, "day_out_of_range", dayErr.Error())
	default:
		log.WithError(err).Error("Request failed")
		writeError(w, http.StatusInternalServerError, "internal", "Internal server error")
	}
}
