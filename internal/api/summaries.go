package api

import (
	"net/http"

	"github.com/yourusername/aoc-web/internal/models"
)

func (s *Server) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := models.SummaryFilter{
		Year:        q.int("year"),
		Participant: q.string("participant"),
		Language:    q.string("language"),
	}
	if q.err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", q.err.Error())
		return
	}

	summaries, err := s.summaries.List(r.Context(), filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	summary, err := s.summaries.Get(r.Context(), year, r.PathValue("participant"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleGenerateSummaries takes a bare JSON integer year as its body.
func (s *Server) handleGenerateSummaries(w http.ResponseWriter, r *http.Request) {
	var year int
	if err := decodeJSON(w, r, &year); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	keys, err := s.summaries.Generate(r.Context(), year, "api")
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}
