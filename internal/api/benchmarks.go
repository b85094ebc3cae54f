package api

import (
	"net/http"

	"github.com/yourusername/aoc-web/internal/models"
)

func (s *Server) handleListBenchmarks(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := models.BenchmarkFilter{
		Year:        q.int("year"),
		Day:         q.int("day"),
		Input:       q.string("input"),
		Participant: q.string("participant"),
		Language:    q.string("language"),
	}
	if q.err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", q.err.Error())
		return
	}

	benchmarks, err := s.benchmarks.List(r.Context(), filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, benchmarks)
}

func (s *Server) handleGetBenchmark(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	benchmark, err := s.benchmarks.GetByID(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, benchmark)
}

func (s *Server) handleCreateBenchmarks(w http.ResponseWriter, r *http.Request) {
	var payload batch[models.BenchmarkCreate]
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := validateItems(s.validate, payload.items); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	ids, err := s.benchmarks.BatchCreateOrUpdate(r.Context(), payload.items)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.audit.LogBenchmarksSubmitted(RequestID(r.Context()), len(ids), ids)
	writeJSON(w, http.StatusOK, ids)
}
