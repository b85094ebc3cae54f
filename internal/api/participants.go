package api

import (
	"net/http"

	"github.com/yourusername/aoc-web/internal/models"
)

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	q := newQueryParser(r)
	filter := models.ParticipantFilter{
		Year:     q.int("year"),
		Name:     q.string("name"),
		Language: q.string("language"),
	}
	if q.err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", q.err.Error())
		return
	}

	participants, err := s.participants.List(r.Context(), filter)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	year, err := pathInt(r, "year")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	participant, err := s.participants.Get(r.Context(), year, r.PathValue("name"))
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, participant)
}

func (s *Server) handleCreateParticipants(w http.ResponseWriter, r *http.Request) {
	var payload batch[models.Participant]
	if err := decodeJSON(w, r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err := validateItems(s.validate, payload.items); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	keys, err := s.participants.BatchCreateOrUpdate(r.Context(), payload.items)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	s.audit.LogParticipantsRegistered(RequestID(r.Context()), len(keys))
	writeJSON(w, http.StatusOK, keys)
}
