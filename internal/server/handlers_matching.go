package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/matching"
)

// handleCandidateFeed returns confirmed candidates for the recruiter,
// excluding candidates already swiped.
func (s *Server) handleCandidateFeed(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleRecruiter)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	limit := parseQueryInt(r, "limit", matching.DefaultFeedLimit)

	seekers, err := s.db.ListConfirmedSeekers(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	swiped, err := s.db.ListSwipedTargetIDs(r.Context(), who.ID, db.TargetCandidate)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, matching.RankCandidates(seekers, swiped, limit))
}

// handleSwipe records a swipe and reports any resulting match.
func (s *Server) handleSwipe(w http.ResponseWriter, r *http.Request) {
	who, err := s.identity(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req SwipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "target_id must be a valid UUID")
		return
	}

	result, err := s.resolver.Swipe(r.Context(), who, targetID, req.Direction)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleListMatches lists the account's matches, newest first.
func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	who, err := s.identity(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var matches []db.MatchDetail
	switch who.Role {
	case db.RoleSeeker:
		matches, err = s.db.ListMatchesBySeeker(r.Context(), who.ID)
	case db.RoleRecruiter:
		matches, err = s.db.ListMatchesByRecruiter(r.Context(), who.ID)
	default:
		s.errorResponse(w, http.StatusForbidden, "unknown role")
		return
	}
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if matches == nil {
		matches = []db.MatchDetail{}
	}

	s.jsonResponse(w, http.StatusOK, matches)
}
