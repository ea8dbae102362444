package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/extraction"
)

// handleMe returns the authenticated account, plus the seeker state row for
// seekers.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	who, err := s.identity(r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	profile, err := s.userService.GetProfile(r.Context(), who.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	response := map[string]any{"user": profile}
	if profile.Role == db.RoleSeeker {
		sp, err := s.db.GetSeekerProfile(r.Context(), profile.ID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		response["seeker_profile"] = sp
	}
	s.jsonResponse(w, http.StatusOK, response)
}

// handleResumeUpload accepts a multipart resume file for the seeker.
func (s *Server) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleSeeker)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	resume, err := s.pipeline.Upload(r.Context(), who.ID, header.Filename, content)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, resume)
}

// handleResumeParse runs AI extraction on an uploaded resume. The pipeline
// guarantees at most one extraction per seeker; a request that loses the
// race gets 409 and a request after success gets the stored result.
func (s *Server) handleResumeParse(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleSeeker)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resumeID, err := pathUUID(r, "resume_id")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	parsed, err := s.pipeline.Parse(r.Context(), who.ID, resumeID)
	if err != nil {
		status := HTTPStatus(err)
		if status == http.StatusBadGateway {
			// Extraction failed after the slot was claimed. Hand the client a
			// placeholder it can render while retrying.
			s.jsonResponse(w, status, map[string]any{
				"error":    err.Error(),
				"fallback": extraction.Placeholder(),
			})
			return
		}
		s.errorResponse(w, status, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"parsed": parsed})
}

// handleResumeStatus reports the seeker's resume lifecycle state.
func (s *Server) handleResumeStatus(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleSeeker)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	status, ats, err := s.pipeline.Status(r.Context(), who.ID)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume_status": status,
		"ats_score":     ats,
	})
}

// handleProfileConfirm writes the user-approved profile data.
func (s *Server) handleProfileConfirm(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleSeeker)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req ConfirmProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	sp, err := s.pipeline.Confirm(r.Context(), who.ID, req.ParsedData, db.ConfirmInput{
		Title:      req.Title,
		Bio:        req.Bio,
		Location:   req.Location,
		Experience: req.Experience,
		Skills:     req.Skills,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sp)
}
