package server

import (
	"encoding/json"
	"net/http"

	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/matching"
)

// handleCreateJob posts a new job listing for the recruiter.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleRecruiter)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.db.CreateJob(r.Context(), who.ID, db.JobInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Logo:         req.Logo,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListMyJobs lists the recruiter's own job listings.
func (s *Server) handleListMyJobs(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleRecruiter)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jobs, err := s.db.ListJobsByRecruiter(r.Context(), who.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob retrieves a single job listing.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	if _, err := s.identity(r); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob edits a job owned by the recruiter.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleRecruiter)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.db.UpdateJob(r.Context(), jobID, who.ID, db.JobUpdateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Salary:       req.Salary,
		Description:  req.Description,
		Requirements: req.Requirements,
		Logo:         req.Logo,
		Status:       req.Status,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleCloseJob soft-deletes a job owned by the recruiter.
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleRecruiter)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	jobID, err := pathUUID(r, "id")
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	closed, err := s.db.CloseJob(r.Context(), jobID, who.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !closed {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": db.JobStatusClosed})
}

// handleJobFeed returns ranked active jobs for the seeker, excluding jobs
// already swiped.
func (s *Server) handleJobFeed(w http.ResponseWriter, r *http.Request) {
	who, err := s.requireRole(r, db.RoleSeeker)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	limit := parseQueryInt(r, "limit", matching.DefaultFeedLimit)

	sp, err := s.db.GetSeekerProfile(r.Context(), who.ID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	var skills []string
	if sp != nil {
		skills = sp.Skills
	}

	jobs, err := s.db.ListActiveJobs(r.Context())
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	swiped, err := s.db.ListSwipedTargetIDs(r.Context(), who.ID, db.TargetJob)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, matching.RankJobs(skills, jobs, swiped, limit))
}
