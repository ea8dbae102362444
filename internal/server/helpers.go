package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/server/middleware"
)

// identity returns the authenticated account for the request. A request
// without identity context is unauthenticated, never an internal error.
func (s *Server) identity(r *http.Request) (*db.Profile, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, &ErrUnauthenticated{}
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		return nil, &ErrUnauthenticated{}
	}
	return &db.Profile{ID: userID, Role: role}, nil
}

// requireRole returns the identity only when it carries the wanted role.
func (s *Server) requireRole(r *http.Request, role string) (*db.Profile, error) {
	who, err := s.identity(r)
	if err != nil {
		return nil, err
	}
	if who.Role != role {
		return nil, &ErrForbidden{Message: "this endpoint requires role " + role}
	}
	return who, nil
}

// pathUUID parses a UUID path segment.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: name, Message: "must be a valid UUID"}
	}
	return id, nil
}

// parseQueryInt parses an integer query parameter with a fallback.
func parseQueryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
