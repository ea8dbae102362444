package server

import (
	"github.com/nikhilshetty5/superhireX/internal/db"
	"github.com/nikhilshetty5/superhireX/internal/extraction"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=SEEKER RECRUITER"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the account and its session token.
type AuthResponse struct {
	User  *db.Profile `json:"user"`
	Token string      `json:"token"`
}

// ConfirmProfileRequest is the payload for finalizing a parsed resume.
// ParsedData carries the user's edited copy of the extraction output; it
// replaces the stored version in full.
type ConfirmProfileRequest struct {
	Title      *string                  `json:"title" validate:"omitempty,max=200"`
	Bio        *string                  `json:"bio" validate:"omitempty,max=2000"`
	Location   *string                  `json:"location" validate:"omitempty,max=200"`
	Experience *string                  `json:"experience" validate:"omitempty,max=100"`
	Skills     []string                 `json:"skills" validate:"required,min=1,dive,min=1,max=100"`
	ParsedData *extraction.ParsedResume `json:"parsed_data" validate:"required"`
}

// CreateJobRequest is the payload for posting a job.
type CreateJobRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Company      string   `json:"company" validate:"required,min=1,max=200"`
	Location     string   `json:"location" validate:"max=200"`
	Salary       *string  `json:"salary" validate:"omitempty,max=100"`
	Description  string   `json:"description" validate:"max=10000"`
	Requirements []string `json:"requirements" validate:"dive,min=1,max=100"`
	Logo         *string  `json:"logo" validate:"omitempty,max=500"`
}

// UpdateJobRequest is the payload for editing a job. Absent fields are
// left unchanged.
type UpdateJobRequest struct {
	Title        *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Company      *string  `json:"company" validate:"omitempty,min=1,max=200"`
	Location     *string  `json:"location" validate:"omitempty,max=200"`
	Salary       *string  `json:"salary" validate:"omitempty,max=100"`
	Description  *string  `json:"description" validate:"omitempty,max=10000"`
	Requirements []string `json:"requirements" validate:"omitempty,dive,min=1,max=100"`
	Logo         *string  `json:"logo" validate:"omitempty,max=500"`
	Status       *string  `json:"status" validate:"omitempty,oneof=active closed draft"`
}

// SwipeRequest is the payload for recording a swipe.
type SwipeRequest struct {
	TargetID  string `json:"target_id" validate:"required,uuid"`
	Direction string `json:"direction" validate:"required,oneof=left right"`
}
