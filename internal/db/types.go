package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleSeeker    = "SEEKER"
	RoleRecruiter = "RECRUITER"
)

// Resume lifecycle statuses. Transitions are monotonic except for the
// failed -> parsing retry path.
const (
	ResumeStatusPending   = "pending"
	ResumeStatusParsing   = "parsing"
	ResumeStatusParsed    = "parsed"
	ResumeStatusConfirmed = "confirmed"
	ResumeStatusFailed    = "failed"
)

// ResumeStatusNone is the sentinel returned when a seeker has no state row.
const ResumeStatusNone = "no_resume"

// Swipe directions.
const (
	SwipeLeft  = "left"
	SwipeRight = "right"
)

// Swipe target types.
const (
	TargetJob       = "job"
	TargetCandidate = "candidate"
)

// Job statuses.
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
	JobStatusDraft  = "draft"
)

// Match statuses.
const MatchStatusActive = "active"

// Profile is an account row for a seeker or recruiter.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	IsPremium    bool      `json:"is_premium"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SeekerProfile holds one seeker's resume lifecycle state and the profile
// fields promoted from the confirmed resume data.
type SeekerProfile struct {
	UserID       uuid.UUID       `json:"user_id"`
	Title        *string         `json:"title,omitempty"`
	Bio          *string         `json:"bio,omitempty"`
	Location     *string         `json:"location,omitempty"`
	Experience   *string         `json:"experience,omitempty"`
	Skills       []string        `json:"skills"`
	ResumeStatus string          `json:"resume_status"`
	ParsedData   json.RawMessage `json:"parsed_data,omitempty"`
	ATSScore     *float64        `json:"ats_score,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Resume is one uploaded resume file. Immutable except for ParsedAt.
type Resume struct {
	ID         uuid.UUID  `json:"id"`
	SeekerID   uuid.UUID  `json:"seeker_id"`
	FilePath   string     `json:"file_path"`
	FileName   string     `json:"file_name"`
	IsPrimary  bool       `json:"is_primary"`
	UploadedAt time.Time  `json:"uploaded_at"`
	ParsedAt   *time.Time `json:"parsed_at,omitempty"`
}

// Job is a recruiter's job listing.
type Job struct {
	ID           uuid.UUID `json:"id"`
	RecruiterID  uuid.UUID `json:"recruiter_id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Salary       *string   `json:"salary,omitempty"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Logo         *string   `json:"logo,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Swipe is one directional interest event. Append-only, never updated.
type Swipe struct {
	ID         uuid.UUID `json:"id"`
	SwiperID   uuid.UUID `json:"swiper_id"`
	TargetID   uuid.UUID `json:"target_id"`
	TargetType string    `json:"target_type"`
	Direction  string    `json:"direction"`
	CreatedAt  time.Time `json:"created_at"`
}

// Match is one confirmed mutual interest, scoped to a specific job.
type Match struct {
	ID          uuid.UUID `json:"id"`
	SeekerID    uuid.UUID `json:"seeker_id"`
	RecruiterID uuid.UUID `json:"recruiter_id"`
	JobID       uuid.UUID `json:"job_id"`
	MatchedAt   time.Time `json:"matched_at"`
	Status      string    `json:"status"`
}

// ConfirmInput carries the user-confirmed resume data written by Confirm.
type ConfirmInput struct {
	Title      *string
	Bio        *string
	Location   *string
	Experience *string
	Skills     []string
	ParsedData json.RawMessage
	ATSScore   *float64
}

// JobInput carries the fields for creating a job listing.
type JobInput struct {
	Title        string
	Company      string
	Location     string
	Salary       *string
	Description  string
	Requirements []string
	Logo         *string
}

// JobUpdateInput carries optional fields for updating a job listing.
// Nil fields are left unchanged.
type JobUpdateInput struct {
	Title        *string
	Company      *string
	Location     *string
	Salary       *string
	Description  *string
	Requirements []string
	Logo         *string
	Status       *string
}
