// Package matching implements the swipe ledger, mutual match resolution,
// and feed ranking.
package matching

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nikhilshetty5/superhireX/internal/db"
)

// Database is the persistence surface the resolver needs.
type Database interface {
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	GetSeekerProfile(ctx context.Context, userID uuid.UUID) (*db.SeekerProfile, error)
	InsertSwipe(ctx context.Context, swiperID, targetID uuid.UUID, targetType, direction string) (*db.Swipe, bool, error)
	HasRecruiterRightSwipe(ctx context.Context, recruiterID, seekerID uuid.UUID) (bool, error)
	FindReciprocalJobSwipe(ctx context.Context, seekerID, recruiterID uuid.UUID) (*db.Job, error)
	InsertMatch(ctx context.Context, seekerID, recruiterID, jobID uuid.UUID) (*db.Match, bool, error)
}

// SwipeResult is the outcome of recording one swipe.
type SwipeResult struct {
	Swipe   *db.Swipe `json:"swipe"`
	Matched bool      `json:"matched"`
	Match   *db.Match `json:"match,omitempty"`
}

// Resolver records swipes and resolves mutual matches. Match uniqueness is
// enforced by the database, so concurrent reciprocal swipes converge on one
// match row no matter which side observes the reciprocity.
type Resolver struct {
	db     Database
	logger *zap.Logger
}

// NewResolver creates a resolver.
func NewResolver(database Database, logger *zap.Logger) *Resolver {
	return &Resolver{db: database, logger: logger}
}

// Swipe records a swipe for the given account and, on a right swipe,
// resolves any mutual interest into a match. Duplicate swipes return the
// original event and still run resolution, which makes retries safe.
func (r *Resolver) Swipe(ctx context.Context, swiper *db.Profile, targetID uuid.UUID, direction string) (*SwipeResult, error) {
	if direction != db.SwipeLeft && direction != db.SwipeRight {
		return nil, &ValidationError{Message: "direction must be left or right"}
	}

	switch swiper.Role {
	case db.RoleSeeker:
		return r.seekerSwipesJob(ctx, swiper.ID, targetID, direction)
	case db.RoleRecruiter:
		return r.recruiterSwipesCandidate(ctx, swiper.ID, targetID, direction)
	default:
		return nil, &ValidationError{Message: "unknown swiper role"}
	}
}

func (r *Resolver) seekerSwipesJob(ctx context.Context, seekerID, jobID uuid.UUID, direction string) (*SwipeResult, error) {
	job, err := r.db.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil || job.Status != db.JobStatusActive {
		return nil, ErrTargetNotFound
	}

	swipe, _, err := r.db.InsertSwipe(ctx, seekerID, jobID, db.TargetJob, direction)
	if err != nil {
		return nil, err
	}
	result := &SwipeResult{Swipe: swipe}
	if swipe.Direction != db.SwipeRight {
		return result, nil
	}

	mutual, err := r.db.HasRecruiterRightSwipe(ctx, job.RecruiterID, seekerID)
	if err != nil {
		return nil, err
	}
	if !mutual {
		return result, nil
	}

	return r.recordMatch(ctx, result, seekerID, job.RecruiterID, job.ID)
}

func (r *Resolver) recruiterSwipesCandidate(ctx context.Context, recruiterID, seekerID uuid.UUID, direction string) (*SwipeResult, error) {
	sp, err := r.db.GetSeekerProfile(ctx, seekerID)
	if err != nil {
		return nil, err
	}
	if sp == nil {
		return nil, ErrTargetNotFound
	}

	swipe, _, err := r.db.InsertSwipe(ctx, recruiterID, seekerID, db.TargetCandidate, direction)
	if err != nil {
		return nil, err
	}
	result := &SwipeResult{Swipe: swipe}
	if swipe.Direction != db.SwipeRight {
		return result, nil
	}

	// The match attaches to the recruiter's earliest-created job the seeker
	// right-swiped, so the attachment is stable across retries.
	job, err := r.db.FindReciprocalJobSwipe(ctx, seekerID, recruiterID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return result, nil
	}

	return r.recordMatch(ctx, result, seekerID, recruiterID, job.ID)
}

func (r *Resolver) recordMatch(ctx context.Context, result *SwipeResult, seekerID, recruiterID, jobID uuid.UUID) (*SwipeResult, error) {
	match, created, err := r.db.InsertMatch(ctx, seekerID, recruiterID, jobID)
	if err != nil {
		return nil, err
	}
	result.Matched = true
	result.Match = match

	if created {
		r.logger.Info("match created",
			zap.String("match_id", match.ID.String()),
			zap.String("seeker_id", seekerID.String()),
			zap.String("job_id", jobID.String()))
	}
	return result, nil
}
