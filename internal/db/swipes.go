package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertSwipe records a swipe event. A repeat swipe on the same target is
// absorbed by the unique index and the original event comes back with
// created=false; the stored direction is never overwritten.
func (db *DB) InsertSwipe(ctx context.Context, swiperID, targetID uuid.UUID, targetType, direction string) (*Swipe, bool, error) {
	var s Swipe
	err := db.pool.QueryRow(ctx,
		`INSERT INTO swipes (swiper_id, target_id, target_type, direction)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (swiper_id, target_id, target_type) DO NOTHING
		 RETURNING id, swiper_id, target_id, target_type, direction, created_at`,
		swiperID, targetID, targetType, direction,
	).Scan(&s.ID, &s.SwiperID, &s.TargetID, &s.TargetType, &s.Direction, &s.CreatedAt)
	if err == nil {
		return &s, true, nil
	}
	if err != pgx.ErrNoRows {
		return nil, false, fmt.Errorf("failed to insert swipe: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`SELECT id, swiper_id, target_id, target_type, direction, created_at
		 FROM swipes WHERE swiper_id = $1 AND target_id = $2 AND target_type = $3`,
		swiperID, targetID, targetType,
	).Scan(&s.ID, &s.SwiperID, &s.TargetID, &s.TargetType, &s.Direction, &s.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load existing swipe: %w", err)
	}
	return &s, false, nil
}

// ListSwipedTargetIDs retrieves every target the swiper has already acted on
// for a target type, in either direction
func (db *DB) ListSwipedTargetIDs(ctx context.Context, swiperID uuid.UUID, targetType string) ([]uuid.UUID, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT target_id FROM swipes WHERE swiper_id = $1 AND target_type = $2`,
		swiperID, targetType,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list swiped targets: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// HasRecruiterRightSwipe reports whether the job's recruiter has
// right-swiped the seeker as a candidate
func (db *DB) HasRecruiterRightSwipe(ctx context.Context, recruiterID, seekerID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (
		     SELECT 1 FROM swipes
		     WHERE swiper_id = $1 AND target_id = $2
		       AND target_type = 'candidate' AND direction = 'right'
		 )`,
		recruiterID, seekerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check recruiter swipe: %w", err)
	}
	return exists, nil
}

// FindReciprocalJobSwipe finds the recruiter's earliest-created job that the
// seeker has right-swiped. Resolves the job a candidate-side match attaches
// to; nil when the seeker never right-swiped any of the recruiter's jobs.
func (db *DB) FindReciprocalJobSwipe(ctx context.Context, seekerID, recruiterID uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT j.id, j.recruiter_id, j.title, j.company, j.location, j.salary, j.description,
		        j.requirements, j.logo, j.status, j.created_at, j.updated_at
		 FROM swipes s
		 JOIN jobs j ON j.id = s.target_id
		 WHERE s.swiper_id = $1 AND s.target_type = 'job' AND s.direction = 'right'
		   AND j.recruiter_id = $2
		 ORDER BY j.created_at ASC
		 LIMIT 1`,
		seekerID, recruiterID,
	)
	j, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find reciprocal job swipe: %w", err)
	}
	return j, nil
}
