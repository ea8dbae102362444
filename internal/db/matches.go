package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertMatch records a mutual match for a seeker/job pair. Exactly one row
// exists per pair; a concurrent or repeated insert returns the winning row
// with created=false.
func (db *DB) InsertMatch(ctx context.Context, seekerID, recruiterID, jobID uuid.UUID) (*Match, bool, error) {
	var m Match
	err := db.pool.QueryRow(ctx,
		`INSERT INTO matches (seeker_id, recruiter_id, job_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (seeker_id, job_id) DO NOTHING
		 RETURNING id, seeker_id, recruiter_id, job_id, matched_at, status`,
		seekerID, recruiterID, jobID,
	).Scan(&m.ID, &m.SeekerID, &m.RecruiterID, &m.JobID, &m.MatchedAt, &m.Status)
	if err == nil {
		return &m, true, nil
	}
	if err != pgx.ErrNoRows {
		return nil, false, fmt.Errorf("failed to insert match: %w", err)
	}

	existing, err := db.GetMatchBySeekerJob(ctx, seekerID, jobID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("match insert conflicted but no row found for seeker %s job %s", seekerID, jobID)
	}
	return existing, false, nil
}

// GetMatchBySeekerJob retrieves the match for a seeker/job pair, nil when absent
func (db *DB) GetMatchBySeekerJob(ctx context.Context, seekerID, jobID uuid.UUID) (*Match, error) {
	var m Match
	err := db.pool.QueryRow(ctx,
		`SELECT id, seeker_id, recruiter_id, job_id, matched_at, status
		 FROM matches WHERE seeker_id = $1 AND job_id = $2`,
		seekerID, jobID,
	).Scan(&m.ID, &m.SeekerID, &m.RecruiterID, &m.JobID, &m.MatchedAt, &m.Status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return &m, nil
}

// MatchDetail is a match joined with the job and counterpart name for listings
type MatchDetail struct {
	Match
	JobTitle      string `json:"job_title"`
	Company       string `json:"company"`
	SeekerName    string `json:"seeker_name"`
	RecruiterName string `json:"recruiter_name"`
}

// ListMatchesBySeeker retrieves a seeker's matches, newest first
func (db *DB) ListMatchesBySeeker(ctx context.Context, seekerID uuid.UUID) ([]MatchDetail, error) {
	return db.listMatches(ctx, "m.seeker_id", seekerID)
}

// ListMatchesByRecruiter retrieves a recruiter's matches, newest first
func (db *DB) ListMatchesByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]MatchDetail, error) {
	return db.listMatches(ctx, "m.recruiter_id", recruiterID)
}

func (db *DB) listMatches(ctx context.Context, column string, id uuid.UUID) ([]MatchDetail, error) {
	rows, err := db.pool.Query(ctx,
		fmt.Sprintf(`SELECT m.id, m.seeker_id, m.recruiter_id, m.job_id, m.matched_at, m.status,
		        j.title, j.company, ps.full_name, pr.full_name
		 FROM matches m
		 JOIN jobs j ON j.id = m.job_id
		 JOIN profiles ps ON ps.id = m.seeker_id
		 JOIN profiles pr ON pr.id = m.recruiter_id
		 WHERE %s = $1
		 ORDER BY m.matched_at DESC`, column),
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var details []MatchDetail
	for rows.Next() {
		var d MatchDetail
		if err := rows.Scan(&d.ID, &d.SeekerID, &d.RecruiterID, &d.JobID, &d.MatchedAt,
			&d.Status, &d.JobTitle, &d.Company, &d.SeekerName, &d.RecruiterName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}
