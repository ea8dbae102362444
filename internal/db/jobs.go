package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, recruiter_id, title, company, location, salary, description,
		        requirements, logo, status, created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	var reqsJSON []byte
	err := row.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Company, &j.Location, &j.Salary,
		&j.Description, &reqsJSON, &j.Logo, &j.Status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if reqsJSON != nil {
		_ = json.Unmarshal(reqsJSON, &j.Requirements)
	}
	return &j, nil
}

// CreateJob creates a new active job listing for a recruiter
func (db *DB) CreateJob(ctx context.Context, recruiterID uuid.UUID, input JobInput) (*Job, error) {
	reqs := input.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	reqsJSON, err := json.Marshal(reqs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (recruiter_id, title, company, location, salary, description, requirements, logo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+jobColumns,
		recruiterID, input.Title, input.Company, input.Location, input.Salary,
		input.Description, reqsJSON, input.Logo,
	)
	j, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return j, nil
}

// GetJob retrieves a job by ID, nil when absent
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// UpdateJob applies non-nil fields to a job owned by the recruiter.
// Returns nil when the job does not exist or belongs to someone else.
func (db *DB) UpdateJob(ctx context.Context, jobID, recruiterID uuid.UUID, input JobUpdateInput) (*Job, error) {
	var sets []string
	var args []interface{}
	args = append(args, jobID, recruiterID)
	argIndex := 3

	set := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if input.Title != nil {
		set("title", *input.Title)
	}
	if input.Company != nil {
		set("company", *input.Company)
	}
	if input.Location != nil {
		set("location", *input.Location)
	}
	if input.Salary != nil {
		set("salary", *input.Salary)
	}
	if input.Description != nil {
		set("description", *input.Description)
	}
	if input.Requirements != nil {
		reqsJSON, err := json.Marshal(input.Requirements)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal requirements: %w", err)
		}
		set("requirements", reqsJSON)
	}
	if input.Logo != nil {
		set("logo", *input.Logo)
	}
	if input.Status != nil {
		set("status", *input.Status)
	}
	sets = append(sets, "updated_at = NOW()")

	row := db.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE jobs SET %s WHERE id = $1 AND recruiter_id = $2 RETURNING %s`,
			strings.Join(sets, ", "), jobColumns),
		args...,
	)
	j, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return j, nil
}

// CloseJob soft-deletes a job by moving it to closed. Returns false when the
// job does not exist or belongs to another recruiter.
func (db *DB) CloseJob(ctx context.Context, jobID, recruiterID uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = 'closed', updated_at = NOW()
		 WHERE id = $1 AND recruiter_id = $2`,
		jobID, recruiterID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to close job: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListActiveJobs retrieves all active job listings, newest first
func (db *DB) ListActiveJobs(ctx context.Context) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE status = 'active' ORDER BY created_at DESC`)
}

// ListJobsByRecruiter retrieves all of a recruiter's jobs, newest first
func (db *DB) ListJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) ([]Job, error) {
	return db.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE recruiter_id = $1 ORDER BY created_at DESC`,
		recruiterID)
}

func (db *DB) listJobs(ctx context.Context, query string, args ...interface{}) ([]Job, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, nil
}
