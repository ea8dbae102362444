package db

import (
	"context"
	"fmt"
)

// schema holds the table and index definitions. Statements are idempotent so
// Migrate can run at every startup.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS profiles (
		id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		full_name     TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		role          TEXT NOT NULL,
		is_premium    BOOLEAN NOT NULL DEFAULT FALSE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS seeker_profiles (
		user_id       UUID PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
		title         TEXT,
		bio           TEXT,
		location      TEXT,
		experience    TEXT,
		skills        JSONB NOT NULL DEFAULT '[]',
		resume_status TEXT NOT NULL DEFAULT 'pending',
		parsed_data   JSONB,
		ats_score     DOUBLE PRECISION,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS resumes (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		seeker_id   UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		file_path   TEXT NOT NULL,
		file_name   TEXT NOT NULL,
		is_primary  BOOLEAN NOT NULL DEFAULT FALSE,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		parsed_at   TIMESTAMPTZ
	)`,

	`CREATE INDEX IF NOT EXISTS idx_resumes_seeker ON resumes (seeker_id, uploaded_at DESC)`,

	`CREATE TABLE IF NOT EXISTS jobs (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		recruiter_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		company      TEXT NOT NULL,
		location     TEXT NOT NULL DEFAULT '',
		salary       TEXT,
		description  TEXT NOT NULL DEFAULT '',
		requirements JSONB NOT NULL DEFAULT '[]',
		logo         TEXT,
		status       TEXT NOT NULL DEFAULT 'active',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_jobs_recruiter ON jobs (recruiter_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS swipes (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		swiper_id   UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		target_id   UUID NOT NULL,
		target_type TEXT NOT NULL,
		direction   TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	// One swipe per (swiper, target, type); repeats return the original event.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_swipes_unique
		ON swipes (swiper_id, target_id, target_type)`,

	`CREATE TABLE IF NOT EXISTS matches (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		seeker_id    UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		recruiter_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		job_id       UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		matched_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		status       TEXT NOT NULL DEFAULT 'active'
	)`,

	// At most one match per seeker/job pair regardless of which side
	// completed it. Concurrent resolvers rely on this constraint.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_seeker_job
		ON matches (seeker_id, job_id)`,
}

// Migrate creates all tables and indexes if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}
	return nil
}
