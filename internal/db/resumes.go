package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateResume records an uploaded resume file. The first upload for a
// seeker becomes the primary resume.
func (db *DB) CreateResume(ctx context.Context, seekerID uuid.UUID, filePath, fileName string) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (seeker_id, file_path, file_name, is_primary)
		 VALUES ($1, $2, $3,
		         NOT EXISTS (SELECT 1 FROM resumes WHERE seeker_id = $1))
		 RETURNING id, seeker_id, file_path, file_name, is_primary, uploaded_at, parsed_at`,
		seekerID, filePath, fileName,
	).Scan(&r.ID, &r.SeekerID, &r.FilePath, &r.FileName, &r.IsPrimary, &r.UploadedAt, &r.ParsedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return &r, nil
}

// GetResumeForSeeker retrieves a resume only if it belongs to the seeker
func (db *DB) GetResumeForSeeker(ctx context.Context, resumeID, seekerID uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, seeker_id, file_path, file_name, is_primary, uploaded_at, parsed_at
		 FROM resumes WHERE id = $1 AND seeker_id = $2`,
		resumeID, seekerID,
	).Scan(&r.ID, &r.SeekerID, &r.FilePath, &r.FileName, &r.IsPrimary, &r.UploadedAt, &r.ParsedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// ListResumesBySeeker retrieves all resumes for a seeker, newest first
func (db *DB) ListResumesBySeeker(ctx context.Context, seekerID uuid.UUID) ([]Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, seeker_id, file_path, file_name, is_primary, uploaded_at, parsed_at
		 FROM resumes WHERE seeker_id = $1 ORDER BY uploaded_at DESC`,
		seekerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		var r Resume
		if err := rows.Scan(&r.ID, &r.SeekerID, &r.FilePath, &r.FileName,
			&r.IsPrimary, &r.UploadedAt, &r.ParsedAt); err != nil {
			return nil, err
		}
		resumes = append(resumes, r)
	}
	return resumes, nil
}

// MarkResumeParsed stamps the time extraction completed for a resume
func (db *DB) MarkResumeParsed(ctx context.Context, resumeID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE resumes SET parsed_at = NOW() WHERE id = $1`,
		resumeID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark resume parsed: %w", err)
	}
	return nil
}
