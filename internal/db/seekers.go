package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EnsureSeekerProfile creates the seeker state row if it does not exist yet
func (db *DB) EnsureSeekerProfile(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO seeker_profiles (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure seeker profile: %w", err)
	}
	return nil
}

// GetSeekerProfile retrieves a seeker's state row, nil when absent
func (db *DB) GetSeekerProfile(ctx context.Context, userID uuid.UUID) (*SeekerProfile, error) {
	var sp SeekerProfile
	var skillsJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT user_id, title, bio, location, experience, skills, resume_status,
		        parsed_data, ats_score, created_at, updated_at
		 FROM seeker_profiles WHERE user_id = $1`,
		userID,
	).Scan(&sp.UserID, &sp.Title, &sp.Bio, &sp.Location, &sp.Experience, &skillsJSON,
		&sp.ResumeStatus, &sp.ParsedData, &sp.ATSScore, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get seeker profile: %w", err)
	}

	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &sp.Skills)
	}
	return &sp, nil
}

// BeginParsing atomically moves a seeker from pending or failed into parsing.
// Returns acquired=false with the current status when another worker holds
// the transition or the lifecycle already advanced.
func (db *DB) BeginParsing(ctx context.Context, userID uuid.UUID) (bool, string, error) {
	var status string
	err := db.pool.QueryRow(ctx,
		`UPDATE seeker_profiles
		 SET resume_status = 'parsing', updated_at = NOW()
		 WHERE user_id = $1 AND resume_status IN ('pending', 'failed')
		 RETURNING resume_status`,
		userID,
	).Scan(&status)
	if err == nil {
		return true, status, nil
	}
	if err != pgx.ErrNoRows {
		return false, "", fmt.Errorf("failed to begin parsing: %w", err)
	}

	// Lost the race or the row is past pending. Report what is there now.
	err = db.pool.QueryRow(ctx,
		`SELECT resume_status FROM seeker_profiles WHERE user_id = $1`,
		userID,
	).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, ResumeStatusNone, nil
		}
		return false, "", fmt.Errorf("failed to read resume status: %w", err)
	}
	return false, status, nil
}

// SaveParsedResume stores extraction output and moves the seeker to parsed
func (db *DB) SaveParsedResume(ctx context.Context, userID uuid.UUID, parsedData json.RawMessage, atsScore float64, skills []string) error {
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}
	if skills == nil {
		skillsJSON = []byte("[]")
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE seeker_profiles
		 SET resume_status = 'parsed', parsed_data = $2, ats_score = $3, skills = $4, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, []byte(parsedData), atsScore, skillsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save parsed resume: %w", err)
	}
	return nil
}

// MarkParseFailed moves the seeker to failed so a retry can reclaim the slot
func (db *DB) MarkParseFailed(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE seeker_profiles
		 SET resume_status = 'failed', updated_at = NOW()
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark parse failed: %w", err)
	}
	return nil
}

// ConfirmSeekerProfile writes the user-approved resume data and moves the
// seeker to confirmed. The confirmed parsed_data and ats_score replace
// whatever extraction stored. Idempotent; later calls overwrite earlier data.
func (db *DB) ConfirmSeekerProfile(ctx context.Context, userID uuid.UUID, input ConfirmInput) (*SeekerProfile, error) {
	skills := input.Skills
	if skills == nil {
		skills = []string{}
	}
	skillsJSON, err := json.Marshal(skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}

	var sp SeekerProfile
	var skillsOut []byte
	err = db.pool.QueryRow(ctx,
		`UPDATE seeker_profiles
		 SET title = $2, bio = $3, location = $4, experience = $5, skills = $6,
		     parsed_data = $7, ats_score = $8,
		     resume_status = 'confirmed', updated_at = NOW()
		 WHERE user_id = $1
		 RETURNING user_id, title, bio, location, experience, skills, resume_status,
		           parsed_data, ats_score, created_at, updated_at`,
		userID, input.Title, input.Bio, input.Location, input.Experience, skillsJSON,
		[]byte(input.ParsedData), input.ATSScore,
	).Scan(&sp.UserID, &sp.Title, &sp.Bio, &sp.Location, &sp.Experience, &skillsOut,
		&sp.ResumeStatus, &sp.ParsedData, &sp.ATSScore, &sp.CreatedAt, &sp.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to confirm seeker profile: %w", err)
	}

	if skillsOut != nil {
		_ = json.Unmarshal(skillsOut, &sp.Skills)
	}
	return &sp, nil
}

// SeekerCard joins the seeker state row with the account name for feeds
type SeekerCard struct {
	SeekerProfile
	FullName string `json:"full_name"`
}

// ListConfirmedSeekers retrieves all seekers with a confirmed profile
func (db *DB) ListConfirmedSeekers(ctx context.Context) ([]SeekerCard, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT sp.user_id, sp.title, sp.bio, sp.location, sp.experience, sp.skills,
		        sp.resume_status, sp.ats_score, sp.created_at, sp.updated_at, p.full_name
		 FROM seeker_profiles sp
		 JOIN profiles p ON p.id = sp.user_id
		 WHERE sp.resume_status = 'confirmed'
		 ORDER BY sp.updated_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed seekers: %w", err)
	}
	defer rows.Close()

	var cards []SeekerCard
	for rows.Next() {
		var c SeekerCard
		var skillsJSON []byte
		if err := rows.Scan(&c.UserID, &c.Title, &c.Bio, &c.Location, &c.Experience,
			&skillsJSON, &c.ResumeStatus, &c.ATSScore, &c.CreatedAt, &c.UpdatedAt,
			&c.FullName); err != nil {
			return nil, err
		}
		if skillsJSON != nil {
			_ = json.Unmarshal(skillsJSON, &c.Skills)
		}
		cards = append(cards, c)
	}
	return cards, nil
}
