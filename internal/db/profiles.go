package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProfile creates a new account row and returns it
func (db *DB) CreateProfile(ctx context.Context, fullName, email, role, passwordHash string) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO profiles (full_name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, full_name, email, role, is_premium, password_hash, created_at, updated_at`,
		fullName, email, role, passwordHash,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.IsPremium, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &p, nil
}

// GetProfileByEmail retrieves a profile by email, nil when absent
func (db *DB) GetProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT id, full_name, email, role, is_premium, password_hash, created_at, updated_at
		 FROM profiles WHERE email = $1`,
		email,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.IsPremium, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &p, nil
}

// GetProfileByID retrieves a profile by ID, nil when absent
func (db *DB) GetProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT id, full_name, email, role, is_premium, password_hash, created_at, updated_at
		 FROM profiles WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.IsPremium, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}
