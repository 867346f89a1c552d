package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.PasswordHash = string(hashedPassword)

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	query := `
		INSERT INTO profiles (id, email, password_hash, full_name, phone, is_blocked, refresh_token, refresh_token_expiry_time, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :full_name, :phone, :is_blocked, :refresh_token, :refresh_token_expiry_time, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return persistErr("create profile", err)
	}

	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile

	query := `SELECT * FROM profiles WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", id, apperr.ErrNotFound)
		}
		return nil, persistErr("get profile", err)
	}

	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile

	query := `SELECT * FROM profiles WHERE LOWER(email) = LOWER($1)`

	err := r.db.GetContext(ctx, &profile, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile with email %s: %w", email, apperr.ErrNotFound)
		}
		return nil, persistErr("get profile by email", err)
	}

	return &profile, nil
}

func (r *profileRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Profile, error) {
	profile, err := r.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("wrong password: %w", apperr.ErrUnauthorized)
	}

	return profile, nil
}

func (r *profileRepository) UpdatePhone(ctx context.Context, id, phone string) error {
	query := `
		UPDATE profiles
		SET phone = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := r.db.ExecContext(ctx, query, phone, id)
	if err != nil {
		return persistErr("update profile phone", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("update profile phone", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *profileRepository) SetBlockedByEmail(ctx context.Context, email string, blocked bool) error {
	query := `
		UPDATE profiles
		SET is_blocked = $1, updated_at = NOW()
		WHERE LOWER(email) = LOWER($2)
	`

	// No row is not an error: the blocked contact may never have registered.
	if _, err := r.db.ExecContext(ctx, query, blocked, email); err != nil {
		return persistErr("set profile blocked", err)
	}

	return nil
}

func (r *profileRepository) UpdateRefreshToken(ctx context.Context, id, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE profiles
		SET refresh_token = $1, refresh_token_expiry_time = $2, updated_at = NOW()
		WHERE id = $3
	`

	if _, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, id); err != nil {
		return persistErr("update refresh token", err)
	}

	return nil
}

func (r *profileRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Profile, error) {
	var profile models.Profile

	query := `
		SELECT * FROM profiles
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
	`

	err := r.db.GetContext(ctx, &profile, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("invalid or expired refresh token: %w", apperr.ErrUnauthorized)
		}
		return nil, persistErr("get profile by refresh token", err)
	}

	return &profile, nil
}
