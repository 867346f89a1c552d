package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

type blocklistRepository struct {
	db *sqlx.DB
}

func NewBlocklistRepository(db *sqlx.DB) BlocklistRepository {
	return &blocklistRepository{db: db}
}

func (r *blocklistRepository) Create(ctx context.Context, contact *models.BlockedContact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = time.Now()
	}
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	contact.Phone = strings.TrimSpace(contact.Phone)

	query := `
		INSERT INTO blocked_contacts (id, email, phone, reason, blocked_by, created_at)
		VALUES (:id, :email, :phone, :reason, :blocked_by, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, contact); err != nil {
		return persistErr("create blocked contact", err)
	}

	return nil
}

func (r *blocklistRepository) GetByID(ctx context.Context, id string) (*models.BlockedContact, error) {
	query := `SELECT * FROM blocked_contacts WHERE id = $1`

	var contact models.BlockedContact
	err := r.db.GetContext(ctx, &contact, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("blocked contact %s: %w", id, apperr.ErrNotFound)
		}
		return nil, persistErr("get blocked contact", err)
	}

	return &contact, nil
}

func (r *blocklistRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM blocked_contacts WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return persistErr("delete blocked contact", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("delete blocked contact", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("blocked contact %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *blocklistRepository) ListAll(ctx context.Context) ([]models.BlockedContact, error) {
	query := `
		SELECT * FROM blocked_contacts
		ORDER BY created_at DESC
	`

	var contacts []models.BlockedContact
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, persistErr("list blocked contacts", err)
	}

	return contacts, nil
}

// Match reports whether either the email or the phone appears on the
// blocklist. Emails are compared case-insensitively, phones verbatim. Empty
// inputs never match: a row blocking only a phone must not catch every
// submission without one.
func (r *blocklistRepository) Match(ctx context.Context, email, phone string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	query := `
		SELECT COUNT(*) FROM blocked_contacts
		WHERE (email != '' AND $1 != '' AND email = $1)
		OR (phone != '' AND $2 != '' AND phone = $2)
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, email, phone); err != nil {
		return false, persistErr("match blocked contact", err)
	}

	return count > 0, nil
}

func (r *blocklistRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM blocked_contacts`); err != nil {
		return 0, persistErr("count blocked contacts", err)
	}
	return count, nil
}
