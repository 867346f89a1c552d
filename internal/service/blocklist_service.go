package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
)

// BlocklistService maintains banned contact identities. The check runs
// against raw submission fields, not profiles: a spammer does not need an
// account to be kept out.
type BlocklistService interface {
	IsBlocked(ctx context.Context, email, phone string) (bool, error)
	Block(ctx context.Context, ident Identity, email, phone, reason string) (*models.BlockedContact, error)
	Unblock(ctx context.Context, ident Identity, id string) error
	List(ctx context.Context, ident Identity) ([]models.BlockedContact, error)
}

type blocklistService struct {
	blocklistRepo repository.BlocklistRepository
	profileRepo   repository.ProfileRepository
}

func NewBlocklistService(blocklistRepo repository.BlocklistRepository, profileRepo repository.ProfileRepository) BlocklistService {
	return &blocklistService{
		blocklistRepo: blocklistRepo,
		profileRepo:   profileRepo,
	}
}

// IsBlocked reports whether either contact field matches a blocklist row.
func (s *blocklistService) IsBlocked(ctx context.Context, email, phone string) (bool, error) {
	return s.blocklistRepo.Match(ctx, email, phone)
}

// Block bans an identity by email, phone or both. If the email belongs to a
// registered profile its is_blocked flag is set as well.
func (s *blocklistService) Block(ctx context.Context, ident Identity, email, phone, reason string) (*models.BlockedContact, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if email == "" && phone == "" {
		return nil, fmt.Errorf("blocking needs an email or a phone: %w", apperr.ErrInvalidArgument)
	}

	contact := &models.BlockedContact{
		Email:     email,
		Phone:     phone,
		Reason:    strings.TrimSpace(reason),
		BlockedBy: ident.UserID,
	}

	if err := s.blocklistRepo.Create(ctx, contact); err != nil {
		return nil, err
	}

	if contact.Email != "" {
		if err := s.profileRepo.SetBlockedByEmail(ctx, contact.Email, true); err != nil {
			log.Printf("Warning: failed to flag profile %s as blocked: %v", contact.Email, err)
		}
	}

	return contact, nil
}

// Unblock removes the row unconditionally; there is no soft delete. A
// profile flagged by the block is cleared again.
func (s *blocklistService) Unblock(ctx context.Context, ident Identity, id string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}

	contact, err := s.blocklistRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.blocklistRepo.Delete(ctx, id); err != nil {
		return err
	}

	if contact.Email != "" {
		if err := s.profileRepo.SetBlockedByEmail(ctx, contact.Email, false); err != nil {
			log.Printf("Warning: failed to unflag profile %s: %v", contact.Email, err)
		}
	}

	return nil
}

func (s *blocklistService) List(ctx context.Context, ident Identity) ([]models.BlockedContact, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}

	return s.blocklistRepo.ListAll(ctx)
}
