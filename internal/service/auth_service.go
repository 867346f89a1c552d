package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/config"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
)

type RegisterRequest struct {
	Email    string
	Password string
	FullName string
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.Profile, error)
	Login(ctx context.Context, email, password string) (*models.Profile, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.Profile, string, string, error)
	IdentityFromToken(tokenString string) (Identity, error)
	ResolveRole(email string) models.Role
}

type authService struct {
	profileRepo repository.ProfileRepository
	cfg         *config.Config
}

func NewAuthService(profileRepo repository.ProfileRepository, cfg *config.Config) AuthService {
	return &authService{
		profileRepo: profileRepo,
		cfg:         cfg,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", apperr.ErrInvalidArgument)
	}

	existing, err := s.profileRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("profile with email %s already exists: %w", email, apperr.ErrInvalidArgument)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	profile := &models.Profile{
		Email:                  email,
		FullName:               strings.TrimSpace(req.FullName),
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}

	if err := s.profileRepo.Create(ctx, profile, req.Password); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.Profile, string, string, error) {
	profile, err := s.profileRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		return nil, "", "", fmt.Errorf("authentication failed: %w", err)
	}

	accessToken, err := s.generateAccessToken(profile)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	if err := s.profileRepo.UpdateRefreshToken(ctx, profile.ID, refreshToken, refreshTokenExpiry); err != nil {
		return nil, "", "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return profile, accessToken, refreshToken, nil
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.Profile, string, string, error) {
	profile, err := s.profileRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", fmt.Errorf("invalid refresh token: %w", err)
	}

	accessToken, err := s.generateAccessToken(profile)
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, refreshTokenExpiry := s.generateRefreshToken()

	if err := s.profileRepo.UpdateRefreshToken(ctx, profile.ID, newRefreshToken, refreshTokenExpiry); err != nil {
		return nil, "", "", fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return profile, accessToken, newRefreshToken, nil
}

// ResolveRole derives the caller's role from the admin allow-list. This is
// the single role check every operation relies on.
func (s *authService) ResolveRole(email string) models.Role {
	if s.cfg.IsAdminEmail(email) {
		return models.RoleAdmin
	}
	return models.RoleOwner
}

// IdentityFromToken validates an access token and returns the identity it
// carries. The role claim is re-derived from the allow-list rather than
// trusted from the token, so revoking an admin takes effect on the next
// request.
func (s *authService) IdentityFromToken(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	})
	if err != nil {
		return Anonymous, fmt.Errorf("failed to parse token: %w: %v", apperr.ErrUnauthorized, err)
	}
	if !token.Valid {
		return Anonymous, fmt.Errorf("invalid token: %w", apperr.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Anonymous, fmt.Errorf("invalid token claims: %w", apperr.ErrUnauthorized)
	}

	userID, ok1 := claims["userId"].(string)
	email, ok2 := claims["email"].(string)
	if !ok1 || !ok2 || userID == "" {
		return Anonymous, fmt.Errorf("incomplete token claims: %w", apperr.ErrUnauthorized)
	}

	return Identity{
		UserID: userID,
		Email:  email,
		Role:   s.ResolveRole(email),
	}, nil
}

func (s *authService) generateAccessToken(profile *models.Profile) (string, error) {
	claims := jwt.MapClaims{
		"userId": profile.ID,
		"email":  profile.Email,
		"role":   string(s.ResolveRole(profile.Email)),
		"exp":    time.Now().Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":    time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), time.Now().Add(s.cfg.RefreshTokenDuration)
}
