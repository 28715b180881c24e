package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/madhava-poojari/swimschool-api/internal/apperr"
	"github.com/madhava-poojari/swimschool-api/internal/auth"
	"github.com/madhava-poojari/swimschool-api/internal/models"
	"github.com/madhava-poojari/swimschool-api/internal/utils"
)

// Session is what a successful login or refresh hands back to the client.
type Session struct {
	User             *models.User
	AccessToken      string
	ExpiresIn        time.Duration
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// GoogleVerifier exchanges an OAuth authorization code for a verified email.
type GoogleVerifier interface {
	VerifyCode(ctx context.Context, code string) (string, error)
}

type AuthService struct {
	users      *UserService
	userRepo   UserRepository
	tokens     TokenRepository
	jwt        *auth.TokenManager
	google     GoogleVerifier
	refreshTTL time.Duration
}

func NewAuthService(users *UserService, userRepo UserRepository, tokens TokenRepository, jwt *auth.TokenManager, google GoogleVerifier, refreshTTL time.Duration) *AuthService {
	return &AuthService{users: users, userRepo: userRepo, tokens: tokens, jwt: jwt, google: google, refreshTTL: refreshTTL}
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*Session, error) {
	u, err := s.users.Authenticate(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// LoginWithGoogle signs in an existing user by the email Google vouches for.
func (s *AuthService) LoginWithGoogle(ctx context.Context, code string) (*Session, error) {
	if s.google == nil {
		return nil, apperr.ErrGoogleDisabled
	}
	if code == "" {
		return nil, apperr.NewValidation("code", "code alanı zorunludur")
	}
	email, err := s.google.VerifyCode(ctx, code)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "google verification failed: "+err.Error())
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

// Refresh rotates the refresh token and mints a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "missing refresh token")
	}
	newPlain := utils.RandomToken()
	newExpiry := time.Now().Add(s.refreshTTL)
	userID, err := s.tokens.RotateRefreshToken(ctx, utils.HashToken(refreshToken), utils.HashToken(newPlain), newExpiry)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, "invalid refresh token")
		}
		return nil, fmt.Errorf("rotate refresh token: %w", err)
	}
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, "invalid refresh token")
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{
		User:             u,
		AccessToken:      access,
		ExpiresIn:        s.jwt.TTL(),
		RefreshToken:     newPlain,
		RefreshExpiresAt: newExpiry,
	}, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokens.RevokeRefreshToken(ctx, utils.HashToken(refreshToken)); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

// PurgeExpired drops refresh tokens past their expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.tokens.DeleteExpiredTokens(ctx)
}

func (s *AuthService) issue(ctx context.Context, u *models.User) (*Session, error) {
	access, err := s.jwt.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	rt := utils.RandomToken()
	expires := time.Now().Add(s.refreshTTL)
	if err := s.tokens.SaveRefreshToken(ctx, u.ID, utils.HashToken(rt), expires); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return &Session{
		User:             u,
		AccessToken:      access,
		ExpiresIn:        s.jwt.TTL(),
		RefreshToken:     rt,
		RefreshExpiresAt: expires,
	}, nil
}
