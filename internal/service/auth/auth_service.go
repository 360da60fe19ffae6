package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/spaceflights/config"
	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/Domenick1991/spaceflights/internal/logging"
	"github.com/Domenick1991/spaceflights/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    int64  `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type RegisterInput struct {
	Email     string
	Username  string
	Password  string
	BirthDate *time.Time
}

type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	IssueTokens(user *domain.User) (TokenPair, error)
	Verify(ctx context.Context, raw string) (*Claims, error)
	Revoke(ctx context.Context, claims *Claims) error
}

// RevocationStore remembers token ids that must no longer be accepted.
type RevocationStore interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService struct {
	users      repository.UserRepository
	revoked    RevocationStore
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	bcryptCost int
	now        func() time.Time
}

func NewAuthService(users repository.UserRepository, revoked RevocationStore, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		users:      users,
		revoked:    revoked,
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	switch {
	case in.Email == "":
		return nil, domain.Validation("email", "this field is required")
	case in.Username == "":
		return nil, domain.Validation("username", "this field is required")
	case in.Password == "":
		return nil, domain.Validation("password", "this field is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.Validation("password", "must be at most 72 bytes")
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		BirthDate:    in.BirthDate,
	})
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate never tells the caller which part of the credentials was wrong.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("user_id", user.ID).Msg("failed to update last login")
	}
	return user, nil
}

func (s *AuthService) IssueTokens(user *domain.User) (TokenPair, error) {
	access, err := s.sign(user.ID, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(user.ID, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Refresh: refresh, Access: access}, nil
}

func (s *AuthService) sign(userID int64, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify accepts only unexpired, unrevoked access tokens.
func (s *AuthService) Verify(ctx context.Context, raw string) (*Claims, error) {
	if raw == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if claims.TokenType != TokenTypeAccess || claims.ID == "" {
		return nil, fmt.Errorf("%w: not an access token", domain.ErrUnauthenticated)
	}

	if s.revoked != nil {
		revoked, err := s.revoked.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrTokenRevoked)
		}
	}
	return claims, nil
}

// Revoke blacklists the token until its natural expiry.
func (s *AuthService) Revoke(ctx context.Context, claims *Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return domain.ErrUnauthenticated
	}
	ttl := claims.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.revoked.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	logging.Ctx(ctx).Info().Int64("user_id", claims.UserID).Msg("token revoked")
	return nil
}

var _ AuthUseCase = (*AuthService)(nil)
