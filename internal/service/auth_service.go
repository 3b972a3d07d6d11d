package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/portfolio-site/backend/internal/config"
	"github.com/portfolio-site/backend/internal/metrics"
	"github.com/portfolio-site/backend/internal/model"
	"github.com/portfolio-site/backend/internal/repository"
)

// Common auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrSessionRevoked     = errors.New("session has been revoked")
)

// CredentialVerifier checks an admin identity/secret pair.
type CredentialVerifier interface {
	Verify(identity, secret string) bool
}

// StaticCredentials verifies against a single configured admin account.
type StaticCredentials struct {
	email        string
	passwordHash []byte
}

// NewStaticCredentials creates a verifier for one email and bcrypt hash.
func NewStaticCredentials(email, passwordHash string) *StaticCredentials {
	return &StaticCredentials{
		email:        strings.TrimSpace(email),
		passwordHash: []byte(passwordHash),
	}
}

// Verify always runs the bcrypt comparison so a wrong email takes as long as a wrong password.
func (c *StaticCredentials) Verify(identity, secret string) bool {
	hashOK := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(secret)) == nil
	return hashOK && strings.EqualFold(strings.TrimSpace(identity), c.email)
}

// HashPassword hashes a password with the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hash), err
}

// Claims extends JWT standard claims with the admin email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// AuthService issues, validates and revokes admin sessions.
type AuthService struct {
	cfg      *config.Config
	verifier CredentialVerifier
	sessions *repository.SessionRepository
	log      zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, verifier CredentialVerifier, sessions *repository.SessionRepository, log zerolog.Logger) *AuthService {
	return &AuthService{
		cfg:      cfg,
		verifier: verifier,
		sessions: sessions,
		log:      log.With().Str("component", "auth_service").Logger(),
	}
}

// Login verifies the credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AdminLoginResponse, error) {
	if !s.verifier.Verify(email, password) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		s.log.Warn().Str("email", email).Msg("Rejected admin login")
		return nil, ErrInvalidCredentials
	}

	jti := uuid.NewString()
	now := time.Now()
	expiresAt := now.Add(s.cfg.SessionTTL)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SessionSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, jti, email, s.cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	s.log.Info().Str("email", email).Msg("Admin logged in")

	return &model.AdminLoginResponse{
		Token: signed,
		Admin: model.Admin{Email: email, ExpiresAt: expiresAt.UTC()},
	}, nil
}

func (s *AuthService) parse(tokenStr string, opts ...jwt.ParserOption) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.SessionSecret), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Validate checks the token signature and expiry, then that its session is still live.
func (s *AuthService) Validate(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := s.parse(tokenStr)
	if err != nil {
		return nil, err
	}

	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if !live {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Logout revokes the session behind tokenStr. Unknown or malformed tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, tokenStr string) error {
	claims, err := s.parse(tokenStr, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.log.Info().Str("email", claims.Email).Msg("Admin logged out")
	return nil
}
