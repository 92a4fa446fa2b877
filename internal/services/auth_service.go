package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sjperalta/cabinet-api/internal/access"
	"github.com/sjperalta/cabinet-api/internal/config"
	"github.com/sjperalta/cabinet-api/pkg/logger"
)

// AuthService handles role logins and logouts
type AuthService struct {
	gate *access.Gate
	cfg  *config.Config
	now  func() time.Time

	mu sync.Mutex
	// token ID -> expiry of tokens ended by logout
	revoked map[string]time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(gate *access.Gate, cfg *config.Config) *AuthService {
	return &AuthService{gate: gate, cfg: cfg, now: time.Now, revoked: make(map[string]time.Time)}
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login checks a role and its PIN and returns a signed session token
func (s *AuthService) Login(ctx context.Context, role, pin string) (*LoginResult, error) {
	if !required(role, pin) {
		return nil, invalid("Select a role and enter its PIN")
	}

	id, err := s.gate.Login(role, pin)
	if err != nil {
		logger.Warn("Rejected login", "role", role, "reason", err.Error())
		if errors.Is(err, access.ErrUnknownRole) {
			return nil, unauthorized("Unknown role")
		}
		return nil, unauthorized("Incorrect PIN")
	}

	expiresAt := s.now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour)
	token, err := s.generateJWT(id, expiresAt)
	if err != nil {
		return nil, errors.New("failed to sign session token")
	}

	return &LoginResult{
		Token:     token,
		Role:      id.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// generateJWT creates a new JWT token for a role session
func (s *AuthService) generateJWT(id access.Identity, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"role": id.Role,
		"jti":  uuid.NewString(),
		"exp":  expiresAt.Unix(),
		"iat":  s.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// Logout ends the session of a token until it would have expired anyway
func (s *AuthService) Logout(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	if expiresAt.After(now) {
		s.revoked[tokenID] = expiresAt
	}
}

// Revoked reports whether the token was ended by a logout
func (s *AuthService) Revoked(tokenID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revoked[tokenID]
	return ok
}
