package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/crypto/bcrypt"

	"github.com/aj0998-dotcom/StayEase---HOTEL-MANAGEMNET-SYSTEM/config"
)

// ErrInvalidCredentials is returned for a wrong username or password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service performs the flat admin credential check and tracks session tokens.
// Sessions live in process memory and expire after the configured TTL; a
// restart signs everyone out, which is acceptable for a front-desk tool.
type Service struct {
	username     string
	passwordHash string
	ttl          time.Duration
	sessions     *cache.Cache
}

// NewService creates an auth service from the configured admin credential.
func NewService(cfg *config.AuthConfig) *Service {
	return &Service{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		ttl:          cfg.SessionTTL,
		sessions:     cache.New(cfg.SessionTTL, 10*time.Minute),
	}
}

// Login validates the credential and issues a session token.
func (s *Service) Login(username, password string) (string, error) {
	if username != s.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	s.sessions.Set(token, username, s.ttl)
	return token, nil
}

// Validate reports whether the token belongs to a live session.
func (s *Service) Validate(token string) bool {
	_, found := s.sessions.Get(token)
	return found
}

// Logout discards the session token.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}
