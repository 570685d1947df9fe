package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the fixed key the session is persisted under
const CookieName = "user"

// Session errors
var (
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
)

// SessionConfig defines session token settings
type SessionConfig struct {
	SecretKey string
	TTL       time.Duration
	Issuer    string
}

// User is the signed-in student as derived once at login
type User struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	ApplicationNumber string `json:"applicationNumber"`
	Username          string `json:"username"`
	ProfileImage      string `json:"profileImage,omitempty"`
}

// Claims defines the session token content
type Claims struct {
	User User `json:"user"`
	jwt.RegisteredClaims
}

// SessionCodec encodes and decodes the session cookie value
type SessionCodec struct {
	config SessionConfig
}

// NewSessionCodec creates a new session codec
func NewSessionCodec(config SessionConfig) *SessionCodec {
	return &SessionCodec{config: config}
}

// TTL returns the configured session lifetime
func (s *SessionCodec) TTL() time.Duration {
	return s.config.TTL
}

// Encode signs the user record into a cookie value
func (s *SessionCodec) Encode(user User) (string, error) {
	now := time.Now()
	claims := &Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
			Subject:   user.ID,
			ID:        uuid.New().String(),
		},
	}
	if s.config.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.config.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a cookie value and returns the user it carries
func (s *SessionCodec) Decode(value string) (*User, error) {
	if value == "" {
		return nil, ErrInvalidSession
	}

	token, err := jwt.ParseWithClaims(value, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredSession
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return nil, ErrInvalidSession
	}
	return &claims.User, nil
}
