package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/Eddi3MS/delivery-bd/configs"
	domain "github.com/Eddi3MS/delivery-bd/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

const defaultSessionTTL = 15 * 24 * time.Hour

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims is the payload of the session cookie.
type SessionClaims struct {
	UserID   string      `json:"userId"`
	UserRole domain.Role `json:"userRole"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

func NewSessions(cfg configs.Config) *Sessions {
	ttl := cfg.Security.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Sessions{
		secret:   []byte(cfg.Security.JWTSecret),
		issuer:   cfg.Security.Issuer,
		audience: cfg.Security.Audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Sessions) TTL() time.Duration { return s.ttl }

func (s *Sessions) Issue(u *domain.User) (string, error) {
	now := s.now()
	claims := SessionClaims{
		UserID:   u.ID,
		UserRole: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,                           // issuer
			Audience:  jwt.ClaimStrings{s.audience},       // audience
			IssuedAt:  jwt.NewNumericDate(now),            // issued at
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)), // expire
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, audience and expiry of raw.
func (s *Sessions) Parse(raw string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(30 * time.Second), // small clock skew
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidSession)
	}
	return claims, nil
}
