package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// expiry, malformed input, or a token signed with the wrong secret.
var ErrInvalidToken = errors.New("invalid token")

const (
	// DefaultAccessTTL bounds the blast radius of a leaked access token.
	DefaultAccessTTL = time.Minute
	// DefaultRefreshTTL is one week; the stored fingerprint plus
	// rotation-on-use limit replay of a stolen refresh token.
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies access/refresh token pairs. Access and
// refresh tokens are signed with separate secrets so one cannot stand
// in for the other.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTTL
	}
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccessToken signs a short-lived token asserting the identity.
func (s *Service) IssueAccessToken(email string) (string, error) {
	return sign(email, s.accessSecret, s.accessTTL)
}

// IssueRefreshToken signs a long-lived token asserting the identity.
func (s *Service) IssueRefreshToken(email string) (string, error) {
	return sign(email, s.refreshSecret, s.refreshTTL)
}

// VerifyAccessToken validates signature and expiry and returns the
// asserted identity.
func (s *Service) VerifyAccessToken(raw string) (string, error) {
	return verify(raw, s.accessSecret)
}

// VerifyRefreshToken validates signature and expiry and returns the
// asserted identity.
func (s *Service) VerifyRefreshToken(raw string) (string, error) {
	return verify(raw, s.refreshSecret)
}

// Fingerprint returns the hex SHA-256 of a token string. The store
// keeps only fingerprints so a database dump does not yield usable
// refresh tokens.
func (s *Service) Fingerprint(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func sign(email string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	signed, err := tok.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func verify(raw string, secret []byte) (string, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || c.Email == "" {
		return "", ErrInvalidToken
	}
	return c.Email, nil
}
