// Package token issues and verifies the stateless access/refresh token pair.
// The two token kinds are signed with independent secrets so neither can be
// replayed as the other. Refresh tokens carry only the user identity.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	clock         clockwork.Clock
}

func NewService(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration, clock clockwork.Clock) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		clock:         clock,
	}
}

// Pair holds a freshly issued access/refresh token pair.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IssuePair signs a new access and refresh token for the user.
func (s *Service) IssuePair(userID uuid.UUID) (Pair, error) {
	access, err := s.IssueAccess(userID)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := s.sign(userID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return Pair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// IssueAccess signs a new access token for the user.
func (s *Service) IssueAccess(userID uuid.UUID) (string, error) {
	access, err := s.sign(userID, s.accessSecret, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return access, nil
}

// VerifyAccess validates an access token and returns the user identity.
func (s *Service) VerifyAccess(tokenString string) (uuid.UUID, error) {
	return s.verify(tokenString, s.accessSecret)
}

// VerifyRefresh validates a refresh token and returns the user identity.
func (s *Service) VerifyRefresh(tokenString string) (uuid.UUID, error) {
	return s.verify(tokenString, s.refreshSecret)
}

func (s *Service) sign(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (s *Service) verify(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return uuid.Nil, ErrTokenExpired
	}
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrTokenInvalid
	}
	return userID, nil
}
