package app

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/token"
)

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
}

func testTokenService() *token.Service {
	return token.NewService("access-secret", "refresh-secret", time.Hour, 24*time.Hour, testClock())
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func testMovie(tmdbID int) *domain.Movie {
	return &domain.Movie{
		ID:     uuid.New(),
		TMDBID: tmdbID,
		Title:  "Test Movie",
	}
}

func testUser(username string) *domain.User {
	return &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		IsActive: true,
		IsPublic: true,
	}
}
