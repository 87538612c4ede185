package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/bkovacev/showtrack/internal/models"
)

// FailureWindow is the trailing window in which failed attempts count
// toward the lockout threshold.
const FailureWindow = 30 * time.Minute

// LoginAttemptRepository defines the interface for failed-login storage
type LoginAttemptRepository interface {
	Record(ctx context.Context, username, ipAddress string) error
	CountSince(ctx context.Context, username string, since time.Time) (int, error)
	Clear(ctx context.Context, username string) error
}

// LockoutService tracks failed login attempts per account.
type LockoutService struct {
	repo   LoginAttemptRepository
	logger *slog.Logger
}

func NewLockoutService(repo LoginAttemptRepository, logger *slog.Logger) *LockoutService {
	return &LockoutService{
		repo:   repo,
		logger: logger,
	}
}

// RecordFailure appends a failed attempt for the username.
func (s *LockoutService) RecordFailure(ctx context.Context, username, ipAddress string) error {
	if err := s.repo.Record(ctx, username, ipAddress); err != nil {
		s.logger.Error("failed to record login failure",
			slog.String("username", username), slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}

// RecentFailures counts attempts within the trailing window, evaluated
// against the current time on every call.
func (s *LockoutService) RecentFailures(ctx context.Context, username string) (int, error) {
	count, err := s.repo.CountSince(ctx, username, time.Now().Add(-FailureWindow))
	if err != nil {
		s.logger.Error("failed to count login failures",
			slog.String("username", username), slog.Any("error", err))
		return 0, models.ErrInternalServer
	}
	return count, nil
}

// Clear drops all recorded attempts for the username. Called after a
// successful login.
func (s *LockoutService) Clear(ctx context.Context, username string) error {
	if err := s.repo.Clear(ctx, username); err != nil {
		s.logger.Error("failed to clear login failures",
			slog.String("username", username), slog.Any("error", err))
		return models.ErrInternalServer
	}
	return nil
}
