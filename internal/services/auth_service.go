package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bkovacev/showtrack/internal/models"
)

// AccountStore is the slice of the user store needed to gate and lock
// accounts.
type AccountStore interface {
	IsActive(ctx context.Context, username string) (bool, error)
	SetActive(ctx context.Context, username string, active bool) error
}

// CredentialVerifier checks a password and returns the session principal.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*models.Principal, error)
}

// FailureTracker records and evaluates failed login attempts.
type FailureTracker interface {
	RecordFailure(ctx context.Context, username, ipAddress string) error
	RecentFailures(ctx context.Context, username string) (int, error)
	Clear(ctx context.Context, username string) error
}

// AuthService drives the per-attempt login state machine:
// check active -> verify password -> success, or record the failure and
// decide between rejected and locked.
type AuthService struct {
	accounts  AccountStore
	creds     CredentialVerifier
	attempts  FailureTracker
	maxFailed int
	logger    *slog.Logger
}

func NewAuthService(accounts AccountStore, creds CredentialVerifier, attempts FailureTracker, maxFailed int, logger *slog.Logger) *AuthService {
	return &AuthService{
		accounts:  accounts,
		creds:     creds,
		attempts:  attempts,
		maxFailed: maxFailed,
		logger:    logger,
	}
}

// Login authenticates a user. On success all recorded failures for the
// account are cleared and the principal is returned; the caller establishes
// the session.
//
// Absent and inactive accounts are rejected identically as locked, so the
// response does not reveal whether a username exists.
func (s *AuthService) Login(ctx context.Context, username, password, ipAddress string) (*models.Principal, error) {
	active, err := s.accounts.IsActive(ctx, username)
	if err != nil || !active {
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			s.logger.Error("failed to check account activity",
				slog.String("username", username), slog.Any("error", err))
		}
		s.logger.Info("login rejected: account locked or unknown", slog.String("username", username))
		return nil, models.ErrLocked
	}

	principal, err := s.creds.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) || errors.Is(err, models.ErrNotFound) {
			return nil, s.handleFailedAttempt(ctx, username, ipAddress)
		}
		return nil, models.ErrInternalServer
	}

	if err := s.attempts.Clear(ctx, username); err != nil {
		// Stale failure rows only make the next lockout earlier; do not fail
		// the login over them.
		s.logger.Warn("failed to clear login failures after successful login",
			slog.String("username", username))
	}

	s.logger.Info("user logged in", slog.Int64("user_id", principal.ID), slog.String("username", username))
	return principal, nil
}

// handleFailedAttempt records the failure and applies the lockout policy.
// The record/count/deactivate sequence is intentionally not transactional;
// concurrent attempts may each deactivate the account, which is harmless.
func (s *AuthService) handleFailedAttempt(ctx context.Context, username, ipAddress string) error {
	if err := s.attempts.RecordFailure(ctx, username, ipAddress); err != nil {
		return models.ErrInvalidCredentials
	}

	count, err := s.attempts.RecentFailures(ctx, username)
	if err != nil {
		return models.ErrInvalidCredentials
	}

	if count >= s.maxFailed {
		if err := s.accounts.SetActive(ctx, username, false); err != nil {
			s.logger.Error("failed to lock account",
				slog.String("username", username), slog.Any("error", err))
		}
		s.logger.Warn("account locked after repeated failed logins",
			slog.String("username", username), slog.Int("failed_attempts", count))
		return fmt.Errorf("too many failed attempts: %w", models.ErrLocked)
	}

	s.logger.Info("login failed: invalid credentials", slog.String("username", username))
	return models.ErrInvalidCredentials
}
