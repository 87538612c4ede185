package services

import (
	"context"
	"time"

	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/tmdb"
)

// MockUserRepository implements UserRepository with overridable functions
type MockUserRepository struct {
	ListFunc          func(ctx context.Context) ([]*models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	CreateFunc        func(ctx context.Context, user *models.User) (int64, error)
	UpdateProfileFunc func(ctx context.Context, username, email, firstName, lastName, birthDate string) error
	IsActiveFunc      func(ctx context.Context, username string) (bool, error)
	SetActiveFunc     func(ctx context.Context, username string, active bool) error
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	return m.ListFunc(ctx)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	return m.CreateFunc(ctx, user)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, username, email, firstName, lastName, birthDate string) error {
	return m.UpdateProfileFunc(ctx, username, email, firstName, lastName, birthDate)
}

func (m *MockUserRepository) IsActive(ctx context.Context, username string) (bool, error) {
	return m.IsActiveFunc(ctx, username)
}

func (m *MockUserRepository) SetActive(ctx context.Context, username string, active bool) error {
	return m.SetActiveFunc(ctx, username, active)
}

// MockLoginAttemptRepository implements LoginAttemptRepository
type MockLoginAttemptRepository struct {
	RecordFunc     func(ctx context.Context, username, ipAddress string) error
	CountSinceFunc func(ctx context.Context, username string, since time.Time) (int, error)
	ClearFunc      func(ctx context.Context, username string) error
}

func (m *MockLoginAttemptRepository) Record(ctx context.Context, username, ipAddress string) error {
	return m.RecordFunc(ctx, username, ipAddress)
}

func (m *MockLoginAttemptRepository) CountSince(ctx context.Context, username string, since time.Time) (int, error) {
	return m.CountSinceFunc(ctx, username, since)
}

func (m *MockLoginAttemptRepository) Clear(ctx context.Context, username string) error {
	return m.ClearFunc(ctx, username)
}

// MockAccountStore implements AccountStore
type MockAccountStore struct {
	IsActiveFunc  func(ctx context.Context, username string) (bool, error)
	SetActiveFunc func(ctx context.Context, username string, active bool) error
}

func (m *MockAccountStore) IsActive(ctx context.Context, username string) (bool, error) {
	return m.IsActiveFunc(ctx, username)
}

func (m *MockAccountStore) SetActive(ctx context.Context, username string, active bool) error {
	return m.SetActiveFunc(ctx, username, active)
}

// MockCredentialVerifier implements CredentialVerifier
type MockCredentialVerifier struct {
	VerifyCredentialsFunc func(ctx context.Context, username, password string) (*models.Principal, error)
}

func (m *MockCredentialVerifier) VerifyCredentials(ctx context.Context, username, password string) (*models.Principal, error) {
	return m.VerifyCredentialsFunc(ctx, username, password)
}

// MockFailureTracker implements FailureTracker
type MockFailureTracker struct {
	RecordFailureFunc  func(ctx context.Context, username, ipAddress string) error
	RecentFailuresFunc func(ctx context.Context, username string) (int, error)
	ClearFunc          func(ctx context.Context, username string) error
}

func (m *MockFailureTracker) RecordFailure(ctx context.Context, username, ipAddress string) error {
	return m.RecordFailureFunc(ctx, username, ipAddress)
}

func (m *MockFailureTracker) RecentFailures(ctx context.Context, username string) (int, error) {
	return m.RecentFailuresFunc(ctx, username)
}

func (m *MockFailureTracker) Clear(ctx context.Context, username string) error {
	return m.ClearFunc(ctx, username)
}

// MockShowSearcher implements ShowSearcher
type MockShowSearcher struct {
	SearchTVFunc func(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error)
}

func (m *MockShowSearcher) SearchTV(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error) {
	return m.SearchTVFunc(ctx, query, page)
}
