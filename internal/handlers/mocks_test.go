package handlers

import (
	"context"

	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/internal/services"
	"github.com/bkovacev/showtrack/internal/tmdb"
)

// MockUserService implements UserService with overridable behavior.
type MockUserService struct {
	RegisterFunc      func(ctx context.Context, in services.RegisterInput) (int64, error)
	ListFunc          func(ctx context.Context) ([]*models.User, error)
	GetFunc           func(ctx context.Context, username string) (*models.User, error)
	UpdateProfileFunc func(ctx context.Context, username, email, firstName, lastName, birthDate string) error
}

func (m *MockUserService) Register(ctx context.Context, in services.RegisterInput) (int64, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return 1, nil
}

func (m *MockUserService) List(ctx context.Context) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserService) Get(ctx context.Context, username string) (*models.User, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, username)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, username, email, firstName, lastName, birthDate string) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, username, email, firstName, lastName, birthDate)
	}
	return nil
}

// MockAuthService implements AuthService with overridable behavior.
type MockAuthService struct {
	LoginFunc func(ctx context.Context, username, password, ipAddress string) (*models.Principal, error)
}

func (m *MockAuthService) Login(ctx context.Context, username, password, ipAddress string) (*models.Principal, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password, ipAddress)
	}
	return nil, models.ErrInvalidCredentials
}

// MockShowService implements ShowService with overridable behavior.
type MockShowService struct {
	SearchFunc func(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error)
}

func (m *MockShowService) Search(ctx context.Context, query string, page int) (*tmdb.SearchResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, page)
	}
	return &tmdb.SearchResponse{}, nil
}
