package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bkovacev/showtrack/internal/models"
	"github.com/bkovacev/showtrack/pkg/auth"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	List(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (int64, error)
	UpdateProfile(ctx context.Context, username, email, firstName, lastName, birthDate string) error
	IsActive(ctx context.Context, username string) (bool, error)
	SetActive(ctx context.Context, username string, active bool) error
}

// UserService handles user business logic
type UserService struct {
	repo   UserRepository
	logger *slog.Logger
}

func NewUserService(repo UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// RegisterInput carries the registration fields after transport validation.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate string
}

// Register creates a new user with a fresh salt and derived password hash.
// The role always defaults to registered and the account starts active.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	salt, err := auth.GenerateSalt()
	if err != nil {
		s.logger.Error("failed to generate salt", slog.Any("error", err))
		return 0, models.ErrInternalServer
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: auth.HashPassword(in.Password, salt),
		Salt:         salt,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BirthDate:    in.BirthDate,
		Role:         models.RoleRegistered,
		Active:       true,
	}

	id, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			s.logger.Info("registration rejected: duplicate identity", slog.String("username", in.Username))
			return 0, models.ErrDuplicate
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return 0, models.ErrInternalServer
	}

	s.logger.Info("user registered", slog.Int64("user_id", id), slog.String("username", in.Username))
	return id, nil
}

// List returns all users without credential fields.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return users, nil
}

// Get returns a single user without credential fields.
func (s *UserService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("username", username), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user.PasswordHash = ""
	user.Salt = ""
	return user, nil
}

// UpdateProfile updates email and profile fields. Credentials are unaffected.
func (s *UserService) UpdateProfile(ctx context.Context, username, email, firstName, lastName, birthDate string) error {
	err := s.repo.UpdateProfile(ctx, username, email, firstName, lastName, birthDate)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to update profile", slog.String("username", username), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("profile updated", slog.String("username", username))
	return nil
}

// VerifyCredentials checks the password against the stored salted hash and
// returns the principal snapshot. Password hash and salt never leave this
// method.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.Principal, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user for credential check", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !auth.VerifyPassword(password, user.Salt, user.PasswordHash) {
		return nil, models.ErrInvalidCredentials
	}

	return &models.Principal{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}

// IsActive reports whether the account may log in.
func (s *UserService) IsActive(ctx context.Context, username string) (bool, error) {
	return s.repo.IsActive(ctx, username)
}

// SetActive locks or unlocks an account.
func (s *UserService) SetActive(ctx context.Context, username string, active bool) error {
	return s.repo.SetActive(ctx, username, active)
}
