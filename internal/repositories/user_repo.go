package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bkovacev/showtrack/internal/database"
	"github.com/bkovacev/showtrack/internal/models"
)

// UserRepository handles database operations for user records.
type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List returns all users. Password hash and salt columns are never selected.
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, birth_date, role, active
		FROM users ORDER BY id
	`

	users := make([]*models.User, 0)
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", database.MapSQLiteError(err))
	}
	return users, nil
}

// GetByUsername returns the full user row, credentials included. Callers
// outside the service layer must not expose hash or salt.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, salt, first_name, last_name, birth_date, role, active
		FROM users WHERE username = ?
	`

	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, database.MapSQLiteError(err)
	}
	return &user, nil
}

// Create inserts a new user and returns its generated id. Duplicate username
// or email yields models.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	var existing int
	err := r.db.GetContext(ctx, &existing,
		`SELECT COUNT(*) FROM users WHERE username = ? OR email = ?`, user.Username, user.Email)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing user: %w", database.MapSQLiteError(err))
	}
	if existing > 0 {
		return 0, models.ErrDuplicate
	}

	query := `
		INSERT INTO users (username, email, password_hash, salt, first_name, last_name, birth_date, role, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Salt,
		user.FirstName, user.LastName, user.BirthDate, user.Role, user.Active,
	)
	if err != nil {
		return 0, database.MapSQLiteError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}

// UpdateProfile updates the profile fields of a user. Credentials and role
// are not touched.
func (r *UserRepository) UpdateProfile(ctx context.Context, username, email, firstName, lastName, birthDate string) error {
	query := `
		UPDATE users SET email = ?, first_name = ?, last_name = ?, birth_date = ?
		WHERE username = ?
	`

	res, err := r.db.ExecContext(ctx, query, email, firstName, lastName, birthDate, username)
	if err != nil {
		return database.MapSQLiteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// IsActive reports whether the account may log in.
func (r *UserRepository) IsActive(ctx context.Context, username string) (bool, error) {
	var active bool
	err := r.db.GetContext(ctx, &active, `SELECT active FROM users WHERE username = ?`, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, models.ErrNotFound
		}
		return false, database.MapSQLiteError(err)
	}
	return active, nil
}

// SetActive toggles the active flag. Used to lock an account after repeated
// failed logins and to unlock it again.
func (r *UserRepository) SetActive(ctx context.Context, username string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET active = ? WHERE username = ?`, active, username)
	if err != nil {
		return database.MapSQLiteError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound
	}
	return nil
}
