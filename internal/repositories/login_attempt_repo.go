package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/bkovacev/showtrack/internal/database"
)

// LoginAttemptRepository handles database operations for failed login
// attempts. Rows are append-only until a successful login clears them.
type LoginAttemptRepository struct {
	db *database.DB
}

func NewLoginAttemptRepository(db *database.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Record appends a failed login attempt for the username.
func (r *LoginAttemptRepository) Record(ctx context.Context, username, ipAddress string) error {
	query := `INSERT INTO failed_logins (username, ip_address, attempted_at) VALUES (?, ?, ?)`

	if _, err := r.db.ExecContext(ctx, query, username, ipAddress, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record login attempt: %w", database.MapSQLiteError(err))
	}
	return nil
}

// CountSince returns the number of attempts for the username recorded at or
// after since. Evaluated against the stored timestamps at call time.
func (r *LoginAttemptRepository) CountSince(ctx context.Context, username string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM failed_logins WHERE username = ? AND attempted_at >= ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, username, since.UTC()); err != nil {
		return 0, fmt.Errorf("failed to count login attempts: %w", database.MapSQLiteError(err))
	}
	return count, nil
}

// Clear deletes all recorded attempts for the username.
func (r *LoginAttemptRepository) Clear(ctx context.Context, username string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM failed_logins WHERE username = ?`, username); err != nil {
		return fmt.Errorf("failed to clear login attempts: %w", database.MapSQLiteError(err))
	}
	return nil
}
