package repositories

import (
	"context"
	"log/slog"
	"testing"

	"github.com/bkovacev/showtrack/internal/database"
	"github.com/bkovacev/showtrack/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:", slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

func newTestUser(username, email string) *models.User {
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "0123abcd",
		Salt:         "feedface",
		FirstName:    "Test",
		LastName:     "User",
		BirthDate:    "1990-01-01",
		Role:         models.RoleRegistered,
		Active:       true,
	}
}
