package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sbilibin2017/gw-login-portal/internal/logger"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

var getByEmailQuery = regexp.QuoteMeta("SELECT user_id, email, password_hash, email_verified, created_at, updated_at")

func TestUserReadRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db)

		rows := sqlmock.NewRows([]string{"user_id", "email", "password_hash", "email_verified", "created_at", "updated_at"}).
			AddRow(userID.String(), "alice@example.com", "hash", true, now, now)
		mock.ExpectQuery(getByEmailQuery).
			WithArgs("alice@example.com").
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.True(t, user.EmailVerified)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db)

		mock.ExpectQuery(getByEmailQuery).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "email", "password_hash", "email_verified", "created_at", "updated_at"}))

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db)

		mock.ExpectQuery(getByEmailQuery).
			WithArgs("alice@example.com").
			WillReturnError(errors.New("connection reset"))

		user, err := repo.GetByEmail(ctx, "alice@example.com")
		assert.EqualError(t, err, "connection reset")
		assert.Nil(t, user)
	})

	t.Run("LogsLookup", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		original := logger.Log
		logger.Log = zap.New(core).Sugar()
		defer func() { logger.Log = original }()

		db, mock := newMockDB(t)
		repo := NewUserReadRepository(db)

		mock.ExpectQuery(getByEmailQuery).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)

		entries := logs.AllUntimed()
		require.Len(t, entries, 1)
		assert.Equal(t, "user lookup", entries[0].Message)
		assert.Contains(t, entries[0].ContextMap()["query"], "FROM users")
	})
}
