package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/fnbapp/backend/app/apperror"
	"github.com/fnbapp/backend/app/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func userColumns() []string {
	return []string{"id", "username", "email", "phone", "password_hash", "role_id", "status"}
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		rows := sqlmock.NewRows(userColumns()).
			AddRow("user-1", "alice", "alice@example.com", "555-0100", "hash", models.RoleUser, models.StatusActive)
		mock.ExpectQuery("SELECT (.+) FROM `users`").
			WillReturnRows(rows)

		user, err := repo.FindByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-1", user.ID)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found returns nil without error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM `users`").
			WillReturnRows(sqlmock.NewRows(userColumns()))

		user, err := repo.FindByEmail(context.Background(), "ghost@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryFindByEmailAndCode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	user, err := repo.FindByEmailAndCode(context.Background(), "alice@example.com", "123456")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreate(t *testing.T) {
	t.Run("duplicate email mapped to sentinel", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `users`").
			WillReturnError(&driver.MySQLError{Number: 1062, Message: "Duplicate entry"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), &models.User{
			Username:     "alice",
			Email:        "alice@example.com",
			PasswordHash: "hash",
		})
		assert.ErrorIs(t, err, apperror.ErrDuplicateIdentity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("defaults applied", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO `users`").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		user := &models.User{
			Username:     "bob",
			Email:        "bob@example.com",
			PasswordHash: "hash",
		}
		err := repo.Create(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.RoleID)
		assert.Equal(t, models.StatusActive, user.Status)
		assert.NotEmpty(t, user.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepositoryClearVerificationCode(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ClearVerificationCode(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySaveResetToken(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	token := "654321"
	expires := time.Now().Add(15 * time.Minute)
	err := repo.SaveResetToken(context.Background(), "user-1", &token, &expires)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdateStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `users` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), "user-1", models.StatusSuspended)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
