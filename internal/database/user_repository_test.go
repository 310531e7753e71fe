package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivehub/rental-backend/internal/models"
)

func TestCreateUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewUserRepository(mockDB)

	userColumns := []string{"id", "email", "password_hash", "name", "phone", "role", "created_at", "updated_at"}

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "alice@example.com", "hash", "Alice", "+1555000", string(models.RoleCustomer)).
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID, "alice@example.com", "hash", "Alice", "+1555000", "customer", now, now,
			))

		user, err := repo.Create("alice@example.com", "hash", "Alice", "+1555000", models.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, models.RoleCustomer, user.Role)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "alice@example.com", "hash", "Alice", "", string(models.RoleCustomer)).
			WillReturnError(fmt.Errorf("duplicate key value violates unique constraint"))

		user, err := repo.Create("alice@example.com", "hash", "Alice", "", models.RoleCustomer)
		assert.Error(t, err)
		assert.Nil(t, user)
		assert.Contains(t, err.Error(), "failed to create user")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetUserByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mockDB := &mockDatabase{db: db}
	repo := NewUserRepository(mockDB)

	userColumns := []string{"id", "email", "password_hash", "name", "phone", "role", "created_at", "updated_at"}

	t.Run("Success", func(t *testing.T) {
		userID := uuid.New().String()
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("bob@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				userID, "bob@example.com", "hash", "Bob", "", "store_owner", now, now,
			))

		user, err := repo.GetByEmail("bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, models.RoleStoreOwner, user.Role)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetByEmail("nobody@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// mockDatabase wraps a raw *sql.DB behind the DB interface for sqlmock
type mockDatabase struct {
	db *sql.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Get not implemented in mock")
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return fmt.Errorf("Select not implemented in mock")
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
