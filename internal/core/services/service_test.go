package services

import (
	"path/filepath"
	"testing"

	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/adapters/persistence/repositories"
	"libraryhub/internal/config"
	"libraryhub/internal/pkg/password"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway SQLite database and migrates the schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func newBookService(db *gorm.DB) *BookService {
	return NewBookService(
		repositories.NewBookRepository(db),
		repositories.NewBorrowingRepository(db),
		repositories.NewUserRepository(db),
	)
}

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repositories.NewUserRepository(db),
		repositories.NewBorrowingRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
}

// createUser inserts a user directly, bypassing registration
func createUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	hash, err := password.Hash("secret-password")
	require.NoError(t, err)

	user := &models.User{
		FullName: name,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createBook inserts a book directly
func createBook(t *testing.T, db *gorm.DB, title, author string, total, available int) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:           title,
		Author:          author,
		TotalCopies:     total,
		AvailableCopies: available,
	}
	require.NoError(t, db.Create(book).Error)
	return book
}
