package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Azeezfasasi/lasu-mba-cloth/config"
	"github.com/Azeezfasasi/lasu-mba-cloth/models"
)

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// NewTestDB opens a private in-memory sqlite database with every table migrated.
// The pool is pinned to one connection: each sqlite :memory: connection is its
// own database, and background notification tasks query concurrently.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.NewDatabase(db).Migrate(), "Failed to migrate test database")

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateUser inserts an active account with the given role
func CreateUser(t *testing.T, db *gorm.DB, firstName, lastName, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		FirstName:     firstName,
		LastName:      lastName,
		Email:         email,
		Role:          role,
		IsActive:      true,
		AccountStatus: models.AccountStatusActive,
	}
	require.NoError(t, db.Create(user).Error, "Failed to create test user")
	return user
}

// CreateLinkedUser inserts an active account tied to an identity provider subject
func CreateLinkedUser(t *testing.T, db *gorm.DB, auth0ID, email, role string) *models.User {
	t.Helper()

	user := &models.User{
		Auth0ID:       &auth0ID,
		FirstName:     "Linked",
		LastName:      "Staff",
		Email:         email,
		Role:          role,
		IsActive:      true,
		AccountStatus: models.AccountStatusActive,
	}
	require.NoError(t, db.Create(user).Error, "Failed to create linked test user")
	return user
}

// PNGBytes is a minimal payload sniffed as image/png
func PNGBytes() []byte {
	return append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
}
