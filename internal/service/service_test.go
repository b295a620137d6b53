package service

import (
	"path/filepath"
	"testing"
	"time"

	"cems/internal/db"
	"cems/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh sqlite database in a temp dir with the full
// schema applied. A single connection serializes writers, standing in
// for the row locks MySQL takes in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cems_test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, email, role string) *domain.User {
	t.Helper()
	user := domain.User{
		Name:     "Test User",
		Email:    email,
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, gdb.Create(&user).Error)
	return &user
}

func createTestEvent(t *testing.T, gdb *gorm.DB, organizerID uint, status string, capacity int) *domain.Event {
	t.Helper()
	event := domain.Event{
		Title:       "Tech Hackathon",
		Description: "24-hour coding competition",
		StartTime:   time.Now().Add(24 * time.Hour),
		EndTime:     time.Now().Add(48 * time.Hour),
		Capacity:    capacity,
		Category:    "technology",
		Status:      status,
		OrganizerID: organizerID,
	}
	require.NoError(t, gdb.Create(&event).Error)
	return &event
}
