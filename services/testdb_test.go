package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vnkhanh/flashcards-ai-backend/models"
)

// newTestDB mở một database sqlite trong bộ nhớ cho mỗi test.
// Giới hạn 1 connection vì mỗi connection :memory: là một DB riêng.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Generation{},
		&models.GenerationErrorLog{},
		&models.Flashcard{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()

	user := models.User{
		FullName: "Người dùng test",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func createTestGeneration(t *testing.T, db *gorm.DB, userID uuid.UUID) uint {
	t.Helper()

	generation := models.Generation{
		UserID:             userID,
		Model:              "gemini-2.0-flash",
		SourceTextHash:     "d41d8cd98f00b204e9800998ecf8427e",
		SourceTextLength:   1500,
		GeneratedCount:     3,
		GenerationDuration: 1200,
	}
	require.NoError(t, db.Create(&generation).Error)
	return generation.ID
}
