package service

import (
	"fmt"
	"testing"
	"time"

	"najia-backend/internal/client"
	"najia-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a throwaway in-memory database migrated with the full
// schema. Each test gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := client.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, name string) *model.User {
	t.Helper()

	user := &model.User{
		ID:          id,
		FirebaseUID: "firebase-" + id,
		PhoneNumber: "+6012" + id,
		Name:        name,
		AccountType: model.AccountTypeBasic,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return user
}

// fixedTime is mid-afternoon in Kuala Lumpur on Wednesday 2026-03-18.
var fixedTime = time.Date(2026, 3, 18, 7, 0, 0, 0, time.UTC)
