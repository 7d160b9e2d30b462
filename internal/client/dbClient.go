package client

import (
	"log"
	"najia-backend/internal/model"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		log.Fatal(err)
	}

	return db
}

// Migrate runs AutoMigrate for every model. Shared with the sqlite test
// setup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.WorshipRecord{},
		&model.Payment{},
		&model.Subscription{},
		&model.WebhookEvent{},
		&model.Otp{},
		&model.QadaTracker{},
		&model.QadaPuasa{},
		&model.QadaPuasaHistory{},
		&model.Child{},
		&model.Task{},
		&model.GroceryRequest{},
	)
}
