package database

import (
	"fmt"
	"log"
	"os"

	"dreamnest-app/internal/domain/books"
	"dreamnest-app/internal/domain/payouts"
	"dreamnest-app/internal/domain/reading"
	"dreamnest-app/internal/domain/subscriptions"
	"dreamnest-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// accounts
		&users.User{},
		&users.VerificationToken{},
		&users.AuthorApplication{},

		// library
		&books.Book{},
		&books.Page{},
		&books.Bookmark{},

		// reading
		&reading.Kid{},
		&reading.Session{},

		// billing
		&subscriptions.Subscription{},

		// earnings
		&payouts.RevenuePeriod{},
		&payouts.Payout{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}
