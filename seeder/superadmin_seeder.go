package seeder

import (
	"log"
	"os"

	"calidad-be/util"

	"github.com/jmoiron/sqlx"
)

func superadminSeeder(db *sqlx.DB) {
	var userCount int
	err := db.Get(&userCount, "SELECT COUNT(*) FROM users WHERE email = 'superadmin@superadmin.com'")
	if err != nil {
		log.Fatalf("Failed to check superadmin user: %v", err)
	}

	if userCount > 0 {
		log.Println("Superadmin user already exists.")
		return
	}

	password := os.Getenv("SUPERADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SUPERADMIN_PASSWORD is not set")
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	var userID int64
	err = db.QueryRow(`
		INSERT INTO users (email, name, password, account_type, phone, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, "superadmin@superadmin.com", "superadmin", hashedPassword, "superadmin", "", "").Scan(&userID)
	if err != nil {
		log.Fatalf("Failed to create superadmin user: %v", err)
	}
	log.Printf("Created superadmin user with ID: %d", userID)

	log.Println("Superadmin seeder completed successfully.")
}
