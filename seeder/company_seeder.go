package seeder

import (
	"log"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// DemoCompanyName is the tenant created for local development.
const DemoCompanyName = "Hoteles Demo"

func companySeeder(db *sqlx.DB) {
	var count int
	err := db.Get(&count, "SELECT COUNT(*) FROM companies WHERE name = $1", DemoCompanyName)
	if err != nil {
		log.Fatalf("Failed to check companies table: %v", err)
	}

	if count > 0 {
		log.Println("Demo company already exists.")
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Fatalf("Failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	companyID := uuid.New().String()
	_, err = tx.Exec(`
		INSERT INTO companies (id, name, legal_name, tax_id, status)
		VALUES ($1, $2, $3, $4, $5)
	`, companyID, DemoCompanyName, "Hoteles Demo S.A.S.", "900123456-7", "active")
	if err != nil {
		log.Fatalf("Failed to create demo company: %v", err)
	}
	log.Printf("Created demo company with ID: %s", companyID)

	_, err = tx.Exec(`
		INSERT INTO hotels (id, company_id, name, address, city, country, stars)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.New().String(), companyID, "Hotel Demo Centro", "Calle 10 #5-20", "Cartagena", "Colombia", 4)
	if err != nil {
		log.Fatalf("Failed to create demo hotel: %v", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	log.Println("Company seeder completed successfully.")
}
