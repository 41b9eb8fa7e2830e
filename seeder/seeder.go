package seeder

import (
	"github.com/jmoiron/sqlx"
)

func RunSeeder(db *sqlx.DB) {
	companySeeder(db)
	superadminSeeder(db)
}
