package migrate

import (
	"log"

	"github.com/jmoiron/sqlx"
)

func RunMigrations(db *sqlx.DB) {
	log.Println("Starting migrations...")

	query := `
	CREATE TABLE IF NOT EXISTS companies (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		legal_name VARCHAR(255),
		tax_id VARCHAR(50),
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS hotels (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		address VARCHAR(500),
		city VARCHAR(100),
		country VARCHAR(100),
		stars INT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		company_id UUID REFERENCES companies(id) ON DELETE SET NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		account_type VARCHAR(50),
		phone VARCHAR(50),
		position VARCHAR(100)
	);

	CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY,
		company_id UUID NOT NULL,
		organization_id UUID,
		title VARCHAR(500) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		doc_type VARCHAR(50) NOT NULL,
		category VARCHAR(50) NOT NULL,
		code VARCHAR(50) NOT NULL,
		confidentiality VARCHAR(20) NOT NULL DEFAULT 'internal',
		language VARCHAR(10) NOT NULL DEFAULT 'es',
		tags TEXT[] NOT NULL DEFAULT '{}',
		department_ids TEXT[] NOT NULL DEFAULT '{}',
		process_ids TEXT[] NOT NULL DEFAULT '{}',
		related_document_ids TEXT[] NOT NULL DEFAULT '{}',
		status VARCHAR(20) NOT NULL DEFAULT 'draft',
		current_version VARCHAR(20) NOT NULL DEFAULT '1.0',
		is_active BOOLEAN NOT NULL DEFAULT true,
		is_public BOOLEAN NOT NULL DEFAULT false,
		author JSONB NOT NULL DEFAULT '{}'::jsonb,
		reviewers JSONB NOT NULL DEFAULT '[]'::jsonb,
		versions JSONB NOT NULL DEFAULT '[]'::jsonb,
		audit_log JSONB NOT NULL DEFAULT '[]'::jsonb,
		comments JSONB NOT NULL DEFAULT '[]'::jsonb,
		view_count INT NOT NULL DEFAULT 0,
		download_count INT NOT NULL DEFAULT 0,
		last_viewed_at TIMESTAMPTZ,
		last_downloaded_at TIMESTAMPTZ,
		effective_date TIMESTAMPTZ,
		expiration_date TIMESTAMPTZ,
		review_date TIMESTAMPTZ,
		searchable_content TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS document_code_counters (
		company_id UUID NOT NULL,
		doc_type VARCHAR(50) NOT NULL,
		year INT NOT NULL,
		seq INT NOT NULL DEFAULT 0,
		PRIMARY KEY (company_id, doc_type, year)
	);

	CREATE INDEX IF NOT EXISTS idx_documents_company_id ON documents(company_id);
	CREATE INDEX IF NOT EXISTS idx_documents_status ON documents(status);
	CREATE INDEX IF NOT EXISTS idx_documents_doc_type ON documents(doc_type);
	CREATE INDEX IF NOT EXISTS idx_documents_category ON documents(category);
	CREATE INDEX IF NOT EXISTS idx_documents_is_active ON documents(is_active);
	CREATE INDEX IF NOT EXISTS idx_documents_review_date ON documents(review_date);
	CREATE UNIQUE INDEX IF NOT EXISTS idx_documents_company_type_code ON documents(company_id, doc_type, code);
	CREATE INDEX IF NOT EXISTS idx_hotels_company_id ON hotels(company_id);
	CREATE INDEX IF NOT EXISTS idx_users_company_id ON users(company_id);
	`

	if _, err := db.Exec(query); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration completed successfully.")
}
