package document

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const documentColumns = `
	id, company_id, organization_id, title, description, doc_type, category,
	code, confidentiality, language, tags, department_ids, process_ids,
	related_document_ids, status, current_version, is_active, is_public,
	author, reviewers, versions, audit_log, comments, view_count,
	download_count, last_viewed_at, last_downloaded_at, effective_date,
	expiration_date, review_date, searchable_content, created_at, updated_at`

type DocumentRepository struct {
	db *sqlx.DB
}

func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) GetByID(id string) (*Document, error) {
	var doc Document
	query := `SELECT` + documentColumns + ` FROM documents WHERE id = $1`
	err := r.db.Get(&doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) Insert(doc *Document) error {
	query := `
		INSERT INTO documents (
			id, company_id, organization_id, title, description, doc_type,
			category, code, confidentiality, language, tags, department_ids,
			process_ids, related_document_ids, status, current_version,
			is_active, is_public, author, reviewers, versions, audit_log,
			comments, view_count, download_count, effective_date,
			expiration_date, review_date, searchable_content, created_at,
			updated_at
		) VALUES (
			:id, :company_id, :organization_id, :title, :description,
			:doc_type, :category, :code, :confidentiality, :language, :tags,
			:department_ids, :process_ids, :related_document_ids, :status,
			:current_version, :is_active, :is_public, :author, :reviewers,
			:versions, :audit_log, :comments, :view_count, :download_count,
			:effective_date, :expiration_date, :review_date,
			:searchable_content, :created_at, :updated_at
		)`
	_, err := r.db.NamedExec(query, doc)
	return err
}

func (r *DocumentRepository) List(filter DocumentFilter) ([]Document, error) {
	conditions, args, argIndex := r.buildFilters(filter)

	query := `SELECT` + documentColumns + ` FROM documents WHERE ` +
		strings.Join(conditions, " AND ")

	query += r.buildSortClause(filter)
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, r.ensureLimit(filter.Limit))

	var documents []Document
	if err := r.db.Select(&documents, query, args...); err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *DocumentRepository) buildFilters(filter DocumentFilter) ([]string, []interface{}, int) {
	conditions := []string{"company_id = $1"}
	args := []interface{}{filter.CompanyID}
	argIndex := 2

	if filter.OrganizationID != "" {
		conditions = append(conditions, fmt.Sprintf("organization_id = $%d", argIndex))
		args = append(args, filter.OrganizationID)
		argIndex++
	}

	if len(filter.Types) > 0 {
		conditions = append(conditions, fmt.Sprintf("doc_type = ANY($%d)", argIndex))
		args = append(args, pq.Array(stringsOf(filter.Types)))
		argIndex++
	}

	if len(filter.Categories) > 0 {
		conditions = append(conditions, fmt.Sprintf("category = ANY($%d)", argIndex))
		args = append(args, pq.Array(stringsOf(filter.Categories)))
		argIndex++
	}

	if len(filter.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("status = ANY($%d)", argIndex))
		args = append(args, pq.Array(stringsOf(filter.Statuses)))
		argIndex++
	}

	if len(filter.Confidentiality) > 0 {
		conditions = append(conditions, fmt.Sprintf("confidentiality = ANY($%d)", argIndex))
		args = append(args, pq.Array(stringsOf(filter.Confidentiality)))
		argIndex++
	}

	if len(filter.DepartmentIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("department_ids && $%d", argIndex))
		args = append(args, pq.Array(filter.DepartmentIDs))
		argIndex++
	}

	if len(filter.Tags) > 0 {
		conditions = append(conditions, fmt.Sprintf("tags && $%d", argIndex))
		args = append(args, pq.Array(filter.Tags))
		argIndex++
	}

	if filter.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIndex))
		args = append(args, *filter.IsActive)
		argIndex++
	}

	dateField := r.dateField(filter.DateField)
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("%s >= $%d", dateField, argIndex))
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("%s <= $%d", dateField, argIndex))
		args = append(args, *filter.EndDate)
		argIndex++
	}

	return conditions, args, argIndex
}

func (r *DocumentRepository) dateField(field string) string {
	allowed := map[string]bool{
		"created_at":      true,
		"updated_at":      true,
		"effective_date":  true,
		"expiration_date": true,
		"review_date":     true,
	}
	if allowed[field] {
		return field
	}
	return "created_at"
}

func (r *DocumentRepository) buildSortClause(filter DocumentFilter) string {
	allowedSort := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"title":      true,
		"code":       true,
		"view_count": true,
	}
	sortBy := "created_at"
	if allowedSort[filter.SortBy] {
		sortBy = filter.SortBy
	}

	dir := "DESC"
	if strings.ToUpper(filter.SortDirection) == "ASC" {
		dir = "ASC"
	}

	return fmt.Sprintf(" ORDER BY %s %s", sortBy, dir)
}

func (r *DocumentRepository) ensureLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func (r *DocumentRepository) UpdateWithLock(id string, mutate func(*Document) error) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var doc Document
	query := `SELECT` + documentColumns + ` FROM documents WHERE id = $1 FOR UPDATE`
	err = tx.Get(&doc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}

	if err := mutate(&doc); err != nil {
		return err
	}

	update := `
		UPDATE documents SET
			organization_id = :organization_id,
			title = :title,
			description = :description,
			doc_type = :doc_type,
			category = :category,
			code = :code,
			confidentiality = :confidentiality,
			language = :language,
			tags = :tags,
			department_ids = :department_ids,
			process_ids = :process_ids,
			related_document_ids = :related_document_ids,
			status = :status,
			current_version = :current_version,
			is_active = :is_active,
			is_public = :is_public,
			reviewers = :reviewers,
			versions = :versions,
			audit_log = :audit_log,
			comments = :comments,
			effective_date = :effective_date,
			expiration_date = :expiration_date,
			review_date = :review_date,
			searchable_content = :searchable_content,
			updated_at = NOW()
		WHERE id = :id`
	if _, err := tx.NamedExec(update, &doc); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *DocumentRepository) IncrementView(id string, entry AuditEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET view_count = view_count + 1,
			last_viewed_at = NOW(),
			audit_log = audit_log || $2::jsonb,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.Exec(query, id, string(entryJSON))
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *DocumentRepository) IncrementDownload(id string, entry AuditEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET download_count = download_count + 1,
			last_downloaded_at = NOW(),
			audit_log = audit_log || $2::jsonb,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.Exec(query, id, string(entryJSON))
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *DocumentRepository) AppendComment(id string, comment Comment) error {
	commentJSON, err := json.Marshal(comment)
	if err != nil {
		return err
	}

	query := `
		UPDATE documents
		SET comments = comments || $2::jsonb,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.db.Exec(query, id, string(commentJSON))
	if err != nil {
		return err
	}
	return r.requireRow(result)
}

func (r *DocumentRepository) NextCodeSeq(companyID string, docType DocumentType, year int) (int, error) {
	var seq int
	query := `
		INSERT INTO document_code_counters (company_id, doc_type, year, seq)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, doc_type, year)
		DO UPDATE SET seq = document_code_counters.seq + 1
		RETURNING seq`
	err := r.db.QueryRow(query, companyID, string(docType), year).Scan(&seq)
	return seq, err
}

func (r *DocumentRepository) requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func stringsOf[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
