package document

import "errors"

var (
	ErrDocumentNotFound  = errors.New("document not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// Store is the persistence boundary of the document lifecycle service.
// DocumentRepository is the Postgres implementation.
type Store interface {
	GetByID(id string) (*Document, error)
	Insert(doc *Document) error
	List(filter DocumentFilter) ([]Document, error)

	// UpdateWithLock reads the document under a row lock, applies mutate
	// and writes the result back in the same transaction.
	UpdateWithLock(id string, mutate func(*Document) error) error

	// IncrementView and IncrementDownload bump the counter, stamp the
	// last-seen time and append the audit entry in one atomic statement.
	IncrementView(id string, entry AuditEntry) error
	IncrementDownload(id string, entry AuditEntry) error

	AppendComment(id string, comment Comment) error

	// NextCodeSeq atomically advances the per-company/type/year sequence
	// used for document code generation.
	NextCodeSeq(companyID string, docType DocumentType, year int) (int, error)
}
