package document

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
)

type DocumentType string

const (
	TypePolicy      DocumentType = "policy"
	TypeProcedure   DocumentType = "procedure"
	TypeInstruction DocumentType = "instruction"
	TypeManual      DocumentType = "manual"
	TypeRecord      DocumentType = "record"
	TypeForm        DocumentType = "form"
	TypeChecklist   DocumentType = "checklist"
	TypePlan        DocumentType = "plan"
	TypeReport      DocumentType = "report"
	TypeCertificate DocumentType = "certificate"
	TypeContract    DocumentType = "contract"
	TypeMinutes     DocumentType = "minutes"
	TypeOther       DocumentType = "other"
)

type DocumentCategory string

const (
	CategoryQuality      DocumentCategory = "quality"
	CategorySafety       DocumentCategory = "safety"
	CategoryHygiene      DocumentCategory = "hygiene"
	CategoryEnvironment  DocumentCategory = "environment"
	CategoryHR           DocumentCategory = "human_resources"
	CategoryMaintenance  DocumentCategory = "maintenance"
	CategoryFrontDesk    DocumentCategory = "front_desk"
	CategoryHousekeeping DocumentCategory = "housekeeping"
	CategoryFoodBeverage DocumentCategory = "food_beverage"
	CategoryPurchasing   DocumentCategory = "purchasing"
	CategoryTraining     DocumentCategory = "training"
	CategoryLegal        DocumentCategory = "legal"
	CategoryOther        DocumentCategory = "other"
)

type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusReview    DocumentStatus = "review"
	StatusApproved  DocumentStatus = "approved"
	StatusPublished DocumentStatus = "published"
	StatusObsolete  DocumentStatus = "obsolete"
	StatusArchived  DocumentStatus = "archived"
)

type ConfidentialityLevel string

const (
	ConfidentialityPublic       ConfidentialityLevel = "public"
	ConfidentialityInternal     ConfidentialityLevel = "internal"
	ConfidentialityConfidential ConfidentialityLevel = "confidential"
	ConfidentialityRestricted   ConfidentialityLevel = "restricted"
)

// allowedStatusTransitions is the explicit state machine for document
// status. Writing the same status again is always allowed.
var allowedStatusTransitions = map[DocumentStatus][]DocumentStatus{
	StatusDraft:     {StatusReview, StatusArchived},
	StatusReview:    {StatusDraft, StatusApproved, StatusArchived},
	StatusApproved:  {StatusPublished, StatusReview, StatusArchived},
	StatusPublished: {StatusReview, StatusObsolete, StatusArchived},
	StatusObsolete:  {StatusArchived, StatusDraft},
	StatusArchived:  {StatusDraft},
}

func CanTransition(from, to DocumentStatus) bool {
	if from == to {
		return true
	}
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDeleted    = "deleted"
	ActionViewed     = "viewed"
	ActionDownloaded = "downloaded"
	ActionReviewDue  = "review_due"
)

type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (a Actor) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Actor) Scan(src interface{}) error {
	return scanJSON(src, a)
}

type Version struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Content   string    `json:"content"`
	Changelog string    `json:"changelog"`
	IsActive  bool      `json:"is_active"`
	CreatedBy Actor     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

type VersionList []Version

func (v VersionList) Value() (driver.Value, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

func (v *VersionList) Scan(src interface{}) error {
	return scanJSON(src, v)
}

// Active returns the version currently flagged active, or nil.
func (v VersionList) Active() *Version {
	for i := range v {
		if v[i].IsActive {
			return &v[i]
		}
	}
	return nil
}

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

type Reviewer struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Status     string     `json:"status"`
	Comment    string     `json:"comment,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

type ReviewerList []Reviewer

func (r ReviewerList) Value() (driver.Value, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r)
}

func (r *ReviewerList) Scan(src interface{}) error {
	return scanJSON(src, r)
}

type AuditEntry struct {
	ID        string                 `json:"id"`
	Action    string                 `json:"action"`
	ActorID   string                 `json:"actor_id"`
	ActorName string                 `json:"actor_name,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	OldValues map[string]interface{} `json:"old_values,omitempty"`
	NewValues map[string]interface{} `json:"new_values,omitempty"`
	Reason    string                 `json:"reason,omitempty"`
}

type AuditLog []AuditEntry

func (a AuditLog) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

func (a *AuditLog) Scan(src interface{}) error {
	return scanJSON(src, a)
}

type Comment struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	ParentID   *string   `json:"parent_id,omitempty"`
	Position   *int      `json:"position,omitempty"`
	IsResolved bool      `json:"is_resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

type CommentList []Comment

func (c CommentList) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

func (c *CommentList) Scan(src interface{}) error {
	return scanJSON(src, c)
}

func scanJSON(src, dest interface{}) error {
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	case nil:
		return nil
	default:
		return errors.New("unsupported type for jsonb scan")
	}
}

type Document struct {
	ID                 string               `db:"id" json:"id"`
	CompanyID          string               `db:"company_id" json:"company_id"`
	OrganizationID     *string              `db:"organization_id" json:"organization_id,omitempty"`
	Title              string               `db:"title" json:"title"`
	Description        string               `db:"description" json:"description"`
	DocType            DocumentType         `db:"doc_type" json:"doc_type"`
	Category           DocumentCategory     `db:"category" json:"category"`
	Code               string               `db:"code" json:"code"`
	Confidentiality    ConfidentialityLevel `db:"confidentiality" json:"confidentiality"`
	Language           string               `db:"language" json:"language"`
	Tags               pq.StringArray       `db:"tags" json:"tags"`
	DepartmentIDs      pq.StringArray       `db:"department_ids" json:"department_ids"`
	ProcessIDs         pq.StringArray       `db:"process_ids" json:"process_ids"`
	RelatedDocumentIDs pq.StringArray       `db:"related_document_ids" json:"related_document_ids"`
	Status             DocumentStatus       `db:"status" json:"status"`
	CurrentVersion     string               `db:"current_version" json:"current_version"`
	IsActive           bool                 `db:"is_active" json:"is_active"`
	IsPublic           bool                 `db:"is_public" json:"is_public"`
	Author             Actor                `db:"author" json:"author"`
	Reviewers          ReviewerList         `db:"reviewers" json:"reviewers"`
	Versions           VersionList          `db:"versions" json:"versions"`
	AuditLog           AuditLog             `db:"audit_log" json:"audit_log"`
	Comments           CommentList          `db:"comments" json:"comments"`
	ViewCount          int                  `db:"view_count" json:"view_count"`
	DownloadCount      int                  `db:"download_count" json:"download_count"`
	LastViewedAt       *time.Time           `db:"last_viewed_at" json:"last_viewed_at,omitempty"`
	LastDownloadedAt   *time.Time           `db:"last_downloaded_at" json:"last_downloaded_at,omitempty"`
	EffectiveDate      *time.Time           `db:"effective_date" json:"effective_date,omitempty"`
	ExpirationDate     *time.Time           `db:"expiration_date" json:"expiration_date,omitempty"`
	ReviewDate         *time.Time           `db:"review_date" json:"review_date,omitempty"`
	SearchableContent  string               `db:"searchable_content" json:"-"`
	CreatedAt          time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time            `db:"updated_at" json:"updated_at"`
}

// ActiveContent returns the content snapshot of the active version.
func (d *Document) ActiveContent() string {
	if v := d.Versions.Active(); v != nil {
		return v.Content
	}
	return ""
}

type DocumentFilter struct {
	CompanyID       string
	OrganizationID  string
	Query           string
	Types           []DocumentType
	Categories      []DocumentCategory
	Statuses        []DocumentStatus
	Confidentiality []ConfidentialityLevel
	DepartmentIDs   []string
	Tags            []string
	IsActive        *bool
	DateField       string
	StartDate       *time.Time
	EndDate         *time.Time
	SortBy          string
	SortDirection   string
	Limit           int
}

type SearchFacets struct {
	Types       map[string]int `json:"types"`
	Categories  map[string]int `json:"categories"`
	Statuses    map[string]int `json:"statuses"`
	Departments map[string]int `json:"departments"`
	Tags        map[string]int `json:"tags"`
}

type SearchResult struct {
	Documents  []Document   `json:"documents"`
	TotalCount int          `json:"total_count"`
	Facets     SearchFacets `json:"facets"`
}

type DocumentSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Code      string `json:"code"`
	ViewCount int    `json:"view_count"`
}

type ActivityEntry struct {
	DocumentID    string `json:"document_id"`
	DocumentTitle string `json:"document_title"`
	AuditEntry
}

type DocumentModuleStats struct {
	TotalDocuments   int               `json:"total_documents"`
	ByType           map[string]int    `json:"by_type"`
	ByStatus         map[string]int    `json:"by_status"`
	ByCategory       map[string]int    `json:"by_category"`
	ByDepartment     map[string]int    `json:"by_department"`
	CreatedLast7Days int               `json:"created_last_7_days"`
	PendingReview    int               `json:"pending_review"`
	ExpiringSoon     int               `json:"expiring_soon"`
	MostViewed       []DocumentSummary `json:"most_viewed"`
	RecentActivity   []ActivityEntry   `json:"recent_activity"`
}
