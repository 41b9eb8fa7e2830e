package document

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"calidad-be/util"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

type DocumentService struct {
	store Store
	redis *redis.Client
}

func NewDocumentService(store Store, redisClient *redis.Client) *DocumentService {
	return &DocumentService{
		store: store,
		redis: redisClient,
	}
}

type CreateDocumentInput struct {
	CompanyID       string
	OrganizationID  *string
	Author          Actor
	Title           string
	Description     string
	DocType         DocumentType
	Category        DocumentCategory
	Code            string
	Content         string
	Tags            []string
	DepartmentIDs   []string
	Confidentiality ConfidentialityLevel
	Language        string
	IsPublic        bool
	EffectiveDate   *time.Time
	ExpirationDate  *time.Time
	ReviewDate      *time.Time
}

func (s *DocumentService) Create(input CreateDocumentInput) (*Document, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.CompanyID == "" {
		return nil, fmt.Errorf("company id is required")
	}

	if input.Confidentiality == "" {
		input.Confidentiality = ConfidentialityInternal
	}
	if input.Language == "" {
		input.Language = "es"
	}
	if input.DocType == "" {
		input.DocType = TypeOther
	}
	if input.Category == "" {
		input.Category = CategoryOther
	}

	code := input.Code
	if code == "" {
		year := time.Now().Year()
		seq, err := s.store.NextCodeSeq(input.CompanyID, input.DocType, year)
		if err != nil {
			return nil, fmt.Errorf("failed to generate document code: %w", err)
		}
		code = formatCode(input.DocType, year, seq)
	}

	now := time.Now()
	doc := &Document{
		ID:              uuid.New().String(),
		CompanyID:       input.CompanyID,
		OrganizationID:  input.OrganizationID,
		Title:           input.Title,
		Description:     input.Description,
		DocType:         input.DocType,
		Category:        input.Category,
		Code:            code,
		Confidentiality: input.Confidentiality,
		Language:        input.Language,
		Tags:            pq.StringArray(input.Tags),
		DepartmentIDs:   pq.StringArray(input.DepartmentIDs),
		Status:          StatusDraft,
		CurrentVersion:  initialVersion,
		IsActive:        true,
		IsPublic:        input.IsPublic,
		Author:          input.Author,
		Reviewers:       ReviewerList{},
		Versions: VersionList{{
			ID:        uuid.New().String(),
			Version:   initialVersion,
			Content:   input.Content,
			Changelog: "Initial version",
			IsActive:  true,
			CreatedBy: input.Author,
			CreatedAt: now,
		}},
		AuditLog: AuditLog{{
			ID:        uuid.New().String(),
			Action:    ActionCreated,
			ActorID:   input.Author.ID,
			ActorName: input.Author.Name,
			Timestamp: now,
		}},
		Comments:          CommentList{},
		EffectiveDate:     input.EffectiveDate,
		ExpirationDate:    input.ExpirationDate,
		ReviewDate:        input.ReviewDate,
		SearchableContent: buildSearchableContent(input.Title, input.Description, input.Content, input.Tags),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.store.Insert(doc); err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	return doc, nil
}

type UpdateDocumentInput struct {
	Title              *string               `json:"title"`
	Description        *string               `json:"description"`
	DocType            *DocumentType         `json:"doc_type"`
	Category           *DocumentCategory     `json:"category"`
	Confidentiality    *ConfidentialityLevel `json:"confidentiality"`
	Language           *string               `json:"language"`
	Content            *string               `json:"content"`
	Changelog          string                `json:"changelog"`
	Status             *DocumentStatus       `json:"status"`
	Tags               *[]string             `json:"tags"`
	DepartmentIDs      *[]string             `json:"department_ids"`
	ProcessIDs         *[]string             `json:"process_ids"`
	RelatedDocumentIDs *[]string             `json:"related_document_ids"`
	IsPublic           *bool                 `json:"is_public"`
	EffectiveDate      *time.Time            `json:"effective_date"`
	ExpirationDate     *time.Time            `json:"expiration_date"`
	ReviewDate         *time.Time            `json:"review_date"`
	Reason             string                `json:"reason"`
}

func (s *DocumentService) Update(id string, patch UpdateDocumentInput, actor Actor) error {
	return s.store.UpdateWithLock(id, func(doc *Document) error {
		oldValues := map[string]interface{}{
			"title":    doc.Title,
			"doc_type": string(doc.DocType),
			"category": string(doc.Category),
			"status":   string(doc.Status),
			"content":  excerpt(doc.ActiveContent(), 100),
		}
		newValues := map[string]interface{}{}

		metadataChanged := false
		if patch.Title != nil {
			doc.Title = *patch.Title
			newValues["title"] = *patch.Title
			metadataChanged = true
		}
		if patch.Description != nil {
			doc.Description = *patch.Description
			newValues["description"] = *patch.Description
			metadataChanged = true
		}
		if patch.DocType != nil {
			doc.DocType = *patch.DocType
			newValues["doc_type"] = string(*patch.DocType)
		}
		if patch.Category != nil {
			doc.Category = *patch.Category
			newValues["category"] = string(*patch.Category)
		}
		if patch.Confidentiality != nil {
			doc.Confidentiality = *patch.Confidentiality
			newValues["confidentiality"] = string(*patch.Confidentiality)
		}
		if patch.Language != nil {
			doc.Language = *patch.Language
			newValues["language"] = *patch.Language
		}
		if patch.Status != nil && *patch.Status != doc.Status {
			if !CanTransition(doc.Status, *patch.Status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, doc.Status, *patch.Status)
			}
			doc.Status = *patch.Status
			newValues["status"] = string(*patch.Status)
		}
		if patch.Tags != nil {
			doc.Tags = pq.StringArray(*patch.Tags)
			newValues["tags"] = *patch.Tags
			metadataChanged = true
		}
		if patch.DepartmentIDs != nil {
			doc.DepartmentIDs = pq.StringArray(*patch.DepartmentIDs)
			newValues["department_ids"] = *patch.DepartmentIDs
		}
		if patch.ProcessIDs != nil {
			doc.ProcessIDs = pq.StringArray(*patch.ProcessIDs)
			newValues["process_ids"] = *patch.ProcessIDs
		}
		if patch.RelatedDocumentIDs != nil {
			doc.RelatedDocumentIDs = pq.StringArray(*patch.RelatedDocumentIDs)
			newValues["related_document_ids"] = *patch.RelatedDocumentIDs
		}
		if patch.IsPublic != nil {
			doc.IsPublic = *patch.IsPublic
			newValues["is_public"] = *patch.IsPublic
		}
		if patch.EffectiveDate != nil {
			doc.EffectiveDate = patch.EffectiveDate
			newValues["effective_date"] = *patch.EffectiveDate
		}
		if patch.ExpirationDate != nil {
			doc.ExpirationDate = patch.ExpirationDate
			newValues["expiration_date"] = *patch.ExpirationDate
		}
		if patch.ReviewDate != nil {
			doc.ReviewDate = patch.ReviewDate
			newValues["review_date"] = *patch.ReviewDate
		}

		contentChanged := false
		if patch.Content != nil && *patch.Content != doc.ActiveContent() {
			contentChanged = true
			oldContent := doc.ActiveContent()
			newVersion := nextVersion(doc.CurrentVersion, isMinorChange(oldContent, *patch.Content))

			changelog := patch.Changelog
			if changelog == "" {
				changelog = patch.Reason
			}

			for i := range doc.Versions {
				doc.Versions[i].IsActive = false
			}
			doc.Versions = append(doc.Versions, Version{
				ID:        uuid.New().String(),
				Version:   newVersion,
				Content:   *patch.Content,
				Changelog: changelog,
				IsActive:  true,
				CreatedBy: actor,
				CreatedAt: time.Now(),
			})
			doc.CurrentVersion = newVersion
			newValues["version"] = newVersion
		}

		doc.AuditLog = append(doc.AuditLog, AuditEntry{
			ID:        uuid.New().String(),
			Action:    ActionUpdated,
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Timestamp: time.Now(),
			OldValues: oldValues,
			NewValues: newValues,
			Reason:    patch.Reason,
		})

		if metadataChanged || contentChanged {
			doc.SearchableContent = buildSearchableContent(doc.Title, doc.Description, doc.ActiveContent(), doc.Tags)
		}

		return nil
	})
}

// Delete is a soft delete: the document stays readable by id but drops out
// of active listings.
func (s *DocumentService) Delete(id string, actor Actor, reason string) error {
	return s.store.UpdateWithLock(id, func(doc *Document) error {
		doc.IsActive = false
		doc.Status = StatusArchived
		doc.AuditLog = append(doc.AuditLog, AuditEntry{
			ID:        uuid.New().String(),
			Action:    ActionDeleted,
			ActorID:   actor.ID,
			ActorName: actor.Name,
			Timestamp: time.Now(),
			Reason:    reason,
		})
		return nil
	})
}

func (s *DocumentService) GetByID(id string) (*Document, error) {
	return s.store.GetByID(id)
}

func (s *DocumentService) AddComment(id, content string, author Actor, parentID *string, position *int) error {
	comment := Comment{
		ID:         uuid.New().String(),
		Content:    content,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		ParentID:   parentID,
		Position:   position,
		IsResolved: false,
		CreatedAt:  time.Now(),
	}
	return s.store.AppendComment(id, comment)
}

func (s *DocumentService) RecordView(id, userID string) error {
	return s.store.IncrementView(id, AuditEntry{
		ID:        uuid.New().String(),
		Action:    ActionViewed,
		ActorID:   userID,
		Timestamp: time.Now(),
	})
}

func (s *DocumentService) RecordDownload(id, userID string) error {
	return s.store.IncrementDownload(id, AuditEntry{
		ID:        uuid.New().String(),
		Action:    ActionDownloaded,
		ActorID:   userID,
		Timestamp: time.Now(),
	})
}

// Search applies the structured filters in the store and, when a free-text
// query is present, a substring filter over the fetched page. Facets are
// computed from the returned page only.
func (s *DocumentService) Search(filter DocumentFilter) (*SearchResult, error) {
	if filter.CompanyID == "" {
		return nil, fmt.Errorf("company id is required")
	}

	documents, err := s.store.List(filter)
	if err != nil {
		return nil, err
	}

	if filter.Query != "" {
		documents = filterByQuery(documents, filter.Query)
	}

	return &SearchResult{
		Documents:  documents,
		TotalCount: len(documents),
		Facets:     computeFacets(documents),
	}, nil
}

func filterByQuery(documents []Document, query string) []Document {
	q := strings.ToLower(query)
	matched := make([]Document, 0, len(documents))

	for _, doc := range documents {
		if strings.Contains(strings.ToLower(doc.Title), q) ||
			strings.Contains(strings.ToLower(doc.Description), q) ||
			strings.Contains(strings.ToLower(doc.ActiveContent()), q) ||
			tagsMatch(doc.Tags, q) {
			matched = append(matched, doc)
		}
	}
	return matched
}

func tagsMatch(tags []string, q string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func computeFacets(documents []Document) SearchFacets {
	facets := SearchFacets{
		Types:       map[string]int{},
		Categories:  map[string]int{},
		Statuses:    map[string]int{},
		Departments: map[string]int{},
		Tags:        map[string]int{},
	}

	for _, doc := range documents {
		facets.Types[string(doc.DocType)]++
		facets.Categories[string(doc.Category)]++
		facets.Statuses[string(doc.Status)]++
		for _, dep := range doc.DepartmentIDs {
			facets.Departments[dep]++
		}
		for _, tag := range doc.Tags {
			facets.Tags[tag]++
		}
	}
	return facets
}

const moduleStatsFetchLimit = 1000

// ModuleStats aggregates over at most moduleStatsFetchLimit documents of
// the company; documents beyond that limit are not counted.
func (s *DocumentService) ModuleStats(companyID string) (*DocumentModuleStats, error) {
	documents, err := s.store.List(DocumentFilter{
		CompanyID: companyID,
		Limit:     moduleStatsFetchLimit,
	})
	if err != nil {
		return nil, err
	}

	stats := &DocumentModuleStats{
		TotalDocuments: len(documents),
		ByType:         map[string]int{},
		ByStatus:       map[string]int{},
		ByCategory:     map[string]int{},
		ByDepartment:   map[string]int{},
	}

	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	expiryHorizon := now.AddDate(0, 0, 30)

	var activity []ActivityEntry

	for _, doc := range documents {
		stats.ByType[string(doc.DocType)]++
		stats.ByStatus[string(doc.Status)]++
		stats.ByCategory[string(doc.Category)]++
		for _, dep := range doc.DepartmentIDs {
			stats.ByDepartment[dep]++
		}

		if doc.CreatedAt.After(weekAgo) {
			stats.CreatedLast7Days++
		}
		if doc.Status == StatusReview {
			stats.PendingReview++
		}
		if doc.ExpirationDate != nil && doc.ExpirationDate.After(now) && doc.ExpirationDate.Before(expiryHorizon) {
			stats.ExpiringSoon++
		}

		for _, entry := range doc.AuditLog {
			activity = append(activity, ActivityEntry{
				DocumentID:    doc.ID,
				DocumentTitle: doc.Title,
				AuditEntry:    entry,
			})
		}
	}

	sorted := make([]Document, len(documents))
	copy(sorted, documents)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ViewCount > sorted[j].ViewCount
	})
	for i := 0; i < len(sorted) && i < 5; i++ {
		stats.MostViewed = append(stats.MostViewed, DocumentSummary{
			ID:        sorted[i].ID,
			Title:     sorted[i].Title,
			Code:      sorted[i].Code,
			ViewCount: sorted[i].ViewCount,
		})
	}

	sort.Slice(activity, func(i, j int) bool {
		return activity[i].Timestamp.After(activity[j].Timestamp)
	})
	if len(activity) > 10 {
		activity = activity[:10]
	}
	stats.RecentActivity = activity

	return stats, nil
}

// GenerateShareToken stores a short-lived token in redis that resolves to
// the document id, used for unauthenticated share links.
func (s *DocumentService) GenerateShareToken(documentID string) (string, error) {
	if _, err := s.store.GetByID(documentID); err != nil {
		return "", err
	}

	token := util.RandString(16)
	key := "share_token:" + token

	ctx := context.Background()
	if err := s.redis.Set(ctx, key, documentID, 5*time.Minute).Err(); err != nil {
		return "", fmt.Errorf("failed to store share token: %w", err)
	}

	return token, nil
}

func (s *DocumentService) ResolveShareToken(token string) (string, error) {
	ctx := context.Background()
	documentID, err := s.redis.Get(ctx, "share_token:"+token).Result()
	if err != nil {
		return "", fmt.Errorf("share token expired or invalid")
	}
	return documentID, nil
}

func buildSearchableContent(title, description, content string, tags []string) string {
	parts := []string{title, description, content}
	parts = append(parts, tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
