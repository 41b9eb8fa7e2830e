package document

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

type fakeStore struct {
	mu       sync.Mutex
	docs     map[string]*Document
	codeSeqs map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:     map[string]*Document{},
		codeSeqs: map[string]int{},
	}
}

func (f *fakeStore) GetByID(id string) (*Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	clone := *doc
	return &clone, nil
}

func (f *fakeStore) Insert(doc *Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *doc
	f.docs[doc.ID] = &clone
	return nil
}

func (f *fakeStore) List(filter DocumentFilter) ([]Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []string
	for id := range f.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var out []Document
	for _, id := range ids {
		doc := f.docs[id]
		if doc.CompanyID != filter.CompanyID {
			continue
		}
		if filter.IsActive != nil && doc.IsActive != *filter.IsActive {
			continue
		}
		if len(filter.Types) > 0 && !containsType(filter.Types, doc.DocType) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, doc.Status) {
			continue
		}
		if len(filter.Tags) > 0 && !overlaps(doc.Tags, filter.Tags) {
			continue
		}
		if len(out) >= limit {
			break
		}
		out = append(out, *doc)
	}
	return out, nil
}

func containsType(list []DocumentType, v DocumentType) bool {
	for _, t := range list {
		if t == v {
			return true
		}
	}
	return false
}

func containsStatus(list []DocumentStatus, v DocumentStatus) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func overlaps(a []string, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func (f *fakeStore) UpdateWithLock(id string, mutate func(*Document) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	clone := *doc
	if err := mutate(&clone); err != nil {
		return err
	}
	clone.UpdatedAt = time.Now()
	f.docs[id] = &clone
	return nil
}

func (f *fakeStore) IncrementView(id string, entry AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	now := time.Now()
	doc.ViewCount++
	doc.LastViewedAt = &now
	doc.AuditLog = append(doc.AuditLog, entry)
	return nil
}

func (f *fakeStore) IncrementDownload(id string, entry AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	now := time.Now()
	doc.DownloadCount++
	doc.LastDownloadedAt = &now
	doc.AuditLog = append(doc.AuditLog, entry)
	return nil
}

func (f *fakeStore) AppendComment(id string, comment Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return ErrDocumentNotFound
	}
	doc.Comments = append(doc.Comments, comment)
	return nil
}

func (f *fakeStore) NextCodeSeq(companyID string, docType DocumentType, year int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := fmt.Sprintf("%s/%s/%d", companyID, docType, year)
	f.codeSeqs[key]++
	return f.codeSeqs[key], nil
}

func newTestService(t *testing.T) (*DocumentService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewDocumentService(store, nil), store
}

var testAuthor = Actor{ID: "7", Name: "Laura Pérez", Email: "laura@hotel.test"}

func createTestDocument(t *testing.T, svc *DocumentService, input CreateDocumentInput) *Document {
	t.Helper()
	if input.CompanyID == "" {
		input.CompanyID = "T1"
	}
	if input.Author.ID == "" {
		input.Author = testAuthor
	}
	doc, err := svc.Create(input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return doc
}

func TestCreateDocumentDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	doc := createTestDocument(t, svc, CreateDocumentInput{
		Title:    "Safety Checklist",
		DocType:  TypeChecklist,
		Category: CategorySafety,
		Content:  "1. Check fire exits",
	})

	if doc.Status != StatusDraft {
		t.Errorf("Status = %q, want draft", doc.Status)
	}
	if doc.CurrentVersion != "1.0" {
		t.Errorf("CurrentVersion = %q, want 1.0", doc.CurrentVersion)
	}
	if len(doc.Versions) != 1 {
		t.Fatalf("len(Versions) = %d, want 1", len(doc.Versions))
	}
	if !doc.Versions[0].IsActive {
		t.Error("initial version should be active")
	}
	if len(doc.AuditLog) != 1 || doc.AuditLog[0].Action != ActionCreated {
		t.Fatalf("expected one 'created' audit entry, got %+v", doc.AuditLog)
	}
	if doc.Confidentiality != ConfidentialityInternal {
		t.Errorf("Confidentiality = %q, want internal default", doc.Confidentiality)
	}
	if doc.ViewCount != 0 || doc.DownloadCount != 0 {
		t.Error("stats should be zero-initialized")
	}
	if !doc.IsActive {
		t.Error("new document should be active")
	}

	yy := time.Now().Year() % 100
	wantCode := fmt.Sprintf("CHK-%02d-001", yy)
	if doc.Code != wantCode {
		t.Errorf("Code = %q, want %q", doc.Code, wantCode)
	}

	if !strings.Contains(doc.SearchableContent, "safety checklist") {
		t.Errorf("SearchableContent %q should contain lower-cased title", doc.SearchableContent)
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Create(CreateDocumentInput{CompanyID: "T1", Author: testAuthor}); err == nil {
		t.Fatal("expected error for missing title")
	}
}

func TestCodeGenerationSequence(t *testing.T) {
	svc, _ := newTestService(t)
	yy := time.Now().Year() % 100

	first := createTestDocument(t, svc, CreateDocumentInput{Title: "Cleaning Procedure", DocType: TypeProcedure})
	second := createTestDocument(t, svc, CreateDocumentInput{Title: "Laundry Procedure", DocType: TypeProcedure})

	if want := fmt.Sprintf("PRO-%02d-001", yy); first.Code != want {
		t.Errorf("first Code = %q, want %q", first.Code, want)
	}
	if want := fmt.Sprintf("PRO-%02d-002", yy); second.Code != want {
		t.Errorf("second Code = %q, want %q", second.Code, want)
	}

	// A different type starts its own sequence.
	manual := createTestDocument(t, svc, CreateDocumentInput{Title: "M1", DocType: TypeManual})
	if want := fmt.Sprintf("MAN-%02d-001", yy); manual.Code != want {
		t.Errorf("manual Code = %q, want %q", manual.Code, want)
	}
}

func TestCreateKeepsExplicitCode(t *testing.T) {
	svc, _ := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "X", DocType: TypePolicy, Code: "POL-99-777"})
	if doc.Code != "POL-99-777" {
		t.Errorf("Code = %q, want explicit code kept", doc.Code)
	}
}

func TestUpdateContentMinorBump(t *testing.T) {
	svc, store := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{
		Title:   "Procedure",
		DocType: TypeProcedure,
		Content: strings.Repeat("a", 500),
	})

	newContent := strings.Repeat("a", 510)
	err := svc.Update(doc.ID, UpdateDocumentInput{Content: &newContent}, testAuthor)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated, _ := store.GetByID(doc.ID)
	if updated.CurrentVersion != "1.1" {
		t.Errorf("CurrentVersion = %q, want 1.1", updated.CurrentVersion)
	}
	if len(updated.Versions) != 2 {
		t.Fatalf("len(Versions) = %d, want 2", len(updated.Versions))
	}

	active := 0
	for _, v := range updated.Versions {
		if v.IsActive {
			active++
			if v.Version != "1.1" {
				t.Errorf("active version = %q, want 1.1", v.Version)
			}
			if v.Content != newContent {
				t.Error("active version should hold the new content")
			}
		}
	}
	if active != 1 {
		t.Errorf("active versions = %d, want exactly 1", active)
	}
}

func TestUpdateContentMajorBump(t *testing.T) {
	svc, store := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{
		Title:   "Manual",
		DocType: TypeManual,
		Content: strings.Repeat("a", 1000),
	})

	newContent := strings.Repeat("a", 600)
	if err := svc.Update(doc.ID, UpdateDocumentInput{Content: &newContent}, testAuthor); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated, _ := store.GetByID(doc.ID)
	if updated.CurrentVersion != "2.0" {
		t.Errorf("CurrentVersion = %q, want 2.0", updated.CurrentVersion)
	}
}

func TestUpdateSameContentSkipsVersion(t *testing.T) {
	svc, store := newTestService(t)
	content := "unchanged body"
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "T", Content: content})

	newTitle := "New title"
	err := svc.Update(doc.ID, UpdateDocumentInput{Title: &newTitle, Content: &content}, testAuthor)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated, _ := store.GetByID(doc.ID)
	if updated.CurrentVersion != "1.0" {
		t.Errorf("CurrentVersion = %q, want 1.0 (content unchanged)", updated.CurrentVersion)
	}
	if len(updated.Versions) != 1 {
		t.Errorf("len(Versions) = %d, want 1", len(updated.Versions))
	}
	if updated.Title != "New title" {
		t.Errorf("Title = %q, want merged patch", updated.Title)
	}
	// The update itself is still audited.
	if len(updated.AuditLog) != 2 {
		t.Errorf("len(AuditLog) = %d, want 2", len(updated.AuditLog))
	}
}

func TestUpdateAuditSnapshot(t *testing.T) {
	svc, store := newTestService(t)
	longContent := strings.Repeat("z", 300)
	doc := createTestDocument(t, svc, CreateDocumentInput{
		Title:   "Old title",
		DocType: TypePolicy,
		Content: longContent,
	})

	newTitle := "New title"
	if err := svc.Update(doc.ID, UpdateDocumentInput{Title: &newTitle, Reason: "typo"}, testAuthor); err != nil {
		t.Fatalf("Update: %v", err)
	}

	updated, _ := store.GetByID(doc.ID)
	entry := updated.AuditLog[len(updated.AuditLog)-1]
	if entry.Action != ActionUpdated {
		t.Fatalf("action = %q, want updated", entry.Action)
	}
	if entry.OldValues["title"] != "Old title" {
		t.Errorf("old title snapshot = %v", entry.OldValues["title"])
	}
	if got := entry.OldValues["content"].(string); len(got) != 100 {
		t.Errorf("content excerpt length = %d, want 100", len(got))
	}
	if entry.NewValues["title"] != "New title" {
		t.Errorf("new values = %v", entry.NewValues)
	}
	if entry.Reason != "typo" {
		t.Errorf("reason = %q", entry.Reason)
	}
	if entry.ActorID != testAuthor.ID {
		t.Errorf("actor = %q", entry.ActorID)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	title := "x"
	err := svc.Update("missing-id", UpdateDocumentInput{Title: &title}, testAuthor)
	if !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("err = %v, want ErrDocumentNotFound", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, store := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "T"})

	review := StatusReview
	if err := svc.Update(doc.ID, UpdateDocumentInput{Status: &review}, testAuthor); err != nil {
		t.Fatalf("draft -> review should be allowed: %v", err)
	}

	published := StatusPublished
	doc2 := createTestDocument(t, svc, CreateDocumentInput{Title: "T2"})
	err := svc.Update(doc2.ID, UpdateDocumentInput{Status: &published}, testAuthor)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("draft -> published: err = %v, want ErrInvalidTransition", err)
	}

	// A rejected transition leaves the document untouched.
	unchanged, _ := store.GetByID(doc2.ID)
	if unchanged.Status != StatusDraft {
		t.Errorf("Status = %q, want draft after rejected transition", unchanged.Status)
	}
	if len(unchanged.AuditLog) != 1 {
		t.Errorf("len(AuditLog) = %d, want 1 (failed update must not audit)", len(unchanged.AuditLog))
	}
}

func TestSoftDelete(t *testing.T) {
	svc, _ := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "To archive"})

	if err := svc.Delete(doc.ID, testAuthor, "superseded"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	isActive := true
	result, err := svc.Search(DocumentFilter{CompanyID: "T1", IsActive: &isActive})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	for _, d := range result.Documents {
		if d.ID == doc.ID {
			t.Error("archived document must not appear in active search")
		}
	}

	archived, err := svc.GetByID(doc.ID)
	if err != nil {
		t.Fatalf("GetByID after delete: %v", err)
	}
	if archived.Status != StatusArchived {
		t.Errorf("Status = %q, want archived", archived.Status)
	}
	if archived.IsActive {
		t.Error("IsActive should be false")
	}

	last := archived.AuditLog[len(archived.AuditLog)-1]
	if last.Action != ActionDeleted || last.Reason != "superseded" {
		t.Errorf("last audit entry = %+v, want deleted/superseded", last)
	}
}

func TestRecordViewCounts(t *testing.T) {
	svc, store := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "Viewed"})

	for i := 0; i < 3; i++ {
		if err := svc.RecordView(doc.ID, "user-9"); err != nil {
			t.Fatalf("RecordView: %v", err)
		}
	}

	updated, _ := store.GetByID(doc.ID)
	if updated.ViewCount != 3 {
		t.Errorf("ViewCount = %d, want 3", updated.ViewCount)
	}

	viewed := 0
	for _, entry := range updated.AuditLog {
		if entry.Action == ActionViewed {
			viewed++
			if entry.ActorID != "user-9" {
				t.Errorf("viewed actor = %q", entry.ActorID)
			}
		}
	}
	if viewed != 3 {
		t.Errorf("viewed audit entries = %d, want 3", viewed)
	}
	if updated.LastViewedAt == nil {
		t.Error("LastViewedAt should be stamped")
	}
}

func TestRecordDownloadCounts(t *testing.T) {
	svc, store := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "Downloaded"})

	if err := svc.RecordDownload(doc.ID, "user-3"); err != nil {
		t.Fatalf("RecordDownload: %v", err)
	}

	updated, _ := store.GetByID(doc.ID)
	if updated.DownloadCount != 1 {
		t.Errorf("DownloadCount = %d, want 1", updated.DownloadCount)
	}
	last := updated.AuditLog[len(updated.AuditLog)-1]
	if last.Action != ActionDownloaded {
		t.Errorf("last action = %q, want downloaded", last.Action)
	}
}

func TestAuditAppendOnly(t *testing.T) {
	svc, store := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "Audited", Content: "v1"})

	steps := []func() error{
		func() error {
			content := "v1 with a small amendment"
			return svc.Update(doc.ID, UpdateDocumentInput{Content: &content}, testAuthor)
		},
		func() error { return svc.RecordView(doc.ID, "u1") },
		func() error { return svc.RecordDownload(doc.ID, "u1") },
		func() error { return svc.Delete(doc.ID, testAuthor, "") },
	}

	prev, _ := store.GetByID(doc.ID)
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		current, _ := store.GetByID(doc.ID)
		if len(current.AuditLog) != len(prev.AuditLog)+1 {
			t.Fatalf("step %d: audit length %d, want %d", i, len(current.AuditLog), len(prev.AuditLog)+1)
		}
		for j := range prev.AuditLog {
			if current.AuditLog[j].ID != prev.AuditLog[j].ID {
				t.Fatalf("step %d: existing audit entry %d was rewritten", i, j)
			}
		}
		prev = current
	}
}

func TestAddComment(t *testing.T) {
	svc, store := newTestService(t)
	doc := createTestDocument(t, svc, CreateDocumentInput{Title: "Commented"})

	if err := svc.AddComment(doc.ID, "Please clarify section 2", testAuthor, nil, nil); err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	updated, _ := store.GetByID(doc.ID)
	if len(updated.Comments) != 1 {
		t.Fatalf("len(Comments) = %d, want 1", len(updated.Comments))
	}
	first := updated.Comments[0]
	if first.ID == "" {
		t.Error("comment should get a generated id")
	}
	if first.IsResolved {
		t.Error("new comment should not be resolved")
	}

	// Threaded reply references the parent by id.
	pos := 12
	if err := svc.AddComment(doc.ID, "Agreed", Actor{ID: "2", Name: "Marco"}, &first.ID, &pos); err != nil {
		t.Fatalf("AddComment reply: %v", err)
	}
	updated, _ = store.GetByID(doc.ID)
	reply := updated.Comments[1]
	if reply.ParentID == nil || *reply.ParentID != first.ID {
		t.Error("reply should reference the parent comment")
	}
	if reply.Position == nil || *reply.Position != 12 {
		t.Error("reply position should be kept")
	}
}

func TestSearchFreeText(t *testing.T) {
	svc, _ := newTestService(t)
	createTestDocument(t, svc, CreateDocumentInput{Title: "Fire safety plan", Content: "extinguishers"})
	createTestDocument(t, svc, CreateDocumentInput{Title: "Breakfast menu", Content: "croissants"})
	createTestDocument(t, svc, CreateDocumentInput{Title: "Pool rules", Tags: []string{"safety"}})

	result, err := svc.Search(DocumentFilter{CompanyID: "T1", Query: "safety"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Documents) != 2 {
		t.Fatalf("matches = %d, want 2 (title match + tag match)", len(result.Documents))
	}

	result, err = svc.Search(DocumentFilter{CompanyID: "T1", Query: "croissant"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Documents) != 1 {
		t.Fatalf("content matches = %d, want 1", len(result.Documents))
	}

	result, err = svc.Search(DocumentFilter{CompanyID: "T1", Query: "no-such-thing"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Documents) != 0 {
		t.Fatalf("matches = %d, want 0 with no error", len(result.Documents))
	}
}

func TestSearchFacetsMatchPage(t *testing.T) {
	svc, _ := newTestService(t)
	for i := 0; i < 5; i++ {
		createTestDocument(t, svc, CreateDocumentInput{
			Title:    fmt.Sprintf("Doc %d", i),
			DocType:  TypeProcedure,
			Category: CategoryQuality,
		})
	}

	result, err := svc.Search(DocumentFilter{CompanyID: "T1", Limit: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(result.Documents) != 2 {
		t.Fatalf("page size = %d, want 2", len(result.Documents))
	}

	sum := 0
	for _, n := range result.Facets.Types {
		sum += n
	}
	if sum != len(result.Documents) {
		t.Errorf("type facet sum = %d, want %d (page only, not full population)", sum, len(result.Documents))
	}

	sum = 0
	for _, n := range result.Facets.Statuses {
		sum += n
	}
	if sum != len(result.Documents) {
		t.Errorf("status facet sum = %d, want %d", sum, len(result.Documents))
	}
}

func TestSearchRequiresCompany(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Search(DocumentFilter{}); err == nil {
		t.Fatal("expected error for missing company id")
	}
}

func TestModuleStats(t *testing.T) {
	svc, _ := newTestService(t)

	docA := createTestDocument(t, svc, CreateDocumentInput{Title: "A", DocType: TypeProcedure, Category: CategoryQuality})
	createTestDocument(t, svc, CreateDocumentInput{Title: "B", DocType: TypeManual, Category: CategorySafety})

	review := StatusReview
	if err := svc.Update(docA.ID, UpdateDocumentInput{Status: &review}, testAuthor); err != nil {
		t.Fatalf("Update: %v", err)
	}

	soon := time.Now().AddDate(0, 0, 10)
	expiring := createTestDocument(t, svc, CreateDocumentInput{Title: "C", ExpirationDate: &soon})

	for i := 0; i < 4; i++ {
		if err := svc.RecordView(expiring.ID, "u"); err != nil {
			t.Fatalf("RecordView: %v", err)
		}
	}

	stats, err := svc.ModuleStats("T1")
	if err != nil {
		t.Fatalf("ModuleStats: %v", err)
	}

	if stats.TotalDocuments != 3 {
		t.Errorf("TotalDocuments = %d, want 3", stats.TotalDocuments)
	}
	if stats.ByType["procedure"] != 1 || stats.ByType["manual"] != 1 {
		t.Errorf("ByType = %v", stats.ByType)
	}
	if stats.PendingReview != 1 {
		t.Errorf("PendingReview = %d, want 1", stats.PendingReview)
	}
	if stats.CreatedLast7Days != 3 {
		t.Errorf("CreatedLast7Days = %d, want 3", stats.CreatedLast7Days)
	}
	if stats.ExpiringSoon != 1 {
		t.Errorf("ExpiringSoon = %d, want 1", stats.ExpiringSoon)
	}
	if len(stats.MostViewed) == 0 || stats.MostViewed[0].ID != expiring.ID {
		t.Errorf("MostViewed[0] should be the 4-view document: %+v", stats.MostViewed)
	}
	if len(stats.RecentActivity) == 0 {
		t.Error("RecentActivity should not be empty")
	}
	for i := 1; i < len(stats.RecentActivity); i++ {
		if stats.RecentActivity[i].Timestamp.After(stats.RecentActivity[i-1].Timestamp) {
			t.Error("RecentActivity should be sorted newest first")
		}
	}

	// Stats stay scoped to the requested company.
	other, err := svc.ModuleStats("T2")
	if err != nil {
		t.Fatalf("ModuleStats: %v", err)
	}
	if other.TotalDocuments != 0 {
		t.Errorf("T2 TotalDocuments = %d, want 0", other.TotalDocuments)
	}
}

func TestBuildSearchableContent(t *testing.T) {
	got := buildSearchableContent("Fire Plan", "Emergency EXITS", "Use stairs", []string{"Safety"})
	want := "fire plan emergency exits use stairs safety"
	if got != want {
		t.Errorf("buildSearchableContent = %q, want %q", got, want)
	}
}
