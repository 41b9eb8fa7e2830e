package document

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"calidad-be/util"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	service *DocumentService
}

func NewDocumentHandler(service *DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

func actorFromContext(ctx *gin.Context) (Actor, bool) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		return Actor{}, false
	}
	name, _ := ctx.Get("name")
	email, _ := ctx.Get("email")

	return Actor{
		ID:    strconv.FormatInt(userID.(int64), 10),
		Name:  name.(string),
		Email: email.(string),
	}, true
}

func companyFromContext(ctx *gin.Context) (string, bool) {
	companyID, exists := ctx.Get("company_id")
	if !exists {
		return "", false
	}
	id, ok := companyID.(string)
	return id, ok && id != ""
}

type createDocumentRequest struct {
	Title           string     `json:"title" binding:"required"`
	Description     string     `json:"description"`
	DocType         string     `json:"doc_type"`
	Category        string     `json:"category"`
	Code            string     `json:"code"`
	Content         string     `json:"content"`
	Tags            []string   `json:"tags"`
	DepartmentIDs   []string   `json:"department_ids"`
	Confidentiality string     `json:"confidentiality"`
	Language        string     `json:"language"`
	IsPublic        bool       `json:"is_public"`
	OrganizationID  *string    `json:"organization_id"`
	EffectiveDate   *time.Time `json:"effective_date"`
	ExpirationDate  *time.Time `json:"expiration_date"`
	ReviewDate      *time.Time `json:"review_date"`
}

func (h *DocumentHandler) CreateDocument(ctx *gin.Context) {
	var req createDocumentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Title is required")
		return
	}

	actor, ok := actorFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User identity not found")
		return
	}

	companyID, ok := companyFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "Company not found in token")
		return
	}

	doc, err := h.service.Create(CreateDocumentInput{
		CompanyID:       companyID,
		OrganizationID:  req.OrganizationID,
		Author:          actor,
		Title:           req.Title,
		Description:     req.Description,
		DocType:         DocumentType(req.DocType),
		Category:        DocumentCategory(req.Category),
		Code:            req.Code,
		Content:         req.Content,
		Tags:            req.Tags,
		DepartmentIDs:   req.DepartmentIDs,
		Confidentiality: ConfidentialityLevel(req.Confidentiality),
		Language:        req.Language,
		IsPublic:        req.IsPublic,
		EffectiveDate:   req.EffectiveDate,
		ExpirationDate:  req.ExpirationDate,
		ReviewDate:      req.ReviewDate,
	})
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.CreatedResponse(ctx, "Document created successfully", doc)
}

func (h *DocumentHandler) SearchDocuments(ctx *gin.Context) {
	companyID, ok := companyFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "Company not found in token")
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	filter := DocumentFilter{
		CompanyID:      companyID,
		OrganizationID: ctx.Query("organization_id"),
		Query:          ctx.Query("q"),
		DepartmentIDs:  splitCSV(ctx.Query("departments")),
		Tags:           splitCSV(ctx.Query("tags")),
		DateField:      ctx.Query("date_field"),
		SortBy:         ctx.Query("sort_by"),
		SortDirection:  ctx.Query("sort_direction"),
		Limit:          limit,
	}

	for _, v := range splitCSV(ctx.Query("types")) {
		filter.Types = append(filter.Types, DocumentType(v))
	}
	for _, v := range splitCSV(ctx.Query("categories")) {
		filter.Categories = append(filter.Categories, DocumentCategory(v))
	}
	for _, v := range splitCSV(ctx.Query("statuses")) {
		filter.Statuses = append(filter.Statuses, DocumentStatus(v))
	}
	for _, v := range splitCSV(ctx.Query("confidentiality")) {
		filter.Confidentiality = append(filter.Confidentiality, ConfidentialityLevel(v))
	}

	if active := ctx.Query("is_active"); active != "" {
		isActive := active == "true"
		filter.IsActive = &isActive
	}
	if start := ctx.Query("start_date"); start != "" {
		if t, err := parseDate(start); err == nil {
			filter.StartDate = &t
		}
	}
	if end := ctx.Query("end_date"); end != "" {
		if t, err := parseDate(end); err == nil {
			filter.EndDate = &t
		}
	}

	result, err := h.service.Search(filter)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Documents retrieved successfully", result)
}

func (h *DocumentHandler) GetDocument(ctx *gin.Context) {
	doc, err := h.service.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
			return
		}
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Document retrieved successfully", doc)
}

func (h *DocumentHandler) UpdateDocument(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User identity not found")
		return
	}

	var patch UpdateDocumentInput
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.Update(ctx.Param("id"), patch, actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
		case errors.Is(err, ErrInvalidTransition):
			util.ErrorResponse(ctx, http.StatusConflict, err.Error())
		default:
			util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		}
		return
	}

	util.SuccessResponse(ctx, "Document updated successfully", nil)
}

func (h *DocumentHandler) DeleteDocument(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User identity not found")
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	_ = ctx.ShouldBindJSON(&req)

	if err := h.service.Delete(ctx.Param("id"), actor, req.Reason); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
			return
		}
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Document archived successfully", nil)
}

func (h *DocumentHandler) AddComment(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User identity not found")
		return
	}

	var req struct {
		Content  string  `json:"content" binding:"required"`
		ParentID *string `json:"parent_id"`
		Position *int    `json:"position"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorResponse(ctx, http.StatusBadRequest, "Content is required")
		return
	}

	err := h.service.AddComment(ctx.Param("id"), req.Content, actor, req.ParentID, req.Position)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
			return
		}
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Comment added successfully", nil)
}

func (h *DocumentHandler) RecordView(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User identity not found")
		return
	}

	if err := h.service.RecordView(ctx.Param("id"), actor.ID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
			return
		}
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "View recorded", nil)
}

func (h *DocumentHandler) RecordDownload(ctx *gin.Context) {
	actor, ok := actorFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "User identity not found")
		return
	}

	if err := h.service.RecordDownload(ctx.Param("id"), actor.ID); err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
			return
		}
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Download recorded", nil)
}

func (h *DocumentHandler) GetModuleStats(ctx *gin.Context) {
	companyID, ok := companyFromContext(ctx)
	if !ok {
		util.ErrorResponse(ctx, http.StatusUnauthorized, "Company not found in token")
		return
	}

	stats, err := h.service.ModuleStats(companyID)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Module stats retrieved successfully", stats)
}

func (h *DocumentHandler) GenerateShareToken(ctx *gin.Context) {
	token, err := h.service.GenerateShareToken(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
			return
		}
		util.ErrorResponse(ctx, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(ctx, "Share token generated", gin.H{"token": token})
}

func (h *DocumentHandler) GetSharedDocument(ctx *gin.Context) {
	documentID, err := h.service.ResolveShareToken(ctx.Param("token"))
	if err != nil {
		util.ErrorResponse(ctx, http.StatusNotFound, err.Error())
		return
	}

	doc, err := h.service.GetByID(documentID)
	if err != nil {
		util.ErrorResponse(ctx, http.StatusNotFound, "Document not found")
		return
	}

	util.SuccessResponse(ctx, "Document retrieved successfully", doc)
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
