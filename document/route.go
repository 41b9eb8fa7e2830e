package document

import (
	"calidad-be/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB, redisClient *redis.Client) {
	repo := NewDocumentRepository(db)
	service := NewDocumentService(repo, redisClient)
	handler := NewDocumentHandler(service)

	r.GET("/api/documents/shared/:token", handler.GetSharedDocument)

	documentRoutes := r.Group("/api/documents")
	documentRoutes.Use(middleware.AuthMiddleware())
	{
		documentRoutes.GET("", handler.SearchDocuments)
		documentRoutes.POST("", handler.CreateDocument)
		documentRoutes.GET("/stats", handler.GetModuleStats)
		documentRoutes.GET("/:id", handler.GetDocument)
		documentRoutes.PUT("/:id", handler.UpdateDocument)
		documentRoutes.DELETE("/:id", handler.DeleteDocument)
		documentRoutes.POST("/:id/comments", handler.AddComment)
		documentRoutes.POST("/:id/view", handler.RecordView)
		documentRoutes.POST("/:id/download", handler.RecordDownload)
		documentRoutes.POST("/:id/share", handler.GenerateShareToken)
	}
}
