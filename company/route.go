package company

import (
	"calidad-be/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

func RegisterRoutes(r *gin.Engine, db *sqlx.DB) {
	companies := NewCompanyRepository(db)
	hotels := NewHotelRepository(db)
	service := NewCompanyService(companies, hotels)
	handler := NewCompanyHandler(service)

	group := r.Group("/api/companies")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("", handler.CreateCompany)
		group.GET("", handler.GetCompanies)
		group.GET("/:id", handler.GetCompanyByID)
		group.PUT("/:id", handler.UpdateCompany)
		group.DELETE("/:id", handler.DeleteCompany)

		group.POST("/:id/hotels", handler.CreateHotel)
		group.GET("/:id/hotels", handler.GetHotels)
		group.GET("/:id/hotels/:hotelId", handler.GetHotelByID)
		group.PUT("/:id/hotels/:hotelId", handler.UpdateHotel)
		group.DELETE("/:id/hotels/:hotelId", handler.DeleteHotel)
	}
}
