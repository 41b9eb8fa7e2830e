package company

import (
	"net/http"
	"strconv"

	"calidad-be/util"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	Service *CompanyService
}

func NewCompanyHandler(service *CompanyService) *CompanyHandler {
	return &CompanyHandler{Service: service}
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var company Company
	if err := c.ShouldBindJSON(&company); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	created, err := h.Service.CreateCompany(&company)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.CreatedResponse(c, "Company created successfully", created)
}

func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	response, err := h.Service.GetCompanies(c.Query("search"), c.Query("status"), page, limit)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(c, "Companies fetched successfully", response)
}

func (h *CompanyHandler) GetCompanyByID(c *gin.Context) {
	company, err := h.Service.GetCompanyByID(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusNotFound, "Company not found")
		return
	}

	util.SuccessResponse(c, "Company fetched successfully", company)
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var company Company
	if err := c.ShouldBindJSON(&company); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	updated, err := h.Service.UpdateCompany(c.Param("id"), &company)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(c, "Company updated successfully", updated)
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	if err := h.Service.DeleteCompany(c.Param("id")); err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(c, "Company deleted successfully", nil)
}

func (h *CompanyHandler) CreateHotel(c *gin.Context) {
	var hotel Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}
	hotel.CompanyID = c.Param("id")

	created, err := h.Service.CreateHotel(&hotel)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.CreatedResponse(c, "Hotel created successfully", created)
}

func (h *CompanyHandler) GetHotels(c *gin.Context) {
	hotels, err := h.Service.GetHotels(c.Param("id"))
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(c, "Hotels fetched successfully", hotels)
}

func (h *CompanyHandler) GetHotelByID(c *gin.Context) {
	hotel, err := h.Service.GetHotelByID(c.Param("hotelId"))
	if err != nil {
		util.ErrorResponse(c, http.StatusNotFound, "Hotel not found")
		return
	}

	util.SuccessResponse(c, "Hotel fetched successfully", hotel)
}

func (h *CompanyHandler) UpdateHotel(c *gin.Context) {
	var hotel Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		util.ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}

	updated, err := h.Service.UpdateHotel(c.Param("hotelId"), &hotel)
	if err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(c, "Hotel updated successfully", updated)
}

func (h *CompanyHandler) DeleteHotel(c *gin.Context) {
	if err := h.Service.DeleteHotel(c.Param("hotelId")); err != nil {
		util.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	util.SuccessResponse(c, "Hotel deleted successfully", nil)
}
