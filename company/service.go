package company

import (
	"errors"

	"github.com/google/uuid"
)

type CompanyService struct {
	companies *CompanyRepository
	hotels    *HotelRepository
}

func NewCompanyService(companies *CompanyRepository, hotels *HotelRepository) *CompanyService {
	return &CompanyService{
		companies: companies,
		hotels:    hotels,
	}
}

func (s *CompanyService) CreateCompany(company *Company) (*Company, error) {
	if company.Name == "" {
		return nil, errors.New("company name is required")
	}
	if company.ID == "" {
		company.ID = uuid.New().String()
	}
	if company.Status == "" {
		company.Status = "active"
	}
	if err := s.companies.Create(company); err != nil {
		return nil, err
	}
	return s.companies.GetByID(company.ID)
}

func (s *CompanyService) GetCompanies(search, status string, page, limit int) (*CompanyListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	companies, total, err := s.companies.GetAll(search, status, limit, offset)
	if err != nil {
		return nil, err
	}

	return &CompanyListResponse{
		Companies: companies,
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (s *CompanyService) GetCompanyByID(id string) (*Company, error) {
	return s.companies.GetByID(id)
}

func (s *CompanyService) UpdateCompany(id string, company *Company) (*Company, error) {
	existing, err := s.companies.GetByID(id)
	if err != nil {
		return nil, errors.New("company not found")
	}

	if company.Name != "" {
		existing.Name = company.Name
	}
	if company.LegalName != "" {
		existing.LegalName = company.LegalName
	}
	if company.TaxID != "" {
		existing.TaxID = company.TaxID
	}
	if company.Status != "" {
		existing.Status = company.Status
	}

	if err := s.companies.Update(existing); err != nil {
		return nil, err
	}
	return s.companies.GetByID(id)
}

func (s *CompanyService) DeleteCompany(id string) error {
	return s.companies.Delete(id)
}

func (s *CompanyService) CreateHotel(hotel *Hotel) (*Hotel, error) {
	if hotel.Name == "" {
		return nil, errors.New("hotel name is required")
	}
	if hotel.CompanyID == "" {
		return nil, errors.New("company id is required")
	}
	if _, err := s.companies.GetByID(hotel.CompanyID); err != nil {
		return nil, errors.New("company not found")
	}
	if hotel.ID == "" {
		hotel.ID = uuid.New().String()
	}
	if err := s.hotels.Create(hotel); err != nil {
		return nil, err
	}
	return s.hotels.GetByID(hotel.ID)
}

func (s *CompanyService) GetHotels(companyID string) ([]Hotel, error) {
	return s.hotels.GetByCompany(companyID)
}

func (s *CompanyService) GetHotelByID(id string) (*Hotel, error) {
	return s.hotels.GetByID(id)
}

func (s *CompanyService) UpdateHotel(id string, hotel *Hotel) (*Hotel, error) {
	existing, err := s.hotels.GetByID(id)
	if err != nil {
		return nil, errors.New("hotel not found")
	}

	if hotel.Name != "" {
		existing.Name = hotel.Name
	}
	if hotel.Address != "" {
		existing.Address = hotel.Address
	}
	if hotel.City != "" {
		existing.City = hotel.City
	}
	if hotel.Country != "" {
		existing.Country = hotel.Country
	}
	if hotel.Stars != 0 {
		existing.Stars = hotel.Stars
	}

	if err := s.hotels.Update(existing); err != nil {
		return nil, err
	}
	return s.hotels.GetByID(id)
}

func (s *CompanyService) DeleteHotel(id string) error {
	return s.hotels.Delete(id)
}
