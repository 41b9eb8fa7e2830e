package company

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type CompanyRepository struct {
	db *sqlx.DB
}

func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(company *Company) error {
	_, err := r.db.Exec(
		`INSERT INTO companies (id, name, legal_name, tax_id, status) VALUES ($1, $2, $3, $4, $5)`,
		company.ID, company.Name, company.LegalName, company.TaxID, company.Status)
	return err
}

func (r *CompanyRepository) GetAll(search, status string, limit, offset int) ([]Company, int, error) {
	var companies []Company
	var conditions []string
	var args []interface{}
	argIdx := 1

	query := `SELECT id, name, legal_name, tax_id, status, created_at, updated_at FROM companies`

	if search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR legal_name ILIKE $%d OR tax_id ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+search+"%")
		argIdx++
	}

	if status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, status)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM companies %s", where)
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return []Company{}, 0, err
	}

	if total == 0 {
		return []Company{}, 0, nil
	}

	fullQuery := fmt.Sprintf("%s %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", query, where, argIdx, argIdx+1)
	args = append(args, limit, offset)

	if err := r.db.Select(&companies, fullQuery, args...); err != nil {
		return []Company{}, 0, err
	}

	return companies, total, nil
}

func (r *CompanyRepository) GetByID(id string) (*Company, error) {
	var company Company
	err := r.db.Get(&company,
		`SELECT id, name, legal_name, tax_id, status, created_at, updated_at FROM companies WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *CompanyRepository) Update(company *Company) error {
	_, err := r.db.Exec(
		`UPDATE companies SET name = $1, legal_name = $2, tax_id = $3, status = $4, updated_at = NOW() WHERE id = $5`,
		company.Name, company.LegalName, company.TaxID, company.Status, company.ID)
	return err
}

func (r *CompanyRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM companies WHERE id = $1`, id)
	return err
}

type HotelRepository struct {
	db *sqlx.DB
}

func NewHotelRepository(db *sqlx.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(hotel *Hotel) error {
	_, err := r.db.Exec(
		`INSERT INTO hotels (id, company_id, name, address, city, country, stars) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		hotel.ID, hotel.CompanyID, hotel.Name, hotel.Address, hotel.City, hotel.Country, hotel.Stars)
	return err
}

func (r *HotelRepository) GetByCompany(companyID string) ([]Hotel, error) {
	var hotels []Hotel
	err := r.db.Select(&hotels,
		`SELECT id, company_id, name, address, city, country, stars, created_at, updated_at
		 FROM hotels WHERE company_id = $1 ORDER BY name ASC`, companyID)
	if err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *HotelRepository) GetByID(id string) (*Hotel, error) {
	var hotel Hotel
	err := r.db.Get(&hotel,
		`SELECT id, company_id, name, address, city, country, stars, created_at, updated_at
		 FROM hotels WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *HotelRepository) Update(hotel *Hotel) error {
	_, err := r.db.Exec(
		`UPDATE hotels SET name = $1, address = $2, city = $3, country = $4, stars = $5, updated_at = NOW() WHERE id = $6`,
		hotel.Name, hotel.Address, hotel.City, hotel.Country, hotel.Stars, hotel.ID)
	return err
}

func (r *HotelRepository) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM hotels WHERE id = $1`, id)
	return err
}
