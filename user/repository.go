package user

import (
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	DB *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) CreateUser(user *User) (*User, error) {
	query := `
		INSERT INTO users (company_id, name, email, password, account_type, phone, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, company_id, name, email, account_type, phone, position;
	`
	var createdUser User
	err := r.DB.Get(&createdUser, query,
		user.CompanyID, user.Name, user.Email, user.Password, user.AccountType, user.Phone, user.Position)
	return &createdUser, err
}

func (r *UserRepository) GetUsers(companyID string) ([]User, error) {
	var users []User
	if companyID == "" {
		query := `SELECT id, company_id, name, email, account_type, phone, position FROM users ORDER BY id ASC;`
		err := r.DB.Select(&users, query)
		return users, err
	}
	query := `SELECT id, company_id, name, email, account_type, phone, position FROM users WHERE company_id=$1 ORDER BY id ASC;`
	err := r.DB.Select(&users, query, companyID)
	return users, err
}

func (r *UserRepository) GetUserByID(id int64) (*User, error) {
	var user User
	query := `SELECT id, company_id, name, email, account_type, phone, position FROM users WHERE id=$1;`
	err := r.DB.Get(&user, query, id)
	return &user, err
}

func (r *UserRepository) UpdateUser(id int64, user *User) (*User, error) {
	query := `
		UPDATE users SET company_id=$1, name=$2, email=$3, password=$4, account_type=$5, phone=$6, position=$7
		WHERE id=$8
		RETURNING id, company_id, name, email, account_type, phone, position;
	`
	var updatedUser User
	err := r.DB.Get(&updatedUser, query,
		user.CompanyID, user.Name, user.Email, user.Password, user.AccountType, user.Phone, user.Position, id)
	return &updatedUser, err
}

func (r *UserRepository) DeleteUser(id int64) error {
	query := `DELETE FROM users WHERE id=$1;`
	_, err := r.DB.Exec(query, id)
	return err
}

func (r *UserRepository) GetUserByEmail(email string) (*User, error) {
	var user User
	query := `SELECT id, company_id, name, email, password, account_type, phone, position FROM users WHERE email=$1;`
	err := r.DB.Get(&user, query, email)
	return &user, err
}
