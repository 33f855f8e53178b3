package postgres

import (
	"context"
	"database/sql"
	"time"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/repository"
)

const userColumns = `id, email, name, COALESCE(phone_number, ''), password_hash, role, membership_type, payment_status, is_active, created_on`

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, name, phone_number, password_hash, role, membership_type, payment_status, is_active, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	u.CreatedOn = time.Now().Format("2006-01-02")
	err := r.db.QueryRowContext(ctx, query, u.Email, u.Name, u.PhoneNumber, u.PasswordHash,
		u.Role, u.MembershipType, u.PaymentStatus, u.IsActive, u.CreatedOn).Scan(&u.ID)
	return translateErr(err)
}

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var createdOn time.Time
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PhoneNumber, &u.PasswordHash,
		&u.Role, &u.MembershipType, &u.PaymentStatus, &u.IsActive, &createdOn)
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translateErr(err)
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) SetActive(ctx context.Context, id int32, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
