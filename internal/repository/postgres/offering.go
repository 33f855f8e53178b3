package postgres

import (
	"context"
	"database/sql"
	"time"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/repository"
)

const offeringColumns = `id, title, format, max_students, start_date, registration_deadline,
	price_member_cents, price_non_member_cents, price_joven_cents, price_gratuito_cents, created_on`

type offeringRepository struct {
	db *sql.DB
}

func NewOfferingRepository(db *sql.DB) repository.OfferingRepository {
	return &offeringRepository{db: db}
}

func (r *offeringRepository) Create(ctx context.Context, off *domain.Offering) error {
	query := `INSERT INTO offerings (title, format, max_students, start_date, registration_deadline, price_member_cents, price_non_member_cents, price_joven_cents, price_gratuito_cents, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	off.CreatedOn = time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, off.Title, off.Format, off.MaxStudents,
		off.StartDate, off.RegistrationDeadline, off.PriceMemberCents, off.PriceNonMemberCents,
		off.PriceJovenCents, off.PriceGratuitoCents, off.CreatedOn).Scan(&off.ID)
}

func scanOffering(row interface{ Scan(...any) error }) (*domain.Offering, error) {
	off := &domain.Offering{}
	var startDate, createdOn time.Time
	var deadline sql.NullTime
	err := row.Scan(&off.ID, &off.Title, &off.Format, &off.MaxStudents, &startDate, &deadline,
		&off.PriceMemberCents, &off.PriceNonMemberCents, &off.PriceJovenCents,
		&off.PriceGratuitoCents, &createdOn)
	if err != nil {
		return nil, err
	}
	off.StartDate = startDate.Format(time.RFC3339)
	if deadline.Valid {
		d := deadline.Time.Format(time.RFC3339)
		off.RegistrationDeadline = &d
	}
	off.CreatedOn = createdOn.Format("2006-01-02")
	return off, nil
}

func (r *offeringRepository) GetByID(ctx context.Context, id int32) (*domain.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings WHERE id = $1`
	off, err := scanOffering(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return off, nil
}

func (r *offeringRepository) List(ctx context.Context) ([]domain.Offering, error) {
	query := `SELECT ` + offeringColumns + ` FROM offerings ORDER BY start_date, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offs []domain.Offering
	for rows.Next() {
		off, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offs = append(offs, *off)
	}
	return offs, rows.Err()
}
