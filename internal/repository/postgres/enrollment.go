package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/repository"
)

const enrollmentColumns = `id, offering_id, name, email, COALESCE(phone_number, ''), payment_status, payment_amount_cents, payment_reference, created_on`

type enrollmentRepository struct {
	db *sql.DB
}

func NewEnrollmentRepository(db *sql.DB) repository.EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) CreateWithCapacityCheck(ctx context.Context, enr *domain.Enrollment, maxStudents *int32) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Serialize concurrent enrollments for the same offering. Without
	// the lock two requests can both pass the count and overshoot
	// max_students.
	var offeringID int32
	err = tx.QueryRowContext(ctx, `SELECT id FROM offerings WHERE id = $1 FOR UPDATE`, enr.OfferingID).Scan(&offeringID)
	if err != nil {
		return translateErr(err)
	}

	var active int32
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE offering_id = $1 AND payment_status <> $2`,
		enr.OfferingID, domain.EnrollmentPaymentStatusCancelled).Scan(&active)
	if err != nil {
		return err
	}
	if maxStudents != nil && active >= *maxStudents {
		return domain.ErrOfferingFull
	}

	var dup int32
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE offering_id = $1 AND LOWER(email) = LOWER($2) AND payment_status <> $3`,
		enr.OfferingID, enr.Email, domain.EnrollmentPaymentStatusCancelled).Scan(&dup)
	if err != nil {
		return err
	}
	if dup > 0 {
		return domain.ErrDuplicateEnrollment
	}

	enr.CreatedOn = time.Now().Format("2006-01-02")
	err = tx.QueryRowContext(ctx,
		`INSERT INTO enrollments (offering_id, name, email, phone_number, payment_status, payment_amount_cents, payment_reference, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		enr.OfferingID, enr.Name, enr.Email, enr.PhoneNumber, enr.PaymentStatus,
		enr.PaymentAmountCents, enr.PaymentReference, enr.CreatedOn).Scan(&enr.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func scanEnrollment(row interface{ Scan(...any) error }) (*domain.Enrollment, error) {
	e := &domain.Enrollment{}
	var createdOn time.Time
	err := row.Scan(&e.ID, &e.OfferingID, &e.Name, &e.Email, &e.PhoneNumber,
		&e.PaymentStatus, &e.PaymentAmountCents, &e.PaymentReference, &createdOn)
	if err != nil {
		return nil, err
	}
	e.CreatedOn = createdOn.Format("2006-01-02")
	return e, nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id int32) (*domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE id = $1`
	e, err := scanEnrollment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateErr(err)
	}
	return e, nil
}

func (r *enrollmentRepository) CountActive(ctx context.Context, offeringID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM enrollments WHERE offering_id = $1 AND payment_status <> $2`,
		offeringID, domain.EnrollmentPaymentStatusCancelled).Scan(&count)
	return count, err
}

func (r *enrollmentRepository) ListByOffering(ctx context.Context, offeringID int32) ([]domain.Enrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM enrollments WHERE offering_id = $1 ORDER BY created_on, id`
	rows, err := r.db.QueryContext(ctx, query, offeringID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrs []domain.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrs = append(enrs, *e)
	}
	return enrs, rows.Err()
}

func (r *enrollmentRepository) UpdatePaymentStatus(ctx context.Context, id int32, status domain.EnrollmentPaymentStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE enrollments SET payment_status = $1 WHERE id = $2`, status, id)
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

func (r *enrollmentRepository) ListPendingForUpcoming(ctx context.Context, days int) ([]domain.Enrollment, error) {
	query := `SELECT e.id, e.offering_id, e.name, e.email, COALESCE(e.phone_number, ''), e.payment_status, e.payment_amount_cents, e.payment_reference, e.created_on
	          FROM enrollments e
	          JOIN offerings o ON o.id = e.offering_id
	          WHERE e.payment_status = $1 AND o.start_date BETWEEN NOW() AND NOW() + ($2 || ' days')::interval
	          ORDER BY o.start_date, e.id`
	rows, err := r.db.QueryContext(ctx, query, domain.EnrollmentPaymentStatusPending, fmt.Sprintf("%d", days))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrs []domain.Enrollment
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrs = append(enrs, *e)
	}
	return enrs, rows.Err()
}
