package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"asociacion-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func pendingEnrollment() *domain.Enrollment {
	return &domain.Enrollment{
		OfferingID: 1, Name: "Ana", Email: "ana@example.com", PhoneNumber: "600111222",
		PaymentStatus: domain.EnrollmentPaymentStatusPending, PaymentAmountCents: 10000,
		PaymentReference: "ref-123",
	}
}

func expectOfferingLock(mock sqlmock.Sqlmock, offeringID int32) {
	mock.ExpectQuery(`SELECT id FROM offerings WHERE id = \$1 FOR UPDATE`).
		WithArgs(offeringID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(offeringID))
}

func TestEnrollmentRepository_CreateWithCapacityCheck(t *testing.T) {
	t.Run("Inserts under the offering lock", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectBegin()
		expectOfferingLock(mock, 1)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND payment_status <> \$2`).
			WithArgs(int32(1), domain.EnrollmentPaymentStatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND LOWER\(email\)`).
			WithArgs(int32(1), "ana@example.com", domain.EnrollmentPaymentStatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(0)))
		mock.ExpectQuery(`INSERT INTO enrollments`).
			WithArgs(int32(1), "Ana", "ana@example.com", "600111222",
				domain.EnrollmentPaymentStatusPending, int32(10000), "ref-123", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(9)))
		mock.ExpectCommit()

		two := int32(2)
		enr := pendingEnrollment()
		err := repo.CreateWithCapacityCheck(context.Background(), enr, &two)
		assert.NoError(t, err)
		assert.Equal(t, int32(9), enr.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Full offering rolls back before insert", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectBegin()
		expectOfferingLock(mock, 1)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND payment_status <> \$2`).
			WithArgs(int32(1), domain.EnrollmentPaymentStatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(2)))
		mock.ExpectRollback()

		two := int32(2)
		err := repo.CreateWithCapacityCheck(context.Background(), pendingEnrollment(), &two)
		assert.ErrorIs(t, err, domain.ErrOfferingFull)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unlimited offering skips the capacity gate", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectBegin()
		expectOfferingLock(mock, 1)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND payment_status <> \$2`).
			WithArgs(int32(1), domain.EnrollmentPaymentStatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(5000)))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND LOWER\(email\)`).
			WithArgs(int32(1), "ana@example.com", domain.EnrollmentPaymentStatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(0)))
		mock.ExpectQuery(`INSERT INTO enrollments`).
			WithArgs(int32(1), "Ana", "ana@example.com", "600111222",
				domain.EnrollmentPaymentStatusPending, int32(10000), "ref-123", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(5001)))
		mock.ExpectCommit()

		err := repo.CreateWithCapacityCheck(context.Background(), pendingEnrollment(), nil)
		assert.NoError(t, err)
	})

	t.Run("Duplicate email rolls back", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectBegin()
		expectOfferingLock(mock, 1)
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND payment_status <> \$2`).
			WithArgs(int32(1), domain.EnrollmentPaymentStatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(0)))
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND LOWER\(email\)`).
			WithArgs(int32(1), "ana@example.com", domain.EnrollmentPaymentStatusCancelled).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
		mock.ExpectRollback()

		err := repo.CreateWithCapacityCheck(context.Background(), pendingEnrollment(), nil)
		assert.ErrorIs(t, err, domain.ErrDuplicateEnrollment)
	})

	t.Run("Unknown offering maps to not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id FROM offerings WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(404)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		enr := pendingEnrollment()
		enr.OfferingID = 404
		err := repo.CreateWithCapacityCheck(context.Background(), enr, nil)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEnrollmentRepository_CountActive(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnrollmentRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM enrollments WHERE offering_id = \$1 AND payment_status <> \$2`).
		WithArgs(int32(1), domain.EnrollmentPaymentStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(3)))

	count, err := repo.CountActive(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), count)
}

func TestEnrollmentRepository_UpdatePaymentStatus(t *testing.T) {
	t.Run("Updates existing row", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectExec(`UPDATE enrollments SET payment_status = \$1 WHERE id = \$2`).
			WithArgs(domain.EnrollmentPaymentStatusCancelled, int32(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdatePaymentStatus(context.Background(), 9, domain.EnrollmentPaymentStatusCancelled))
	})

	t.Run("Missing row is not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewEnrollmentRepository(db)

		mock.ExpectExec(`UPDATE enrollments SET payment_status = \$1 WHERE id = \$2`).
			WithArgs(domain.EnrollmentPaymentStatusPaid, int32(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.UpdatePaymentStatus(context.Background(), 404, domain.EnrollmentPaymentStatusPaid), domain.ErrNotFound)
	})
}

func TestEnrollmentRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnrollmentRepository(db)

	cols := []string{"id", "offering_id", "name", "email", "phone_number",
		"payment_status", "payment_amount_cents", "payment_reference", "created_on"}
	mock.ExpectQuery(`SELECT .+ FROM enrollments WHERE id = \$1`).
		WithArgs(int32(9)).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			int32(9), int32(1), "Ana", "ana@example.com", "600111222",
			"PENDING", int32(10000), "ref-123", time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)))

	enr, err := repo.GetByID(context.Background(), 9)
	assert.NoError(t, err)
	assert.Equal(t, domain.EnrollmentPaymentStatusPending, enr.PaymentStatus)
	assert.Equal(t, "2026-02-10", enr.CreatedOn)
}
