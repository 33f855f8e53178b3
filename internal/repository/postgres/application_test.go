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

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestApplicationRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)

	mock.ExpectQuery(`INSERT INTO applications`).
		WithArgs("Ana", "ana@example.com", "600111222", "Cardiología", int32(5),
			"motivation", "", "", "docs/ana.pdf", domain.ApplicationStatusPending, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(42)))

	app := &domain.Application{
		Name: "Ana", Email: "ana@example.com", PhoneNumber: "600111222",
		Specialization: "Cardiología", ExperienceYrs: 5, Motivation: "motivation",
		DocumentURL: "docs/ana.pdf", Status: domain.ApplicationStatusPending,
	}
	err := repo.Create(context.Background(), app)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), app.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewApplicationRepository(db)
	cols := []string{"id", "name", "email", "phone_number", "specialization", "experience_years",
		"motivation", "academic_info", "profession_info", "document_url", "status",
		"membership_type", "resolution_note", "created_on"}

	t.Run("Found with decided tier", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
			WithArgs(int32(1)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				int32(1), "Ana", "ana@example.com", "600111222", "Cardiología", int32(5),
				"motivation", "", "", "docs/ana.pdf", "PAYMENT_PENDING", "JOVEN", "ok",
				time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)))

		app, err := repo.GetByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPaymentPending, app.Status)
		assert.NotNil(t, app.MembershipType)
		assert.Equal(t, domain.MembershipTypeJoven, *app.MembershipType)
		assert.Equal(t, "2026-02-01", app.CreatedOn)
	})

	t.Run("Missing row maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
			WithArgs(int32(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 404)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestApplicationRepository_UpdateDecision(t *testing.T) {
	joven := domain.MembershipTypeJoven
	cols := []string{"id", "name", "email", "phone_number", "specialization", "experience_years",
		"motivation", "academic_info", "profession_info", "document_url", "status",
		"membership_type", "resolution_note", "created_on"}

	t.Run("Pending row is decided", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewApplicationRepository(db)

		mock.ExpectExec(`UPDATE applications SET status`).
			WithArgs(domain.ApplicationStatusPaymentPending, &joven, "ok", int32(1), domain.ApplicationStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateDecision(context.Background(), 1, domain.ApplicationStatusPaymentPending, &joven, "ok")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Already decided row is an invalid transition", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewApplicationRepository(db)

		mock.ExpectExec(`UPDATE applications SET status`).
			WithArgs(domain.ApplicationStatusPaymentPending, &joven, "", int32(2), domain.ApplicationStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				int32(2), "Ana", "ana@example.com", "", "Cardiología", int32(5),
				"motivation", "", "", "docs/ana.pdf", "REJECTED", nil, "no",
				time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)))

		err := repo.UpdateDecision(context.Background(), 2, domain.ApplicationStatusPaymentPending, &joven, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	})

	t.Run("Missing row is not found", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewApplicationRepository(db)

		mock.ExpectExec(`UPDATE applications SET status`).
			WithArgs(domain.ApplicationStatusRejected, nil, "", int32(3), domain.ApplicationStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT .+ FROM applications WHERE id = \$1`).
			WithArgs(int32(3)).
			WillReturnError(sql.ErrNoRows)

		err := repo.UpdateDecision(context.Background(), 3, domain.ApplicationStatusRejected, nil, "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestApplicationRepository_MarkPaidAndCreateMember(t *testing.T) {
	member := func() *domain.User {
		return &domain.User{
			Email: "ana@example.com", Name: "Ana", PasswordHash: "$2a$10$hash",
			Role: domain.UserRoleMember, MembershipType: domain.MembershipTypeJoven,
			PaymentStatus: domain.UserPaymentStatusPaid, IsActive: true,
		}
	}

	t.Run("Commits member insert and paid status together", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewApplicationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PAYMENT_PENDING"))
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("ana@example.com", "Ana", "", "$2a$10$hash", domain.UserRoleMember,
				domain.MembershipTypeJoven, domain.UserPaymentStatusPaid, true, sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(11)))
		mock.ExpectExec(`UPDATE applications SET status = \$1 WHERE id = \$2`).
			WithArgs(domain.ApplicationStatusPaid, int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		m := member()
		err := repo.MarkPaidAndCreateMember(context.Background(), 5, m)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), m.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when application already paid", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewApplicationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PAID"))
		mock.ExpectRollback()

		err := repo.MarkPaidAndCreateMember(context.Background(), 5, member())
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when application is missing", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewApplicationRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT status FROM applications WHERE id = \$1 FOR UPDATE`).
			WithArgs(int32(404)).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectRollback()

		err := repo.MarkPaidAndCreateMember(context.Background(), 404, member())
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
