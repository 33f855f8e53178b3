package repository

import (
	"context"

	"asociacion-backend/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	// UpdateDecision records an approve/reject decision. It only
	// touches rows still in PENDING and returns
	// domain.ErrInvalidTransition when the row has already moved on.
	UpdateDecision(ctx context.Context, id int32, status domain.ApplicationStatus, membershipType *domain.MembershipType, note string) error
	// MarkPaidAndCreateMember moves a PAYMENT_PENDING application to
	// PAID and inserts the member row in one transaction, re-checking
	// the status under a row lock so a double submit cannot issue two
	// accounts. Returns domain.ErrInvalidTransition on a stale status
	// and domain.ErrConflict when the member email is already taken.
	MarkPaidAndCreateMember(ctx context.Context, id int32, member *domain.User) error
	ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error)
	List(ctx context.Context) ([]domain.Application, error)
	// ListPaymentPendingOlderThan returns applications stuck in
	// PAYMENT_PENDING created more than days ago, for reminders.
	ListPaymentPendingOlderThan(ctx context.Context, days int) ([]domain.Application, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	SetActive(ctx context.Context, id int32, active bool) error
}

type OfferingRepository interface {
	Create(ctx context.Context, off *domain.Offering) error
	GetByID(ctx context.Context, id int32) (*domain.Offering, error)
	List(ctx context.Context) ([]domain.Offering, error)
}

type EnrollmentRepository interface {
	// CreateWithCapacityCheck inserts the enrollment inside a
	// transaction that locks the offering row, so the capacity count,
	// the duplicate check and the insert are atomic with respect to
	// concurrent enrollments for the same offering. Returns
	// domain.ErrOfferingFull, domain.ErrDuplicateEnrollment or
	// domain.ErrNotFound as appropriate.
	CreateWithCapacityCheck(ctx context.Context, enr *domain.Enrollment, maxStudents *int32) error
	GetByID(ctx context.Context, id int32) (*domain.Enrollment, error)
	CountActive(ctx context.Context, offeringID int32) (int32, error)
	ListByOffering(ctx context.Context, offeringID int32) ([]domain.Enrollment, error)
	UpdatePaymentStatus(ctx context.Context, id int32, status domain.EnrollmentPaymentStatus) error
	// ListPendingForUpcoming returns pending-payment enrollments whose
	// offering starts within the next days, for reminders.
	ListPendingForUpcoming(ctx context.Context, days int) ([]domain.Enrollment, error)
}
