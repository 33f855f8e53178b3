package service

import (
	"context"

	"asociacion-backend/internal/domain"
)

// ApplicationSubmission carries the fields of a new membership
// application. Submitting requires no authentication and duplicate
// submissions by the same email are allowed (accepted behavior, an
// applicant may apply more than once).
type ApplicationSubmission struct {
	Name           string
	Email          string
	PhoneNumber    string
	Specialization string
	ExperienceYrs  int32
	Motivation     string
	AcademicInfo   string
	ProfessionInfo string
	DocumentURL    string
}

type ApplicationService interface {
	Submit(ctx context.Context, sub ApplicationSubmission) (int32, error)
	Get(ctx context.Context, caller domain.Principal, id int32) (*domain.Application, error)
	List(ctx context.Context, caller domain.Principal, status string) ([]domain.Application, error)
	Approve(ctx context.Context, caller domain.Principal, id int32, membershipType, note string) (*domain.Application, error)
	Reject(ctx context.Context, caller domain.Principal, id int32, note string) (*domain.Application, error)
	ConfirmPayment(ctx context.Context, caller domain.Principal, id int32) (*domain.Credentials, error)
}

type EnrollmentService interface {
	Enroll(ctx context.Context, caller domain.Principal, offeringID int32, identity domain.EnrollmentIdentity) (*domain.Enrollment, error)
	Cancel(ctx context.Context, caller domain.Principal, enrollmentID int32) (*domain.Enrollment, error)
	MarkPaid(ctx context.Context, caller domain.Principal, enrollmentID int32) (*domain.Enrollment, error)
	SeatsLeft(ctx context.Context, offeringID int32) (*int32, error)
	GetOffering(ctx context.Context, id int32) (*domain.Offering, *int32, error)
	ListOfferings(ctx context.Context) ([]domain.Offering, error)
	CreateOffering(ctx context.Context, caller domain.Principal, off *domain.Offering) error
}

type AdminService interface {
	CreateMember(ctx context.Context, caller domain.Principal, member *domain.User, password string) error
	DeactivateMember(ctx context.Context, caller domain.Principal, userID int32) error
	ListMembers(ctx context.Context, caller domain.Principal) ([]domain.User, error)
	GetMember(ctx context.Context, caller domain.Principal, userID int32) (*domain.User, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type EmailService interface {
	SendApplicationReceived(ctx context.Context, email, name string) error
	SendApplicationDecision(ctx context.Context, email, name string, approved bool, note string) error
	SendAccountCreated(ctx context.Context, email, name string) error
	SendPaymentReminder(ctx context.Context, email, name string) error
	SendEnrollmentConfirmation(ctx context.Context, email, name, offeringTitle string, amountCents int32) error
	SendEnrollmentPaymentReminder(ctx context.Context, email, name string, offeringID int32) error
}

// requireAdmin is the role gate shared by all admin-only operations.
// Authorization itself (token verification) lives in the transport
// layer; services only check the precondition on the explicit caller.
func requireAdmin(caller domain.Principal) error {
	if caller.IsAnonymous() {
		return domain.ErrUnauthorized
	}
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	return nil
}
