package service

import (
	"context"
	"strings"
	"time"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/logger"
	"asociacion-backend/internal/metrics"
	"asociacion-backend/internal/repository"
	"asociacion-backend/internal/utils"

	"github.com/google/uuid"
)

type enrollmentService struct {
	offeringRepo   repository.OfferingRepository
	enrollmentRepo repository.EnrollmentRepository
	emailSvc       EmailService
	now            func() time.Time
}

func NewEnrollmentService(offeringRepo repository.OfferingRepository, enrollmentRepo repository.EnrollmentRepository, emailSvc EmailService) EnrollmentService {
	return &enrollmentService{
		offeringRepo:   offeringRepo,
		enrollmentRepo: enrollmentRepo,
		emailSvc:       emailSvc,
		now:            time.Now,
	}
}

// Enroll registers an identity for an offering. An authenticated
// caller enrolls under the membership tier from their token; an
// anonymous caller is priced as non-member. The capacity and duplicate
// checks run atomically with the insert under a lock on the offering
// row, so concurrent requests cannot overshoot max_students.
func (s *enrollmentService) Enroll(ctx context.Context, caller domain.Principal, offeringID int32, identity domain.EnrollmentIdentity) (*domain.Enrollment, error) {
	if err := validateIdentity(identity); err != nil {
		return nil, err
	}

	off, err := s.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		metrics.EnrollmentOutcomes.WithLabelValues("not_found").Inc()
		return nil, err
	}

	// The deadline gate fails closed before any row is touched. The
	// capacity gate repeats inside the transaction; checking here only
	// gives a cheaper early failure.
	if off.RegistrationDeadline != nil {
		deadline, perr := time.Parse(time.RFC3339, *off.RegistrationDeadline)
		if perr != nil || s.now().After(deadline) {
			metrics.EnrollmentOutcomes.WithLabelValues("closed").Inc()
			return nil, domain.ErrRegistrationClosed
		}
	}

	amount := utils.ResolvePrice(off, caller.Tier())
	enr := &domain.Enrollment{
		OfferingID:         offeringID,
		Name:               strings.TrimSpace(identity.Name),
		Email:              strings.TrimSpace(identity.Email),
		PhoneNumber:        identity.PhoneNumber,
		PaymentStatus:      domain.EnrollmentPaymentStatusPending,
		PaymentAmountCents: amount,
		PaymentReference:   uuid.NewString(),
	}

	if err := s.enrollmentRepo.CreateWithCapacityCheck(ctx, enr, off.MaxStudents); err != nil {
		switch err {
		case domain.ErrOfferingFull:
			metrics.EnrollmentOutcomes.WithLabelValues("full").Inc()
		case domain.ErrDuplicateEnrollment:
			metrics.EnrollmentOutcomes.WithLabelValues("duplicate").Inc()
		}
		return nil, err
	}
	metrics.EnrollmentOutcomes.WithLabelValues("accepted").Inc()
	logger.Info("Enrollment created", "enrollment_id", enr.ID, "offering_id", offeringID, "tier", caller.Tier(), "amount_cents", amount)

	if err := s.emailSvc.SendEnrollmentConfirmation(ctx, enr.Email, enr.Name, off.Title, amount); err != nil {
		logger.Warn("Failed to send enrollment confirmation", "enrollment_id", enr.ID, "error", err)
	}
	return enr, nil
}

func validateIdentity(identity domain.EnrollmentIdentity) error {
	if strings.TrimSpace(identity.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	email := strings.TrimSpace(identity.Email)
	if email == "" {
		return domain.NewValidationError("email", "must not be empty")
	}
	if !strings.Contains(email, "@") {
		return domain.NewValidationError("email", "must be an email address")
	}
	return nil
}

// Cancel is the only mutation that removes an enrollment from the set
// of valid enrollments; the freed seat becomes available immediately.
// The enrollee themselves or an admin may cancel.
func (s *enrollmentService) Cancel(ctx context.Context, caller domain.Principal, enrollmentID int32) (*domain.Enrollment, error) {
	enr, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !strings.EqualFold(caller.Email, enr.Email) {
		if caller.IsAnonymous() {
			return nil, domain.ErrUnauthorized
		}
		return nil, domain.ErrForbidden
	}
	if enr.PaymentStatus == domain.EnrollmentPaymentStatusCancelled {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.enrollmentRepo.UpdatePaymentStatus(ctx, enrollmentID, domain.EnrollmentPaymentStatusCancelled); err != nil {
		return nil, err
	}
	enr.PaymentStatus = domain.EnrollmentPaymentStatusCancelled
	logger.Info("Enrollment cancelled", "enrollment_id", enrollmentID)
	return enr, nil
}

// MarkPaid records a simulated payment confirmation on an enrollment.
// It never changes seat accounting; pending and paid both hold a seat.
func (s *enrollmentService) MarkPaid(ctx context.Context, caller domain.Principal, enrollmentID int32) (*domain.Enrollment, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	enr, err := s.enrollmentRepo.GetByID(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	if enr.PaymentStatus != domain.EnrollmentPaymentStatusPending {
		return nil, domain.ErrInvalidTransition
	}
	if err := s.enrollmentRepo.UpdatePaymentStatus(ctx, enrollmentID, domain.EnrollmentPaymentStatusPaid); err != nil {
		return nil, err
	}
	enr.PaymentStatus = domain.EnrollmentPaymentStatusPaid
	return enr, nil
}

func (s *enrollmentService) SeatsLeft(ctx context.Context, offeringID int32) (*int32, error) {
	off, err := s.offeringRepo.GetByID(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	count, err := s.enrollmentRepo.CountActive(ctx, offeringID)
	if err != nil {
		return nil, err
	}
	return utils.SeatsLeft(off, count), nil
}

func (s *enrollmentService) GetOffering(ctx context.Context, id int32) (*domain.Offering, *int32, error) {
	off, err := s.offeringRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	count, err := s.enrollmentRepo.CountActive(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return off, utils.SeatsLeft(off, count), nil
}

func (s *enrollmentService) ListOfferings(ctx context.Context) ([]domain.Offering, error) {
	return s.offeringRepo.List(ctx)
}

func (s *enrollmentService) CreateOffering(ctx context.Context, caller domain.Principal, off *domain.Offering) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if strings.TrimSpace(off.Title) == "" {
		return domain.NewValidationError("title", "must not be empty")
	}
	switch off.Format {
	case domain.OfferingFormatWebinar, domain.OfferingFormatPresencial:
	default:
		return domain.NewValidationError("format", "must be WEBINAR or PRESENCIAL")
	}
	if off.MaxStudents != nil && *off.MaxStudents < 1 {
		return domain.NewValidationError("max_students", "must be at least 1 when set")
	}
	if _, err := time.Parse(time.RFC3339, off.StartDate); err != nil {
		return domain.NewValidationError("start_date", "must be an RFC 3339 timestamp")
	}
	if off.RegistrationDeadline != nil {
		if _, err := time.Parse(time.RFC3339, *off.RegistrationDeadline); err != nil {
			return domain.NewValidationError("registration_deadline", "must be an RFC 3339 timestamp")
		}
	}
	return s.offeringRepo.Create(ctx, off)
}
