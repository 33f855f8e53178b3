package service

import (
	"context"
	"fmt"
	"strings"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/logger"
	"asociacion-backend/internal/metrics"
	"asociacion-backend/internal/repository"
)

type applicationService struct {
	appRepo  repository.ApplicationRepository
	issuer   *CredentialIssuer
	emailSvc EmailService
}

func NewApplicationService(appRepo repository.ApplicationRepository, issuer *CredentialIssuer, emailSvc EmailService) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		issuer:   issuer,
		emailSvc: emailSvc,
	}
}

func (s *applicationService) Submit(ctx context.Context, sub ApplicationSubmission) (int32, error) {
	if err := validateSubmission(sub); err != nil {
		return 0, err
	}

	app := &domain.Application{
		Name:           strings.TrimSpace(sub.Name),
		Email:          strings.TrimSpace(sub.Email),
		PhoneNumber:    sub.PhoneNumber,
		Specialization: sub.Specialization,
		ExperienceYrs:  sub.ExperienceYrs,
		Motivation:     sub.Motivation,
		AcademicInfo:   sub.AcademicInfo,
		ProfessionInfo: sub.ProfessionInfo,
		DocumentURL:    sub.DocumentURL,
		Status:         domain.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return 0, fmt.Errorf("failed to create application: %w", err)
	}
	metrics.ApplicationTransitions.WithLabelValues(string(domain.ApplicationStatusPending)).Inc()

	// Fire and forget; delivery is not part of the success contract.
	if err := s.emailSvc.SendApplicationReceived(ctx, app.Email, app.Name); err != nil {
		logger.Warn("Failed to send application receipt", "application_id", app.ID, "error", err)
	}

	return app.ID, nil
}

func validateSubmission(sub ApplicationSubmission) error {
	if strings.TrimSpace(sub.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	email := strings.TrimSpace(sub.Email)
	if email == "" {
		return domain.NewValidationError("email", "must not be empty")
	}
	if !strings.Contains(email, "@") {
		return domain.NewValidationError("email", "must be an email address")
	}
	if strings.TrimSpace(sub.Specialization) == "" {
		return domain.NewValidationError("specialization", "must not be empty")
	}
	if sub.ExperienceYrs < 0 {
		return domain.NewValidationError("experience_years", "must be zero or more")
	}
	if strings.TrimSpace(sub.Motivation) == "" {
		return domain.NewValidationError("motivation", "must not be empty")
	}
	if strings.TrimSpace(sub.DocumentURL) == "" {
		return domain.NewValidationError("document_url", "an attached document is required")
	}
	return nil
}

func (s *applicationService) Get(ctx context.Context, caller domain.Principal, id int32) (*domain.Application, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.appRepo.GetByID(ctx, id)
}

func (s *applicationService) List(ctx context.Context, caller domain.Principal, status string) ([]domain.Application, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if status == "" {
		return s.appRepo.List(ctx)
	}
	switch st := domain.ApplicationStatus(strings.ToUpper(status)); st {
	case domain.ApplicationStatusPending, domain.ApplicationStatusPaymentPending,
		domain.ApplicationStatusPaid, domain.ApplicationStatusRejected:
		return s.appRepo.ListByStatus(ctx, st)
	default:
		return nil, domain.NewValidationError("status", "unknown application status")
	}
}

// Approve moves a PENDING application to PAYMENT_PENDING and records
// the assigned tier and the admin's note. It deliberately does not
// create the member account: the decision is registered before money
// has moved, and access is only granted by ConfirmPayment.
func (s *applicationService) Approve(ctx context.Context, caller domain.Principal, id int32, membershipType, note string) (*domain.Application, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if !domain.ValidMembershipType(strings.ToUpper(membershipType)) {
		return nil, domain.NewValidationError("membership_type", "must be JOVEN, NORMAL or GRATUITO")
	}
	mt := domain.MembershipType(strings.ToUpper(membershipType))

	if err := s.appRepo.UpdateDecision(ctx, id, domain.ApplicationStatusPaymentPending, &mt, note); err != nil {
		return nil, err
	}
	metrics.ApplicationTransitions.WithLabelValues(string(domain.ApplicationStatusPaymentPending)).Inc()
	logger.Info("Application approved", "application_id", id, "membership_type", mt, "admin_id", caller.UserID)

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.emailSvc.SendApplicationDecision(ctx, app.Email, app.Name, true, note); err != nil {
		logger.Warn("Failed to send approval notification", "application_id", id, "error", err)
	}
	return app, nil
}

func (s *applicationService) Reject(ctx context.Context, caller domain.Principal, id int32, note string) (*domain.Application, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	// Rejection is terminal. There is no reopen path.
	if err := s.appRepo.UpdateDecision(ctx, id, domain.ApplicationStatusRejected, nil, note); err != nil {
		return nil, err
	}
	metrics.ApplicationTransitions.WithLabelValues(string(domain.ApplicationStatusRejected)).Inc()
	logger.Info("Application rejected", "application_id", id, "admin_id", caller.UserID)

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.emailSvc.SendApplicationDecision(ctx, app.Email, app.Name, false, note); err != nil {
		logger.Warn("Failed to send rejection notification", "application_id", id, "error", err)
	}
	return app, nil
}

// ConfirmPayment moves a PAYMENT_PENDING application to PAID and issues
// credentials exactly once. A second call fails with an invalid
// transition instead of silently re-issuing; the member insert and the
// status update share one transaction in the repository.
func (s *applicationService) ConfirmPayment(ctx context.Context, caller domain.Principal, id int32) (*domain.Credentials, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPaymentPending {
		return nil, domain.ErrInvalidTransition
	}

	member, password, err := s.issuer.Issue(app)
	if err != nil {
		return nil, fmt.Errorf("failed to issue credentials: %w", err)
	}

	if err := s.appRepo.MarkPaidAndCreateMember(ctx, id, member); err != nil {
		return nil, err
	}
	metrics.ApplicationTransitions.WithLabelValues(string(domain.ApplicationStatusPaid)).Inc()
	logger.Info("Application payment confirmed", "application_id", id, "member_id", member.ID, "admin_id", caller.UserID)

	if err := s.emailSvc.SendAccountCreated(ctx, member.Email, member.Name); err != nil {
		logger.Warn("Failed to send account notification", "member_id", member.ID, "error", err)
	}

	// The plaintext password leaves the system exactly here. Only the
	// bcrypt hash is stored.
	return &domain.Credentials{
		Email:           member.Email,
		InitialPassword: password,
		MembershipType:  member.MembershipType,
	}, nil
}
