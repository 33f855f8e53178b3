package service

import (
	"context"
	"fmt"
	"strings"

	"asociacion-backend/internal/domain"
	"asociacion-backend/internal/logger"
	"asociacion-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type adminService struct {
	userRepo repository.UserRepository
	emailSvc EmailService
}

func NewAdminService(userRepo repository.UserRepository, emailSvc EmailService) AdminService {
	return &adminService{
		userRepo: userRepo,
		emailSvc: emailSvc,
	}
}

// CreateMember is the direct creation path, next to credential
// issuance from a paid application. The admin picks the password.
func (s *adminService) CreateMember(ctx context.Context, caller domain.Principal, member *domain.User, password string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if strings.TrimSpace(member.Name) == "" {
		return domain.NewValidationError("name", "must not be empty")
	}
	if !strings.Contains(member.Email, "@") {
		return domain.NewValidationError("email", "must be an email address")
	}
	if len(password) < 8 {
		return domain.NewValidationError("password", "must be at least 8 characters")
	}
	if !domain.ValidMembershipType(string(member.MembershipType)) {
		return domain.NewValidationError("membership_type", "must be JOVEN, NORMAL or GRATUITO")
	}
	switch member.Role {
	case domain.UserRoleMember, domain.UserRoleAdmin:
	case "":
		member.Role = domain.UserRoleMember
	default:
		return domain.NewValidationError("role", "must be MEMBER or ADMIN")
	}
	switch member.PaymentStatus {
	case domain.UserPaymentStatusPaid, domain.UserPaymentStatusDue, domain.UserPaymentStatusNone:
	case "":
		member.PaymentStatus = domain.UserPaymentStatusNone
	default:
		return domain.NewValidationError("payment_status", "must be PAID, DUE or NONE")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	member.PasswordHash = string(hash)
	member.IsActive = true

	if err := s.userRepo.Create(ctx, member); err != nil {
		return err
	}
	logger.Info("Member created by admin", "member_id", member.ID, "admin_id", caller.UserID)

	if err := s.emailSvc.SendAccountCreated(ctx, member.Email, member.Name); err != nil {
		logger.Warn("Failed to send account notification", "member_id", member.ID, "error", err)
	}
	return nil
}

// DeactivateMember flips is_active off. Members are never hard-deleted.
func (s *adminService) DeactivateMember(ctx context.Context, caller domain.Principal, userID int32) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.userRepo.SetActive(ctx, userID, false); err != nil {
		return err
	}
	logger.Info("Member deactivated", "member_id", userID, "admin_id", caller.UserID)
	return nil
}

func (s *adminService) ListMembers(ctx context.Context, caller domain.Principal) ([]domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.userRepo.List(ctx)
}

func (s *adminService) GetMember(ctx context.Context, caller domain.Principal, userID int32) (*domain.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
