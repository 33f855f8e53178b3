package service_test

import (
	"context"

	"asociacion-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) UpdateDecision(ctx context.Context, id int32, status domain.ApplicationStatus, membershipType *domain.MembershipType, note string) error {
	args := m.Called(ctx, id, status, membershipType, note)
	return args.Error(0)
}
func (m *MockApplicationRepo) MarkPaidAndCreateMember(ctx context.Context, id int32, member *domain.User) error {
	args := m.Called(ctx, id, member)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListByStatus(ctx context.Context, status domain.ApplicationStatus) ([]domain.Application, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) List(ctx context.Context) ([]domain.Application, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) ListPaymentPendingOlderThan(ctx context.Context, days int) ([]domain.Application, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.Application), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) SetActive(ctx context.Context, id int32, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

// MockOfferingRepo
type MockOfferingRepo struct {
	mock.Mock
}

func (m *MockOfferingRepo) Create(ctx context.Context, off *domain.Offering) error {
	args := m.Called(ctx, off)
	return args.Error(0)
}
func (m *MockOfferingRepo) GetByID(ctx context.Context, id int32) (*domain.Offering, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offering), args.Error(1)
}
func (m *MockOfferingRepo) List(ctx context.Context) ([]domain.Offering, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Offering), args.Error(1)
}

// MockEnrollmentRepo
type MockEnrollmentRepo struct {
	mock.Mock
}

func (m *MockEnrollmentRepo) CreateWithCapacityCheck(ctx context.Context, enr *domain.Enrollment, maxStudents *int32) error {
	args := m.Called(ctx, enr, maxStudents)
	return args.Error(0)
}
func (m *MockEnrollmentRepo) GetByID(ctx context.Context, id int32) (*domain.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Enrollment), args.Error(1)
}
func (m *MockEnrollmentRepo) CountActive(ctx context.Context, offeringID int32) (int32, error) {
	args := m.Called(ctx, offeringID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockEnrollmentRepo) ListByOffering(ctx context.Context, offeringID int32) ([]domain.Enrollment, error) {
	args := m.Called(ctx, offeringID)
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}
func (m *MockEnrollmentRepo) UpdatePaymentStatus(ctx context.Context, id int32, status domain.EnrollmentPaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockEnrollmentRepo) ListPendingForUpcoming(ctx context.Context, days int) ([]domain.Enrollment, error) {
	args := m.Called(ctx, days)
	return args.Get(0).([]domain.Enrollment), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendApplicationReceived(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationDecision(ctx context.Context, email, name string, approved bool, note string) error {
	args := m.Called(ctx, email, name, approved, note)
	return args.Error(0)
}
func (m *MockEmailService) SendAccountCreated(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentReminder(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}
func (m *MockEmailService) SendEnrollmentConfirmation(ctx context.Context, email, name, offeringTitle string, amountCents int32) error {
	args := m.Called(ctx, email, name, offeringTitle, amountCents)
	return args.Error(0)
}
func (m *MockEmailService) SendEnrollmentPaymentReminder(ctx context.Context, email, name string, offeringID int32) error {
	args := m.Called(ctx, email, name, offeringID)
	return args.Error(0)
}
