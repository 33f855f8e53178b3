package service

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"asociacion-backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!#$%&*+-?"
)

// CredentialIssuer builds the member account for a paid application.
// The account email is the application email; the initial password is
// random, meets the configured minimum length and always mixes the
// four character classes. Issuance happens at most once per
// application; the unique email constraint backs that up if a retry
// slips past the state machine.
type CredentialIssuer struct {
	passwordLength int
}

func NewCredentialIssuer(passwordLength int) *CredentialIssuer {
	if passwordLength < 8 {
		passwordLength = 8
	}
	return &CredentialIssuer{passwordLength: passwordLength}
}

// Issue returns the member to persist and the plaintext initial
// password. The caller persists the member atomically with the paid
// transition and surfaces the password exactly once.
func (ci *CredentialIssuer) Issue(app *domain.Application) (*domain.User, string, error) {
	if app.MembershipType == nil {
		return nil, "", domain.ErrInvalidTransition
	}

	password, err := ci.generatePassword()
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	member := &domain.User{
		Email:          app.Email,
		Name:           app.Name,
		PhoneNumber:    app.PhoneNumber,
		PasswordHash:   string(hash),
		Role:           domain.UserRoleMember,
		MembershipType: *app.MembershipType,
		PaymentStatus:  domain.UserPaymentStatusPaid,
		IsActive:       true,
	}
	return member, password, nil
}

func (ci *CredentialIssuer) generatePassword() (string, error) {
	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	all := lowerChars + upperChars + digitChars + symbolChars

	buf := make([]byte, ci.passwordLength)
	// One character from each class keeps the mixed-classes policy
	// regardless of what the random tail draws.
	for i, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}
	for i := len(classes); i < ci.passwordLength; i++ {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		buf[i] = c
	}

	// Shuffle so the class-guaranteed characters are not predictably
	// placed at the front.
	for i := len(buf) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		buf[i], buf[j.Int64()] = buf[j.Int64()], buf[i]
	}
	return string(buf), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
