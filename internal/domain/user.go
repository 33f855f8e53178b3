package domain

type UserRole string

const (
	UserRoleMember UserRole = "MEMBER"
	UserRoleAdmin  UserRole = "ADMIN"
)

type UserPaymentStatus string

const (
	UserPaymentStatusPaid UserPaymentStatus = "PAID"
	UserPaymentStatusDue  UserPaymentStatus = "DUE"
	UserPaymentStatusNone UserPaymentStatus = "NONE"
)

// User is a member account. Created exactly once, either by the
// credential issuer from a paid application or directly by an admin.
// Deactivation flips IsActive; users are never hard-deleted.
type User struct {
	ID             int32             `json:"id"`
	Email          string            `json:"email"`
	Name           string            `json:"name"`
	PhoneNumber    string            `json:"phone_number"`
	PasswordHash   string            `json:"-"`
	Role           UserRole          `json:"role"`
	MembershipType MembershipType    `json:"membership_type"`
	PaymentStatus  UserPaymentStatus `json:"payment_status"`
	IsActive       bool              `json:"is_active"`
	CreatedOn      string            `json:"created_on"`
}

// Principal is the authenticated caller of a service operation. It is
// passed explicitly; services never read identity from ambient state.
type Principal struct {
	UserID         int32
	Email          string
	Role           UserRole
	MembershipType MembershipType
}

// Anonymous marks an unauthenticated caller.
var Anonymous = Principal{}

func (p Principal) IsAnonymous() bool {
	return p.UserID == 0
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

// Tier returns the pricing tier the caller enrolls under.
func (p Principal) Tier() RequesterTier {
	if p.IsAnonymous() {
		return TierAnonymous
	}
	switch p.MembershipType {
	case MembershipTypeJoven:
		return TierJoven
	case MembershipTypeGratuito:
		return TierGratuito
	default:
		return TierNormal
	}
}
