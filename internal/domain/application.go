package domain

type ApplicationStatus string

const (
	ApplicationStatusPending        ApplicationStatus = "PENDING"
	ApplicationStatusPaymentPending ApplicationStatus = "PAYMENT_PENDING"
	ApplicationStatusPaid           ApplicationStatus = "PAID"
	ApplicationStatusRejected       ApplicationStatus = "REJECTED"
)

type MembershipType string

const (
	MembershipTypeJoven    MembershipType = "JOVEN"
	MembershipTypeNormal   MembershipType = "NORMAL"
	MembershipTypeGratuito MembershipType = "GRATUITO"
)

// ValidMembershipType reports whether s names one of the three known tiers.
func ValidMembershipType(s string) bool {
	switch MembershipType(s) {
	case MembershipTypeJoven, MembershipTypeNormal, MembershipTypeGratuito:
		return true
	}
	return false
}

// Application is a membership application. MembershipType and
// ResolutionNote are only meaningful once the application has left
// PENDING; credentials exist iff status is PAID.
type Application struct {
	ID             int32             `json:"id"`
	Name           string            `json:"name"`
	Email          string            `json:"email"`
	PhoneNumber    string            `json:"phone_number"`
	Specialization string            `json:"specialization"`
	ExperienceYrs  int32             `json:"experience_years"`
	Motivation     string            `json:"motivation"`
	AcademicInfo   string            `json:"academic_info"`
	ProfessionInfo string            `json:"profession_info"`
	DocumentURL    string            `json:"document_url"`
	Status         ApplicationStatus `json:"status"`
	MembershipType *MembershipType   `json:"membership_type,omitempty"`
	ResolutionNote string            `json:"resolution_note,omitempty"`
	CreatedOn      string            `json:"created_on"`
}

// Credentials is the one-time tuple returned when payment is confirmed.
// The plaintext password is never stored in recoverable form.
type Credentials struct {
	Email           string         `json:"email"`
	InitialPassword string         `json:"initial_password"`
	MembershipType  MembershipType `json:"membership_type"`
}
