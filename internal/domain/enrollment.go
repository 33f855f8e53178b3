package domain

type EnrollmentPaymentStatus string

const (
	EnrollmentPaymentStatusPending   EnrollmentPaymentStatus = "PENDING"
	EnrollmentPaymentStatusPaid      EnrollmentPaymentStatus = "PAID"
	EnrollmentPaymentStatusCancelled EnrollmentPaymentStatus = "CANCELLED"
)

// Enrollment records one identity signed up for one offering.
// PaymentAmountCents is the price resolved at enrollment time and is
// immutable afterwards; later price edits on the offering do not apply
// retroactively. At most one non-cancelled enrollment may exist per
// (offering, email).
type Enrollment struct {
	ID                 int32                   `json:"id"`
	OfferingID         int32                   `json:"offering_id"`
	Name               string                  `json:"name"`
	Email              string                  `json:"email"`
	PhoneNumber        string                  `json:"phone_number"`
	PaymentStatus      EnrollmentPaymentStatus `json:"payment_status"`
	PaymentAmountCents int32                   `json:"payment_amount_cents"`
	PaymentReference   string                  `json:"payment_reference"`
	CreatedOn          string                  `json:"created_on"`
}

// EnrollmentIdentity is who is enrolling, as supplied by the caller.
type EnrollmentIdentity struct {
	Name        string
	Email       string
	PhoneNumber string
}
