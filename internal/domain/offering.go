package domain

type OfferingFormat string

const (
	OfferingFormatWebinar    OfferingFormat = "WEBINAR"
	OfferingFormatPresencial OfferingFormat = "PRESENCIAL"
)

// RequesterTier is the pricing tier of whoever asks for a price. It is
// the membership tier plus ANONYMOUS for unauthenticated visitors.
type RequesterTier string

const (
	TierAnonymous RequesterTier = "ANONYMOUS"
	TierJoven     RequesterTier = "JOVEN"
	TierNormal    RequesterTier = "NORMAL"
	TierGratuito  RequesterTier = "GRATUITO"
)

// Offering is a paid event or course. Events and courses are
// structurally identical for pricing and capacity purposes.
// MaxStudents nil means unlimited capacity.
type Offering struct {
	ID                   int32          `json:"id"`
	Title                string         `json:"title"`
	Format               OfferingFormat `json:"format"`
	MaxStudents          *int32         `json:"max_students"`
	StartDate            string         `json:"start_date"`
	RegistrationDeadline *string        `json:"registration_deadline"`
	PriceMemberCents     int32          `json:"price_member_cents"`
	PriceNonMemberCents  int32          `json:"price_non_member_cents"`
	PriceJovenCents      int32          `json:"price_joven_cents"`
	PriceGratuitoCents   int32          `json:"price_gratuito_cents"`
	CreatedOn            string         `json:"created_on"`
}
