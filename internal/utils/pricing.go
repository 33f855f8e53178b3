package utils

import (
	"time"

	"asociacion-backend/internal/domain"
)

// ResolvePrice maps (offering, requester tier) to the price in cents.
// Pure function; call it with the offering snapshot current at
// enrollment time, since prices are frozen on the enrollment row and
// never applied retroactively.
//
// A joven price of zero means "no special discount configured" and
// falls back to the member price. The gratuito price is clamped at
// zero so a misconfigured negative value never produces a credit.
func ResolvePrice(off *domain.Offering, tier domain.RequesterTier) int32 {
	switch tier {
	case domain.TierAnonymous:
		return off.PriceNonMemberCents
	case domain.TierJoven:
		if off.PriceJovenCents > 0 {
			return off.PriceJovenCents
		}
		return off.PriceMemberCents
	case domain.TierGratuito:
		if off.PriceGratuitoCents > 0 {
			return off.PriceGratuitoCents
		}
		return 0
	default:
		return off.PriceMemberCents
	}
}

// CanEnroll reports whether the offering accepts a new enrollment at
// now, given the current count of non-cancelled enrollments. It fails
// closed: a past deadline or a reached capacity both gate enrollment.
// A nil MaxStudents means unlimited and a nil deadline means always
// open.
func CanEnroll(off *domain.Offering, activeCount int32, now time.Time) bool {
	if off.RegistrationDeadline != nil {
		deadline, err := time.Parse(time.RFC3339, *off.RegistrationDeadline)
		if err != nil || now.After(deadline) {
			return false
		}
	}
	if off.MaxStudents != nil && activeCount >= *off.MaxStudents {
		return false
	}
	return true
}

// SeatsLeft derives the remaining capacity, clamped at zero. Nil means
// unlimited. The value is derived from the live enrollment count and
// never stored.
func SeatsLeft(off *domain.Offering, activeCount int32) *int32 {
	if off.MaxStudents == nil {
		return nil
	}
	left := *off.MaxStudents - activeCount
	if left < 0 {
		left = 0
	}
	return &left
}
