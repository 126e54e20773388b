package wallet

// Tier classifies how active a recycler is, derived from the number of
// credit transactions in the wallet history. The credit count never
// decreases, so the tier never downgrades.
type Tier string

const (
	TierFirstTime  Tier = "First-time"
	TierOccasional Tier = "Occasional"
	TierRegular    Tier = "Regular"
)

// ValidTier reports whether s names a known tier.
func ValidTier(s string) bool {
	switch Tier(s) {
	case TierFirstTime, TierOccasional, TierRegular:
		return true
	}
	return false
}

// TierForCreditCount maps a credit-transaction count to a tier.
func TierForCreditCount(count int) Tier {
	switch {
	case count >= 10:
		return TierRegular
	case count >= 3:
		return TierOccasional
	default:
		return TierFirstTime
	}
}
