package wallet

// BadgeID identifies an achievement badge.
type BadgeID string

const (
	BadgeWelcome         BadgeID = "welcome"
	BadgeEcoHero         BadgeID = "eco-hero"
	BadgeGreenChampion   BadgeID = "green-champion"
	BadgeBulkRecycler    BadgeID = "bulk-recycler"
	BadgeHeavyLifter     BadgeID = "heavy-lifter"
	BadgeRegularRecycler BadgeID = "regular-recycler"
)

// Badge is the display metadata for a badge.
type Badge struct {
	ID          BadgeID `json:"id"`
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
}

// Catalog lists every badge in award-evaluation order.
var Catalog = []Badge{
	{ID: BadgeWelcome, Name: "Welcome", Icon: "👋", Description: "Joined the Green Points community"},
	{ID: BadgeEcoHero, Name: "Eco Hero", Icon: "🌱", Description: "Earned 500 Green Points"},
	{ID: BadgeGreenChampion, Name: "Green Champion", Icon: "🏆", Description: "Earned 1000 Green Points"},
	{ID: BadgeBulkRecycler, Name: "Bulk Recycler", Icon: "📦", Description: "Recycled 10 items"},
	{ID: BadgeHeavyLifter, Name: "Heavy Lifter", Icon: "💪", Description: "Recycled 50 kg of e-waste"},
	{ID: BadgeRegularRecycler, Name: "Regular Recycler", Icon: "⭐", Description: "Reached the Regular tier"},
}

// BadgeByID looks up a badge's display metadata.
func BadgeByID(id BadgeID) (Badge, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// HasBadge reports whether the account already holds the badge.
func (a *Account) HasBadge(id BadgeID) bool {
	for _, held := range a.Badges {
		if held == id {
			return true
		}
	}
	return false
}

// badgeEarned reports whether the account meets the badge's threshold.
// Thresholds reference only counters that never decrease, so a badge once
// earned can never become unearned. Badges are never removed.
func (a *Account) badgeEarned(id BadgeID) bool {
	switch id {
	case BadgeWelcome:
		return true
	case BadgeEcoHero:
		return a.Wallet.TotalEarned >= 500
	case BadgeGreenChampion:
		return a.Wallet.TotalEarned >= 1000
	case BadgeBulkRecycler:
		return a.TotalItemsRecycled >= 10
	case BadgeHeavyLifter:
		return a.TotalWeightRecycled >= 50
	case BadgeRegularRecycler:
		return a.Tier == TierRegular
	}
	return false
}

// evaluateBadges awards every badge whose threshold is met and not yet
// held, preserving catalog order for display. It returns the newly awarded
// badges. Awarding is idempotent.
func (a *Account) evaluateBadges() []BadgeID {
	var earned []BadgeID
	for _, b := range Catalog {
		if a.HasBadge(b.ID) {
			continue
		}
		if a.badgeEarned(b.ID) {
			a.Badges = append(a.Badges, b.ID)
			earned = append(earned, b.ID)
		}
	}
	return earned
}
