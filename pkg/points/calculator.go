// Package points implements the Green Points rule table: a deterministic,
// stateless calculator that turns a submission into a point award with an
// itemized breakdown.
package points

import (
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
)

// ItemType enumerates the accepted e-waste categories.
type ItemType string

const (
	Smartphone ItemType = "Smartphone"
	Battery    ItemType = "Battery"
	Laptop     ItemType = "Laptop"
	Tablet     ItemType = "Tablet"
	Charger    ItemType = "Charger"
	Headphones ItemType = "Headphones"
	Monitor    ItemType = "Monitor"
	Keyboard   ItemType = "Keyboard"
	Mouse      ItemType = "Mouse"
	Cable      ItemType = "Cable"
	Other      ItemType = "Other"
)

// Condition enumerates the accepted item conditions.
type Condition string

const (
	Working    Condition = "Working"
	Repairable Condition = "Repairable"
	Dead       Condition = "Dead"
)

// MinimumAward is the floor applied to every valid submission.
const MinimumAward = 5

var basePoints = map[ItemType]int{
	Smartphone: 50,
	Battery:    30,
	Laptop:     80,
	Tablet:     40,
	Charger:    15,
	Headphones: 20,
	Monitor:    60,
	Keyboard:   10,
	Mouse:      8,
	Cable:      5,
}

// defaultBasePoints applies to Other and any unrecognized type.
const defaultBasePoints = 10

var conditionBonus = map[Condition]int{
	Working:    30,
	Repairable: 15,
	Dead:       0,
}

var tierBonus = map[wallet.Tier]int{
	wallet.TierRegular:    20,
	wallet.TierOccasional: 10,
	wallet.TierFirstTime:  0,
}

// rareItems earn an extra bonus on every submission.
var rareItems = map[ItemType]bool{
	Smartphone: true,
	Laptop:     true,
	Tablet:     true,
	Monitor:    true,
}

// Submission is the input to the calculator. Weight is not part of the
// calculated total; the weight bonus is applied by the wallet at credit
// time so it shows up in the recorded transaction magnitude.
type Submission struct {
	ItemType  ItemType
	Condition Condition
	Quantity  int
	Weight    float64
	Tier      wallet.Tier
}

// Breakdown itemizes each term of the award for caller transparency.
// Total is the floored sum of the five terms and excludes any downstream
// weight bonus.
type Breakdown struct {
	BasePoints     int `json:"basePoints"`
	ConditionBonus int `json:"conditionBonus"`
	QuantityBonus  int `json:"quantityBonus"`
	FrequencyBonus int `json:"frequencyBonus"`
	BonusPoints    int `json:"bonusPoints"`
	Total          int `json:"total"`
}

// Calculate computes the point award for a valid submission. Every term
// is additive and derived from the inputs alone.
func Calculate(s Submission) int {
	return GetBreakdown(s).Total
}

// BonusPoints computes the special bonus: bulk submissions (5+ items),
// rare item types, and perfect-condition batches (Working, 3+ items).
// The three stack additively.
func BonusPoints(s Submission) int {
	bonus := 0
	if s.Quantity >= 5 {
		bonus += 25
	}
	if rareItems[s.ItemType] {
		bonus += 10
	}
	if s.Condition == Working && s.Quantity >= 3 {
		bonus += 15
	}
	return bonus
}

// GetBreakdown itemizes the award. The floor of MinimumAward applies to
// the total after the special bonus.
func GetBreakdown(s Submission) Breakdown {
	b := Breakdown{
		ConditionBonus: conditionBonus[s.Condition],
		QuantityBonus:  s.Quantity * 5,
		FrequencyBonus: tierBonus[s.Tier],
		BonusPoints:    BonusPoints(s),
	}
	base, ok := basePoints[s.ItemType]
	if !ok {
		base = defaultBasePoints
	}
	b.BasePoints = base

	b.Total = b.BasePoints + b.ConditionBonus + b.QuantityBonus + b.FrequencyBonus + b.BonusPoints
	if b.Total < MinimumAward {
		b.Total = MinimumAward
	}
	return b
}
