package points_test

import (
	"testing"

	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/points"
	"github.com/stretchr/testify/assert"
)

func TestCalculateWorkingSmartphoneFirstTimer(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	b := points.GetBreakdown(points.Submission{
		ItemType:  points.Smartphone,
		Condition: points.Working,
		Quantity:  1,
		Tier:      wallet.TierFirstTime,
	})
	assert.Equal(50, b.BasePoints)
	assert.Equal(30, b.ConditionBonus)
	assert.Equal(5, b.QuantityBonus)
	assert.Equal(0, b.FrequencyBonus)
	assert.Equal(10, b.BonusPoints, "Smartphone is a rare item")
	assert.Equal(95, b.Total)
}

func TestCalculateDeadCable(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	b := points.GetBreakdown(points.Submission{
		ItemType:  points.Cable,
		Condition: points.Dead,
		Quantity:  1,
		Tier:      wallet.TierFirstTime,
	})
	assert.Equal(5, b.BasePoints)
	assert.Equal(0, b.ConditionBonus)
	assert.Equal(5, b.QuantityBonus)
	assert.Equal(0, b.BonusPoints)
	assert.Equal(10, b.Total)
}

func TestCalculateBasePointsTable(t *testing.T) {
	t.Parallel()

	expected := map[points.ItemType]int{
		points.Smartphone: 50,
		points.Battery:    30,
		points.Laptop:     80,
		points.Tablet:     40,
		points.Charger:    15,
		points.Headphones: 20,
		points.Monitor:    60,
		points.Keyboard:   10,
		points.Mouse:      8,
		points.Cable:      5,
		points.Other:      10,
	}
	for itemType, base := range expected {
		b := points.GetBreakdown(points.Submission{
			ItemType:  itemType,
			Condition: points.Dead,
			Quantity:  1,
			Tier:      wallet.TierFirstTime,
		})
		assert.Equal(t, base, b.BasePoints, "base points for %s", itemType)
	}
}

func TestCalculateTierBonus(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	sub := points.Submission{
		ItemType:  points.Battery,
		Condition: points.Dead,
		Quantity:  1,
	}

	sub.Tier = wallet.TierFirstTime
	first := points.Calculate(sub)
	sub.Tier = wallet.TierOccasional
	occasional := points.Calculate(sub)
	sub.Tier = wallet.TierRegular
	regular := points.Calculate(sub)

	assert.Equal(10, occasional-first, "Occasional adds 10")
	assert.Equal(20, regular-first, "Regular adds 20")
}

func TestBonusPointsStack(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	// Bulk (5+), rare item, and Working batch (3+) all apply at once.
	bonus := points.BonusPoints(points.Submission{
		ItemType:  points.Laptop,
		Condition: points.Working,
		Quantity:  5,
	})
	assert.Equal(25+10+15, bonus)

	// Quantity 3 working, not bulk, not rare.
	bonus = points.BonusPoints(points.Submission{
		ItemType:  points.Keyboard,
		Condition: points.Working,
		Quantity:  3,
	})
	assert.Equal(15, bonus)

	// Nothing applies.
	bonus = points.BonusPoints(points.Submission{
		ItemType:  points.Cable,
		Condition: points.Dead,
		Quantity:  1,
	})
	assert.Equal(0, bonus)
}

func TestCalculateUnknownTypeGetsDefaultBase(t *testing.T) {
	t.Parallel()

	b := points.GetBreakdown(points.Submission{
		ItemType:  "Vacuum",
		Condition: points.Dead,
		Quantity:  1,
		Tier:      wallet.TierFirstTime,
	})
	assert.Equal(t, 10, b.BasePoints)
}

func TestCalculateFloorNeverUndercutsMinimum(t *testing.T) {
	t.Parallel()

	total := points.Calculate(points.Submission{
		ItemType:  points.Cable,
		Condition: points.Dead,
		Quantity:  0, // invalid, but the calculator itself stays total-ordered
		Tier:      wallet.TierFirstTime,
	})
	assert.GreaterOrEqual(t, total, points.MinimumAward)
}
