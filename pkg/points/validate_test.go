package points_test

import (
	"testing"

	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/points"
	"github.com/stretchr/testify/assert"
)

func TestValidateValidSubmission(t *testing.T) {
	t.Parallel()

	errs := points.Validate(points.Submission{
		ItemType:  points.Smartphone,
		Condition: points.Working,
		Quantity:  1,
		Tier:      wallet.TierFirstTime,
	})
	assert.Empty(t, errs)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	errs := points.Validate(points.Submission{
		ItemType:  "",
		Condition: "",
		Quantity:  0,
		Weight:    -1,
		Tier:      "",
	})
	assert.Contains(errs, "Item type is required")
	assert.Contains(errs, "Item condition is required")
	assert.Contains(errs, "Quantity must be at least 1")
	assert.Contains(errs, "User tier is required")
	assert.Contains(errs, "Weight cannot be negative")
	assert.Len(errs, 5, "every violation is reported at once")
}

func TestValidateRejectsUnknownEnumValues(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	errs := points.Validate(points.Submission{
		ItemType:  "Fridge",
		Condition: "Mint",
		Quantity:  1,
		Tier:      "Platinum",
	})
	assert.Contains(errs, "Invalid item type")
	assert.Contains(errs, "Invalid item condition")
	assert.Contains(errs, "Invalid user tier")
}

func TestValidateAcceptsOther(t *testing.T) {
	t.Parallel()

	errs := points.Validate(points.Submission{
		ItemType:  points.Other,
		Condition: points.Dead,
		Quantity:  1,
		Tier:      wallet.TierRegular,
	})
	assert.Empty(t, errs)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &points.ValidationError{Errors: []string{"Item type is required", "Quantity must be at least 1"}}
	assert.Equal(t, "validation failed: Item type is required; Quantity must be at least 1", err.Error())
}
