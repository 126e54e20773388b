package points

import (
	"strings"

	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
)

// ValidationError collects every violation found in a submission so the
// caller sees all of them at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// Validate checks a submission against the enumerated rule sets and
// returns every violation. It never short-circuits; a nil result means
// the submission is valid.
func Validate(s Submission) []string {
	var errs []string

	if s.ItemType == "" {
		errs = append(errs, "Item type is required")
	} else if _, ok := basePoints[s.ItemType]; !ok && s.ItemType != Other {
		errs = append(errs, "Invalid item type")
	}

	if s.Condition == "" {
		errs = append(errs, "Item condition is required")
	} else if _, ok := conditionBonus[s.Condition]; !ok {
		errs = append(errs, "Invalid item condition")
	}

	if s.Quantity < 1 {
		errs = append(errs, "Quantity must be at least 1")
	}

	if s.Tier == "" {
		errs = append(errs, "User tier is required")
	} else if !wallet.ValidTier(string(s.Tier)) {
		errs = append(errs, "Invalid user tier")
	}

	if s.Weight < 0 {
		errs = append(errs, "Weight cannot be negative")
	}

	return errs
}
