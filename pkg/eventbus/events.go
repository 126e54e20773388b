package eventbus

import (
	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/google/uuid"
)

// PointsCredited is emitted after a submission credit has been persisted.
type PointsCredited struct {
	UserID     uuid.UUID
	Points     int
	Source     string
	NewBalance int
	Tier       wallet.Tier
}

func (PointsCredited) Type() string { return "PointsCredited" }

// PointsRedeemed is emitted after a redemption debit has been persisted.
type PointsRedeemed struct {
	UserID         uuid.UUID
	Points         int
	Source         string
	EffectiveValue int
	Used2XValue    bool
	NewBalance     int
}

func (PointsRedeemed) Type() string { return "PointsRedeemed" }

// BadgeEarned is emitted once per newly awarded badge.
type BadgeEarned struct {
	UserID uuid.UUID
	Badge  wallet.BadgeID
}

func (BadgeEarned) Type() string { return "BadgeEarned" }
