package dto

import (
	"time"

	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/points"
)

// SubmitEWaste is the input for a submission or a preview calculation.
type SubmitEWaste struct {
	ItemType    string
	Condition   string
	Quantity    int
	Weight      float64
	Description string
	ImageURL    string
}

// SubmitResult reports a successful credit.
type SubmitResult struct {
	Points      int                `json:"points"`
	Breakdown   points.Breakdown   `json:"breakdown"`
	NewBalance  int                `json:"newBalance"`
	Tier        wallet.Tier        `json:"tier"`
	Transaction wallet.Transaction `json:"transaction"`
}

// CalculateResult reports a preview without mutating the ledger.
type CalculateResult struct {
	EstimatedPoints int              `json:"estimatedPoints"`
	Breakdown       points.Breakdown `json:"breakdown"`
	Tier            wallet.Tier      `json:"tier"`
}

// Redeem is the input for a redemption.
type Redeem struct {
	Points      int
	RedeemFor   string
	Description string
}

// RedeemResult reports a successful debit. EffectiveValue doubles inside
// an active 2X window; the debited amount never does.
type RedeemResult struct {
	PointsRedeemed int  `json:"pointsRedeemed"`
	EffectiveValue int  `json:"effectiveValue"`
	Multiplier     int  `json:"multiplier"`
	Used2XValue    bool `json:"used2XValue"`
	NewBalance     int  `json:"newBalance"`
}

// BalanceRead is the balance/totals snapshot.
type BalanceRead struct {
	Balance             int         `json:"balance"`
	TotalEarned         int         `json:"totalEarned"`
	TotalRedeemed       int         `json:"totalRedeemed"`
	Tier                wallet.Tier `json:"tier"`
	TotalItemsRecycled  int         `json:"totalItemsRecycled"`
	TotalWeightRecycled float64     `json:"totalWeightRecycled"`
}

// Pagination describes a history page.
type Pagination struct {
	CurrentPage       int  `json:"currentPage"`
	TotalPages        int  `json:"totalPages"`
	TotalTransactions int  `json:"totalTransactions"`
	HasNext           bool `json:"hasNext"`
	HasPrev           bool `json:"hasPrev"`
}

// HistoryRead is a newest-first page of transactions.
type HistoryRead struct {
	History    []wallet.Transaction `json:"history"`
	Pagination Pagination           `json:"pagination"`
}

// BadgeRead is a badge with display metadata, in the order earned.
type BadgeRead struct {
	ID          wallet.BadgeID `json:"id"`
	Name        string         `json:"name"`
	Icon        string         `json:"icon"`
	Description string         `json:"description"`
}

// BonusStatusRead is the 2X window state for display. Remaining is
// milliseconds; the formatted string serves display.
type BonusStatusRead struct {
	Active             bool       `json:"canUse2X"`
	Multiplier         int        `json:"multiplier"`
	Remaining          int64      `json:"timeRemaining"`
	RemainingFormatted string     `json:"timeRemainingFormatted"`
	LastCreditAt       *time.Time `json:"lastCreditAt,omitempty"`
}

// DashboardRead aggregates the landing-page statistics.
type DashboardRead struct {
	Name                string               `json:"name"`
	Email               string               `json:"email"`
	Tier                wallet.Tier          `json:"tier"`
	MemberSince         time.Time            `json:"memberSince"`
	Balance             int                  `json:"balance"`
	TotalEarned         int                  `json:"totalEarned"`
	TotalRedeemed       int                  `json:"totalRedeemed"`
	ThisMonthEarned     int                  `json:"thisMonthEarned"`
	ThisMonthRedeemed   int                  `json:"thisMonthRedeemed"`
	TotalTransactions   int                  `json:"totalTransactions"`
	TotalItemsSubmitted int                  `json:"totalItemsSubmitted"`
	ItemsByType         map[string]int       `json:"itemsSubmittedByType"`
	AveragePerCredit    int                  `json:"averagePointsPerTransaction"`
	RecentTransactions  []wallet.Transaction `json:"recentTransactions"`
}

// MonthlyStat is one calendar month of activity.
type MonthlyStat struct {
	Month        string `json:"month"` // YYYY-MM
	Earned       int    `json:"earned"`
	Redeemed     int    `json:"redeemed"`
	Transactions int    `json:"transactions"`
}

// StatsRead is the six-month activity report plus totals.
type StatsRead struct {
	MonthlyStats []MonthlyStat `json:"monthlyStats"`
	Totals       BalanceRead   `json:"totalStats"`
}
