// Package wallet implements the Green Wallet ledger: a per-user balance
// with an append-only transaction history, derived tier and badges, and
// the time-boxed 2X redemption window.
package wallet

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Wallet holds the points balance and the append-only transaction history.
//
// Invariants:
//   - Balance always equals the sum of Points over History.
//   - Balance is never negative.
//   - TotalEarned and TotalRedeemed are monotonically non-decreasing.
//   - History is append-only; insertion order is creation order, which may
//     differ from timestamp order under clock skew.
type Wallet struct {
	Balance       int           `json:"balance"`
	TotalEarned   int           `json:"totalEarned"`
	TotalRedeemed int           `json:"totalRedeemed"`
	History       []Transaction `json:"history"`
}

// CreditCount returns the number of credit-kind transactions in the history.
func (w *Wallet) CreditCount() int {
	n := 0
	for i := range w.History {
		if w.History[i].Kind == KindCredit {
			n++
		}
	}
	return n
}

// HistoryNewestFirst returns a copy of the history sorted by timestamp,
// newest first, optionally filtered by kind (empty kind keeps everything).
// Equal timestamps keep their insertion order relative to each other.
func (w *Wallet) HistoryNewestFirst(kind Kind) []Transaction {
	out := make([]Transaction, 0, len(w.History))
	for i := range w.History {
		if kind != "" && w.History[i].Kind != kind {
			continue
		}
		out = append(out, w.History[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Account is the unit the ledger engine operates on: the wallet plus the
// aggregates derived from it. It is loaded as a snapshot, mutated through
// Credit and Debit only, and persisted atomically with all derived fields.
type Account struct {
	Wallet              Wallet    `json:"greenWallet"`
	Tier                Tier      `json:"tier"`
	Badges              []BadgeID `json:"badges"`
	TotalItemsRecycled  int       `json:"totalItemsRecycled"`
	TotalWeightRecycled float64   `json:"totalWeightRecycled"`
}

// NewAccount returns a zero-valued account at the First-time tier.
func NewAccount() Account {
	return Account{Tier: TierFirstTime}
}

// WeightBonus converts a submission weight in kilograms to bonus points.
// The product is truncated so the ledger stays integral; the fractional
// kilograms are still accumulated in TotalWeightRecycled.
func WeightBonus(weight float64) int {
	if weight <= 0 {
		return 0
	}
	return int(weight * 2)
}

// Credit applies a points award to the account. If metadata carries a
// positive weight, the weight bonus becomes part of the recorded
// transaction magnitude. Tier and badges are recomputed as part of the
// same operation; newly awarded badges are returned.
func (a *Account) Credit(points int, source string, md *Metadata, now time.Time) (*Transaction, []BadgeID, error) {
	if points <= 0 {
		return nil, nil, ErrCreditAmountMustBePositive
	}
	applied := points
	if md != nil && md.Weight > 0 {
		applied += WeightBonus(md.Weight)
	}

	tx := Transaction{
		ID:        uuid.New(),
		Timestamp: now,
		Points:    applied,
		Kind:      KindCredit,
		Source:    source,
		Metadata:  md,
	}
	a.Wallet.Balance += applied
	a.Wallet.TotalEarned += applied
	a.Wallet.History = append(a.Wallet.History, tx)

	if md != nil {
		if md.Quantity > 0 {
			a.TotalItemsRecycled += md.Quantity
		}
		if md.Weight > 0 {
			a.TotalWeightRecycled += md.Weight
		}
	}

	a.Tier = TierForCreditCount(a.Wallet.CreditCount())
	earned := a.evaluateBadges()

	return &a.Wallet.History[len(a.Wallet.History)-1], earned, nil
}

// Debit removes points from the account. The recorded transaction carries
// a negative Points value. Tier and badges are not recomputed: the tier is
// credit-count-driven and badges are monotonic.
func (a *Account) Debit(points int, source string, now time.Time) (*Transaction, error) {
	if points <= 0 {
		return nil, ErrDebitAmountMustBePositive
	}
	if points > a.Wallet.Balance {
		return nil, &InsufficientBalanceError{Current: a.Wallet.Balance, Requested: points}
	}

	tx := Transaction{
		ID:        uuid.New(),
		Timestamp: now,
		Points:    -points,
		Kind:      KindDebit,
		Source:    source,
	}
	a.Wallet.Balance -= points
	a.Wallet.TotalRedeemed += points
	a.Wallet.History = append(a.Wallet.History, tx)

	return &a.Wallet.History[len(a.Wallet.History)-1], nil
}
