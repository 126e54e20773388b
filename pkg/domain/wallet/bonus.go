package wallet

import (
	"fmt"
	"time"
)

const (
	// BonusWindowDuration is how long the 2X window stays open after a credit.
	BonusWindowDuration = 24 * time.Hour

	// BonusMultiplier is the effective-value multiplier inside the window.
	// It changes what a redemption is reported to be worth, never the
	// amount actually debited.
	BonusMultiplier = 2
)

// BonusStatus is the 2X window state at a given instant, derived from the
// wallet history on demand. Nothing ticks it.
type BonusStatus struct {
	Active       bool
	Remaining    time.Duration
	LastCreditAt *time.Time
}

// BonusStatus computes the 2X window state at now. The window is anchored
// to the most recent credit by timestamp; when two credits share a
// timestamp the last-appended one wins.
func (w *Wallet) BonusStatus(now time.Time) BonusStatus {
	var last *Transaction
	for i := range w.History {
		tx := &w.History[i]
		if tx.Kind != KindCredit {
			continue
		}
		if last == nil || !tx.Timestamp.Before(last.Timestamp) {
			last = tx
		}
	}
	if last == nil {
		return BonusStatus{}
	}

	elapsed := now.Sub(last.Timestamp)
	remaining := BonusWindowDuration - elapsed
	if remaining < 0 {
		remaining = 0
	}
	ts := last.Timestamp
	return BonusStatus{
		Active:       elapsed <= BonusWindowDuration,
		Remaining:    remaining,
		LastCreditAt: &ts,
	}
}

// FormattedRemaining renders the remaining window for display:
// "{hours}h {minutes}m" when at least an hour remains, "{minutes}m"
// below that, and "Expired" once the window is closed.
func (s BonusStatus) FormattedRemaining() string {
	if s.Remaining <= 0 {
		return "Expired"
	}
	hours := int(s.Remaining.Hours())
	minutes := int(s.Remaining.Minutes()) % 60
	if hours >= 1 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
