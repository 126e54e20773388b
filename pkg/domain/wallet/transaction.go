package wallet

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes ledger-increasing from ledger-decreasing transactions.
type Kind string

const (
	KindCredit Kind = "credit"
	KindDebit  Kind = "debit"
)

// Metadata carries the provenance attributes of a credit transaction.
// Debits carry no metadata.
type Metadata struct {
	ItemType    string  `json:"itemType,omitempty"`
	Condition   string  `json:"condition,omitempty"`
	Quantity    int     `json:"quantity,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	Tier        Tier    `json:"userTier,omitempty"`
	Description string  `json:"description,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
}

// Transaction is a single immutable entry in the wallet history.
//
// Points is signed: positive for credits, negative for debits. The sign is
// the authoritative direction marker and is preserved exactly as recorded;
// Kind is a convenience mirror of it.
type Transaction struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Points    int       `json:"points"`
	Kind      Kind      `json:"kind"`
	Source    string    `json:"source"`
	Metadata  *Metadata `json:"metadata,omitempty"`
}
