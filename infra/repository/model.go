// Package repository implements the user repository and unit of work on
// top of gorm. The aggregate is split across two tables: a users row
// carrying the wallet totals and derived fields, and an append-only
// transactions table carrying the history.
package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a user record in the database. Badges are stored as a
// JSON-encoded array; the wallet totals live directly on the row so a
// balance read never has to replay the history.
type User struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key"`
	Name                string    `gorm:"not null;size:255"`
	Email               string    `gorm:"uniqueIndex;not null;size:255"`
	Password            string    `gorm:"not null"`
	Phone               string    `gorm:"size:50"`
	Address             string    `gorm:"size:255"`
	City                string    `gorm:"size:100"`
	State               string    `gorm:"size:100"`
	ZipCode             string    `gorm:"size:20"`
	ReferralCode        string    `gorm:"size:50"`
	Tier                string    `gorm:"size:20;not null"`
	Balance             int       `gorm:"not null;default:0"`
	TotalEarned         int       `gorm:"not null;default:0"`
	TotalRedeemed       int       `gorm:"not null;default:0"`
	TotalItemsRecycled  int       `gorm:"not null;default:0"`
	TotalWeightRecycled float64   `gorm:"not null;default:0"`
	Badges              string    `gorm:"type:text"`
	Version             int64     `gorm:"not null;default:0"`
	LastLogin           time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Transaction represents one immutable ledger entry. Seq preserves the
// append order within a wallet; Metadata is the JSON-encoded provenance
// of a credit, empty for debits.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Seq       int       `gorm:"not null"`
	Timestamp time.Time `gorm:"not null"`
	Points    int       `gorm:"not null"`
	Kind      string    `gorm:"size:10;not null"`
	Source    string    `gorm:"size:255"`
	Metadata  string    `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Transaction{})
}
