// Package user defines the user aggregate: identity, profile, and the
// exclusively owned Green Wallet account. The aggregate is the unit of
// persistence; every mutation is persisted together with the derived
// wallet fields.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/amirasaad/greenpoints/pkg/utils"
	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the repository.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// Profile holds the optional contact fields.
type Profile struct {
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// User is the aggregate root. Account carries the wallet, tier, badges and
// recycling counters; Version backs the optimistic persist check.
type User struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Password     string         `json:"-"`
	Account      wallet.Account `json:"account"`
	Profile      Profile        `json:"profile"`
	ReferralCode string         `json:"referralCode,omitempty"`
	Version      int64          `json:"-"`
	LastLogin    time.Time      `json:"lastLogin"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// New creates a registered user with a hashed password and a zero-valued
// wallet at the First-time tier.
func New(name, email, password string) (*User, error) {
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !utils.IsEmail(email) {
		return nil, errors.New("invalid email address")
	}
	if len(password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  hashed,
		Account:   wallet.NewAccount(),
		LastLogin: now,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// EnsureReferralCode lazily assigns a referral code on first access and
// reports whether the aggregate changed. The code is stable once set.
func (u *User) EnsureReferralCode() bool {
	if u.ReferralCode != "" {
		return false
	}
	u.ReferralCode = utils.NewReferralCode()
	return true
}
