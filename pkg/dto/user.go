// Package dto holds the data transfer objects crossing the service
// boundary. Services accept and return DTOs; domain aggregates stay
// inside the service layer.
package dto

import (
	"time"

	"github.com/amirasaad/greenpoints/pkg/domain/wallet"
	"github.com/google/uuid"
)

// UserCreate is the input for registration.
type UserCreate struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	City     string
	State    string
	ZipCode  string
}

// UserUpdate carries partial profile updates; nil fields are untouched.
type UserUpdate struct {
	Name    *string
	Phone   *string
	Address *string
	City    *string
	State   *string
	ZipCode *string
}

// UserRead is the read model for a user profile.
type UserRead struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Tier          wallet.Tier `json:"tier"`
	Balance       int         `json:"balance"`
	TotalEarned   int         `json:"totalEarned"`
	TotalRedeemed int         `json:"totalRedeemed"`
	ReferralCode  string      `json:"referralCode,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Address       string      `json:"address,omitempty"`
	City          string      `json:"city,omitempty"`
	State         string      `json:"state,omitempty"`
	ZipCode       string      `json:"zipCode,omitempty"`
	LastLogin     time.Time   `json:"lastLogin"`
	CreatedAt     time.Time   `json:"createdAt"`
}
