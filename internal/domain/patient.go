package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MembershipTier string

const (
	MembershipNone     MembershipTier = "none"
	MembershipSilver   MembershipTier = "silver"
	MembershipGold     MembershipTier = "gold"
	MembershipPlatinum MembershipTier = "platinum"
)

// membershipDiscounts is the total, runtime-immutable tier to rate mapping.
var membershipDiscounts = map[MembershipTier]decimal.Decimal{
	MembershipNone:     decimal.Zero,
	MembershipSilver:   decimal.RequireFromString("0.05"),
	MembershipGold:     decimal.RequireFromString("0.10"),
	MembershipPlatinum: decimal.RequireFromString("0.15"),
}

func (t MembershipTier) Valid() bool {
	_, ok := membershipDiscounts[t]
	return ok
}

// DiscountRate returns the fixed discount rate for the tier. The second
// return is false for unrecognized tiers.
func (t MembershipTier) DiscountRate() (decimal.Decimal, bool) {
	rate, ok := membershipDiscounts[t]
	return rate, ok
}

type Patient struct {
	ID               int64          `json:"id"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	DateOfBirth      time.Time      `json:"date_of_birth"`
	Gender           string         `json:"gender"`
	Address          string         `json:"address"`
	MembershipTier   MembershipTier `json:"membership_tier"`
	MembershipExpiry *time.Time     `json:"membership_expiry,omitempty"`
	MedicalHistory   string         `json:"medical_history,omitempty"`
	Allergies        string         `json:"allergies,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// Redacted strips fields that only clinical roles may see.
func (p Patient) Redacted() Patient {
	p.MedicalHistory = ""
	p.Allergies = ""
	return p
}

type CreatePatientDTO struct {
	FirstName      string         `json:"first_name" binding:"required"`
	LastName       string         `json:"last_name" binding:"required"`
	Email          string         `json:"email" binding:"required,email"`
	Phone          string         `json:"phone" binding:"required"`
	DateOfBirth    string         `json:"date_of_birth" binding:"required"`
	Gender         string         `json:"gender" binding:"required,oneof=male female other"`
	Address        string         `json:"address" binding:"required"`
	MembershipTier MembershipTier `json:"membership_tier" binding:"omitempty,oneof=none silver gold platinum"`
	MedicalHistory string         `json:"medical_history"`
	Allergies      string         `json:"allergies"`
}

type UpdatePatientDTO struct {
	FirstName        *string         `json:"first_name"`
	LastName         *string         `json:"last_name"`
	Email            *string         `json:"email" binding:"omitempty,email"`
	Phone            *string         `json:"phone"`
	Address          *string         `json:"address"`
	MembershipTier   *MembershipTier `json:"membership_tier" binding:"omitempty,oneof=none silver gold platinum"`
	MembershipExpiry *time.Time      `json:"membership_expiry"`
	MedicalHistory   *string         `json:"medical_history"`
	Allergies        *string         `json:"allergies"`
}

type PatientFilter struct {
	MembershipTier *MembershipTier `json:"membership_tier"`
	Search         string          `json:"search"`
	Limit          int             `json:"limit"`
	Offset         int             `json:"offset"`
}
