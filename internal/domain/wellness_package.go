package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type WellnessPackage struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	ServiceType      ServiceType     `json:"service_type"`
	SessionsIncluded int             `json:"sessions_included"`
	SessionPrice     decimal.Decimal `json:"session_price"`
	PackageDiscount  decimal.Decimal `json:"package_discount"`
	ValidityDays     int             `json:"validity_days"`
	IsActive         bool            `json:"is_active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type CreatePackageDTO struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	ServiceType      ServiceType     `json:"service_type" binding:"required"`
	SessionsIncluded int             `json:"sessions_included" binding:"required,gt=0"`
	SessionPrice     decimal.Decimal `json:"session_price" binding:"required"`
	PackageDiscount  decimal.Decimal `json:"package_discount"`
	ValidityDays     int             `json:"validity_days" binding:"required,gt=0"`
}

type UpdatePackageDTO struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	SessionsIncluded *int             `json:"sessions_included" binding:"omitempty,gt=0"`
	SessionPrice     *decimal.Decimal `json:"session_price"`
	PackageDiscount  *decimal.Decimal `json:"package_discount"`
	ValidityDays     *int             `json:"validity_days" binding:"omitempty,gt=0"`
	IsActive         *bool            `json:"is_active"`
}

type PackageFilter struct {
	ServiceType *ServiceType `json:"service_type"`
	ActiveOnly  bool         `json:"active_only"`
	Limit       int          `json:"limit"`
	Offset      int          `json:"offset"`
}
