package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// WellnessTaxRate is the fixed 8% levy applied after all discounts, last in
// the pricing pipeline.
var WellnessTaxRate = decimal.RequireFromString("0.08")

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusVoid     PaymentStatus = "void"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// CanTransitionTo encodes the payment state machine: pending may move to
// paid or void, paid may move to refunded; void and refunded are terminal.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return next == PaymentStatusPaid || next == PaymentStatusVoid
	case PaymentStatusPaid:
		return next == PaymentStatusRefunded
	default:
		return false
	}
}

// Bill stores every pricing stage so an invoice can be re-rendered without
// recomputation. FinalAmount is always derived by the pricing engine, never
// set independently.
type Bill struct {
	ID                       int64           `json:"id"`
	PatientID                int64           `json:"patient_id"`
	AppointmentID            *int64          `json:"appointment_id,omitempty"`
	PackageID                *int64          `json:"package_id,omitempty"`
	SessionsBooked           int             `json:"sessions_booked"`
	GrossAmount              decimal.Decimal `json:"gross_amount"`
	PackageDiscountRate      decimal.Decimal `json:"package_discount_rate"`
	PackageDiscountAmount    decimal.Decimal `json:"package_discount_amount"`
	MembershipDiscountRate   decimal.Decimal `json:"membership_discount_rate"`
	MembershipDiscountAmount decimal.Decimal `json:"membership_discount_amount"`
	TaxAmount                decimal.Decimal `json:"tax_amount"`
	FinalAmount              decimal.Decimal `json:"final_amount"`
	PaymentStatus            PaymentStatus   `json:"payment_status"`
	BillDate                 time.Time       `json:"bill_date"`

	PatientName string `json:"patient_name,omitempty"`
	PackageName string `json:"package_name,omitempty"`
}

type PurchasePackageDTO struct {
	PatientID int64 `json:"patient_id" binding:"required"`
	PackageID int64 `json:"package_id" binding:"required"`
	Sessions  int   `json:"sessions" binding:"required,gt=0"`
}

type BillAppointmentDTO struct {
	AppointmentID int64 `json:"appointment_id" binding:"required"`
}

type BillFilter struct {
	PatientID *int64         `json:"patient_id"`
	PackageID *int64         `json:"package_id"`
	Status    *PaymentStatus `json:"status"`
	StartDate *time.Time     `json:"start_date"`
	EndDate   *time.Time     `json:"end_date"`
	Limit     int            `json:"limit"`
	Offset    int            `json:"offset"`
}

// RevenueSummary aggregates paid/pending totals for the billing dashboard.
type RevenueSummary struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	TaxCollected  decimal.Decimal `json:"tax_collected"`
	InvoiceCount  int             `json:"invoice_count"`
}

type PackageIncome struct {
	PackageID   int64           `json:"package_id"`
	PackageName string          `json:"package_name"`
	TotalIncome decimal.Decimal `json:"total_income"`
	Purchases   int             `json:"purchases"`
}
