package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

func newBillingFixture() (*BillingServiceImpl, *fakeBillRepo, *fakeAppointmentRepo) {
	billRepo := newFakeBillRepo()
	apptRepo := &fakeAppointmentRepo{}

	patientRepo := &fakePatientRepo{patients: map[int64]domain.Patient{
		1: {ID: 1, FirstName: "Ana", LastName: "Torres", MembershipTier: domain.MembershipPlatinum},
		2: {ID: 2, FirstName: "Ben", LastName: "Hill", MembershipTier: domain.MembershipNone},
	}}

	packageRepo := &fakePackageRepo{packages: map[int64]domain.WellnessPackage{
		1: {
			ID: 1, Name: "Reset Detox Program",
			ServiceType:      domain.ServiceDetox,
			SessionsIncluded: 8,
			SessionPrice:     decimal.RequireFromString("75"),
			PackageDiscount:  decimal.RequireFromString("0.15"),
			IsActive:         true,
		},
		2: {
			ID: 2, Name: "Legacy Plan",
			ServiceType:      domain.ServiceFitness,
			SessionsIncluded: 10,
			SessionPrice:     decimal.RequireFromString("60"),
			PackageDiscount:  decimal.RequireFromString("0.10"),
			IsActive:         false,
		},
	}}

	doctorRepo := &fakeDoctorRepo{doctors: map[int64]domain.Doctor{
		1: {
			ID: 1, FirstName: "Priya", LastName: "Raman",
			BranchID: 1, IsAvailable: true,
			Specializations: []domain.ServiceType{domain.ServiceWellnessConsultation},
			ConsultationFee: decimal.RequireFromString("120"),
		},
	}}

	svc := NewBillingService(billRepo, patientRepo, packageRepo, apptRepo, doctorRepo, zap.NewNop())
	return svc, billRepo, apptRepo
}

func TestPurchasePackage_ItemizedBill(t *testing.T) {
	svc, _, _ := newBillingFixture()

	bill, err := svc.PurchasePackage(context.Background(), domain.PurchasePackageDTO{
		PatientID: 1,
		PackageID: 1,
		Sessions:  8,
	})
	require.NoError(t, err)

	// 8 * 75 = 600, -15% package, -15% platinum, +8% tax.
	assert.True(t, bill.GrossAmount.Equal(decimal.RequireFromString("600")), "gross: %s", bill.GrossAmount)
	assert.True(t, bill.PackageDiscountAmount.Equal(decimal.RequireFromString("90")))
	assert.True(t, bill.MembershipDiscountAmount.Equal(decimal.RequireFromString("76.5")))
	assert.True(t, bill.TaxAmount.Equal(decimal.RequireFromString("34.68")))
	assert.True(t, bill.FinalAmount.Equal(decimal.RequireFromString("468.18")))

	assert.True(t, bill.PackageDiscountRate.Equal(decimal.RequireFromString("0.15")))
	assert.True(t, bill.MembershipDiscountRate.Equal(decimal.RequireFromString("0.15")))

	assert.Equal(t, domain.PaymentStatusPending, bill.PaymentStatus)
	assert.Equal(t, 8, bill.SessionsBooked)
	assert.Equal(t, "Ana Torres", bill.PatientName)
	assert.Equal(t, "Reset Detox Program", bill.PackageName)
	assert.NotZero(t, bill.ID)
}

func TestPurchasePackage_Rejections(t *testing.T) {
	tests := []struct {
		name string
		dto  domain.PurchasePackageDTO
		want error
	}{
		{"unknown patient", domain.PurchasePackageDTO{PatientID: 99, PackageID: 1, Sessions: 4}, domain.ErrNotFound},
		{"unknown package", domain.PurchasePackageDTO{PatientID: 1, PackageID: 99, Sessions: 4}, domain.ErrNotFound},
		{"inactive package", domain.PurchasePackageDTO{PatientID: 1, PackageID: 2, Sessions: 4}, domain.ErrPackageInactive},
		{"over session limit", domain.PurchasePackageDTO{PatientID: 1, PackageID: 1, Sessions: 9}, domain.ErrSessionLimit},
		{"zero sessions", domain.PurchasePackageDTO{PatientID: 1, PackageID: 1, Sessions: 0}, domain.ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, billRepo, _ := newBillingFixture()

			_, err := svc.PurchasePackage(context.Background(), tt.dto)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, billRepo.bills, "rejected purchase must not create a bill")
		})
	}
}

func TestBillAppointment_ConsultationFee(t *testing.T) {
	svc, _, apptRepo := newBillingFixture()
	ctx := context.Background()

	apptID, err := apptRepo.Create(ctx, domain.Appointment{
		PatientID:     2,
		DoctorID:      1,
		BranchID:      1,
		ServiceType:   domain.ServiceWellnessConsultation,
		AppointmentAt: time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC),
		Status:        domain.AppointmentStatusBooked,
	})
	require.NoError(t, err)

	bill, err := svc.BillAppointment(ctx, domain.BillAppointmentDTO{AppointmentID: apptID})
	require.NoError(t, err)

	// 120 fee, no discounts for a non-member, +8% tax.
	assert.True(t, bill.GrossAmount.Equal(decimal.RequireFromString("120")))
	assert.True(t, bill.PackageDiscountAmount.IsZero())
	assert.True(t, bill.MembershipDiscountAmount.IsZero())
	assert.True(t, bill.TaxAmount.Equal(decimal.RequireFromString("9.6")))
	assert.True(t, bill.FinalAmount.Equal(decimal.RequireFromString("129.6")))

	require.NotNil(t, bill.AppointmentID)
	assert.Equal(t, apptID, *bill.AppointmentID)
	assert.Nil(t, bill.PackageID)
	assert.Equal(t, 1, bill.SessionsBooked)
}

func TestBillAppointment_StatusGuard(t *testing.T) {
	tests := []struct {
		name     string
		status   domain.AppointmentStatus
		billable bool
	}{
		{"booked", domain.AppointmentStatusBooked, true},
		{"completed", domain.AppointmentStatusCompleted, true},
		{"cancelled", domain.AppointmentStatusCancelled, false},
		{"pending", domain.AppointmentStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, billRepo, apptRepo := newBillingFixture()
			ctx := context.Background()

			apptID, err := apptRepo.Create(ctx, domain.Appointment{
				PatientID:     2,
				DoctorID:      1,
				BranchID:      1,
				ServiceType:   domain.ServiceWellnessConsultation,
				AppointmentAt: time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC),
				Status:        tt.status,
			})
			require.NoError(t, err)

			_, err = svc.BillAppointment(ctx, domain.BillAppointmentDTO{AppointmentID: apptID})
			if tt.billable {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				assert.Empty(t, billRepo.bills)
			}
		})
	}
}

func TestBillAppointment_UnknownAppointment(t *testing.T) {
	svc, _, _ := newBillingFixture()

	_, err := svc.BillAppointment(context.Background(), domain.BillAppointmentDTO{AppointmentID: 42})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateBillStatus_StateMachine(t *testing.T) {
	svc, _, _ := newBillingFixture()
	ctx := context.Background()

	bill, err := svc.PurchasePackage(ctx, domain.PurchasePackageDTO{PatientID: 1, PackageID: 1, Sessions: 4})
	require.NoError(t, err)

	// pending -> refunded is not allowed.
	assert.ErrorIs(t, svc.UpdateStatus(ctx, bill.ID, domain.PaymentStatusRefunded), domain.ErrInvalidTransition)

	require.NoError(t, svc.UpdateStatus(ctx, bill.ID, domain.PaymentStatusPaid))
	require.NoError(t, svc.UpdateStatus(ctx, bill.ID, domain.PaymentStatusRefunded))

	// Refunded is terminal.
	assert.ErrorIs(t, svc.UpdateStatus(ctx, bill.ID, domain.PaymentStatusPaid), domain.ErrInvalidTransition)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, 99, domain.PaymentStatusPaid), domain.ErrNotFound)
}

func TestBillFieldsReconcile(t *testing.T) {
	svc, _, _ := newBillingFixture()

	bill, err := svc.PurchasePackage(context.Background(), domain.PurchasePackageDTO{
		PatientID: 1,
		PackageID: 1,
		Sessions:  5,
	})
	require.NoError(t, err)

	recomputed := bill.GrossAmount.
		Sub(bill.PackageDiscountAmount).
		Sub(bill.MembershipDiscountAmount).
		Add(bill.TaxAmount)

	// Stored stages are rounded independently, so the reconciliation can be
	// off by at most a cent from the stored final amount.
	diff := recomputed.Sub(bill.FinalAmount).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")), "diff: %s", diff)
}
