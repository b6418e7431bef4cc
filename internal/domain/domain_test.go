package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembershipTierDiscountRate(t *testing.T) {
	tests := []struct {
		tier MembershipTier
		rate string
	}{
		{MembershipNone, "0"},
		{MembershipSilver, "0.05"},
		{MembershipGold, "0.10"},
		{MembershipPlatinum, "0.15"},
	}

	for _, tt := range tests {
		t.Run(string(tt.tier), func(t *testing.T) {
			rate, ok := tt.tier.DiscountRate()
			require.True(t, ok)
			assert.True(t, rate.Equal(decimal.RequireFromString(tt.rate)))
		})
	}

	_, ok := MembershipTier("diamond").DiscountRate()
	assert.False(t, ok)
	assert.False(t, MembershipTier("diamond").Valid())
}

func TestAppointmentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    AppointmentStatus
		to      AppointmentStatus
		allowed bool
	}{
		{AppointmentStatusBooked, AppointmentStatusCompleted, true},
		{AppointmentStatusBooked, AppointmentStatusCancelled, true},
		{AppointmentStatusBooked, AppointmentStatusBooked, false},
		{AppointmentStatusPending, AppointmentStatusBooked, true},
		{AppointmentStatusPending, AppointmentStatusCancelled, true},
		{AppointmentStatusPending, AppointmentStatusCompleted, false},
		{AppointmentStatusCompleted, AppointmentStatusCancelled, false},
		{AppointmentStatusCancelled, AppointmentStatusBooked, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	tests := []struct {
		from    PaymentStatus
		to      PaymentStatus
		allowed bool
	}{
		{PaymentStatusPending, PaymentStatusPaid, true},
		{PaymentStatusPending, PaymentStatusVoid, true},
		{PaymentStatusPending, PaymentStatusRefunded, false},
		{PaymentStatusPaid, PaymentStatusRefunded, true},
		{PaymentStatusPaid, PaymentStatusVoid, false},
		{PaymentStatusVoid, PaymentStatusPaid, false},
		{PaymentStatusRefunded, PaymentStatusPending, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestRoleCapabilities(t *testing.T) {
	type row struct {
		role            UserRole
		medicalHistory  bool
		editPatients    bool
		bookAppointment bool
		manageBilling   bool
		manageCatalog   bool
	}

	matrix := []row{
		{UserRoleAdmin, true, true, true, true, true},
		{UserRoleDoctor, true, false, true, false, false},
		{UserRoleStaff, false, true, true, true, false},
		{UserRolePatient, false, false, false, false, false},
	}

	for _, tt := range matrix {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.medicalHistory, CanViewMedicalHistory(tt.role))
			assert.Equal(t, tt.editPatients, CanEditPatients(tt.role))
			assert.Equal(t, tt.bookAppointment, CanBookAppointments(tt.role))
			assert.Equal(t, tt.manageBilling, CanManageBilling(tt.role))
			assert.Equal(t, tt.manageCatalog, CanManageCatalog(tt.role))
		})
	}
}

func TestPatientRedacted(t *testing.T) {
	p := Patient{
		FirstName:      "Ana",
		MedicalHistory: "hypertension",
		Allergies:      "penicillin",
	}

	redacted := p.Redacted()
	assert.Empty(t, redacted.MedicalHistory)
	assert.Empty(t, redacted.Allergies)
	assert.Equal(t, "Ana", redacted.FirstName)

	// The receiver is untouched.
	assert.Equal(t, "hypertension", p.MedicalHistory)
}

func TestServiceTypeValid(t *testing.T) {
	for _, s := range []ServiceType{
		ServiceWellnessConsultation, ServiceNutrition, ServiceFitness,
		ServiceDetox, ServiceStressManagement, ServiceHealthCheckup,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, ServiceType("astrology").Valid())
	assert.False(t, ServiceType("").Valid())
}
