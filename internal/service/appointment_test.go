package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mwn/internal/domain"
)

func newBookingFixture() (*AppointmentServiceImpl, *fakeAppointmentRepo) {
	apptRepo := &fakeAppointmentRepo{}

	patientRepo := &fakePatientRepo{patients: map[int64]domain.Patient{
		1: {ID: 1, FirstName: "Ana", LastName: "Torres", MembershipTier: domain.MembershipGold},
		2: {ID: 2, FirstName: "Ben", LastName: "Hill", MembershipTier: domain.MembershipNone},
	}}

	doctorRepo := &fakeDoctorRepo{doctors: map[int64]domain.Doctor{
		1: {
			ID: 1, FirstName: "Priya", LastName: "Raman",
			BranchID: 1, IsAvailable: true,
			Specializations: []domain.ServiceType{domain.ServiceDetox, domain.ServiceWellnessConsultation},
			ConsultationFee: decimal.RequireFromString("120"),
		},
		2: {
			ID: 2, FirstName: "Marcus", LastName: "Webb",
			BranchID: 2, IsAvailable: true,
			Specializations: []domain.ServiceType{domain.ServiceFitness},
			ConsultationFee: decimal.RequireFromString("95"),
		},
		3: {
			ID: 3, FirstName: "Elena", LastName: "Kovacs",
			BranchID: 1, IsAvailable: false,
			Specializations: []domain.ServiceType{domain.ServiceDetox},
			ConsultationFee: decimal.RequireFromString("110"),
		},
		4: {
			ID: 4, FirstName: "Daniel", LastName: "Osei",
			BranchID: 1, IsAvailable: true,
			Specializations: []domain.ServiceType{domain.ServiceNutrition},
			ConsultationFee: decimal.RequireFromString("85"),
		},
	}}

	branchRepo := &fakeBranchRepo{branches: map[int64]domain.Branch{
		1: {ID: 1, Code: "C", Name: "MWN Central", IsActive: true},
		2: {ID: 2, Code: "N", Name: "MWN North", IsActive: true},
	}}

	svc := NewAppointmentService(apptRepo, patientRepo, doctorRepo, branchRepo, zap.NewNop())
	return svc, apptRepo
}

func bookingDTO() domain.CreateAppointmentDTO {
	return domain.CreateAppointmentDTO{
		PatientID:   1,
		DoctorID:    1,
		BranchID:    1,
		ServiceType: domain.ServiceDetox,
		Date:        "2026-01-20",
		Time:        "09:00",
	}
}

func TestAppointmentCreate_FirstBookingOfDay(t *testing.T) {
	svc, repo := newBookingFixture()

	appt, err := svc.Create(context.Background(), bookingDTO())
	require.NoError(t, err)

	assert.Equal(t, "MWN-C-20260120-001", appt.Token)
	assert.Equal(t, domain.AppointmentStatusBooked, appt.Status)
	assert.NotZero(t, appt.ID)
	assert.Len(t, repo.appointments, 1)
}

func TestAppointmentCreate_DoubleBookingRejected(t *testing.T) {
	svc, repo := newBookingFixture()

	_, err := svc.Create(context.Background(), bookingDTO())
	require.NoError(t, err)

	dto := bookingDTO()
	dto.PatientID = 2
	_, err = svc.Create(context.Background(), dto)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.Len(t, repo.appointments, 1, "failed booking must not be persisted")
}

func TestAppointmentCreate_TokenSequenceCountsCancelled(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, bookingDTO())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, first.ID))

	// Same slot is bookable again, but the sequence moves on.
	dto := bookingDTO()
	dto.PatientID = 2
	second, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	assert.Equal(t, "MWN-C-20260120-002", second.Token)
}

func TestAppointmentCreate_SequenceSpansDoctors(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	first, err := svc.Create(ctx, bookingDTO())
	require.NoError(t, err)
	require.Equal(t, "MWN-C-20260120-001", first.Token)

	// A different doctor at the same branch and time shares the branch
	// sequence, not the slot.
	dto := bookingDTO()
	dto.PatientID = 2
	dto.DoctorID = 4
	dto.ServiceType = domain.ServiceNutrition
	second, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	assert.Equal(t, "MWN-C-20260120-002", second.Token)
}

func TestAppointmentCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CreateAppointmentDTO)
		want   error
	}{
		{"unknown patient", func(d *domain.CreateAppointmentDTO) { d.PatientID = 99 }, domain.ErrNotFound},
		{"unknown doctor", func(d *domain.CreateAppointmentDTO) { d.DoctorID = 99 }, domain.ErrNotFound},
		{"unknown branch", func(d *domain.CreateAppointmentDTO) { d.BranchID = 99 }, domain.ErrNotFound},
		{"unavailable doctor", func(d *domain.CreateAppointmentDTO) { d.DoctorID = 3 }, domain.ErrDoctorUnavailable},
		{"service not offered", func(d *domain.CreateAppointmentDTO) { d.ServiceType = domain.ServiceNutrition }, domain.ErrSpecializationMatch},
		{"wrong branch for doctor", func(d *domain.CreateAppointmentDTO) { d.DoctorID = 2 }, domain.ErrBranchMismatch},
		{"bad date", func(d *domain.CreateAppointmentDTO) { d.Date = "20/01/2026" }, domain.ErrIncompleteRequest},
		{"bad time", func(d *domain.CreateAppointmentDTO) { d.Time = "9am" }, domain.ErrIncompleteRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newBookingFixture()

			dto := bookingDTO()
			tt.mutate(&dto)

			_, err := svc.Create(context.Background(), dto)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.appointments)
		})
	}
}

func TestAppointmentSlots_DerivedFromBookings(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, bookingDTO())
	require.NoError(t, err)

	slots, err := svc.Slots(ctx, 1, 1, "2026-01-20")
	require.NoError(t, err)
	require.Len(t, slots, 16)

	available := 0
	for _, slot := range slots {
		if slot.Time == "09:00" {
			assert.False(t, slot.IsAvailable)
		}
		if slot.IsAvailable {
			available++
		}
	}
	assert.Equal(t, 15, available)
}

func TestAppointmentCancelAndComplete(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	appt, err := svc.Create(ctx, bookingDTO())
	require.NoError(t, err)

	require.NoError(t, svc.Complete(ctx, appt.ID))

	// Completed is terminal.
	assert.ErrorIs(t, svc.Cancel(ctx, appt.ID), domain.ErrInvalidTransition)
	assert.ErrorIs(t, svc.Complete(ctx, appt.ID), domain.ErrInvalidTransition)

	assert.ErrorIs(t, svc.Cancel(ctx, 99), domain.ErrNotFound)
}

func TestAppointmentReschedule(t *testing.T) {
	svc, repo := newBookingFixture()
	ctx := context.Background()

	appt, err := svc.Create(ctx, bookingDTO())
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, appt.ID, "2026-01-21", "10:30")
	require.NoError(t, err)

	assert.Equal(t, "MWN-C-20260121-001", moved.Token)
	assert.NotEqual(t, appt.Token, moved.Token)

	original, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCancelled, original.Status)
}

func TestAppointmentReschedule_RestoresOnFailure(t *testing.T) {
	svc, repo := newBookingFixture()
	ctx := context.Background()

	appt, err := svc.Create(ctx, bookingDTO())
	require.NoError(t, err)

	_, err = svc.Reschedule(ctx, appt.ID, "not-a-date", "10:30")
	assert.ErrorIs(t, err, domain.ErrIncompleteRequest)

	original, err := repo.GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusBooked, original.Status)
}

func TestAppointmentReschedule_OnlyBookedMoves(t *testing.T) {
	svc, _ := newBookingFixture()
	ctx := context.Background()

	appt, err := svc.Create(ctx, bookingDTO())
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, appt.ID))

	_, err = svc.Reschedule(ctx, appt.ID, "2026-01-21", "10:30")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}
