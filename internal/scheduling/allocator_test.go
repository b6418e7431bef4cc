package scheduling

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwn/internal/domain"
)

var tokenPattern = regexp.MustCompile(`^MWN-[A-Z]-\d{8}-\d{3}$`)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func booking(patientID, doctorID, branchID int64, clock string) domain.BookingRequest {
	return domain.BookingRequest{
		PatientID:   patientID,
		DoctorID:    doctorID,
		BranchID:    branchID,
		BranchCode:  "C",
		ServiceType: domain.ServiceDetox,
		Date:        day(2026, time.January, 20),
		Time:        clock,
	}
}

func TestSlots_DailyTemplate(t *testing.T) {
	slots := Slots(day(2026, time.January, 20), 1, 1, nil)

	require.Len(t, slots, SlotsPerDay)
	assert.Equal(t, "08:00", slots[0].Time)
	assert.Equal(t, "11:30", slots[7].Time)
	assert.Equal(t, "14:00", slots[8].Time)
	assert.Equal(t, "17:30", slots[15].Time)

	for _, slot := range slots {
		assert.Equal(t, "2026-01-20", slot.Date)
		assert.Equal(t, int64(1), slot.DoctorID)
		assert.True(t, slot.IsAvailable)
	}
}

func TestSlots_BookedAppointmentBlocksSlot(t *testing.T) {
	existing := []domain.Appointment{
		{
			DoctorID:      1,
			BranchID:      1,
			AppointmentAt: time.Date(2026, time.January, 20, 9, 30, 0, 0, time.UTC),
			Status:        domain.AppointmentStatusBooked,
		},
	}

	slots := Slots(day(2026, time.January, 20), 1, 1, existing)

	for _, slot := range slots {
		if slot.Time == "09:30" {
			assert.False(t, slot.IsAvailable)
		} else {
			assert.True(t, slot.IsAvailable, "slot %s", slot.Time)
		}
	}
}

func TestSlots_CancelledAndCompletedFreeTheirSlot(t *testing.T) {
	existing := []domain.Appointment{
		{DoctorID: 1, AppointmentAt: time.Date(2026, time.January, 20, 8, 0, 0, 0, time.UTC), Status: domain.AppointmentStatusCancelled},
		{DoctorID: 1, AppointmentAt: time.Date(2026, time.January, 20, 8, 30, 0, 0, time.UTC), Status: domain.AppointmentStatusCompleted},
	}

	slots := Slots(day(2026, time.January, 20), 1, 1, existing)

	for _, slot := range slots {
		assert.True(t, slot.IsAvailable, "slot %s", slot.Time)
	}
}

func TestSlots_OtherDoctorDoesNotBlock(t *testing.T) {
	existing := []domain.Appointment{
		{DoctorID: 2, AppointmentAt: time.Date(2026, time.January, 20, 10, 0, 0, 0, time.UTC), Status: domain.AppointmentStatusBooked},
	}

	slots := Slots(day(2026, time.January, 20), 1, 1, existing)

	for _, slot := range slots {
		assert.True(t, slot.IsAvailable, "slot %s", slot.Time)
	}
}

func TestToken_Format(t *testing.T) {
	token := Token("C", day(2026, time.January, 20), 0)
	assert.Equal(t, "MWN-C-20260120-001", token)
	assert.Regexp(t, tokenPattern, token)

	assert.Equal(t, "MWN-N-20261231-042", Token("N", day(2026, time.December, 31), 41))
}

func TestBook_MintsBookedAppointmentWithToken(t *testing.T) {
	appt, err := Book(booking(10, 1, 1, "09:00"), nil, 0)
	require.NoError(t, err)

	assert.Equal(t, domain.AppointmentStatusBooked, appt.Status)
	assert.Equal(t, "MWN-C-20260120-001", appt.Token)
	assert.Equal(t, time.Date(2026, time.January, 20, 9, 0, 0, 0, time.UTC), appt.AppointmentAt)
}

func TestBook_SlotConflict(t *testing.T) {
	first, err := Book(booking(10, 1, 1, "09:00"), nil, 0)
	require.NoError(t, err)

	_, err = Book(booking(11, 1, 1, "09:00"), []domain.Appointment{*first}, 1)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
}

func TestBook_CancelledSlotCanBeRebooked(t *testing.T) {
	cancelled, err := Book(booking(10, 1, 1, "09:00"), nil, 0)
	require.NoError(t, err)
	cancelled.Status = domain.AppointmentStatusCancelled

	// The cancelled appointment still counts toward the branch sequence, so
	// the rebooked slot gets a fresh token, never a reused one.
	appt, err := Book(booking(11, 1, 1, "09:00"), []domain.Appointment{*cancelled}, 1)
	require.NoError(t, err)
	assert.Equal(t, "MWN-C-20260120-002", appt.Token)
}

func TestBook_SameTimeDifferentDoctor(t *testing.T) {
	first, err := Book(booking(10, 1, 1, "09:00"), nil, 0)
	require.NoError(t, err)

	appt, err := Book(booking(11, 2, 1, "09:00"), []domain.Appointment{*first}, 1)
	require.NoError(t, err)
	assert.Equal(t, "MWN-C-20260120-002", appt.Token)
}

func TestBook_SequenceIsMonotonic(t *testing.T) {
	var existing []domain.Appointment
	for i, clock := range []string{"08:00", "08:30", "09:00"} {
		appt, err := Book(booking(int64(10+i), int64(1+i), 1, clock), existing, len(existing))
		require.NoError(t, err)
		existing = append(existing, *appt)
	}
	assert.Equal(t, "MWN-C-20260120-001", existing[0].Token)
	assert.Equal(t, "MWN-C-20260120-002", existing[1].Token)
	assert.Equal(t, "MWN-C-20260120-003", existing[2].Token)

	// Another branch on the same date starts its own sequence; its count
	// excludes the first branch's bookings.
	otherBranch := booking(20, 5, 2, "08:00")
	otherBranch.BranchCode = "N"
	appt, err := Book(otherBranch, existing, 0)
	require.NoError(t, err)
	assert.Equal(t, "MWN-N-20260120-001", appt.Token)

	// The next day restarts the sequence for the original branch.
	nextDay := booking(21, 1, 1, "08:00")
	nextDay.Date = day(2026, time.January, 21)
	appt, err = Book(nextDay, existing, 0)
	require.NoError(t, err)
	assert.Equal(t, "MWN-C-20260121-001", appt.Token)
}

func TestBook_IncompleteRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.BookingRequest)
	}{
		{"missing patient", func(r *domain.BookingRequest) { r.PatientID = 0 }},
		{"missing doctor", func(r *domain.BookingRequest) { r.DoctorID = 0 }},
		{"missing branch", func(r *domain.BookingRequest) { r.BranchID = 0 }},
		{"missing branch code", func(r *domain.BookingRequest) { r.BranchCode = "" }},
		{"zero date", func(r *domain.BookingRequest) { r.Date = time.Time{} }},
		{"invalid service type", func(r *domain.BookingRequest) { r.ServiceType = "astrology" }},
		{"unparseable time", func(r *domain.BookingRequest) { r.Time = "quarter past nine" }},
		{"time off the daily template", func(r *domain.BookingRequest) { r.Time = "12:17" }},
		{"time in the midday break", func(r *domain.BookingRequest) { r.Time = "12:00" }},
		{"time after closing", func(r *domain.BookingRequest) { r.Time = "18:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := booking(10, 1, 1, "09:00")
			tt.mutate(&req)

			appt, err := Book(req, nil, 0)
			assert.Nil(t, appt)
			assert.ErrorIs(t, err, domain.ErrIncompleteRequest)
		})
	}
}

func TestBook_SnapshotNotMutated(t *testing.T) {
	first, err := Book(booking(10, 1, 1, "09:00"), nil, 0)
	require.NoError(t, err)

	existing := []domain.Appointment{*first}
	_, err = Book(booking(11, 2, 1, "10:00"), existing, 1)
	require.NoError(t, err)

	require.Len(t, existing, 1)
	assert.Equal(t, *first, existing[0])
}
