// Package scheduling generates daily time slot templates, validates booking
// requests against existing appointments, and mints branch-scoped booking
// tokens. Every function is pure: callers supply a snapshot of the
// appointment collection and are responsible for persisting results and for
// serializing concurrent bookings.
package scheduling

import (
	"fmt"
	"time"

	"mwn/internal/domain"
)

const (
	tokenPrefix = "MWN"
	dateLayout  = "2006-01-02"
	timeLayout  = "15:04"
)

// slotTimes is the fixed daily template: 16 half-hour slots, 08:00-11:30 and
// 14:00-17:30.
var slotTimes = []string{
	"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30", "17:00", "17:30",
}

// SlotsPerDay is the size of the daily template.
const SlotsPerDay = 16

// Slots regenerates the daily template for the (date, doctor, branch) triple.
// A slot is unavailable iff a booked appointment already occupies that exact
// doctor and time; cancelled and completed appointments free their slot.
func Slots(date time.Time, doctorID, branchID int64, existing []domain.Appointment) []domain.TimeSlot {
	day := date.Format(dateLayout)

	taken := make(map[string]bool, len(existing))
	for _, appt := range existing {
		if appt.DoctorID != doctorID || appt.Status != domain.AppointmentStatusBooked {
			continue
		}
		if appt.AppointmentAt.Format(dateLayout) != day {
			continue
		}
		taken[appt.AppointmentAt.Format(timeLayout)] = true
	}

	slots := make([]domain.TimeSlot, 0, len(slotTimes))
	for _, t := range slotTimes {
		slots = append(slots, domain.TimeSlot{
			Date:        day,
			Time:        t,
			DoctorID:    doctorID,
			BranchID:    branchID,
			IsAvailable: !taken[t],
		})
	}

	return slots
}

// Token builds the booking token for a branch and date:
// MWN-<branch code>-<YYYYMMDD>-<sequence>, where sequence is the count of
// appointments already recorded for that branch and date plus one. The count
// includes cancelled appointments, so sequence numbers are never reused.
func Token(branchCode string, date time.Time, existingCount int) string {
	return fmt.Sprintf("%s-%s-%s-%03d", tokenPrefix, branchCode, date.Format("20060102"), existingCount+1)
}

// Book validates the request against the supplied appointment snapshot and,
// on success, returns a new appointment with status booked and a freshly
// minted token. existing is the appointment snapshot scanned for a booked
// conflict on the same doctor and time; branchDayCount is the number of
// appointments already recorded for the branch and date across all statuses,
// and seeds the token sequence. The snapshot is never mutated; appending the
// result to the canonical collection is the caller's job, and the caller
// must not persist anything when an error is returned.
func Book(req domain.BookingRequest, existing []domain.Appointment, branchDayCount int) (*domain.Appointment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	at := combine(req.Date, req.Time)

	for _, appt := range existing {
		if appt.DoctorID == req.DoctorID &&
			appt.Status == domain.AppointmentStatusBooked &&
			appt.AppointmentAt.Equal(at) {
			return nil, domain.ErrSlotConflict
		}
	}

	return &domain.Appointment{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		BranchID:      req.BranchID,
		ServiceType:   req.ServiceType,
		AppointmentAt: at,
		Token:         Token(req.BranchCode, req.Date, branchDayCount),
		Status:        domain.AppointmentStatusBooked,
		CreatedAt:     time.Now(),
	}, nil
}

func validateRequest(req domain.BookingRequest) error {
	if req.PatientID == 0 || req.DoctorID == 0 || req.BranchID == 0 {
		return domain.ErrIncompleteRequest
	}
	if req.BranchCode == "" || req.Date.IsZero() {
		return domain.ErrIncompleteRequest
	}
	if !req.ServiceType.Valid() {
		return domain.ErrIncompleteRequest
	}
	// Only times on the daily template are bookable.
	if !onTemplate(req.Time) {
		return domain.ErrIncompleteRequest
	}
	return nil
}

func onTemplate(clock string) bool {
	for _, t := range slotTimes {
		if t == clock {
			return true
		}
	}
	return false
}

func combine(date time.Time, clock string) time.Time {
	t, _ := time.Parse(timeLayout, clock)
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}
