package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	// AppointmentStatusPending is reserved for asynchronous confirmation
	// workflows; the booking flow never mints it.
	AppointmentStatusPending AppointmentStatus = "pending"
)

// CanTransitionTo encodes the appointment state machine: booked may move to
// completed or cancelled, everything else is terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusBooked:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	case AppointmentStatusPending:
		return next == AppointmentStatusBooked || next == AppointmentStatusCancelled
	default:
		return false
	}
}

type Appointment struct {
	ID            int64             `json:"id"`
	PatientID     int64             `json:"patient_id"`
	DoctorID      int64             `json:"doctor_id"`
	BranchID      int64             `json:"branch_id"`
	ServiceType   ServiceType       `json:"service_type"`
	AppointmentAt time.Time         `json:"appointment_at"`
	Token         string            `json:"token"`
	Status        AppointmentStatus `json:"status"`
	Notes         string            `json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`

	PatientName string `json:"patient_name,omitempty"`
	DoctorName  string `json:"doctor_name,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
}

// TimeSlot is ephemeral: regenerated per query from the daily template and
// never persisted.
type TimeSlot struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	DoctorID    int64  `json:"doctor_id"`
	BranchID    int64  `json:"branch_id"`
	IsAvailable bool   `json:"is_available"`
}

// BookingRequest carries everything the allocator needs to mint an
// appointment. BranchCode is resolved from the branch entity by the caller.
type BookingRequest struct {
	PatientID   int64
	DoctorID    int64
	BranchID    int64
	BranchCode  string
	ServiceType ServiceType
	Date        time.Time
	Time        string
}

type CreateAppointmentDTO struct {
	PatientID   int64       `json:"patient_id" binding:"required"`
	DoctorID    int64       `json:"doctor_id" binding:"required"`
	BranchID    int64       `json:"branch_id" binding:"required"`
	ServiceType ServiceType `json:"service_type" binding:"required"`
	Date        string      `json:"date" binding:"required"`
	Time        string      `json:"time" binding:"required"`
}

type AppointmentFilter struct {
	PatientID *int64             `json:"patient_id"`
	DoctorID  *int64             `json:"doctor_id"`
	BranchID  *int64             `json:"branch_id"`
	Status    *AppointmentStatus `json:"status"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
