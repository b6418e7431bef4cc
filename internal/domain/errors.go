package domain

import "errors"

var (
	ErrNotFound = errors.New("entity not found")

	// Pricing engine failures.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	ErrInvalidRate     = errors.New("rate must be within [0, 1)")

	// Booking allocator failures.
	ErrIncompleteRequest = errors.New("booking request is missing required fields")
	ErrSlotConflict      = errors.New("time slot already has a booked appointment")

	ErrDoctorUnavailable   = errors.New("doctor is not accepting appointments")
	ErrSpecializationMatch = errors.New("doctor does not offer the requested service")
	ErrBranchMismatch      = errors.New("doctor is not affiliated with the requested branch")
	ErrSessionLimit        = errors.New("sessions booked exceeds sessions included in the package")
	ErrPackageInactive     = errors.New("wellness package is not active")
	ErrInvalidTransition   = errors.New("status transition is not allowed")
	ErrDuplicateBranchCode = errors.New("branch code is already in use")
)
