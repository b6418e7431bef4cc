package domain

import (
	"time"
)

type User struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	BranchID     *int64    `json:"branch_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleDoctor  UserRole = "doctor"
	UserRoleStaff   UserRole = "staff"
	UserRolePatient UserRole = "patient"
)

// Capability checks take the role explicitly so nothing below the transport
// layer depends on ambient session state.

func CanViewMedicalHistory(role UserRole) bool {
	return role == UserRoleAdmin || role == UserRoleDoctor
}

func CanEditPatients(role UserRole) bool {
	return role == UserRoleAdmin || role == UserRoleStaff
}

func CanBookAppointments(role UserRole) bool {
	return role == UserRoleAdmin || role == UserRoleStaff || role == UserRoleDoctor
}

func CanManageBilling(role UserRole) bool {
	return role == UserRoleAdmin || role == UserRoleStaff
}

func CanManageCatalog(role UserRole) bool {
	return role == UserRoleAdmin
}

type CreateUserDTO struct {
	FirstName string   `json:"first_name" binding:"required"`
	LastName  string   `json:"last_name" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Phone     string   `json:"phone" binding:"required"`
	Password  string   `json:"password" binding:"required,min=6"`
	Role      UserRole `json:"role" binding:"required,oneof=admin doctor staff patient"`
	BranchID  *int64   `json:"branch_id"`
}

type UpdateUserDTO struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone"`
	IsActive  *bool   `json:"is_active"`
}

type PasswordUpdateDTO struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}
