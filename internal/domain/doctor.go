package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceType string

const (
	ServiceWellnessConsultation ServiceType = "wellness_consultation"
	ServiceNutrition            ServiceType = "nutrition"
	ServiceFitness              ServiceType = "fitness"
	ServiceDetox                ServiceType = "detox"
	ServiceStressManagement     ServiceType = "stress_management"
	ServiceHealthCheckup        ServiceType = "health_checkup"
)

var serviceLabels = map[ServiceType]string{
	ServiceWellnessConsultation: "Wellness Consultation",
	ServiceNutrition:            "Nutrition Advisory",
	ServiceFitness:              "Fitness Training",
	ServiceDetox:                "Detox Program",
	ServiceStressManagement:     "Stress Management",
	ServiceHealthCheckup:        "Health Check-up",
}

func (s ServiceType) Valid() bool {
	_, ok := serviceLabels[s]
	return ok
}

func (s ServiceType) Label() string {
	return serviceLabels[s]
}

type Doctor struct {
	ID              int64           `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Email           string          `json:"email"`
	Phone           string          `json:"phone"`
	Specializations []ServiceType   `json:"specializations"`
	BranchID        int64           `json:"branch_id"`
	IsAvailable     bool            `json:"is_available"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Offers reports whether the doctor is specialized in the given service.
func (d *Doctor) Offers(service ServiceType) bool {
	for _, s := range d.Specializations {
		if s == service {
			return true
		}
	}
	return false
}

type CreateDoctorDTO struct {
	FirstName       string          `json:"first_name" binding:"required"`
	LastName        string          `json:"last_name" binding:"required"`
	Email           string          `json:"email" binding:"required,email"`
	Phone           string          `json:"phone" binding:"required"`
	Specializations []ServiceType   `json:"specializations" binding:"required,min=1"`
	BranchID        int64           `json:"branch_id" binding:"required"`
	ConsultationFee decimal.Decimal `json:"consultation_fee" binding:"required"`
}

type UpdateDoctorDTO struct {
	FirstName       *string          `json:"first_name"`
	LastName        *string          `json:"last_name"`
	Email           *string          `json:"email" binding:"omitempty,email"`
	Phone           *string          `json:"phone"`
	Specializations *[]ServiceType   `json:"specializations"`
	BranchID        *int64           `json:"branch_id"`
	IsAvailable     *bool            `json:"is_available"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
}

type DoctorFilter struct {
	BranchID    *int64       `json:"branch_id"`
	Service     *ServiceType `json:"service"`
	IsAvailable *bool        `json:"is_available"`
	Limit       int          `json:"limit"`
	Offset      int          `json:"offset"`
}
