package domain

import (
	"time"
)

// LabReport holds report metadata only; file storage is handled outside this
// service and referenced by URL.
type LabReport struct {
	ID         int64     `json:"id"`
	PatientID  int64     `json:"patient_id"`
	ReportName string    `json:"report_name"`
	ReportDate time.Time `json:"report_date"`
	FileURL    string    `json:"file_url"`
	UploadedBy int64     `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateLabReportDTO: PatientID comes from the URL path, not the body.
type CreateLabReportDTO struct {
	PatientID  int64  `json:"-"`
	ReportName string `json:"report_name" binding:"required"`
	ReportDate string `json:"report_date" binding:"required"`
	FileURL    string `json:"file_url" binding:"required,url"`
}

type ConsultationNote struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointment_id"`
	DoctorID      int64     `json:"doctor_id"`
	PatientID     int64     `json:"patient_id"`
	Notes         string    `json:"notes"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	Prescription  string    `json:"prescription,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateConsultationNoteDTO: AppointmentID comes from the URL path.
type CreateConsultationNoteDTO struct {
	AppointmentID int64  `json:"-"`
	Notes         string `json:"notes" binding:"required"`
	Diagnosis     string `json:"diagnosis"`
	Prescription  string `json:"prescription"`
}
