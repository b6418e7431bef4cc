package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"mwn/internal/domain"
	"mwn/internal/repository"
)

type RecordServiceImpl struct {
	repo            repository.RecordRepository
	appointmentRepo repository.AppointmentRepository
	logger          *zap.Logger
}

func NewRecordService(repo repository.RecordRepository, appointmentRepo repository.AppointmentRepository, logger *zap.Logger) *RecordServiceImpl {
	return &RecordServiceImpl{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

func (s *RecordServiceImpl) AddLabReport(ctx context.Context, uploadedBy int64, dto domain.CreateLabReportDTO) (int64, error) {
	reportDate, err := parseDate(dto.ReportDate)
	if err != nil {
		return 0, errors.New("report_date must be in YYYY-MM-DD format")
	}

	report := domain.LabReport{
		PatientID:  dto.PatientID,
		ReportName: dto.ReportName,
		ReportDate: reportDate,
		FileURL:    dto.FileURL,
		UploadedBy: uploadedBy,
		CreatedAt:  time.Now(),
	}

	id, err := s.repo.CreateLabReport(ctx, report)
	if err != nil {
		s.logger.Error("creating lab report", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *RecordServiceImpl) ListLabReports(ctx context.Context, patientID int64) ([]domain.LabReport, error) {
	return s.repo.ListLabReportsByPatient(ctx, patientID)
}

// AddConsultationNote attaches clinical notes to a completed or booked
// appointment; doctor and patient are taken from the appointment itself.
func (s *RecordServiceImpl) AddConsultationNote(ctx context.Context, dto domain.CreateConsultationNoteDTO) (int64, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, dto.AppointmentID)
	if err != nil {
		return 0, err
	}

	if appt.Status == domain.AppointmentStatusCancelled {
		return 0, domain.ErrInvalidTransition
	}

	note := domain.ConsultationNote{
		AppointmentID: dto.AppointmentID,
		DoctorID:      appt.DoctorID,
		PatientID:     appt.PatientID,
		Notes:         dto.Notes,
		Diagnosis:     dto.Diagnosis,
		Prescription:  dto.Prescription,
		CreatedAt:     time.Now(),
	}

	id, err := s.repo.CreateConsultationNote(ctx, note)
	if err != nil {
		s.logger.Error("creating consultation note", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *RecordServiceImpl) ListConsultationNotes(ctx context.Context, patientID int64) ([]domain.ConsultationNote, error) {
	return s.repo.ListNotesByPatient(ctx, patientID)
}
