package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"mwn/internal/domain"
	"mwn/internal/repository"
	"mwn/internal/scheduling"
)

type AppointmentServiceImpl struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	branchRepo  repository.BranchRepository
	logger      *zap.Logger

	// bookMu serializes booking so the snapshot handed to the allocator
	// cannot go stale between the conflict check and the insert. The
	// partial unique index on appointments is the datastore backstop.
	bookMu sync.Mutex
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	branchRepo repository.BranchRepository,
	logger *zap.Logger,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		branchRepo:  branchRepo,
		logger:      logger,
	}
}

func (s *AppointmentServiceImpl) Create(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	if _, err := s.patientRepo.GetByID(ctx, dto.PatientID); err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, dto.DoctorID)
	if err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.GetByID(ctx, dto.BranchID)
	if err != nil {
		return nil, err
	}

	if !doctor.IsAvailable {
		return nil, domain.ErrDoctorUnavailable
	}

	if !doctor.Offers(dto.ServiceType) {
		return nil, domain.ErrSpecializationMatch
	}

	if doctor.BranchID != dto.BranchID {
		return nil, domain.ErrBranchMismatch
	}

	date, err := parseDate(dto.Date)
	if err != nil {
		return nil, domain.ErrIncompleteRequest
	}

	req := domain.BookingRequest{
		PatientID:   dto.PatientID,
		DoctorID:    dto.DoctorID,
		BranchID:    dto.BranchID,
		BranchCode:  branch.Code,
		ServiceType: dto.ServiceType,
		Date:        date,
		Time:        dto.Time,
	}

	s.bookMu.Lock()
	defer s.bookMu.Unlock()

	existing, err := s.repo.ListByDoctorAndDate(ctx, dto.DoctorID, date)
	if err != nil {
		return nil, err
	}

	branchDayCount, err := s.repo.CountByBranchAndDate(ctx, dto.BranchID, date)
	if err != nil {
		return nil, err
	}

	appt, err := scheduling.Book(req, existing, branchDayCount)
	if err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, *appt)
	if err != nil {
		s.logger.Error("persisting appointment", zap.Error(err))
		return nil, err
	}
	appt.ID = id

	s.logger.Info("appointment booked",
		zap.Int64("id", id),
		zap.String("token", appt.Token),
		zap.Int64("doctorId", appt.DoctorID),
	)

	return appt, nil
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentServiceImpl) Slots(ctx context.Context, doctorID, branchID int64, date string) ([]domain.TimeSlot, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, errors.New("date must be in YYYY-MM-DD format")
	}

	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByDoctorAndDate(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	return scheduling.Slots(day, doctorID, branchID, existing), nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.AppointmentStatusCancelled)
}

func (s *AppointmentServiceImpl) Complete(ctx context.Context, id int64) error {
	return s.transition(ctx, id, domain.AppointmentStatusCompleted)
}

func (s *AppointmentServiceImpl) transition(ctx context.Context, id int64, next domain.AppointmentStatus) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !appt.Status.CanTransitionTo(next) {
		return domain.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		s.logger.Error("updating appointment status", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("appointment status changed",
		zap.Int64("id", id),
		zap.String("from", string(appt.Status)),
		zap.String("to", string(next)),
	)

	return nil
}

// Reschedule cancels the appointment and books a fresh one for the new date
// and time. The replacement gets its own token; the cancelled appointment
// keeps the old one so the daily sequence never shrinks.
func (s *AppointmentServiceImpl) Reschedule(ctx context.Context, id int64, date, timeOfDay string) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.Status != domain.AppointmentStatusBooked {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.Cancel(ctx, id); err != nil {
		return nil, err
	}

	replacement, err := s.Create(ctx, domain.CreateAppointmentDTO{
		PatientID:   appt.PatientID,
		DoctorID:    appt.DoctorID,
		BranchID:    appt.BranchID,
		ServiceType: appt.ServiceType,
		Date:        date,
		Time:        timeOfDay,
	})
	if err != nil {
		// Rebooking failed, put the original slot back.
		if restoreErr := s.repo.UpdateStatus(ctx, id, domain.AppointmentStatusBooked); restoreErr != nil {
			s.logger.Error("restoring appointment after failed reschedule",
				zap.Int64("id", id), zap.Error(restoreErr))
		}
		return nil, err
	}

	return replacement, nil
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}
