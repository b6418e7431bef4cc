package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mwn/internal/domain"
	"mwn/internal/repository"
)

type PatientServiceImpl struct {
	repo   repository.PatientRepository
	logger *zap.Logger
}

func NewPatientService(repo repository.PatientRepository, logger *zap.Logger) *PatientServiceImpl {
	return &PatientServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *PatientServiceImpl) Create(ctx context.Context, dto domain.CreatePatientDTO) (int64, error) {
	dateOfBirth, err := parseDate(dto.DateOfBirth)
	if err != nil {
		return 0, errors.New("date_of_birth must be in YYYY-MM-DD format")
	}

	if dto.MembershipTier != "" && !dto.MembershipTier.Valid() {
		return 0, domain.ErrInvalidRate
	}

	id, err := s.repo.Create(ctx, dto, dateOfBirth)
	if err != nil {
		s.logger.Error("creating patient", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *PatientServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if dto.MembershipTier != nil && !dto.MembershipTier.Valid() {
		return domain.ErrInvalidRate
	}

	return s.repo.Update(ctx, id, dto)
}

func (s *PatientServiceImpl) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	patients, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return patients, total, nil
}
