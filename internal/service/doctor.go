package service

import (
	"context"

	"go.uber.org/zap"

	"mwn/internal/domain"
	"mwn/internal/repository"
)

type DoctorServiceImpl struct {
	repo       repository.DoctorRepository
	branchRepo repository.BranchRepository
	logger     *zap.Logger
}

func NewDoctorService(repo repository.DoctorRepository, branchRepo repository.BranchRepository, logger *zap.Logger) *DoctorServiceImpl {
	return &DoctorServiceImpl{
		repo:       repo,
		branchRepo: branchRepo,
		logger:     logger,
	}
}

func (s *DoctorServiceImpl) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	if _, err := s.branchRepo.GetByID(ctx, dto.BranchID); err != nil {
		return 0, err
	}

	for _, service := range dto.Specializations {
		if !service.Valid() {
			return 0, domain.ErrIncompleteRequest
		}
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("creating doctor", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *DoctorServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if dto.BranchID != nil {
		if _, err := s.branchRepo.GetByID(ctx, *dto.BranchID); err != nil {
			return err
		}
	}

	if dto.Specializations != nil {
		for _, service := range *dto.Specializations {
			if !service.Valid() {
				return domain.ErrIncompleteRequest
			}
		}
	}

	return s.repo.Update(ctx, id, dto)
}

func (s *DoctorServiceImpl) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}
