package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mwn/internal/domain"
	"mwn/internal/repository"
)

type BranchServiceImpl struct {
	repo   repository.BranchRepository
	logger *zap.Logger
}

func NewBranchService(repo repository.BranchRepository, logger *zap.Logger) *BranchServiceImpl {
	return &BranchServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *BranchServiceImpl) Create(ctx context.Context, dto domain.CreateBranchDTO) (int64, error) {
	// Token prefixes depend on the code being unique; the repository re-checks
	// inside its transaction.
	_, err := s.repo.GetByCode(ctx, dto.Code)
	if err == nil {
		return 0, domain.ErrDuplicateBranchCode
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("creating branch", zap.String("code", dto.Code), zap.Error(err))
		return 0, err
	}

	s.logger.Info("branch created", zap.Int64("id", id), zap.String("code", dto.Code))
	return id, nil
}

func (s *BranchServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BranchServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateBranchDTO) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.repo.Update(ctx, id, dto)
}

func (s *BranchServiceImpl) List(ctx context.Context) ([]domain.Branch, error) {
	return s.repo.List(ctx)
}
