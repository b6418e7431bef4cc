package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mwn/internal/domain"
	"mwn/internal/repository"
)

type PackageServiceImpl struct {
	repo   repository.PackageRepository
	logger *zap.Logger
}

func NewPackageService(repo repository.PackageRepository, logger *zap.Logger) *PackageServiceImpl {
	return &PackageServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

func (s *PackageServiceImpl) Create(ctx context.Context, dto domain.CreatePackageDTO) (int64, error) {
	if !dto.ServiceType.Valid() {
		return 0, domain.ErrIncompleteRequest
	}

	if !validDiscountRate(dto.PackageDiscount) {
		return 0, domain.ErrInvalidRate
	}

	if dto.SessionPrice.IsNegative() || dto.SessionPrice.IsZero() {
		return 0, domain.ErrInvalidRate
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("creating package", zap.Error(err))
		return 0, err
	}

	return id, nil
}

func (s *PackageServiceImpl) GetByID(ctx context.Context, id int64) (*domain.WellnessPackage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PackageServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdatePackageDTO) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if dto.PackageDiscount != nil && !validDiscountRate(*dto.PackageDiscount) {
		return domain.ErrInvalidRate
	}

	if dto.SessionPrice != nil && (dto.SessionPrice.IsNegative() || dto.SessionPrice.IsZero()) {
		return domain.ErrInvalidRate
	}

	return s.repo.Update(ctx, id, dto)
}

func (s *PackageServiceImpl) List(ctx context.Context, filter domain.PackageFilter) ([]domain.WellnessPackage, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

func validDiscountRate(rate decimal.Decimal) bool {
	return !rate.IsNegative() && rate.LessThan(decimal.NewFromInt(1))
}
