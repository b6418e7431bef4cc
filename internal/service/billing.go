package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"mwn/internal/domain"
	"mwn/internal/pricing"
	"mwn/internal/repository"
)

type BillingServiceImpl struct {
	repo            repository.BillRepository
	patientRepo     repository.PatientRepository
	packageRepo     repository.PackageRepository
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	logger          *zap.Logger
}

func NewBillingService(
	repo repository.BillRepository,
	patientRepo repository.PatientRepository,
	packageRepo repository.PackageRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	logger *zap.Logger,
) *BillingServiceImpl {
	return &BillingServiceImpl{
		repo:            repo,
		patientRepo:     patientRepo,
		packageRepo:     packageRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		logger:          logger,
	}
}

// PurchasePackage prices a package purchase for the patient and records the
// resulting invoice with status pending. Amounts are computed at full
// precision and rounded once before storage.
func (s *BillingServiceImpl) PurchasePackage(ctx context.Context, dto domain.PurchasePackageDTO) (*domain.Bill, error) {
	patient, err := s.patientRepo.GetByID(ctx, dto.PatientID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packageRepo.GetByID(ctx, dto.PackageID)
	if err != nil {
		return nil, err
	}

	if !pkg.IsActive {
		return nil, domain.ErrPackageInactive
	}

	if dto.Sessions > pkg.SessionsIncluded {
		return nil, domain.ErrSessionLimit
	}

	quote, err := pricing.Quote(pkg.SessionPrice, dto.Sessions, pkg.PackageDiscount, patient.MembershipTier, domain.WellnessTaxRate)
	if err != nil {
		return nil, err
	}

	membershipRate, _ := patient.MembershipTier.DiscountRate()

	bill := s.buildBill(*quote, dto.PatientID, nil, &dto.PackageID, dto.Sessions, pkg.PackageDiscount, membershipRate)

	id, err := s.repo.Create(ctx, *bill)
	if err != nil {
		s.logger.Error("creating package bill", zap.Error(err))
		return nil, err
	}
	bill.ID = id
	bill.PatientName = patient.FirstName + " " + patient.LastName
	bill.PackageName = pkg.Name

	s.logger.Info("package purchased",
		zap.Int64("billId", id),
		zap.Int64("patientId", dto.PatientID),
		zap.Int64("packageId", dto.PackageID),
		zap.String("finalAmount", bill.FinalAmount.String()),
	)

	return bill, nil
}

// BillAppointment invoices a single consultation at the doctor's fee. No
// package discount applies; membership and tax still do.
func (s *BillingServiceImpl) BillAppointment(ctx context.Context, dto domain.BillAppointmentDTO) (*domain.Bill, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, dto.AppointmentID)
	if err != nil {
		return nil, err
	}

	// Only booked or completed visits are billable.
	if appt.Status != domain.AppointmentStatusBooked && appt.Status != domain.AppointmentStatusCompleted {
		return nil, domain.ErrInvalidTransition
	}

	patient, err := s.patientRepo.GetByID(ctx, appt.PatientID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctorRepo.GetByID(ctx, appt.DoctorID)
	if err != nil {
		return nil, err
	}

	quote, err := pricing.Quote(doctor.ConsultationFee, 1, decimal.Zero, patient.MembershipTier, domain.WellnessTaxRate)
	if err != nil {
		return nil, err
	}

	membershipRate, _ := patient.MembershipTier.DiscountRate()

	bill := s.buildBill(*quote, appt.PatientID, &dto.AppointmentID, nil, 1, decimal.Zero, membershipRate)

	id, err := s.repo.Create(ctx, *bill)
	if err != nil {
		s.logger.Error("creating appointment bill", zap.Error(err))
		return nil, err
	}
	bill.ID = id
	bill.PatientName = patient.FirstName + " " + patient.LastName

	return bill, nil
}

func (s *BillingServiceImpl) buildBill(
	quote pricing.Breakdown,
	patientID int64,
	appointmentID, packageID *int64,
	sessions int,
	packageRate, membershipRate decimal.Decimal,
) *domain.Bill {
	rounded := quote.Rounded()

	return &domain.Bill{
		PatientID:                patientID,
		AppointmentID:            appointmentID,
		PackageID:                packageID,
		SessionsBooked:           sessions,
		GrossAmount:              rounded.Gross,
		PackageDiscountRate:      packageRate,
		PackageDiscountAmount:    rounded.PackageDiscount,
		MembershipDiscountRate:   membershipRate,
		MembershipDiscountAmount: rounded.MembershipDiscount,
		TaxAmount:                rounded.Tax,
		FinalAmount:              rounded.Final,
		PaymentStatus:            domain.PaymentStatusPending,
		BillDate:                 time.Now(),
	}
}

func (s *BillingServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BillingServiceImpl) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	bill, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !bill.PaymentStatus.CanTransitionTo(status) {
		return domain.ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("updating payment status", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.logger.Info("payment status changed",
		zap.Int64("billId", id),
		zap.String("from", string(bill.PaymentStatus)),
		zap.String("to", string(status)),
	)

	return nil
}

func (s *BillingServiceImpl) List(ctx context.Context, filter domain.BillFilter) ([]domain.Bill, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	bills, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

func (s *BillingServiceImpl) RevenueSummary(ctx context.Context) (*domain.RevenueSummary, error) {
	return s.repo.RevenueSummary(ctx)
}

func (s *BillingServiceImpl) IncomeByPackage(ctx context.Context) ([]domain.PackageIncome, error) {
	return s.repo.IncomeByPackage(ctx)
}
