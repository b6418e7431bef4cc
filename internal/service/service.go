package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"mwn/config"
	"mwn/internal/domain"
	"mwn/internal/repository"
)

type Deps struct {
	Repos  *repository.Repositories
	Logger *zap.Logger
	Config *config.Config
}

type Services struct {
	User        UserService
	Auth        AuthService
	Branch      BranchService
	Patient     PatientService
	Doctor      DoctorService
	Package     PackageService
	Appointment AppointmentService
	Billing     BillingService
	Record      RecordService
}

func NewServices(deps Deps) *Services {
	return &Services{
		User:        NewUserService(deps.Repos.User, deps.Logger),
		Auth:        NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		Branch:      NewBranchService(deps.Repos.Branch, deps.Logger),
		Patient:     NewPatientService(deps.Repos.Patient, deps.Logger),
		Doctor:      NewDoctorService(deps.Repos.Doctor, deps.Repos.Branch, deps.Logger),
		Package:     NewPackageService(deps.Repos.Package, deps.Logger),
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Repos.Patient, deps.Repos.Doctor, deps.Repos.Branch, deps.Logger),
		Billing:     NewBillingService(deps.Repos.Bill, deps.Repos.Patient, deps.Repos.Package, deps.Repos.Appointment, deps.Repos.Doctor, deps.Logger),
		Record:      NewRecordService(deps.Repos.Record, deps.Repos.Appointment, deps.Logger),
	}
}

type UserService interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, dto domain.PasswordUpdateDTO) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type BranchService interface {
	Create(ctx context.Context, dto domain.CreateBranchDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	Update(ctx context.Context, id int64, dto domain.UpdateBranchDTO) error
	List(ctx context.Context) ([]domain.Branch, error)
}

type PatientService interface {
	Create(ctx context.Context, dto domain.CreatePatientDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, int, error)
}

type DoctorService interface {
	Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error)
}

type PackageService interface {
	Create(ctx context.Context, dto domain.CreatePackageDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.WellnessPackage, error)
	Update(ctx context.Context, id int64, dto domain.UpdatePackageDTO) error
	List(ctx context.Context, filter domain.PackageFilter) ([]domain.WellnessPackage, error)
}

type AppointmentService interface {
	Create(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Slots(ctx context.Context, doctorID, branchID int64, date string) ([]domain.TimeSlot, error)
	Cancel(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	Reschedule(ctx context.Context, id int64, date, timeOfDay string) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
}

type BillingService interface {
	PurchasePackage(ctx context.Context, dto domain.PurchasePackageDTO) (*domain.Bill, error)
	BillAppointment(ctx context.Context, dto domain.BillAppointmentDTO) (*domain.Bill, error)
	GetByID(ctx context.Context, id int64) (*domain.Bill, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	List(ctx context.Context, filter domain.BillFilter) ([]domain.Bill, int, error)
	RevenueSummary(ctx context.Context) (*domain.RevenueSummary, error)
	IncomeByPackage(ctx context.Context) ([]domain.PackageIncome, error)
}

type RecordService interface {
	AddLabReport(ctx context.Context, uploadedBy int64, dto domain.CreateLabReportDTO) (int64, error)
	ListLabReports(ctx context.Context, patientID int64) ([]domain.LabReport, error)
	AddConsultationNote(ctx context.Context, dto domain.CreateConsultationNoteDTO) (int64, error)
	ListConsultationNotes(ctx context.Context, patientID int64) ([]domain.ConsultationNote, error)
}

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}
