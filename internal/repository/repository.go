package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"mwn/internal/domain"
)

type Repositories struct {
	User        UserRepository
	Auth        AuthRepository
	Branch      BranchRepository
	Patient     PatientRepository
	Doctor      DoctorRepository
	Package     PackageRepository
	Appointment AppointmentRepository
	Bill        BillRepository
	Record      RecordRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Auth:        NewAuthRepository(db),
		Branch:      NewBranchRepository(db),
		Patient:     NewPatientRepository(db),
		Doctor:      NewDoctorRepository(db),
		Package:     NewPackageRepository(db),
		Appointment: NewAppointmentRepository(db),
		Bill:        NewBillRepository(db),
		Record:      NewRecordRepository(db),
	}
}

type UserRepository interface {
	Create(ctx context.Context, user domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, id int64, user domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type BranchRepository interface {
	Create(ctx context.Context, branch domain.CreateBranchDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
	GetByCode(ctx context.Context, code string) (*domain.Branch, error)
	Update(ctx context.Context, id int64, branch domain.UpdateBranchDTO) error
	List(ctx context.Context) ([]domain.Branch, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient domain.CreatePatientDTO, dateOfBirth time.Time) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Patient, error)
	Update(ctx context.Context, id int64, patient domain.UpdatePatientDTO) error
	List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, error)
	CountByFilter(ctx context.Context, filter domain.PatientFilter) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor domain.CreateDoctorDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	Update(ctx context.Context, id int64, doctor domain.UpdateDoctorDTO) error
	List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error)
}

type PackageRepository interface {
	Create(ctx context.Context, pkg domain.CreatePackageDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.WellnessPackage, error)
	Update(ctx context.Context, id int64, pkg domain.UpdatePackageDTO) error
	List(ctx context.Context, filter domain.PackageFilter) ([]domain.WellnessPackage, error)
}

type AppointmentRepository interface {
	// Create persists the appointment minted by the allocator, re-checking
	// the booking conflict inside its transaction as a datastore-level
	// backstop.
	Create(ctx context.Context, appt domain.Appointment) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	// ListByDoctorAndDate returns all appointments for the doctor on the
	// date, regardless of status.
	ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]domain.Appointment, error)
	// CountByBranchAndDate counts every appointment recorded for the branch
	// and date, including cancelled ones; token sequences depend on it.
	CountByBranchAndDate(ctx context.Context, branchID int64, date time.Time) (int, error)
}

type BillRepository interface {
	Create(ctx context.Context, bill domain.Bill) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Bill, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	List(ctx context.Context, filter domain.BillFilter) ([]domain.Bill, error)
	CountByFilter(ctx context.Context, filter domain.BillFilter) (int, error)
	RevenueSummary(ctx context.Context) (*domain.RevenueSummary, error)
	IncomeByPackage(ctx context.Context) ([]domain.PackageIncome, error)
}

type RecordRepository interface {
	CreateLabReport(ctx context.Context, report domain.LabReport) (int64, error)
	ListLabReportsByPatient(ctx context.Context, patientID int64) ([]domain.LabReport, error)
	CreateConsultationNote(ctx context.Context, note domain.ConsultationNote) (int64, error)
	ListNotesByPatient(ctx context.Context, patientID int64) ([]domain.ConsultationNote, error)
}
