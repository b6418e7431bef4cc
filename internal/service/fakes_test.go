package service

import (
	"context"
	"strings"
	"time"

	"mwn/internal/domain"
)

// In-memory repository fakes. Only the methods the services under test reach
// are implemented with real behavior; the rest return zero values.

type fakePatientRepo struct {
	patients map[int64]domain.Patient
}

func (f *fakePatientRepo) Create(ctx context.Context, patient domain.CreatePatientDTO, dateOfBirth time.Time) (int64, error) {
	return 0, nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, id int64, patient domain.UpdatePatientDTO) error {
	return nil
}

func (f *fakePatientRepo) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, error) {
	return nil, nil
}

func (f *fakePatientRepo) CountByFilter(ctx context.Context, filter domain.PatientFilter) (int, error) {
	return 0, nil
}

type fakeDoctorRepo struct {
	doctors map[int64]domain.Doctor
}

func (f *fakeDoctorRepo) Create(ctx context.Context, doctor domain.CreateDoctorDTO) (int64, error) {
	return 0, nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	d, ok := f.doctors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, id int64, doctor domain.UpdateDoctorDTO) error {
	return nil
}

func (f *fakeDoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	return nil, nil
}

type fakeBranchRepo struct {
	branches map[int64]domain.Branch
}

func (f *fakeBranchRepo) Create(ctx context.Context, branch domain.CreateBranchDTO) (int64, error) {
	var id int64
	for existing := range f.branches {
		if existing > id {
			id = existing
		}
	}
	id++
	f.branches[id] = domain.Branch{
		ID:       id,
		Code:     strings.ToUpper(branch.Code),
		Name:     branch.Name,
		Address:  branch.Address,
		Phone:    branch.Phone,
		Email:    branch.Email,
		IsActive: true,
	}
	return id, nil
}

func (f *fakeBranchRepo) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	b, ok := f.branches[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBranchRepo) GetByCode(ctx context.Context, code string) (*domain.Branch, error) {
	for _, b := range f.branches {
		if b.Code == strings.ToUpper(code) {
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBranchRepo) Update(ctx context.Context, id int64, branch domain.UpdateBranchDTO) error {
	return nil
}

func (f *fakeBranchRepo) List(ctx context.Context) ([]domain.Branch, error) {
	return nil, nil
}

type fakePackageRepo struct {
	packages map[int64]domain.WellnessPackage
}

func (f *fakePackageRepo) Create(ctx context.Context, pkg domain.CreatePackageDTO) (int64, error) {
	return 0, nil
}

func (f *fakePackageRepo) GetByID(ctx context.Context, id int64) (*domain.WellnessPackage, error) {
	p, ok := f.packages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakePackageRepo) Update(ctx context.Context, id int64, pkg domain.UpdatePackageDTO) error {
	return nil
}

func (f *fakePackageRepo) List(ctx context.Context, filter domain.PackageFilter) ([]domain.WellnessPackage, error) {
	return nil, nil
}

// fakeAppointmentRepo keeps appointments in a slice, which doubles as the
// snapshot the allocator sees.
type fakeAppointmentRepo struct {
	appointments []domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (int64, error) {
	f.nextID++
	appt.ID = f.nextID
	f.appointments = append(f.appointments, appt)
	return appt.ID, nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	for _, appt := range f.appointments {
		if appt.ID == id {
			a := appt
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	for i := range f.appointments {
		if f.appointments[i].ID == id {
			f.appointments[i].Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeAppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appt := range f.appointments {
		if filter.BranchID != nil && appt.BranchID != *filter.BranchID {
			continue
		}
		if filter.DoctorID != nil && appt.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && appt.AppointmentAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !appt.AppointmentAt.Before(*filter.EndDate) {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	appts, _ := f.List(ctx, filter)
	return len(appts), nil
}

func (f *fakeAppointmentRepo) ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]domain.Appointment, error) {
	day := date.Format("2006-01-02")
	var out []domain.Appointment
	for _, appt := range f.appointments {
		if appt.DoctorID == doctorID && appt.AppointmentAt.Format("2006-01-02") == day {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) CountByBranchAndDate(ctx context.Context, branchID int64, date time.Time) (int, error) {
	day := date.Format("2006-01-02")
	count := 0
	for _, appt := range f.appointments {
		if appt.BranchID == branchID && appt.AppointmentAt.Format("2006-01-02") == day {
			count++
		}
	}
	return count, nil
}

type fakeBillRepo struct {
	bills  map[int64]domain.Bill
	nextID int64
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{bills: make(map[int64]domain.Bill)}
}

func (f *fakeBillRepo) Create(ctx context.Context, bill domain.Bill) (int64, error) {
	f.nextID++
	bill.ID = f.nextID
	f.bills[bill.ID] = bill
	return bill.ID, nil
}

func (f *fakeBillRepo) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	b, ok := f.bills[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &b, nil
}

func (f *fakeBillRepo) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	b, ok := f.bills[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.PaymentStatus = status
	f.bills[id] = b
	return nil
}

func (f *fakeBillRepo) List(ctx context.Context, filter domain.BillFilter) ([]domain.Bill, error) {
	return nil, nil
}

func (f *fakeBillRepo) CountByFilter(ctx context.Context, filter domain.BillFilter) (int, error) {
	return 0, nil
}

func (f *fakeBillRepo) RevenueSummary(ctx context.Context) (*domain.RevenueSummary, error) {
	return &domain.RevenueSummary{}, nil
}

func (f *fakeBillRepo) IncomeByPackage(ctx context.Context) ([]domain.PackageIncome, error) {
	return nil, nil
}
