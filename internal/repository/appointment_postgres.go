package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mwn/internal/domain"
)

type AppointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) *AppointmentRepo {
	return &AppointmentRepo{
		db: db,
	}
}

func (r *AppointmentRepo) Create(ctx context.Context, appt domain.Appointment) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	checkQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1
		AND appointment_at = $2
		AND status = 'booked'
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery, appt.DoctorID, appt.AppointmentAt).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("checking slot availability: %w", err)
	}

	if count > 0 {
		return 0, domain.ErrSlotConflict
	}

	query := `
		INSERT INTO appointments (patient_id, doctor_id, branch_id, service_type, appointment_at, token, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	var id int64
	err = tx.QueryRow(ctx, query,
		appt.PatientID,
		appt.DoctorID,
		appt.BranchID,
		appt.ServiceType,
		appt.AppointmentAt,
		appt.Token,
		appt.Status,
		appt.Notes,
		appt.CreatedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating appointment: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return id, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.id = $1
	`

	var appt domain.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(appointmentFields(&appt)...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting appointment: %w", err)
	}

	return &appt, nil
}

func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating appointment status: %w", err)
	}

	return nil
}

const appointmentSelect = `
	SELECT a.id, a.patient_id, a.doctor_id, a.branch_id, a.service_type, a.appointment_at, a.token, a.status, a.notes, a.created_at,
	       p.first_name || ' ' || p.last_name AS patient_name,
	       d.first_name || ' ' || d.last_name AS doctor_name,
	       b.name AS branch_name
	FROM appointments a
	JOIN patients p ON a.patient_id = p.id
	JOIN doctors d ON a.doctor_id = d.id
	JOIN branches b ON a.branch_id = b.id
`

func appointmentFields(appt *domain.Appointment) []interface{} {
	return []interface{}{
		&appt.ID,
		&appt.PatientID,
		&appt.DoctorID,
		&appt.BranchID,
		&appt.ServiceType,
		&appt.AppointmentAt,
		&appt.Token,
		&appt.Status,
		&appt.Notes,
		&appt.CreatedAt,
		&appt.PatientName,
		&appt.DoctorName,
		&appt.BranchName,
	}
}

func (r *AppointmentRepo) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	conditions, args := appointmentConditions(filter)

	query := appointmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY a.appointment_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var appt domain.Appointment
		if err := rows.Scan(appointmentFields(&appt)...); err != nil {
			return nil, fmt.Errorf("scanning appointment row: %w", err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error) {
	query := `SELECT COUNT(*) FROM appointments a`

	conditions, args := appointmentConditions(filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting appointments: %w", err)
	}

	return count, nil
}

func (r *AppointmentRepo) ListByDoctorAndDate(ctx context.Context, doctorID int64, date time.Time) ([]domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.doctor_id = $1
		AND DATE(a.appointment_at) = $2
		ORDER BY a.appointment_at
	`

	rows, err := r.db.Query(ctx, query, doctorID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("listing doctor appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		var appt domain.Appointment
		if err := rows.Scan(appointmentFields(&appt)...); err != nil {
			return nil, fmt.Errorf("scanning appointment row: %w", err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating appointment rows: %w", err)
	}

	return appointments, nil
}

func (r *AppointmentRepo) CountByBranchAndDate(ctx context.Context, branchID int64, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM appointments
		WHERE branch_id = $1
		AND DATE(appointment_at) = $2
	`

	var count int
	err := r.db.QueryRow(ctx, query, branchID, date.Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting branch appointments: %w", err)
	}

	return count, nil
}

func appointmentConditions(filter domain.AppointmentFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("a.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.DoctorID != nil {
		conditions = append(conditions, fmt.Sprintf("a.doctor_id = $%d", argCount))
		args = append(args, *filter.DoctorID)
		argCount++
	}

	if filter.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("a.branch_id = $%d", argCount))
		args = append(args, *filter.BranchID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_at >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.appointment_at <= $%d", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	return conditions, args
}
