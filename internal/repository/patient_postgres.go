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

type PatientRepo struct {
	db *pgxpool.Pool
}

func NewPatientRepository(db *pgxpool.Pool) *PatientRepo {
	return &PatientRepo{
		db: db,
	}
}

func (r *PatientRepo) Create(ctx context.Context, dto domain.CreatePatientDTO, dateOfBirth time.Time) (int64, error) {
	tier := dto.MembershipTier
	if tier == "" {
		tier = domain.MembershipNone
	}

	query := `
		INSERT INTO patients (first_name, last_name, email, phone, date_of_birth, gender, address, membership_tier, medical_history, allergies, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(
		ctx,
		query,
		dto.FirstName,
		dto.LastName,
		dto.Email,
		dto.Phone,
		dateOfBirth,
		dto.Gender,
		dto.Address,
		tier,
		dto.MedicalHistory,
		dto.Allergies,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating patient: %w", err)
	}

	return id, nil
}

func (r *PatientRepo) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, date_of_birth, gender, address, membership_tier, membership_expiry, medical_history, allergies, created_at, updated_at
		FROM patients
		WHERE id = $1
	`

	var patient domain.Patient
	err := r.db.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.FirstName,
		&patient.LastName,
		&patient.Email,
		&patient.Phone,
		&patient.DateOfBirth,
		&patient.Gender,
		&patient.Address,
		&patient.MembershipTier,
		&patient.MembershipExpiry,
		&patient.MedicalHistory,
		&patient.Allergies,
		&patient.CreatedAt,
		&patient.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting patient: %w", err)
	}

	return &patient, nil
}

func (r *PatientRepo) Update(ctx context.Context, id int64, dto domain.UpdatePatientDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.FirstName != nil {
		setValues = append(setValues, fmt.Sprintf("first_name = $%d", argId))
		args = append(args, *dto.FirstName)
		argId++
	}

	if dto.LastName != nil {
		setValues = append(setValues, fmt.Sprintf("last_name = $%d", argId))
		args = append(args, *dto.LastName)
		argId++
	}

	if dto.Email != nil {
		setValues = append(setValues, fmt.Sprintf("email = $%d", argId))
		args = append(args, *dto.Email)
		argId++
	}

	if dto.Phone != nil {
		setValues = append(setValues, fmt.Sprintf("phone = $%d", argId))
		args = append(args, *dto.Phone)
		argId++
	}

	if dto.Address != nil {
		setValues = append(setValues, fmt.Sprintf("address = $%d", argId))
		args = append(args, *dto.Address)
		argId++
	}

	if dto.MembershipTier != nil {
		setValues = append(setValues, fmt.Sprintf("membership_tier = $%d", argId))
		args = append(args, *dto.MembershipTier)
		argId++
	}

	if dto.MembershipExpiry != nil {
		setValues = append(setValues, fmt.Sprintf("membership_expiry = $%d", argId))
		args = append(args, *dto.MembershipExpiry)
		argId++
	}

	if dto.MedicalHistory != nil {
		setValues = append(setValues, fmt.Sprintf("medical_history = $%d", argId))
		args = append(args, *dto.MedicalHistory)
		argId++
	}

	if dto.Allergies != nil {
		setValues = append(setValues, fmt.Sprintf("allergies = $%d", argId))
		args = append(args, *dto.Allergies)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	setQuery := "UPDATE patients SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("updating patient: %w", err)
	}

	return nil
}

func (r *PatientRepo) List(ctx context.Context, filter domain.PatientFilter) ([]domain.Patient, error) {
	baseQuery := `
		SELECT id, first_name, last_name, email, phone, date_of_birth, gender, address, membership_tier, membership_expiry, medical_history, allergies, created_at, updated_at
		FROM patients
	`

	conditions, args := patientConditions(filter)

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY last_name, first_name"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	defer rows.Close()

	patients := make([]domain.Patient, 0)
	for rows.Next() {
		var patient domain.Patient
		err := rows.Scan(
			&patient.ID,
			&patient.FirstName,
			&patient.LastName,
			&patient.Email,
			&patient.Phone,
			&patient.DateOfBirth,
			&patient.Gender,
			&patient.Address,
			&patient.MembershipTier,
			&patient.MembershipExpiry,
			&patient.MedicalHistory,
			&patient.Allergies,
			&patient.CreatedAt,
			&patient.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning patient row: %w", err)
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating patient rows: %w", err)
	}

	return patients, nil
}

func (r *PatientRepo) CountByFilter(ctx context.Context, filter domain.PatientFilter) (int, error) {
	query := `SELECT COUNT(*) FROM patients`

	conditions, args := patientConditions(filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting patients: %w", err)
	}

	return count, nil
}

func patientConditions(filter domain.PatientFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.MembershipTier != nil {
		conditions = append(conditions, fmt.Sprintf("membership_tier = $%d", argCount))
		args = append(args, *filter.MembershipTier)
		argCount++
	}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR phone ILIKE $%d)", argCount, argCount, argCount))
		args = append(args, "%"+filter.Search+"%")
		argCount++
	}

	return conditions, args
}
