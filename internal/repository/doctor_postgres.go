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

type DoctorRepo struct {
	db *pgxpool.Pool
}

func NewDoctorRepository(db *pgxpool.Pool) *DoctorRepo {
	return &DoctorRepo{
		db: db,
	}
}

func (r *DoctorRepo) Create(ctx context.Context, dto domain.CreateDoctorDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO doctors (first_name, last_name, email, phone, branch_id, is_available, consultation_fee, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err = tx.QueryRow(
		ctx,
		query,
		dto.FirstName,
		dto.LastName,
		dto.Email,
		dto.Phone,
		dto.BranchID,
		true,
		dto.ConsultationFee,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating doctor: %w", err)
	}

	for _, service := range dto.Specializations {
		_, err = tx.Exec(ctx, `INSERT INTO doctor_specializations (doctor_id, service_type) VALUES ($1, $2)`, id, service)
		if err != nil {
			return 0, fmt.Errorf("adding doctor specialization: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return id, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	query := `
		SELECT d.id, d.first_name, d.last_name, d.email, d.phone, d.branch_id, d.is_available, d.consultation_fee, d.created_at, d.updated_at,
		       COALESCE(array_agg(ds.service_type) FILTER (WHERE ds.service_type IS NOT NULL), '{}') AS specializations
		FROM doctors d
		LEFT JOIN doctor_specializations ds ON ds.doctor_id = d.id
		WHERE d.id = $1
		GROUP BY d.id
	`

	var doctor domain.Doctor
	var specializations []string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doctor.ID,
		&doctor.FirstName,
		&doctor.LastName,
		&doctor.Email,
		&doctor.Phone,
		&doctor.BranchID,
		&doctor.IsAvailable,
		&doctor.ConsultationFee,
		&doctor.CreatedAt,
		&doctor.UpdatedAt,
		&specializations,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting doctor: %w", err)
	}

	doctor.Specializations = toServiceTypes(specializations)

	return &doctor, nil
}

func (r *DoctorRepo) Update(ctx context.Context, id int64, dto domain.UpdateDoctorDTO) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

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

	if dto.BranchID != nil {
		setValues = append(setValues, fmt.Sprintf("branch_id = $%d", argId))
		args = append(args, *dto.BranchID)
		argId++
	}

	if dto.IsAvailable != nil {
		setValues = append(setValues, fmt.Sprintf("is_available = $%d", argId))
		args = append(args, *dto.IsAvailable)
		argId++
	}

	if dto.ConsultationFee != nil {
		setValues = append(setValues, fmt.Sprintf("consultation_fee = $%d", argId))
		args = append(args, *dto.ConsultationFee)
		argId++
	}

	if len(setValues) > 0 {
		setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
		args = append(args, time.Now())

		setQuery := "UPDATE doctors SET " + joinWithComma(setValues) + " WHERE id = $1"

		_, err = tx.Exec(ctx, setQuery, args...)
		if err != nil {
			return fmt.Errorf("updating doctor: %w", err)
		}
	}

	if dto.Specializations != nil {
		_, err = tx.Exec(ctx, `DELETE FROM doctor_specializations WHERE doctor_id = $1`, id)
		if err != nil {
			return fmt.Errorf("clearing doctor specializations: %w", err)
		}

		for _, service := range *dto.Specializations {
			_, err = tx.Exec(ctx, `INSERT INTO doctor_specializations (doctor_id, service_type) VALUES ($1, $2)`, id, service)
			if err != nil {
				return fmt.Errorf("adding doctor specialization: %w", err)
			}
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (r *DoctorRepo) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	baseQuery := `
		SELECT d.id, d.first_name, d.last_name, d.email, d.phone, d.branch_id, d.is_available, d.consultation_fee, d.created_at, d.updated_at,
		       COALESCE(array_agg(ds.service_type) FILTER (WHERE ds.service_type IS NOT NULL), '{}') AS specializations
		FROM doctors d
		LEFT JOIN doctor_specializations ds ON ds.doctor_id = d.id
	`

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.BranchID != nil {
		conditions = append(conditions, fmt.Sprintf("d.branch_id = $%d", argCount))
		args = append(args, *filter.BranchID)
		argCount++
	}

	if filter.IsAvailable != nil {
		conditions = append(conditions, fmt.Sprintf("d.is_available = $%d", argCount))
		args = append(args, *filter.IsAvailable)
		argCount++
	}

	if filter.Service != nil {
		conditions = append(conditions, fmt.Sprintf("d.id IN (SELECT doctor_id FROM doctor_specializations WHERE service_type = $%d)", argCount))
		args = append(args, *filter.Service)
		argCount++
	}

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " GROUP BY d.id ORDER BY d.last_name, d.first_name"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing doctors: %w", err)
	}
	defer rows.Close()

	doctors := make([]domain.Doctor, 0)
	for rows.Next() {
		var doctor domain.Doctor
		var specializations []string
		err := rows.Scan(
			&doctor.ID,
			&doctor.FirstName,
			&doctor.LastName,
			&doctor.Email,
			&doctor.Phone,
			&doctor.BranchID,
			&doctor.IsAvailable,
			&doctor.ConsultationFee,
			&doctor.CreatedAt,
			&doctor.UpdatedAt,
			&specializations,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning doctor row: %w", err)
		}
		doctor.Specializations = toServiceTypes(specializations)
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating doctor rows: %w", err)
	}

	return doctors, nil
}

func toServiceTypes(values []string) []domain.ServiceType {
	services := make([]domain.ServiceType, 0, len(values))
	for _, v := range values {
		services = append(services, domain.ServiceType(v))
	}
	return services
}
