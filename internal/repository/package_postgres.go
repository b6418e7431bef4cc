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

type PackageRepo struct {
	db *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) *PackageRepo {
	return &PackageRepo{
		db: db,
	}
}

func (r *PackageRepo) Create(ctx context.Context, dto domain.CreatePackageDTO) (int64, error) {
	query := `
		INSERT INTO wellness_packages (name, description, service_type, sessions_included, session_price, package_discount, validity_days, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err := r.db.QueryRow(
		ctx,
		query,
		dto.Name,
		dto.Description,
		dto.ServiceType,
		dto.SessionsIncluded,
		dto.SessionPrice,
		dto.PackageDiscount,
		dto.ValidityDays,
		true,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating package: %w", err)
	}

	return id, nil
}

func (r *PackageRepo) GetByID(ctx context.Context, id int64) (*domain.WellnessPackage, error) {
	query := `
		SELECT id, name, description, service_type, sessions_included, session_price, package_discount, validity_days, is_active, created_at, updated_at
		FROM wellness_packages
		WHERE id = $1
	`

	var pkg domain.WellnessPackage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.ServiceType,
		&pkg.SessionsIncluded,
		&pkg.SessionPrice,
		&pkg.PackageDiscount,
		&pkg.ValidityDays,
		&pkg.IsActive,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting package: %w", err)
	}

	return &pkg, nil
}

func (r *PackageRepo) Update(ctx context.Context, id int64, dto domain.UpdatePackageDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Description != nil {
		setValues = append(setValues, fmt.Sprintf("description = $%d", argId))
		args = append(args, *dto.Description)
		argId++
	}

	if dto.SessionsIncluded != nil {
		setValues = append(setValues, fmt.Sprintf("sessions_included = $%d", argId))
		args = append(args, *dto.SessionsIncluded)
		argId++
	}

	if dto.SessionPrice != nil {
		setValues = append(setValues, fmt.Sprintf("session_price = $%d", argId))
		args = append(args, *dto.SessionPrice)
		argId++
	}

	if dto.PackageDiscount != nil {
		setValues = append(setValues, fmt.Sprintf("package_discount = $%d", argId))
		args = append(args, *dto.PackageDiscount)
		argId++
	}

	if dto.ValidityDays != nil {
		setValues = append(setValues, fmt.Sprintf("validity_days = $%d", argId))
		args = append(args, *dto.ValidityDays)
		argId++
	}

	if dto.IsActive != nil {
		setValues = append(setValues, fmt.Sprintf("is_active = $%d", argId))
		args = append(args, *dto.IsActive)
		argId++
	}

	if len(setValues) == 0 {
		return nil
	}

	setValues = append(setValues, fmt.Sprintf("updated_at = $%d", argId))
	args = append(args, time.Now())

	setQuery := "UPDATE wellness_packages SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("updating package: %w", err)
	}

	return nil
}

func (r *PackageRepo) List(ctx context.Context, filter domain.PackageFilter) ([]domain.WellnessPackage, error) {
	baseQuery := `
		SELECT id, name, description, service_type, sessions_included, session_price, package_discount, validity_days, is_active, created_at, updated_at
		FROM wellness_packages
	`

	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.ServiceType != nil {
		conditions = append(conditions, fmt.Sprintf("service_type = $%d", argCount))
		args = append(args, *filter.ServiceType)
		argCount++
	}

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = true")
	}

	query := baseQuery
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY name"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing packages: %w", err)
	}
	defer rows.Close()

	packages := make([]domain.WellnessPackage, 0)
	for rows.Next() {
		var pkg domain.WellnessPackage
		err := rows.Scan(
			&pkg.ID,
			&pkg.Name,
			&pkg.Description,
			&pkg.ServiceType,
			&pkg.SessionsIncluded,
			&pkg.SessionPrice,
			&pkg.PackageDiscount,
			&pkg.ValidityDays,
			&pkg.IsActive,
			&pkg.CreatedAt,
			&pkg.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating package rows: %w", err)
	}

	return packages, nil
}
