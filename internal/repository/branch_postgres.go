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

type BranchRepo struct {
	db *pgxpool.Pool
}

func NewBranchRepository(db *pgxpool.Pool) *BranchRepo {
	return &BranchRepo{
		db: db,
	}
}

func (r *BranchRepo) Create(ctx context.Context, dto domain.CreateBranchDTO) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	code := strings.ToUpper(dto.Code)

	var count int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM branches WHERE code = $1`, code).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("checking branch code: %w", err)
	}
	if count > 0 {
		return 0, domain.ErrDuplicateBranchCode
	}

	query := `
		INSERT INTO branches (code, name, address, phone, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING id
	`

	now := time.Now()
	var id int64
	err = tx.QueryRow(
		ctx,
		query,
		code,
		dto.Name,
		dto.Address,
		dto.Phone,
		dto.Email,
		true,
		now,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating branch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}

	return id, nil
}

func (r *BranchRepo) GetByID(ctx context.Context, id int64) (*domain.Branch, error) {
	query := `
		SELECT id, code, name, address, phone, email, is_active, created_at, updated_at
		FROM branches
		WHERE id = $1
	`

	var branch domain.Branch
	err := r.db.QueryRow(ctx, query, id).Scan(
		&branch.ID,
		&branch.Code,
		&branch.Name,
		&branch.Address,
		&branch.Phone,
		&branch.Email,
		&branch.IsActive,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting branch: %w", err)
	}

	return &branch, nil
}

func (r *BranchRepo) GetByCode(ctx context.Context, code string) (*domain.Branch, error) {
	query := `
		SELECT id, code, name, address, phone, email, is_active, created_at, updated_at
		FROM branches
		WHERE code = $1
	`

	var branch domain.Branch
	err := r.db.QueryRow(ctx, query, strings.ToUpper(code)).Scan(
		&branch.ID,
		&branch.Code,
		&branch.Name,
		&branch.Address,
		&branch.Phone,
		&branch.Email,
		&branch.IsActive,
		&branch.CreatedAt,
		&branch.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting branch by code: %w", err)
	}

	return &branch, nil
}

func (r *BranchRepo) Update(ctx context.Context, id int64, dto domain.UpdateBranchDTO) error {
	setValues := []string{}
	args := []interface{}{id}
	argId := 2

	if dto.Name != nil {
		setValues = append(setValues, fmt.Sprintf("name = $%d", argId))
		args = append(args, *dto.Name)
		argId++
	}

	if dto.Address != nil {
		setValues = append(setValues, fmt.Sprintf("address = $%d", argId))
		args = append(args, *dto.Address)
		argId++
	}

	if dto.Phone != nil {
		setValues = append(setValues, fmt.Sprintf("phone = $%d", argId))
		args = append(args, *dto.Phone)
		argId++
	}

	if dto.Email != nil {
		setValues = append(setValues, fmt.Sprintf("email = $%d", argId))
		args = append(args, *dto.Email)
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

	setQuery := "UPDATE branches SET " + joinWithComma(setValues) + " WHERE id = $1"

	_, err := r.db.Exec(ctx, setQuery, args...)
	if err != nil {
		return fmt.Errorf("updating branch: %w", err)
	}

	return nil
}

func (r *BranchRepo) List(ctx context.Context) ([]domain.Branch, error) {
	query := `
		SELECT id, code, name, address, phone, email, is_active, created_at, updated_at
		FROM branches
		ORDER BY code
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer rows.Close()

	branches := make([]domain.Branch, 0)
	for rows.Next() {
		var branch domain.Branch
		err := rows.Scan(
			&branch.ID,
			&branch.Code,
			&branch.Name,
			&branch.Address,
			&branch.Phone,
			&branch.Email,
			&branch.IsActive,
			&branch.CreatedAt,
			&branch.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning branch row: %w", err)
		}
		branches = append(branches, branch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating branch rows: %w", err)
	}

	return branches, nil
}
