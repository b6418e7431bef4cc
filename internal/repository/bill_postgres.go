package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mwn/internal/domain"
)

type BillRepo struct {
	db *pgxpool.Pool
}

func NewBillRepository(db *pgxpool.Pool) *BillRepo {
	return &BillRepo{
		db: db,
	}
}

func (r *BillRepo) Create(ctx context.Context, bill domain.Bill) (int64, error) {
	query := `
		INSERT INTO bills (patient_id, appointment_id, package_id, sessions_booked,
			gross_amount, package_discount_rate, package_discount_amount,
			membership_discount_rate, membership_discount_amount,
			tax_amount, final_amount, payment_status, bill_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		bill.PatientID,
		bill.AppointmentID,
		bill.PackageID,
		bill.SessionsBooked,
		bill.GrossAmount,
		bill.PackageDiscountRate,
		bill.PackageDiscountAmount,
		bill.MembershipDiscountRate,
		bill.MembershipDiscountAmount,
		bill.TaxAmount,
		bill.FinalAmount,
		bill.PaymentStatus,
		bill.BillDate,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating bill: %w", err)
	}

	return id, nil
}

const billSelect = `
	SELECT b.id, b.patient_id, b.appointment_id, b.package_id, b.sessions_booked,
	       b.gross_amount, b.package_discount_rate, b.package_discount_amount,
	       b.membership_discount_rate, b.membership_discount_amount,
	       b.tax_amount, b.final_amount, b.payment_status, b.bill_date,
	       p.first_name || ' ' || p.last_name AS patient_name,
	       COALESCE(wp.name, '') AS package_name
	FROM bills b
	JOIN patients p ON b.patient_id = p.id
	LEFT JOIN wellness_packages wp ON b.package_id = wp.id
`

func billFields(bill *domain.Bill) []interface{} {
	return []interface{}{
		&bill.ID,
		&bill.PatientID,
		&bill.AppointmentID,
		&bill.PackageID,
		&bill.SessionsBooked,
		&bill.GrossAmount,
		&bill.PackageDiscountRate,
		&bill.PackageDiscountAmount,
		&bill.MembershipDiscountRate,
		&bill.MembershipDiscountAmount,
		&bill.TaxAmount,
		&bill.FinalAmount,
		&bill.PaymentStatus,
		&bill.BillDate,
		&bill.PatientName,
		&bill.PackageName,
	}
}

func (r *BillRepo) GetByID(ctx context.Context, id int64) (*domain.Bill, error) {
	query := billSelect + `
		WHERE b.id = $1
	`

	var bill domain.Bill
	err := r.db.QueryRow(ctx, query, id).Scan(billFields(&bill)...)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("getting bill: %w", err)
	}

	return &bill, nil
}

func (r *BillRepo) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	query := `
		UPDATE bills
		SET payment_status = $1
		WHERE id = $2
	`

	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating payment status: %w", err)
	}

	return nil
}

func (r *BillRepo) List(ctx context.Context, filter domain.BillFilter) ([]domain.Bill, error) {
	conditions, args := billConditions(filter)

	query := billSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY b.bill_date DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0)
	for rows.Next() {
		var bill domain.Bill
		if err := rows.Scan(billFields(&bill)...); err != nil {
			return nil, fmt.Errorf("scanning bill row: %w", err)
		}
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w", err)
	}

	return bills, nil
}

func (r *BillRepo) CountByFilter(ctx context.Context, filter domain.BillFilter) (int, error) {
	query := `SELECT COUNT(*) FROM bills b`

	conditions, args := billConditions(filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting bills: %w", err)
	}

	return count, nil
}

func (r *BillRepo) RevenueSummary(ctx context.Context) (*domain.RevenueSummary, error) {
	query := `
		SELECT
			COALESCE(SUM(final_amount) FILTER (WHERE payment_status = 'paid'), 0) AS total_revenue,
			COALESCE(SUM(final_amount) FILTER (WHERE payment_status = 'pending'), 0) AS pending_amount,
			COALESCE(SUM(tax_amount) FILTER (WHERE payment_status = 'paid'), 0) AS tax_collected,
			COUNT(*) AS invoice_count
		FROM bills
	`

	var summary domain.RevenueSummary
	err := r.db.QueryRow(ctx, query).Scan(
		&summary.TotalRevenue,
		&summary.PendingAmount,
		&summary.TaxCollected,
		&summary.InvoiceCount,
	)
	if err != nil {
		return nil, fmt.Errorf("computing revenue summary: %w", err)
	}

	return &summary, nil
}

func (r *BillRepo) IncomeByPackage(ctx context.Context) ([]domain.PackageIncome, error) {
	query := `
		SELECT wp.id, wp.name,
		       COALESCE(SUM(b.final_amount) FILTER (WHERE b.payment_status = 'paid'), 0) AS total_income,
		       COUNT(b.id) AS purchases
		FROM wellness_packages wp
		LEFT JOIN bills b ON b.package_id = wp.id
		GROUP BY wp.id, wp.name
		ORDER BY total_income DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("computing package income: %w", err)
	}
	defer rows.Close()

	incomes := make([]domain.PackageIncome, 0)
	for rows.Next() {
		var income domain.PackageIncome
		err := rows.Scan(
			&income.PackageID,
			&income.PackageName,
			&income.TotalIncome,
			&income.Purchases,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning package income row: %w", err)
		}
		incomes = append(incomes, income)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating package income rows: %w", err)
	}

	return incomes, nil
}

func billConditions(filter domain.BillFilter) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}
	argCount := 1

	if filter.PatientID != nil {
		conditions = append(conditions, fmt.Sprintf("b.patient_id = $%d", argCount))
		args = append(args, *filter.PatientID)
		argCount++
	}

	if filter.PackageID != nil {
		conditions = append(conditions, fmt.Sprintf("b.package_id = $%d", argCount))
		args = append(args, *filter.PackageID)
		argCount++
	}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("b.payment_status = $%d", argCount))
		args = append(args, *filter.Status)
		argCount++
	}

	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("b.bill_date >= $%d", argCount))
		args = append(args, *filter.StartDate)
		argCount++
	}

	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("b.bill_date <= $%d", argCount))
		args = append(args, *filter.EndDate)
		argCount++
	}

	return conditions, args
}
