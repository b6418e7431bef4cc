package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"mwn/internal/domain"
)

type RecordRepo struct {
	db *pgxpool.Pool
}

func NewRecordRepository(db *pgxpool.Pool) *RecordRepo {
	return &RecordRepo{
		db: db,
	}
}

func (r *RecordRepo) CreateLabReport(ctx context.Context, report domain.LabReport) (int64, error) {
	query := `
		INSERT INTO lab_reports (patient_id, report_name, report_date, file_url, uploaded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		report.PatientID,
		report.ReportName,
		report.ReportDate,
		report.FileURL,
		report.UploadedBy,
		report.CreatedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating lab report: %w", err)
	}

	return id, nil
}

func (r *RecordRepo) ListLabReportsByPatient(ctx context.Context, patientID int64) ([]domain.LabReport, error) {
	query := `
		SELECT id, patient_id, report_name, report_date, file_url, uploaded_by, created_at
		FROM lab_reports
		WHERE patient_id = $1
		ORDER BY report_date DESC
	`

	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("listing lab reports: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.LabReport, 0)
	for rows.Next() {
		var report domain.LabReport
		err := rows.Scan(
			&report.ID,
			&report.PatientID,
			&report.ReportName,
			&report.ReportDate,
			&report.FileURL,
			&report.UploadedBy,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning lab report row: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lab report rows: %w", err)
	}

	return reports, nil
}

func (r *RecordRepo) CreateConsultationNote(ctx context.Context, note domain.ConsultationNote) (int64, error) {
	query := `
		INSERT INTO consultation_notes (appointment_id, doctor_id, patient_id, notes, diagnosis, prescription, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		note.AppointmentID,
		note.DoctorID,
		note.PatientID,
		note.Notes,
		note.Diagnosis,
		note.Prescription,
		note.CreatedAt,
	).Scan(&id)

	if err != nil {
		return 0, fmt.Errorf("creating consultation note: %w", err)
	}

	return id, nil
}

func (r *RecordRepo) ListNotesByPatient(ctx context.Context, patientID int64) ([]domain.ConsultationNote, error) {
	query := `
		SELECT id, appointment_id, doctor_id, patient_id, notes, diagnosis, prescription, created_at
		FROM consultation_notes
		WHERE patient_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("listing consultation notes: %w", err)
	}
	defer rows.Close()

	notes := make([]domain.ConsultationNote, 0)
	for rows.Next() {
		var note domain.ConsultationNote
		err := rows.Scan(
			&note.ID,
			&note.AppointmentID,
			&note.DoctorID,
			&note.PatientID,
			&note.Notes,
			&note.Diagnosis,
			&note.Prescription,
			&note.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning consultation note row: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating consultation note rows: %w", err)
	}

	return notes, nil
}
