package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// VisaRepository reads student_visa, student_residency, visa_deadlines and visa_documents
type VisaRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewVisaRepository creates a new VisaRepository
func NewVisaRepository(db *pgxpool.Pool) *VisaRepository {
	return &VisaRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetVisa retrieves the visa record of a student
func (r *VisaRepository) GetVisa(ctx context.Context, studentID int64) (*models.VisaRecord, error) {
	sql, args, err := r.sb.Select(
		"id", "student_id", "visa_type", "visa_status", "visa_number", "issue_date", "expiration_date",
		"entry_type", "application_date", "interview_date", "approval_date",
		"application_submitted", "visa_interview", "visa_approved", "residency_registration",
	).
		From("student_visa").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get visa SQL")
		return nil, fmt.Errorf("failed to build get visa query: %w", err)
	}

	v := &models.VisaRecord{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&v.ID, &v.StudentID, &v.VisaType, &v.VisaStatus, &v.VisaNumber, &v.IssueDate, &v.ExpirationDate,
		&v.EntryType, &v.ApplicationDate, &v.InterviewDate, &v.ApprovalDate,
		&v.ApplicationSubmitted, &v.VisaInterview, &v.VisaApproved, &v.ResidencyRegistration,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning visa row")
		return nil, fmt.Errorf("error getting visa: %w", err)
	}

	return v, nil
}

// GetResidency retrieves the residency record of a student
func (r *VisaRepository) GetResidency(ctx context.Context, studentID int64) (*models.ResidencyRecord, error) {
	sql, args, err := r.sb.Select(
		"id", "student_id", "registration_status", "registration_deadline",
		"current_address", "local_id_number", "registration_date",
	).
		From("student_residency").
		Where(squirrel.Eq{"student_id": studentID}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get residency SQL")
		return nil, fmt.Errorf("failed to build get residency query: %w", err)
	}

	res := &models.ResidencyRecord{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&res.ID, &res.StudentID, &res.RegistrationStatus, &res.RegistrationDeadline,
		&res.CurrentAddress, &res.LocalIDNumber, &res.RegistrationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning residency row")
		return nil, fmt.Errorf("error getting residency: %w", err)
	}

	return res, nil
}

// ListDeadlines retrieves a student's visa deadlines ordered by due date
func (r *VisaRepository) ListDeadlines(ctx context.Context, studentID int64) ([]*models.VisaDeadline, error) {
	sql, args, err := r.sb.Select("id", "student_id", "title", "description", "due_date", "deadline_type", "is_completed").
		From("visa_deadlines").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("due_date ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list deadlines SQL")
		return nil, fmt.Errorf("failed to build list deadlines query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list deadlines query")
		return nil, fmt.Errorf("error querying deadlines: %w", err)
	}
	defer rows.Close()

	deadlines := []*models.VisaDeadline{}
	for rows.Next() {
		d := &models.VisaDeadline{}
		if err := rows.Scan(&d.ID, &d.StudentID, &d.Title, &d.Description, &d.DueDate, &d.DeadlineType, &d.IsCompleted); err != nil {
			logger.Error().Err(err).Msg("Error scanning deadline row")
			return nil, fmt.Errorf("error scanning deadline row: %w", err)
		}
		deadlines = append(deadlines, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deadline rows: %w", err)
	}

	return deadlines, nil
}

// ListVisaDocuments retrieves a student's visa document checklist
func (r *VisaRepository) ListVisaDocuments(ctx context.Context, studentID int64) ([]*models.VisaDocument, error) {
	sql, args, err := r.sb.Select("id", "student_id", "document_name", "is_available", "document_url").
		From("visa_documents").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list visa documents SQL")
		return nil, fmt.Errorf("failed to build list visa documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list visa documents query")
		return nil, fmt.Errorf("error querying visa documents: %w", err)
	}
	defer rows.Close()

	documents := []*models.VisaDocument{}
	for rows.Next() {
		d := &models.VisaDocument{}
		if err := rows.Scan(&d.ID, &d.StudentID, &d.DocumentName, &d.IsAvailable, &d.DocumentURL); err != nil {
			logger.Error().Err(err).Msg("Error scanning visa document row")
			return nil, fmt.Errorf("error scanning visa document row: %w", err)
		}
		documents = append(documents, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating visa document rows: %w", err)
	}

	return documents, nil
}
