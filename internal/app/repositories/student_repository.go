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

// verifyLoginSQL calls the credential check procedure on the backend
const verifyLoginSQL = `SELECT student_id, username, first_name, last_name, email, admission_number
FROM verify_student_login($1, $2)`

// StudentRepository handles students database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// VerifyLogin returns the student rows matching the credentials, empty when none match
func (r *StudentRepository) VerifyLogin(ctx context.Context, username, password string) ([]models.LoginRow, error) {
	rows, err := r.db.Query(ctx, verifyLoginSQL, username, password)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error executing verify_student_login")
		return nil, fmt.Errorf("error verifying login: %w", err)
	}
	defer rows.Close()

	result := []models.LoginRow{}
	for rows.Next() {
		var row models.LoginRow
		if err := rows.Scan(&row.StudentID, &row.Username, &row.FirstName, &row.LastName, &row.Email, &row.AdmissionNumber); err != nil {
			logger.Error().Err(err).Msg("Error scanning login row")
			return nil, fmt.Errorf("error scanning login row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating login rows")
		return nil, fmt.Errorf("error iterating login rows: %w", err)
	}

	return result, nil
}

// GetStudentByID retrieves a student with the university and course names joined in
func (r *StudentRepository) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.first_name", "s.last_name", "s.father_name", "s.mother_name", "s.date_of_birth",
		"s.phone_number", "s.email", "s.address", "s.city", "s.country",
		"s.university_id", "s.course_id", "s.academic_session_id", "s.status", "s.admission_number", "s.updated_at",
		"COALESCE(u.name, '')", "COALESCE(c.name, '')",
	).
		From("students s").
		LeftJoin("universities u ON u.id = s.university_id").
		LeftJoin("courses c ON c.id = s.course_id").
		Where(squirrel.Eq{"s.id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get student by ID SQL")
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s := &models.Student{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.FatherName, &s.MotherName, &s.DateOfBirth,
		&s.PhoneNumber, &s.Email, &s.Address, &s.City, &s.Country,
		&s.UniversityID, &s.CourseID, &s.AcademicSessionID, &s.Status, &s.AdmissionNumber, &s.UpdatedAt,
		&s.UniversityName, &s.CourseName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", id).Msg("Error scanning student row")
		return nil, fmt.Errorf("error getting student by ID: %w", err)
	}

	return s, nil
}
