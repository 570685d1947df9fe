package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// ApplicationRepository handles apply_students database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateApplication inserts a new admission application
func (r *ApplicationRepository) CreateApplication(ctx context.Context, a *models.ApplyStudent) (int64, error) {
	sql, args, err := r.sb.Insert("apply_students").
		SetMap(map[string]interface{}{
			"first_name":          a.FirstName,
			"last_name":           a.LastName,
			"father_name":         a.FatherName,
			"mother_name":         a.MotherName,
			"date_of_birth":       a.DateOfBirth,
			"phone_number":        a.PhoneNumber,
			"email":               a.Email,
			"address":             a.Address,
			"city":                a.City,
			"country":             a.Country,
			"aadhaar_number":      a.AadhaarNumber,
			"passport_number":     a.PassportNumber,
			"university_id":       a.UniversityID,
			"course_id":           a.CourseID,
			"academic_session_id": a.AcademicSessionID,
			"twelfth_marks":       a.TwelfthMarks,
			"seat_number":         a.SeatNumber,
			"scores":              a.Scores,
			"status":              a.Status,
			"application_status":  a.ApplicationStatus,
		}).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("lastName", a.LastName).Msg("Error executing create application query")
		return 0, fmt.Errorf("error creating application: %w", err)
	}

	logger.Info().Int64("applicationID", id).Msg("Application created successfully")
	return id, nil
}
