package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// CatalogRepository reads universities, courses and academic sessions
type CatalogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListUniversities retrieves all universities
func (r *CatalogRepository) ListUniversities(ctx context.Context) ([]*models.University, error) {
	sql, args, err := r.sb.Select("id", "name").From("universities").OrderBy("name ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list universities SQL")
		return nil, fmt.Errorf("failed to build list universities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list universities query")
		return nil, fmt.Errorf("error querying universities: %w", err)
	}
	defer rows.Close()

	universities := []*models.University{}
	for rows.Next() {
		u := &models.University{}
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("error scanning university row: %w", err)
		}
		universities = append(universities, u)
	}
	return universities, rows.Err()
}

// ListCourses retrieves all courses
func (r *CatalogRepository) ListCourses(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.sb.Select("id", "name").From("courses").OrderBy("name ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list courses SQL")
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// ListActiveSessions retrieves the academic sessions open for applications
func (r *CatalogRepository) ListActiveSessions(ctx context.Context) ([]*models.AcademicSession, error) {
	sql, args, err := r.sb.Select("id", "session_name", "is_active").
		From("academic_sessions").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("session_name ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list sessions SQL")
		return nil, fmt.Errorf("failed to build list sessions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list sessions query")
		return nil, fmt.Errorf("error querying academic sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.AcademicSession{}
	for rows.Next() {
		s := &models.AcademicSession{}
		if err := rows.Scan(&s.ID, &s.SessionName, &s.IsActive); err != nil {
			return nil, fmt.Errorf("error scanning session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
