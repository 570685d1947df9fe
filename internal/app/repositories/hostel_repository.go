package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/dberrors"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// ErrRegistrationExists is returned when the backend rejects a second active registration
var ErrRegistrationExists = errors.New("student already has an active hostel registration")

// activeRegistrationIndex is the partial unique index guarding one pending/approved row per student
const activeRegistrationIndex = "uq_hostel_registrations_active"

var hostelColumns = []string{
	"id", "name", "location", "capacity", "current_occupancy", "monthly_rent", "facilities", "status",
}

var registrationColumns = []string{
	"id", "student_id", "hostel_id", "status", "requested_by", "requested_at", "approved_at", "approved_by", "notes",
}

// HostelRepository handles hostels and hostel_registrations database operations
type HostelRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewHostelRepository creates a new HostelRepository
func NewHostelRepository(db *pgxpool.Pool) *HostelRepository {
	return &HostelRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanHostel(row pgx.Row) (*models.Hostel, error) {
	h := &models.Hostel{}
	err := row.Scan(&h.ID, &h.Name, &h.Location, &h.Capacity, &h.CurrentOccupancy, &h.MonthlyRent, &h.Facilities, &h.Status)
	return h, err
}

// ListActiveHostels retrieves hostels open for applications ordered by name
func (r *HostelRepository) ListActiveHostels(ctx context.Context) ([]*models.Hostel, error) {
	sql, args, err := r.sb.Select(hostelColumns...).
		From("hostels").
		Where(squirrel.Eq{"status": models.HostelStatusActive}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list hostels SQL")
		return nil, fmt.Errorf("failed to build list hostels query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list hostels query")
		return nil, fmt.Errorf("error querying hostels: %w", err)
	}
	defer rows.Close()

	hostels := []*models.Hostel{}
	for rows.Next() {
		h, err := scanHostel(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning hostel row")
			return nil, fmt.Errorf("error scanning hostel row: %w", err)
		}
		hostels = append(hostels, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hostel rows: %w", err)
	}

	return hostels, nil
}

// GetHostelByID retrieves a hostel by ID
func (r *HostelRepository) GetHostelByID(ctx context.Context, id int64) (*models.Hostel, error) {
	sql, args, err := r.sb.Select(hostelColumns...).
		From("hostels").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get hostel SQL")
		return nil, fmt.Errorf("failed to build get hostel query: %w", err)
	}

	h, err := scanHostel(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("hostelID", id).Msg("Error scanning hostel row")
		return nil, fmt.Errorf("error getting hostel by ID: %w", err)
	}

	return h, nil
}

// GetActiveRegistration retrieves the latest pending or approved registration of a student
func (r *HostelRepository) GetActiveRegistration(ctx context.Context, studentID int64) (*models.HostelRegistration, error) {
	sql, args, err := r.sb.Select(registrationColumns...).
		From("hostel_registrations").
		Where(squirrel.Eq{
			"student_id": studentID,
			"status":     []string{models.RegistrationPending, models.RegistrationApproved},
		}).
		OrderBy("requested_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get registration SQL")
		return nil, fmt.Errorf("failed to build get registration query: %w", err)
	}

	reg := &models.HostelRegistration{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&reg.ID, &reg.StudentID, &reg.HostelID, &reg.Status, &reg.RequestedBy,
		&reg.RequestedAt, &reg.ApprovedAt, &reg.ApprovedBy, &reg.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error scanning registration row")
		return nil, fmt.Errorf("error getting registration: %w", err)
	}

	return reg, nil
}

// CreateRegistration inserts a hostel application
func (r *HostelRepository) CreateRegistration(ctx context.Context, reg *models.HostelRegistration) (int64, error) {
	sql, args, err := r.sb.Insert("hostel_registrations").
		Columns("student_id", "hostel_id", "status", "requested_by", "notes").
		Values(reg.StudentID, reg.HostelID, reg.Status, reg.RequestedBy, reg.Notes).
		Suffix("RETURNING id, requested_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create registration SQL")
		return 0, fmt.Errorf("failed to build create registration query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &reg.RequestedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, activeRegistrationIndex) {
			return 0, ErrRegistrationExists
		}
		logger.Error().Err(err).Int64("studentID", reg.StudentID).Int64("hostelID", reg.HostelID).Msg("Error executing create registration query")
		return 0, fmt.Errorf("error creating registration: %w", err)
	}

	reg.ID = id
	logger.Info().Int64("registrationID", id).Int64("studentID", reg.StudentID).Msg("Hostel registration created successfully")
	return id, nil
}
