package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// TicketRepository handles support_tickets database operations
type TicketRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListTickets retrieves a student's tickets, newest first
func (r *TicketRepository) ListTickets(ctx context.Context, studentID int64) ([]*models.SupportTicket, error) {
	sql, args, err := r.sb.Select(
		"id", "student_id", "ticket_number", "subject", "category", "message",
		"attachment_path", "status", "created_at", "updated_at",
	).
		From("support_tickets").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list tickets SQL")
		return nil, fmt.Errorf("failed to build list tickets query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list tickets query")
		return nil, fmt.Errorf("error querying tickets: %w", err)
	}
	defer rows.Close()

	tickets := []*models.SupportTicket{}
	for rows.Next() {
		t := &models.SupportTicket{}
		if err := rows.Scan(&t.ID, &t.StudentID, &t.TicketNumber, &t.Subject, &t.Category, &t.Message,
			&t.AttachmentPath, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning ticket row")
			return nil, fmt.Errorf("error scanning ticket row: %w", err)
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ticket rows: %w", err)
	}

	return tickets, nil
}

// CreateTicket inserts a support ticket and fills in its ID and timestamps
func (r *TicketRepository) CreateTicket(ctx context.Context, t *models.SupportTicket) (int64, error) {
	sql, args, err := r.sb.Insert("support_tickets").
		Columns("student_id", "ticket_number", "subject", "category", "message", "attachment_path", "status").
		Values(t.StudentID, t.TicketNumber, t.Subject, t.Category, t.Message, t.AttachmentPath, t.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create ticket SQL")
		return 0, fmt.Errorf("failed to build create ticket query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		logger.Error().Err(err).Int64("studentID", t.StudentID).Msg("Error executing create ticket query")
		return 0, fmt.Errorf("error creating ticket: %w", err)
	}

	logger.Info().Str("ticket", t.TicketNumber).Int64("studentID", t.StudentID).Msg("Support ticket created successfully")
	return t.ID, nil
}
