package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// FeeRepository reads fee_payments
type FeeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFeeRepository creates a new FeeRepository
func NewFeeRepository(db *pgxpool.Pool) *FeeRepository {
	return &FeeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListFeePayments retrieves all fee instances of a student ordered by due date
func (r *FeeRepository) ListFeePayments(ctx context.Context, studentID int64) ([]*models.FeePayment, error) {
	sql, args, err := r.sb.Select(
		"id", "student_id", "description", "fee_type", "amount_due", "amount_paid",
		"status", "due_date", "last_payment_date", "payment_method",
	).
		From("fee_payments").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("due_date ASC NULLS LAST", "id ASC").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list fee payments SQL")
		return nil, fmt.Errorf("failed to build list fee payments query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing list fee payments query")
		return nil, fmt.Errorf("error querying fee payments: %w", err)
	}
	defer rows.Close()

	payments := []*models.FeePayment{}
	for rows.Next() {
		p := &models.FeePayment{}
		var status string
		if err := rows.Scan(&p.ID, &p.StudentID, &p.Description, &p.FeeType, &p.AmountDue, &p.AmountPaid,
			&status, &p.DueDate, &p.LastPaymentDate, &p.PaymentMethod); err != nil {
			logger.Error().Err(err).Msg("Error scanning fee payment row")
			return nil, fmt.Errorf("error scanning fee payment row: %w", err)
		}
		p.Status = models.FeeStatus(status)
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating fee payment rows")
		return nil, fmt.Errorf("error iterating fee payment rows: %w", err)
	}

	return payments, nil
}
