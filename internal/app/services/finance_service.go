package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/helpers"
	"github.com/yigit/studentportal/internal/pkg/progress"
)

var feeTypeLabels = map[string]string{
	"tuition":          "Tuition",
	"technology":       "Technology Fee",
	"library":          "Library & Resources",
	"student_services": "Student Services",
	"accommodation":    "Accommodation (Optional)",
	"insurance":        "Health Insurance",
	"application":      "Application Fee",
}

// FinanceService assembles the finances page
type FinanceService struct {
	feeRepo repositories.FeeStore
	clock   Clock
	logger  zerolog.Logger
}

// NewFinanceService creates a new FinanceService
func NewFinanceService(feeRepo repositories.FeeStore, clock Clock, logger zerolog.Logger) *FinanceService {
	return &FinanceService{
		feeRepo: feeRepo,
		clock:   clock,
		logger:  logger,
	}
}

// GetFinances reads the student's fee payments and derives every tab
func (s *FinanceService) GetFinances(ctx context.Context, studentID int64, tab string) *dto.FinanceView {
	fees, err := s.feeRepo.ListFeePayments(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching fee payments")
		fees = nil
	}
	return BuildFinanceView(fees, ResolveTab(tab, FinanceTabs), s.clock())
}

// BuildFinanceView derives the summary, history, upcoming and structure lists from fees
func BuildFinanceView(fees []*models.FeePayment, tab string, now time.Time) *dto.FinanceView {
	view := &dto.FinanceView{
		Tab:       tab,
		History:   []dto.FeeItem{},
		Upcoming:  []dto.FeeItem{},
		Structure: []dto.StructureItem{},
	}

	var history, upcoming []*models.FeePayment
	totals := map[string]float64{}
	var order []string

	for _, f := range fees {
		view.Summary.TotalDue += f.AmountDue
		view.Summary.TotalPaid += f.AmountPaid
		view.Summary.Pending += f.Outstanding()

		if f.AmountPaid > 0 {
			history = append(history, f)
		}
		if f.Status != models.FeeStatusPaid {
			upcoming = append(upcoming, f)
		}

		key := strings.ToLower(strings.TrimSpace(f.FeeType))
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] += f.AmountDue
	}
	view.Summary.Completion = progress.CompletionPercent(view.Summary.TotalPaid, view.Summary.TotalDue)

	sort.SliceStable(history, func(i, j int) bool {
		return timeOrZero(history[i].LastPaymentDate).After(timeOrZero(history[j].LastPaymentDate))
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return dueBefore(upcoming[i].DueDate, upcoming[j].DueDate)
	})

	for _, f := range history {
		view.History = append(view.History, feeItem(f, now))
	}
	for _, f := range upcoming {
		view.Upcoming = append(view.Upcoming, feeItem(f, now))
	}

	for _, f := range upcoming {
		if f.DueDate == nil {
			continue
		}
		view.Summary.Next = &dto.NextPayment{
			Description: f.Description,
			Amount:      f.Outstanding(),
			DueDate:     helpers.FormatDate(f.DueDate),
			DaysLeft:    progress.DaysUntil(*f.DueDate, now),
		}
		break
	}

	for _, key := range order {
		view.Structure = append(view.Structure, dto.StructureItem{
			FeeType: key,
			Label:   feeTypeLabel(key),
			Amount:  totals[key],
		})
		view.StructureTotal += totals[key]
	}

	return view
}

func feeItem(f *models.FeePayment, now time.Time) dto.FeeItem {
	item := dto.FeeItem{
		ID:              f.ID,
		Description:     f.Description,
		FeeType:         f.FeeType,
		AmountDue:       f.AmountDue,
		AmountPaid:      f.AmountPaid,
		Outstanding:     f.Outstanding(),
		Status:          string(f.Status),
		StatusBadge:     feeBadge(f.Status),
		DueDate:         helpers.FormatDate(f.DueDate),
		LastPaymentDate: helpers.FormatDate(f.LastPaymentDate),
		PaymentMethod:   deref(f.PaymentMethod),
	}
	if f.DueDate != nil && f.Status != models.FeeStatusPaid {
		days := progress.DaysUntil(*f.DueDate, now)
		item.DaysLeft = &days
	}
	return item
}

func feeBadge(status models.FeeStatus) string {
	switch status {
	case models.FeeStatusPaid:
		return dto.BadgeApproved
	case models.FeeStatusPartial, models.FeeStatusPending:
		return dto.BadgePending
	default:
		return dto.BadgeRejected
	}
}

// feeTypeLabel returns the display label of a fee type, title-casing unknown types
func feeTypeLabel(feeType string) string {
	if label, ok := feeTypeLabels[feeType]; ok {
		return label
	}
	if feeType == "" {
		return "Other"
	}
	words := strings.Fields(strings.ReplaceAll(feeType, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// dueBefore orders dated rows first, earliest first
func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
