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
	"github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/helpers"
	"github.com/yigit/studentportal/internal/pkg/progress"
)

// Dashboard list sizes
const (
	RecentPaymentsLimit = 2
	UpcomingLimit       = 3
)

// Deadline types shown on the dashboard
const (
	DeadlineTypeVisa    = "visa"
	DeadlineTypePayment = "payment"
)

var quickLinks = []dto.QuickLink{
	{Title: "Download Admission Letter", Path: "/documents"},
	{Title: "My Account", Path: "/finances"},
	{Title: "Check Visa Status", Path: "/visa"},
	{Title: "Submit Query", Path: "/support"},
}

// DashboardService assembles the overview page
type DashboardService struct {
	studentRepo repositories.StudentStore
	feeRepo     repositories.FeeStore
	visaRepo    repositories.VisaStore
	clock       Clock
	logger      zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	studentRepo repositories.StudentStore,
	feeRepo repositories.FeeStore,
	visaRepo repositories.VisaStore,
	clock Clock,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		studentRepo: studentRepo,
		feeRepo:     feeRepo,
		visaRepo:    visaRepo,
		clock:       clock,
		logger:      logger,
	}
}

// GetDashboard reads the student's records; read failures leave their section empty
func (s *DashboardService) GetDashboard(ctx context.Context, user *auth.User) *dto.DashboardView {
	view := &dto.DashboardView{
		StudentName:       user.Name,
		ApplicationNumber: user.ApplicationNumber,
		RecentPayments:    []dto.PaymentItem{},
		Deadlines:         []dto.DeadlineItem{},
		QuickLinks:        quickLinks,
	}

	studentID, err := StudentID(user)
	if err != nil {
		s.logger.Warn().Err(err).Str("sessionID", user.ID).Msg("Session carries no numeric student id")
		return view
	}
	now := s.clock()

	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching student")
	} else {
		if student.Status != nil {
			view.AdmissionStatus = *student.Status
			view.StatusBadge = statusBadge(*student.Status)
		}
		view.Program = student.CourseName
		view.University = student.UniversityName
		if view.ApplicationNumber == "" && student.AdmissionNumber != nil {
			view.ApplicationNumber = *student.AdmissionNumber
		}
	}

	fees, err := s.feeRepo.ListFeePayments(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching fee payments")
	}
	view.RecentPayments = recentPayments(fees, RecentPaymentsLimit)

	deadlines, err := s.visaRepo.ListDeadlines(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching visa deadlines")
	}
	view.Deadlines = upcomingDeadlines(deadlines, fees, now, UpcomingLimit)

	return view
}

// recentPayments returns the latest fees that carry a payment date
func recentPayments(fees []*models.FeePayment, limit int) []dto.PaymentItem {
	paid := make([]*models.FeePayment, 0, len(fees))
	for _, f := range fees {
		if f.LastPaymentDate != nil && f.AmountPaid > 0 {
			paid = append(paid, f)
		}
	}
	sort.SliceStable(paid, func(i, j int) bool {
		return paid[i].LastPaymentDate.After(*paid[j].LastPaymentDate)
	})
	if len(paid) > limit {
		paid = paid[:limit]
	}

	items := make([]dto.PaymentItem, 0, len(paid))
	for _, f := range paid {
		items = append(items, dto.PaymentItem{
			ID:          f.ID,
			Description: f.Description,
			Amount:      f.AmountPaid,
			Date:        helpers.FormatDate(f.LastPaymentDate),
			Status:      string(f.Status),
		})
	}
	return items
}

// upcomingDeadlines merges open visa deadlines and unpaid dated fees, earliest first
func upcomingDeadlines(deadlines []*models.VisaDeadline, fees []*models.FeePayment, now time.Time, limit int) []dto.DeadlineItem {
	type entry struct {
		due  time.Time
		item dto.DeadlineItem
	}
	entries := make([]entry, 0, len(deadlines)+len(fees))

	for _, d := range deadlines {
		if d.IsCompleted {
			continue
		}
		days := progress.DaysUntil(d.DueDate, now)
		due := d.DueDate
		entries = append(entries, entry{due: due, item: dto.DeadlineItem{
			ID:          d.ID,
			Title:       d.Title,
			Description: deref(d.Description),
			Type:        DeadlineTypeVisa,
			DueDate:     helpers.FormatDate(&due),
			DaysLeft:    days,
			Urgent:      progress.IsUrgent(days, progress.DashboardUrgentDays),
		}})
	}

	for _, f := range fees {
		if f.Status == models.FeeStatusPaid || f.DueDate == nil {
			continue
		}
		days := progress.DaysUntil(*f.DueDate, now)
		entries = append(entries, entry{due: *f.DueDate, item: dto.DeadlineItem{
			ID:          f.ID,
			Title:       f.Description,
			Description: helpers.FormatAmount(f.Outstanding()) + " outstanding",
			Type:        DeadlineTypePayment,
			DueDate:     helpers.FormatDate(f.DueDate),
			DaysLeft:    days,
			Urgent:      progress.IsUrgent(days, progress.DashboardUrgentDays),
		}})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].due.Before(entries[j].due)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]dto.DeadlineItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, e.item)
	}
	return items
}

// statusBadge maps a free-form status onto a badge class
func statusBadge(status string) string {
	switch strings.ToLower(status) {
	case "approved", "active", "registered", "paid", "resolved", "closed":
		return dto.BadgeApproved
	case "pending", "partial", "under review", "in progress", "pending registration":
		return dto.BadgePending
	case "expired":
		return dto.BadgeExpired
	default:
		return dto.BadgeRejected
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
