package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/helpers"
	"github.com/yigit/studentportal/internal/pkg/progress"
)

// Timeline event statuses
const (
	EventCompleted = "completed"
	EventUpcoming  = "upcoming"
)

// VisaService assembles the visa and residency page
type VisaService struct {
	visaRepo repositories.VisaStore
	clock    Clock
	logger   zerolog.Logger
}

// NewVisaService creates a new VisaService
func NewVisaService(visaRepo repositories.VisaStore, clock Clock, logger zerolog.Logger) *VisaService {
	return &VisaService{
		visaRepo: visaRepo,
		clock:    clock,
		logger:   logger,
	}
}

// VisaData is the raw per-student visa state
type VisaData struct {
	Visa      *models.VisaRecord
	Residency *models.ResidencyRecord
	Deadlines []*models.VisaDeadline
	Documents []*models.VisaDocument
}

// GetVisa reads the four visa sources; a missing record or failed read leaves its card empty
func (s *VisaService) GetVisa(ctx context.Context, studentID int64, tab string) *dto.VisaView {
	data := VisaData{}
	log := s.logger.With().Int64("studentID", studentID).Logger()

	visa, err := s.visaRepo.GetVisa(ctx, studentID)
	switch {
	case err == nil:
		data.Visa = visa
	case !errors.Is(err, repositories.ErrNotFound):
		log.Error().Err(err).Msg("Error fetching visa")
	}

	residency, err := s.visaRepo.GetResidency(ctx, studentID)
	switch {
	case err == nil:
		data.Residency = residency
	case !errors.Is(err, repositories.ErrNotFound):
		log.Error().Err(err).Msg("Error fetching residency")
	}

	if data.Deadlines, err = s.visaRepo.ListDeadlines(ctx, studentID); err != nil {
		log.Error().Err(err).Msg("Error fetching visa deadlines")
	}
	if data.Documents, err = s.visaRepo.ListVisaDocuments(ctx, studentID); err != nil {
		log.Error().Err(err).Msg("Error fetching visa documents")
	}

	return BuildVisaView(data, ResolveTab(tab, VisaTabs), s.clock())
}

// BuildVisaView derives the cards, timeline and deadlines of the visa page
func BuildVisaView(data VisaData, tab string, now time.Time) *dto.VisaView {
	view := &dto.VisaView{
		Tab:                tab,
		Process:            []dto.ProcessStep{},
		Timeline:           []dto.TimelineEvent{},
		Deadlines:          []dto.DeadlineItem{},
		AvailableDocuments: []dto.VisaDocumentItem{},
		MissingDocuments:   []dto.VisaDocumentItem{},
	}

	if v := data.Visa; v != nil {
		card := &dto.VisaCard{
			Type:           v.VisaType,
			Status:         v.VisaStatus,
			Badge:          VisaBadge(v.VisaStatus),
			Number:         v.VisaNumber,
			EntryType:      deref(v.EntryType),
			IssueDate:      helpers.FormatDate(v.IssueDate),
			ExpirationDate: helpers.FormatDate(v.ExpirationDate),
		}
		if v.ExpirationDate != nil {
			card.HasExpiration = true
			card.DaysUntilExpiration = progress.DaysUntil(*v.ExpirationDate, now)
			card.NeedsRenewal = progress.NeedsRenewal(card.DaysUntilExpiration)
		}
		card.ValidityWidth = progress.VisaValidityWidth(card.DaysUntilExpiration)
		view.Visa = card

		view.Process = []dto.ProcessStep{
			{Label: "Application Submitted", Done: v.ApplicationSubmitted},
			{Label: "Visa Interview", Done: v.VisaInterview},
			{Label: "Visa Approved", Done: v.VisaApproved},
			{Label: "Residency Registration", Done: v.ResidencyRegistration},
		}
	}

	if r := data.Residency; r != nil {
		card := &dto.ResidencyCard{
			Status:           r.RegistrationStatus,
			Badge:            ResidencyBadge(r.RegistrationStatus),
			Registered:       r.RegistrationStatus == models.ResidencyRegistered,
			Deadline:         helpers.FormatDate(r.RegistrationDeadline),
			CurrentAddress:   deref(r.CurrentAddress),
			LocalIDNumber:    deref(r.LocalIDNumber),
			RegistrationDate: helpers.FormatDate(r.RegistrationDate),
		}
		if r.RegistrationDeadline != nil {
			card.DaysUntilDeadline = progress.DaysUntil(*r.RegistrationDeadline, now)
			card.DeadlineNear = progress.ResidencyDeadlineNear(card.DaysUntilDeadline)
		}
		view.Residency = card
	}

	view.Timeline = Timeline(data.Visa, data.Residency)

	deadlines := append([]*models.VisaDeadline(nil), data.Deadlines...)
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].DueDate.Before(deadlines[j].DueDate)
	})
	for _, d := range deadlines {
		due := d.DueDate
		days := progress.DaysUntil(due, now)
		view.Deadlines = append(view.Deadlines, dto.DeadlineItem{
			ID:          d.ID,
			Title:       d.Title,
			Description: deref(d.Description),
			Type:        d.DeadlineType,
			DueDate:     helpers.FormatDate(&due),
			DaysLeft:    days,
			Urgent:      !d.IsCompleted && progress.IsUrgent(days, progress.VisaUrgentDays),
			Completed:   d.IsCompleted,
		})
	}

	for _, doc := range data.Documents {
		item := dto.VisaDocumentItem{Name: doc.DocumentName, Available: doc.IsAvailable, URL: deref(doc.DocumentURL)}
		if doc.IsAvailable {
			view.AvailableDocuments = append(view.AvailableDocuments, item)
		} else {
			view.MissingDocuments = append(view.MissingDocuments, item)
		}
	}

	return view
}

// Timeline lists the dated stages of the visa lifecycle; undated stages are left out
func Timeline(visa *models.VisaRecord, residency *models.ResidencyRecord) []dto.TimelineEvent {
	type stage struct {
		title       string
		date        *time.Time
		status      string
		description string
	}

	var stages []stage
	if visa != nil {
		stages = append(stages,
			stage{"Visa Application Submitted", visa.ApplicationDate, EventCompleted, "Application submitted to embassy"},
			stage{"Visa Interview", visa.InterviewDate, EventCompleted, "Interview completed at embassy"},
			stage{"Visa Approved", visa.ApprovalDate, EventCompleted, "Visa approved and issued"},
		)
	}
	if residency != nil {
		status := EventUpcoming
		if residency.RegistrationStatus == models.ResidencyRegistered {
			status = EventCompleted
		}
		stages = append(stages, stage{"Residency Registration", residency.RegistrationDeadline, status, "Register with local authorities"})
	}

	events := make([]dto.TimelineEvent, 0, len(stages))
	for _, st := range stages {
		if st.date == nil {
			continue
		}
		events = append(events, dto.TimelineEvent{
			Title:       st.title,
			Date:        helpers.FormatDate(st.date),
			Status:      st.status,
			Description: st.description,
		})
	}
	return events
}

// VisaBadge maps a visa status onto its badge class
func VisaBadge(status string) string {
	switch status {
	case "Approved":
		return dto.BadgeApproved
	case "Pending":
		return dto.BadgePending
	default:
		return dto.BadgeRejected
	}
}

// ResidencyBadge maps a residency registration status onto its badge class
func ResidencyBadge(status string) string {
	switch status {
	case models.ResidencyRegistered:
		return dto.BadgeApproved
	case models.ResidencyPending:
		return dto.BadgePending
	default:
		return dto.BadgeExpired
	}
}
