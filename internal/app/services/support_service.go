package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/email"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
	"github.com/yigit/studentportal/internal/pkg/helpers"
	"github.com/yigit/studentportal/internal/pkg/validation"
)

// MaxAttachmentSize bounds the optional ticket attachment
const MaxAttachmentSize = 10 << 20

// TicketCategories are the options of the support form
var TicketCategories = []dto.CategoryOption{
	{Value: "academic", Label: "Academic"},
	{Value: "financial", Label: "Financial"},
	{Value: "visa", Label: "Visa & Immigration"},
	{Value: "technical", Label: "Technical Support"},
	{Value: "housing", Label: "Housing"},
	{Value: "other", Label: "Other"},
}

// FAQ is the static list shown on the faq tab
var FAQ = []dto.FAQItem{
	{
		Question: "How can I update my personal information?",
		Answer:   "You can update your personal information by navigating to your Profile page. Click on the edit button next to the information you wish to update.",
	},
	{
		Question: "When is the deadline for tuition fee payment?",
		Answer:   "Tuition fee payments are typically due at the beginning of each semester. Check the Finances page for the exact due date of your next payment. Late payments may incur additional fees.",
	},
	{
		Question: "How do I request an official transcript?",
		Answer:   "To request an official transcript, submit a query in the Academic category. Processing may take 3-5 business days.",
	},
	{
		Question: "What documents do I need for visa renewal?",
		Answer:   "For visa renewal, you will need your current passport, proof of enrollment, proof of financial support, and recent passport-sized photos. Visit the Visa & Residency page for detailed information.",
	},
	{
		Question: "How can I apply for on-campus housing?",
		Answer:   "Visit the Services page to view available hostels and submit your application.",
	},
}

// SupportService handles support queries
type SupportService struct {
	ticketRepo repositories.TicketStore
	storage    filestorage.FileStorage
	mailer     email.EmailService
	validator  *validation.Validator
	clock      Clock
	logger     zerolog.Logger
}

// NewSupportService creates a new SupportService
func NewSupportService(
	ticketRepo repositories.TicketStore,
	storage filestorage.FileStorage,
	mailer email.EmailService,
	validator *validation.Validator,
	clock Clock,
	logger zerolog.Logger,
) *SupportService {
	return &SupportService{
		ticketRepo: ticketRepo,
		storage:    storage,
		mailer:     mailer,
		validator:  validator,
		clock:      clock,
		logger:     logger,
	}
}

// GetSupport reads the student's previous tickets, newest first
func (s *SupportService) GetSupport(ctx context.Context, studentID int64, tab string) *dto.SupportView {
	view := &dto.SupportView{
		Tab:        ResolveTab(tab, SupportTabs),
		Categories: TicketCategories,
		Tickets:    []dto.TicketItem{},
		FAQ:        FAQ,
	}

	tickets, err := s.ticketRepo.ListTickets(ctx, studentID)
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching support tickets")
		return view
	}
	for _, t := range tickets {
		created := t.CreatedAt
		view.Tickets = append(view.Tickets, dto.TicketItem{
			ID:            t.ID,
			TicketNumber:  t.TicketNumber,
			Subject:       t.Subject,
			Category:      categoryLabel(t.Category),
			Message:       t.Message,
			Status:        t.Status,
			StatusBadge:   statusBadge(t.Status),
			HasAttachment: t.AttachmentPath != nil,
			CreatedAt:     helpers.FormatDate(&created),
		})
	}
	return view
}

// ValidateTicket returns the field errors of a support query, nil when valid
func (s *SupportService) ValidateTicket(req *dto.TicketRequest) map[string]string {
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)
	return s.validator.Struct(req)
}

// SubmitTicket stores a support query with its optional attachment and acknowledges it by email
func (s *SupportService) SubmitTicket(ctx context.Context, user *auth.User, req *dto.TicketRequest, attachment *multipart.FileHeader) (*dto.TicketResponse, error) {
	studentID, err := StudentID(user)
	if err != nil {
		return nil, err
	}
	if errs := s.ValidateTicket(req); errs != nil {
		return nil, &FormError{Fields: errs}
	}
	log := s.logger.With().Int64("studentID", studentID).Logger()

	now := s.clock()
	ticket := &models.SupportTicket{
		StudentID:    studentID,
		TicketNumber: newTicketNumber(now.Year()),
		Subject:      req.Subject,
		Category:     req.Category,
		Message:      req.Message,
		Status:       models.TicketStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if attachment != nil {
		if attachment.Size > MaxAttachmentSize {
			return nil, &FormError{Fields: map[string]string{"attachment": "Attachment must be 10 MB or smaller"}}
		}
		stored, err := s.storage.SaveFileWithPath(attachment, path.Join("tickets", studentFolder(studentID)))
		if err != nil {
			log.Error().Err(err).Msg("Failed to store ticket attachment")
			return nil, apperrors.ErrTicketNotSubmitted
		}
		ticket.AttachmentPath = &stored
	}

	id, err := s.ticketRepo.CreateTicket(ctx, ticket)
	if err != nil {
		log.Error().Err(err).Msg("Error creating support ticket")
		if ticket.AttachmentPath != nil {
			if delErr := s.storage.DeleteFile(*ticket.AttachmentPath); delErr != nil {
				log.Warn().Err(delErr).Str("path", *ticket.AttachmentPath).Msg("Failed to remove orphaned attachment")
			}
		}
		return nil, apperrors.ErrTicketNotSubmitted
	}

	log.Info().Str("ticket", ticket.TicketNumber).Msg("Support ticket submitted")

	if user.Email != "" {
		if err := s.mailer.SendTicketAcknowledgement(user.Email, user.Name, ticket.TicketNumber, ticket.Subject); err != nil {
			log.Warn().Err(err).Str("ticket", ticket.TicketNumber).Msg("Failed to send ticket acknowledgement")
		}
	}

	return &dto.TicketResponse{ID: id, TicketNumber: ticket.TicketNumber, Status: ticket.Status}, nil
}

// newTicketNumber formats TKT-<year>-<8 hex>
func newTicketNumber(year int) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("TKT-%d-%s", year, strings.ToUpper(hex[:8]))
}

func categoryLabel(value string) string {
	for _, c := range TicketCategories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
