package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/helpers"
)

// RequestedByStudent marks registrations raised from the portal
const RequestedByStudent = "student"

var registrationLabels = map[string]string{
	models.RegistrationApproved: "Approved",
	models.RegistrationPending:  "Under Review",
	models.RegistrationRejected: "Rejected",
}

// HostelService handles the accommodation services page
type HostelService struct {
	hostelRepo repositories.HostelStore
	logger     zerolog.Logger
}

// NewHostelService creates a new HostelService
func NewHostelService(hostelRepo repositories.HostelStore, logger zerolog.Logger) *HostelService {
	return &HostelService{
		hostelRepo: hostelRepo,
		logger:     logger,
	}
}

// GetServices reads active hostels and the student's current registration
func (s *HostelService) GetServices(ctx context.Context, studentID int64) *dto.ServicesView {
	view := &dto.ServicesView{Hostels: []dto.HostelItem{}}

	hostels, err := s.hostelRepo.ListActiveHostels(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching hostels")
	}
	names := make(map[int64]string, len(hostels))
	for _, h := range hostels {
		names[h.ID] = h.Name
		view.Hostels = append(view.Hostels, dto.HostelItem{
			ID:          h.ID,
			Name:        h.Name,
			Location:    h.Location,
			Capacity:    h.Capacity,
			Available:   h.Available(),
			MonthlyRent: h.MonthlyRent,
			Facilities:  h.Facilities,
		})
	}

	reg, err := s.hostelRepo.GetActiveRegistration(ctx, studentID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching hostel registration")
		}
		return view
	}

	name, ok := names[reg.HostelID]
	if !ok {
		if h, err := s.hostelRepo.GetHostelByID(ctx, reg.HostelID); err == nil {
			name = h.Name
		}
	}
	requested := reg.RequestedAt
	view.Registration = &dto.RegistrationItem{
		ID:          reg.ID,
		HostelID:    reg.HostelID,
		HostelName:  name,
		Status:      reg.Status,
		StatusLabel: RegistrationLabel(reg.Status),
		Badge:       registrationBadge(reg.Status),
		RequestedAt: helpers.FormatDate(&requested),
		Notes:       deref(reg.Notes),
	}
	return view
}

// Apply creates a pending registration for the student
func (s *HostelService) Apply(ctx context.Context, studentID int64, req *dto.HostelApplicationRequest) (int64, error) {
	log := s.logger.With().Int64("studentID", studentID).Int64("hostelID", req.HostelID).Logger()

	if _, err := s.hostelRepo.GetHostelByID(ctx, req.HostelID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, apperrors.NewResourceNotFoundError(apperrors.ErrHostelNotFound.Error())
		}
		log.Error().Err(err).Msg("Error fetching hostel")
		return 0, apperrors.ErrHostelNotSubmitted
	}

	reg := &models.HostelRegistration{
		StudentID:   studentID,
		HostelID:    req.HostelID,
		Status:      models.RegistrationPending,
		RequestedBy: RequestedByStudent,
		RequestedAt: time.Now(),
		Notes:       optional(req.Notes),
	}

	id, err := s.hostelRepo.CreateRegistration(ctx, reg)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationExists) {
			return 0, apperrors.NewCustomError(apperrors.ErrConflict, apperrors.ErrActiveRegistration.Error())
		}
		log.Error().Err(err).Msg("Error submitting hostel application")
		return 0, apperrors.ErrHostelNotSubmitted
	}

	log.Info().Int64("registrationID", id).Msg("Hostel application submitted")
	return id, nil
}

// RegistrationLabel returns the display label of a registration status
func RegistrationLabel(status string) string {
	if label, ok := registrationLabels[status]; ok {
		return label
	}
	return status
}

func registrationBadge(status string) string {
	switch status {
	case models.RegistrationApproved:
		return dto.BadgeApproved
	case models.RegistrationPending:
		return dto.BadgePending
	default:
		return dto.BadgeRejected
	}
}
