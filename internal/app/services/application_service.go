package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/dberrors"
	"github.com/yigit/studentportal/internal/pkg/email"
	"github.com/yigit/studentportal/internal/pkg/validation"
)

// FormError carries the field errors of one wizard step
type FormError struct {
	Step   int
	Fields map[string]string
}

// Error implements error interface
func (e *FormError) Error() string {
	return fmt.Sprintf("step %d has %d invalid field(s)", e.Step, len(e.Fields))
}

// Unwrap lets FormError match apperrors.ErrValidationFailed
func (e *FormError) Unwrap() error {
	return apperrors.ErrValidationFailed
}

// ApplicationService handles the admission application form
type ApplicationService struct {
	applicationRepo repositories.ApplicationStore
	catalogRepo     repositories.CatalogStore
	validator       *validation.Validator
	mailer          email.EmailService
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo repositories.ApplicationStore,
	catalogRepo repositories.CatalogStore,
	validator *validation.Validator,
	mailer email.EmailService,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		catalogRepo:     catalogRepo,
		validator:       validator,
		mailer:          mailer,
		logger:          logger,
	}
}

// Options loads the dropdown catalogs; a failed read leaves its list empty
func (s *ApplicationService) Options(ctx context.Context) dto.RegisterOptions {
	options := dto.RegisterOptions{
		Universities: []dto.OptionItem{},
		Courses:      []dto.OptionItem{},
		Sessions:     []dto.OptionItem{},
	}

	universities, err := s.catalogRepo.ListUniversities(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching universities")
	}
	for _, u := range universities {
		options.Universities = append(options.Universities, dto.OptionItem{ID: u.ID, Name: u.Name})
	}

	courses, err := s.catalogRepo.ListCourses(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching courses")
	}
	for _, c := range courses {
		options.Courses = append(options.Courses, dto.OptionItem{ID: c.ID, Name: c.Name})
	}

	sessions, err := s.catalogRepo.ListActiveSessions(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error fetching academic sessions")
	}
	for _, a := range sessions {
		options.Sessions = append(options.Sessions, dto.OptionItem{ID: a.ID, Name: a.SessionName})
	}

	return options
}

// ValidateStep checks only the fields owned by step
func (s *ApplicationService) ValidateStep(form *dto.ApplicationForm, step int) map[string]string {
	fields := form.StepFields(step)
	if fields == nil {
		return nil
	}
	return s.validator.Struct(fields)
}

// Submit validates the complete form and stores the application.
// A password mismatch is reported on confirmPassword and nothing is written.
func (s *ApplicationService) Submit(ctx context.Context, form *dto.ApplicationForm) (int64, error) {
	if errs := s.ValidateStep(form, dto.StepAccount); errs != nil {
		return 0, &FormError{Step: dto.StepAccount, Fields: errs}
	}
	if form.Password != form.ConfirmPassword {
		return 0, apperrors.NewFieldError("confirmPassword", apperrors.ErrPasswordMismatch.Error())
	}
	for step := dto.StepPersonal; step < dto.StepAccount; step++ {
		if errs := s.ValidateStep(form, step); errs != nil {
			return 0, &FormError{Step: step, Fields: errs}
		}
	}

	application, err := buildApplication(form)
	if err != nil {
		return 0, err
	}

	id, err := s.applicationRepo.CreateApplication(ctx, application)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error creating application")
		return 0, apperrors.NewCustomError(apperrors.ErrApplicationNotSaved, dberrors.Message(err))
	}

	s.logger.Info().Int64("applicationID", id).Msg("Application submitted")

	if application.Email != nil {
		name := strings.TrimSpace(application.FirstName + " " + application.LastName)
		if err := s.mailer.SendApplicationReceived(*application.Email, name); err != nil {
			s.logger.Warn().Err(err).Int64("applicationID", id).Msg("Failed to send application email")
		}
	}

	return id, nil
}

// buildApplication maps the form to the stored row; the password fields never leave the form
func buildApplication(form *dto.ApplicationForm) (*models.ApplyStudent, error) {
	universityID, err := parseID(form.UniversityID, "university_id")
	if err != nil {
		return nil, err
	}
	courseID, err := parseID(form.CourseID, "course_id")
	if err != nil {
		return nil, err
	}
	sessionID, err := parseID(form.AcademicSessionID, "academic_session_id")
	if err != nil {
		return nil, err
	}
	marks, err := strconv.ParseFloat(strings.TrimSpace(form.TwelfthMarks), 64)
	if err != nil {
		return nil, apperrors.NewFieldError("twelfth_marks", "Marks must be between 0 and 100")
	}

	return &models.ApplyStudent{
		FirstName:         strings.TrimSpace(form.FirstName),
		LastName:          strings.TrimSpace(form.LastName),
		FatherName:        strings.TrimSpace(form.FatherName),
		MotherName:        strings.TrimSpace(form.MotherName),
		DateOfBirth:       strings.TrimSpace(form.DateOfBirth),
		PhoneNumber:       optional(form.PhoneNumber),
		Email:             optional(form.Email),
		Address:           optional(form.Address),
		City:              optional(form.City),
		Country:           optional(form.Country),
		AadhaarNumber:     optional(form.AadhaarNumber),
		PassportNumber:    optional(form.PassportNumber),
		UniversityID:      &universityID,
		CourseID:          &courseID,
		AcademicSessionID: &sessionID,
		TwelfthMarks:      &marks,
		SeatNumber:        optional(form.SeatNumber),
		Scores:            optional(form.Scores),
		Status:            models.ApplicationStatusPending,
		ApplicationStatus: models.ApplicationStatusPending,
	}, nil
}

func parseID(value, field string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewFieldError(field, "Please make a selection")
	}
	return id, nil
}

// optional returns nil for blank input
func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
