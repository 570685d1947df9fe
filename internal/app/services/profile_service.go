package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/helpers"
)

// QRCodeSize is the edge length of the digital ID image in pixels
const QRCodeSize = 256

// ProfileService assembles the profile page
type ProfileService struct {
	studentRepo repositories.StudentStore
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(studentRepo repositories.StudentStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// GetProfile combines the session identity with the student record
func (s *ProfileService) GetProfile(ctx context.Context, user *auth.User) *dto.ProfileView {
	view := &dto.ProfileView{
		ID:                user.ID,
		Name:              user.Name,
		Username:          user.Username,
		Email:             user.Email,
		ApplicationNumber: user.ApplicationNumber,
		ProfileImage:      user.ProfileImage,
	}

	studentID, err := StudentID(user)
	if err != nil {
		return view
	}

	student, err := s.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching student profile")
		}
		return view
	}

	view.HasRecord = true
	view.Phone = deref(student.PhoneNumber)
	view.Address = deref(student.Address)
	view.City = deref(student.City)
	view.Country = deref(student.Country)
	view.DateOfBirth = helpers.FormatDate(student.DateOfBirth)
	view.Program = student.CourseName
	view.University = student.UniversityName
	view.Status = deref(student.Status)
	if view.ApplicationNumber == "" {
		view.ApplicationNumber = deref(student.AdmissionNumber)
	}
	return view
}

// DigitalID renders a PNG QR code identifying the student
func (s *ProfileService) DigitalID(user *auth.User) ([]byte, error) {
	content := user.ApplicationNumber
	if content == "" {
		content = "STUDENT-" + user.ID
	}
	png, err := qrcode.Encode(content, qrcode.Medium, QRCodeSize)
	if err != nil {
		s.logger.Error().Err(err).Str("studentID", user.ID).Msg("Failed to render digital ID")
		return nil, fmt.Errorf("error rendering digital ID: %w", err)
	}
	return png, nil
}
