package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/repositories"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/auth"
	"github.com/yigit/studentportal/internal/pkg/dberrors"
)

// AuthService handles sign in and session restoration
type AuthService struct {
	studentRepo   repositories.StudentStore
	sessions      *auth.SessionCodec
	defaultAvatar string
	logger        zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	studentRepo repositories.StudentStore,
	sessions *auth.SessionCodec,
	defaultAvatar string,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		studentRepo:   studentRepo,
		sessions:      sessions,
		defaultAvatar: defaultAvatar,
		logger:        logger,
	}
}

// Login verifies the credentials against the backend procedure and returns
// the session user together with the encoded cookie value
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.User, string, error) {
	rows, err := s.studentRepo.VerifyLogin(ctx, strings.TrimSpace(username), password)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("Login procedure failed")
		return nil, "", apperrors.NewCustomError(apperrors.ErrLoginFailed, dberrors.Message(err))
	}
	if len(rows) == 0 {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	row := rows[0]
	user := auth.User{
		ID:           strconv.FormatInt(row.StudentID, 10),
		Name:         strings.TrimSpace(row.FirstName + " " + row.LastName),
		Username:     row.Username,
		ProfileImage: s.defaultAvatar,
	}
	if row.Email != nil {
		user.Email = *row.Email
	}
	if row.AdmissionNumber != nil {
		user.ApplicationNumber = *row.AdmissionNumber
	}

	value, err := s.sessions.Encode(user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode session")
		return nil, "", apperrors.NewCustomError(apperrors.ErrLoginFailed, apperrors.ErrLoginFailed.Error())
	}

	s.logger.Info().Str("studentID", user.ID).Msg("Student signed in")
	return &user, value, nil
}

// Register is not offered through the session provider; new students apply through the form
func (s *AuthService) Register(ctx context.Context) error {
	return apperrors.ErrRegistrationDisabled
}

// Restore decodes a persisted session cookie without a backend round-trip
func (s *AuthService) Restore(value string) (*auth.User, error) {
	user, err := s.sessions.Decode(value)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// StudentID parses the numeric identifier carried by the session
func StudentID(user *auth.User) (int64, error) {
	if user == nil {
		return 0, apperrors.ErrSessionRequired
	}
	id, err := strconv.ParseInt(user.ID, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidStudentID
	}
	return id, nil
}
