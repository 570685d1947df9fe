package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/studentportal/internal/app/models/dto"
	"github.com/yigit/studentportal/internal/pkg/apperrors"
	"github.com/yigit/studentportal/internal/pkg/filestorage"
	"github.com/yigit/studentportal/internal/pkg/helpers"
)

// ErrDocumentsUnavailable is surfaced when the bucket folder cannot be listed
var ErrDocumentsUnavailable = errors.New("Failed to fetch documents")

// DocumentService lists and downloads the student's stored documents
type DocumentService struct {
	storage filestorage.ObjectStore
	logger  zerolog.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(storage filestorage.ObjectStore, logger zerolog.Logger) *DocumentService {
	return &DocumentService{
		storage: storage,
		logger:  logger,
	}
}

// studentFolder is the bucket folder that holds a student's documents
func studentFolder(studentID int64) string {
	return strconv.FormatInt(studentID, 10)
}

// ListDocuments lists the student's folder, keeping names matching query
func (s *DocumentService) ListDocuments(ctx context.Context, studentID int64, query string) (*dto.DocumentsView, error) {
	query = strings.TrimSpace(query)
	view := &dto.DocumentsView{Query: query, Documents: []dto.DocumentItem{}}

	objects, err := s.storage.List(ctx, studentFolder(studentID))
	if err != nil {
		s.logger.Error().Err(err).Int64("studentID", studentID).Msg("Error fetching documents")
		return view, fmt.Errorf("%w: %v", ErrDocumentsUnavailable, err)
	}

	needle := strings.ToLower(query)
	for _, obj := range objects {
		name := helpers.DisplayName(obj.Name)
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		updated := obj.UpdatedAt
		view.Documents = append(view.Documents, dto.DocumentItem{
			Name:       name,
			FileName:   obj.Name,
			Type:       helpers.FileType(obj.Name),
			Size:       helpers.FormatFileSize(obj.Size),
			Bytes:      obj.Size,
			UploadedAt: helpers.FormatDate(&updated),
		})
	}
	view.Total = len(view.Documents)
	return view, nil
}

// Download returns the bytes of one document of the student's folder
func (s *DocumentService) Download(ctx context.Context, studentID int64, fileName string) ([]byte, error) {
	if fileName == "" || fileName != path.Base(fileName) || strings.HasPrefix(fileName, ".") {
		return nil, apperrors.ErrDocumentNotFound
	}

	data, err := s.storage.Download(ctx, path.Join(studentFolder(studentID), fileName))
	if err != nil {
		if errors.Is(err, filestorage.ErrObjectNotFound) || errors.Is(err, filestorage.ErrInvalidPath) {
			return nil, apperrors.ErrDocumentNotFound
		}
		s.logger.Error().Err(err).Int64("studentID", studentID).Str("file", fileName).Msg("Download failed")
		return nil, fmt.Errorf("error downloading document: %w", err)
	}
	return data, nil
}
