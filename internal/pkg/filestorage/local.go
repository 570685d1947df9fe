package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/studentportal/internal/pkg/logger"
)

// Storage errors
var (
	ErrObjectNotFound = errors.New("object not found")
	ErrInvalidPath    = errors.New("invalid object path")
)

// LocalStorage keeps a bucket as a directory on the local filesystem.
type LocalStorage struct {
	basePath string // The bucket root directory
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath/bucket.
func NewLocalStorage(basePath, bucket string) (*LocalStorage, error) {
	root := filepath.Join(basePath, bucket)
	if err := os.MkdirAll(root, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", root).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}
	logger.Info().Str("path", root).Msg("Local storage bucket ensured")

	return &LocalStorage{basePath: root}, nil
}

// resolve maps a bucket-relative path to a filesystem path inside the bucket
func (ls *LocalStorage) resolve(objectPath string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(objectPath))
	if clean == "/" {
		return "", ErrInvalidPath
	}
	return filepath.Join(ls.basePath, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// List returns the regular files directly under folder.
// A missing folder is an empty listing.
func (ls *LocalStorage) List(ctx context.Context, folder string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir, err := ls.resolve(folder)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Object{}, nil
		}
		logger.Error().Err(err).Str("path", dir).Msg("Failed to list storage folder")
		return nil, fmt.Errorf("failed to list folder %s: %w", folder, err)
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warn().Err(err).Str("name", entry.Name()).Msg("Skipping unreadable object")
			continue
		}
		objects = append(objects, Object{
			Name:      entry.Name(),
			Path:      path.Join(strings.Trim(filepath.ToSlash(folder), "/"), entry.Name()),
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Name < objects[j].Name })
	return objects, nil
}

// Download reads the whole object at objectPath
func (ls *LocalStorage) Download(ctx context.Context, objectPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := ls.resolve(objectPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		logger.Error().Err(err).Str("path", full).Msg("Failed to read object")
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// SaveFileWithPath saves a file to a specified subdirectory and returns its bucket-relative path
func (ls *LocalStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if subPath != "" {
		if fullDirPath, err = ls.resolve(subPath); err != nil {
			return "", err
		}
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return "", fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	// Generate a unique filename to prevent collisions
	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	stored := path.Join(strings.Trim(filepath.ToSlash(subPath), "/"), uniqueFilename)
	logger.Info().Str("filename", fileHeader.Filename).Str("stored_as", stored).Msg("File saved successfully")
	return stored, nil
}

// DeleteFile removes an object given its bucket-relative path.
// Returns nil if the object doesn't exist.
func (ls *LocalStorage) DeleteFile(objectPath string) error {
	if objectPath == "" {
		return nil
	}
	full, err := ls.resolve(objectPath)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Str("path", full).Msg("File to delete does not exist")
			return nil
		}
		logger.Error().Err(err).Str("path", full).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", full).Msg("File deleted successfully")
	return nil
}
