package filestorage

import (
	"context"
	"mime/multipart"
	"time"
)

// Object represents one stored object in a bucket folder
type Object struct {
	Name      string    // File name inside the folder
	Path      string    // Path relative to the bucket root
	Size      int64     // Size in bytes
	UpdatedAt time.Time // Last modification time
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath lets you specify a subdirectory for storing the file
	SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error)

	// DeleteFile removes a file from storage
	DeleteFile(filePath string) error
}

// ObjectStore extends FileStorage with bucket listing and download
type ObjectStore interface {
	FileStorage

	// List returns the objects directly under folder, sorted by name
	List(ctx context.Context, folder string) ([]Object, error)

	// Download returns the bytes of the object at path
	Download(ctx context.Context, path string) ([]byte, error)
}
