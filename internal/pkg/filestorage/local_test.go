package filestorage

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("attachment", name)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write(content)
	w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}
	return req.MultipartForm.File["attachment"][0]
}

func TestListMissingFolderIsEmpty(t *testing.T) {
	ls, err := NewLocalStorage(t.TempDir(), "documents")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	objects, err := ls.List(context.Background(), "7")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 0 {
		t.Fatalf("expected empty listing, got %v", objects)
	}
}

func TestListAndDownload(t *testing.T) {
	base := t.TempDir()
	ls, err := NewLocalStorage(base, "documents")
	if err != nil {
		t.Fatalf("NewLocalStorage: %v", err)
	}
	folder := filepath.Join(base, "documents", "7")
	os.MkdirAll(filepath.Join(folder, "nested"), 0o755)
	os.WriteFile(filepath.Join(folder, "offer-letter.pdf"), []byte("pdf"), 0o644)
	os.WriteFile(filepath.Join(folder, "id.png"), []byte("png!"), 0o644)
	os.WriteFile(filepath.Join(folder, ".emptyFolderPlaceholder"), nil, 0o644)

	objects, err := ls.List(context.Background(), "7")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(objects) != 2 {
		t.Fatalf("expected 2 objects, got %d: %v", len(objects), objects)
	}
	if objects[0].Name != "id.png" || objects[0].Path != "7/id.png" || objects[0].Size != 4 {
		t.Errorf("unexpected first object %+v", objects[0])
	}

	data, err := ls.Download(context.Background(), "7/offer-letter.pdf")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(data) != "pdf" {
		t.Errorf("Download = %q", data)
	}

	if _, err := ls.Download(context.Background(), "7/missing.pdf"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestPathsStayInsideBucket(t *testing.T) {
	base := t.TempDir()
	os.WriteFile(filepath.Join(base, "secret.txt"), []byte("x"), 0o644)
	ls, _ := NewLocalStorage(base, "documents")

	if _, err := ls.Download(context.Background(), "../secret.txt"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected traversal to resolve inside bucket, got %v", err)
	}
	if _, err := ls.Download(context.Background(), "/"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath, got %v", err)
	}
}

func TestSaveAndDelete(t *testing.T) {
	ls, _ := NewLocalStorage(t.TempDir(), "documents")

	stored, err := ls.SaveFileWithPath(fileHeader(t, "scan.jpg", []byte("jpeg")), "tickets/7")
	if err != nil {
		t.Fatalf("SaveFileWithPath: %v", err)
	}
	if filepath.Ext(stored) != ".jpg" || filepath.Dir(stored) != "tickets/7" {
		t.Fatalf("unexpected stored path %q", stored)
	}
	data, err := ls.Download(context.Background(), stored)
	if err != nil || string(data) != "jpeg" {
		t.Fatalf("Download(%q) = %q, %v", stored, data, err)
	}

	if err := ls.DeleteFile(stored); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if err := ls.DeleteFile(stored); err != nil {
		t.Fatalf("second DeleteFile should be a no-op, got %v", err)
	}

	if stored, err := ls.SaveFileWithPath(nil, "tickets/7"); err != nil || stored != "" {
		t.Fatalf("nil header: %q, %v", stored, err)
	}
}
