package fs

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/localizer/dashboard/backend/internal/service"
)

// Storage keeps uploaded files below rootPath.
type Storage struct {
	rootPath string
}

var _ service.MediaStorage = (*Storage)(nil)

func New(rootPath string) (*Storage, error) {
	p := filepath.Clean(rootPath)

	if err := os.MkdirAll(p, 0755); err != nil {
		return nil, fmt.Errorf("failed to create root storage directory %s: %w", p, err)
	}

	return &Storage{rootPath: p}, nil
}

// SaveFile writes fileData to folder/<uuid><ext> and returns that relative
// path with forward slashes, ready to be used in a URL.
func (s *Storage) SaveFile(fileData io.Reader, folder, originalFilename string) (string, error) {
	folder = cleanFolder(folder)
	if folder == "" {
		return "", fmt.Errorf("invalid storage folder")
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalFilename)))
	relativePath := path.Join(folder, uuid.NewString()+ext)
	fullPath := filepath.Join(s.rootPath, filepath.FromSlash(relativePath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create subdirectories: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, fileData); err != nil {
		os.Remove(fullPath) // best effort
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}

	return relativePath, nil
}

func (s *Storage) Read(filePath string) (io.ReadCloser, error) {
	fullPath, ok := s.resolve(filePath)
	if !ok {
		return nil, fmt.Errorf("file not found: %s", filePath)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *Storage) DeleteFile(filePath string) error {
	fullPath, ok := s.resolve(filePath)
	if !ok {
		return nil
	}

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Owns reports whether filePath is a relative path inside the storage root.
// Absolute URLs pointing elsewhere are left alone by deletes.
func (s *Storage) Owns(filePath string) bool {
	_, ok := s.resolve(filePath)
	return ok
}

// Handler serves the stored files read-only.
func (s *Storage) Handler() http.Handler {
	return http.FileServer(http.Dir(s.rootPath))
}

func (s *Storage) resolve(filePath string) (string, bool) {
	p := strings.TrimPrefix(strings.TrimSpace(filePath), "storage/")
	if p == "" || strings.Contains(p, "://") || path.IsAbs(p) {
		return "", false
	}
	clean := path.Clean(p)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return filepath.Join(s.rootPath, filepath.FromSlash(clean)), true
}

func cleanFolder(folder string) string {
	clean := path.Clean("/" + strings.TrimSpace(folder))
	return strings.TrimPrefix(clean, "/")
}
