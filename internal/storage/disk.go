package storage

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
)

// allowedMimeTypes lists the upload types the API accepts.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"text/plain":      true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"application/zip": true,
}

// AllowedMimeType reports whether a content type may be uploaded.
func AllowedMimeType(mimeType string) bool {
	return allowedMimeTypes[mimeType]
}

// DiskStore keeps uploaded files on the local filesystem, one
// subdirectory per tenant.
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates a disk store rooted at baseDir.
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

// GenerateFilename builds a collision-resistant stored filename that
// keeps the original extension.
func GenerateFilename(field, originalName string) string {
	suffix := fmt.Sprintf("%d-%d", time.Now().UnixMilli(), rand.Int63n(1_000_000_000))
	return field + "-" + suffix + filepath.Ext(originalName)
}

// Save writes an upload for a tenant and returns the storage path
// relative to the store root.
func (s *DiskStore) Save(tenantKey, mimeType, filename string, src io.Reader) (string, error) {
	if !AllowedMimeType(mimeType) {
		return "", &domain.ValidationError{Message: "invalid file type, only documents, images, and archives are allowed"}
	}

	dir := filepath.Join(s.baseDir, tenantKey)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create tenant upload directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return filepath.Join(tenantKey, filename), nil
}

// Open opens a stored file for reading.
func (s *DiskStore) Open(storagePath string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.baseDir, storagePath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &domain.NotFoundError{Message: "stored file not found"}
		}
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return f, nil
}

// Remove deletes a stored file. Missing files are not an error, the
// document row is the source of truth.
func (s *DiskStore) Remove(storagePath string) error {
	err := os.Remove(filepath.Join(s.baseDir, storagePath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}
