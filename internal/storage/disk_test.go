package storage

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BattlescarZA/DocuMaster-Pro/internal/domain"
)

func TestGenerateFilenameKeepsExtension(t *testing.T) {
	name := GenerateFilename("file", "Quarterly Report.pdf")
	if !strings.HasPrefix(name, "file-") {
		t.Errorf("name = %q, want file- prefix", name)
	}
	if filepath.Ext(name) != ".pdf" {
		t.Errorf("ext = %q, want .pdf", filepath.Ext(name))
	}

	a := GenerateFilename("file", "a.txt")
	b := GenerateFilename("file", "a.txt")
	if a == b {
		t.Errorf("two generated names collided: %q", a)
	}
}

func TestAllowedMimeType(t *testing.T) {
	allowed := []string{"application/pdf", "image/png", "text/plain", "application/zip"}
	for _, m := range allowed {
		if !AllowedMimeType(m) {
			t.Errorf("AllowedMimeType(%q) = false", m)
		}
	}

	blocked := []string{"application/x-msdownload", "text/html", "video/mp4", ""}
	for _, m := range blocked {
		if AllowedMimeType(m) {
			t.Errorf("AllowedMimeType(%q) = true", m)
		}
	}
}

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	path, err := store.Save("acmecorp", "text/plain", "file-1.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(path, "acmecorp"+string(filepath.Separator)) {
		t.Errorf("storage path %q not under tenant directory", path)
	}

	f, err := store.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("content = %q, want hello", data)
	}

	if err := store.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := store.Open(path); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("open after remove: got %v, want not found", err)
	}

	// Removing twice is fine
	if err := store.Remove(path); err != nil {
		t.Errorf("second remove: %v", err)
	}
}

func TestDiskStoreRejectsBlockedMime(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	_, err = store.Save("acmecorp", "application/x-msdownload", "file-1.exe", strings.NewReader("MZ"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("got %v, want validation error", err)
	}
}
