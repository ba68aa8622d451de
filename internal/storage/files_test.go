package storage

import (
	"errors"
	"os"
	"strings"
	"testing"

	apperrors "task-track-system.com/task-track-system/internal/errors"
)

func TestValidateFile(t *testing.T) {
	if err := ValidateFile("report.pdf", 1024); err != nil {
		t.Errorf("expected pdf to be accepted: %v", err)
	}
	if err := ValidateFile("PHOTO.JPG", 1024); err != nil {
		t.Errorf("expected extension check to be case-insensitive: %v", err)
	}

	if err := ValidateFile("tool.exe", 1024); !errors.Is(err, apperrors.ErrFileTypeNotAllowed) {
		t.Errorf("expected ErrFileTypeNotAllowed, got %v", err)
	}
	if err := ValidateFile("noextension", 1024); !errors.Is(err, apperrors.ErrFileTypeNotAllowed) {
		t.Errorf("expected ErrFileTypeNotAllowed for missing extension, got %v", err)
	}
	if err := ValidateFile("report.pdf", MaxFileSize+1); !errors.Is(err, apperrors.ErrFileTooLarge) {
		t.Errorf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestFileStore_SaveAndDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	path, err := store.Save("notes.txt", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("failed to save file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read stored file: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content: %q", data)
	}

	// Same original name gets a distinct stored path.
	other, err := store.Save("notes.txt", strings.NewReader("world"))
	if err != nil {
		t.Fatalf("failed to save second file: %v", err)
	}
	if other == path {
		t.Error("expected distinct stored paths for identical file names")
	}

	if err := store.Delete(path); err != nil {
		t.Fatalf("failed to delete file: %v", err)
	}
	// Deleting again is not an error.
	if err := store.Delete(path); err != nil {
		t.Errorf("expected repeated delete to be a no-op, got %v", err)
	}
}
