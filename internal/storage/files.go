// Package storage keeps attachment files on local disk. Stored names
// are uuid-prefixed so uploads with the same original name never
// collide.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "task-track-system.com/task-track-system/internal/errors"
)

// MaxFileSize is the upload limit in bytes (10 MB).
const MaxFileSize = 10 * 1024 * 1024

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".txt": {},
	".doc": {}, ".docx": {},
	".xls": {}, ".xlsx": {},
	".ppt": {}, ".pptx": {},
	".jpg": {}, ".jpeg": {}, ".png": {},
}

// ValidateFile rejects oversized files and disallowed extensions
// before anything touches disk.
func ValidateFile(fileName string, size int64) error {
	if size > MaxFileSize {
		return apperrors.ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		return apperrors.ErrFileTypeNotAllowed
	}
	return nil
}

type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Save writes the content to disk and returns the stored path.
func (s *FileStore) Save(fileName string, content io.Reader) (string, error) {
	storedName := uuid.NewString() + "_" + filepath.Base(fileName)
	storedPath := filepath.Join(s.dir, storedName)

	f, err := os.Create(storedPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(storedPath)
		return "", err
	}

	return storedPath, nil
}

// Delete releases the stored file. A file already gone is not an
// error: the attachment row is the source of truth.
func (s *FileStore) Delete(storedPath string) error {
	err := os.Remove(storedPath)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}
