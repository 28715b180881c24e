package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore saves uploaded files and turns their keys into public URLs.
type FileStore interface {
	SaveFile(ctx context.Context, subDir, originalFilename string, reader io.Reader) (string, error)
	DeleteFile(ctx context.Context, key string) error
	URL(ctx context.Context, key string) (string, error)
}

// FileStorage keeps files on local disk under BaseDir and serves them from BaseURL/uploads.
type FileStorage struct {
	BaseDir string // e.g. "./uploads"
	BaseURL string // e.g. "http://localhost:8080"
}

func NewFileStorage(baseDir, baseURL string) *FileStorage {
	return &FileStorage{BaseDir: baseDir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// SaveFile writes reader to <BaseDir>/<subDir>/<unique name> and returns the key
// (path relative to BaseDir, forward slashes).
func (fs *FileStorage) SaveFile(_ context.Context, subDir, originalFilename string, reader io.Reader) (string, error) {
	dir := filepath.Join(fs.BaseDir, subDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	uniqueName := uniqueFilename(originalFilename)
	fullPath := filepath.Join(dir, uniqueName)

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	if _, err := io.Copy(out, reader); err != nil {
		out.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("failed to close file %s: %w", fullPath, err)
	}
	return filepath.ToSlash(filepath.Join(subDir, uniqueName)), nil
}

// DeleteFile removes <BaseDir>/<key>. A missing file is not an error.
func (fs *FileStorage) DeleteFile(_ context.Context, key string) error {
	fullPath := filepath.Join(fs.BaseDir, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}
	return nil
}

func (fs *FileStorage) URL(_ context.Context, key string) (string, error) {
	return fmt.Sprintf("%s/uploads/%s", fs.BaseURL, key), nil
}

func uniqueFilename(originalFilename string) string {
	return fmt.Sprintf("%d%s", time.Now().UnixNano(), strings.ToLower(filepath.Ext(originalFilename)))
}
