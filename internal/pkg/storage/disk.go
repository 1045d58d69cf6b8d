package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultBaseDir    = "./media"
	defaultStaticBase = "/media"
)

// DiskStorage пишет файлы на локальный диск. Simple: save file -> return URL.
type DiskStorage struct {
	baseDir    string // absolute path to media dir
	staticBase string // URL prefix for serving files
}

func NewDiskStorage(baseDir, staticBase string) *DiskStorage {
	if baseDir == "" {
		baseDir = defaultBaseDir
	}
	if staticBase == "" {
		staticBase = defaultStaticBase
	}
	return &DiskStorage{baseDir: baseDir, staticBase: staticBase}
}

// BaseDir возвращает каталог, который отдаётся как статика.
func (s *DiskStorage) BaseDir() string { return s.baseDir }

func (s *DiskStorage) Save(_ context.Context, folder, ext string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > MaxImageSize {
		return "", ErrFileTooLarge
	}

	dir := filepath.Join(s.baseDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := uuid.New().String() + "." + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return s.staticBase + "/" + folder + "/" + name, nil
}

func (s *DiskStorage) Delete(_ context.Context, url string) error {
	rel := strings.TrimPrefix(url, s.staticBase+"/")
	if rel == url || rel == "" {
		return nil // чужой URL, на диске его нет
	}
	err := os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
