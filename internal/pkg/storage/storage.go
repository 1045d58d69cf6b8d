package storage

import (
	"context"
	"errors"
)

const MaxImageSize = 10 * 1024 * 1024 // 10 MB

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)

// Storage сохраняет бинарные ассеты (изображения рецептов и аватары)
// и возвращает публичный URL. Реализации: локальный диск и S3.
type Storage interface {
	Save(ctx context.Context, folder, ext string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}
