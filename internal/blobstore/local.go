package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore хранит файлы на локальном диске. Драйвер по умолчанию для разработки.
type LocalStore struct {
	baseDir   string
	urlPrefix string
}

// NewLocalStore создаёт локальное хранилище.
func NewLocalStore(baseDir, urlPrefix string) *LocalStore {
	return &LocalStore{
		baseDir:   baseDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

// Upload сохраняет файл под ключом key относительно базовой директории.
// Ключ вида "payment_proofs/169..._receipt.png" сохраняет структуру поддиректорий.
func (l *LocalStore) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	_ = ctx
	_ = contentType

	key = sanitizeKey(key)
	if key == "" {
		return "", fmt.Errorf("empty blob key")
	}

	dstPath := filepath.Join(l.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", key, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", key, err)
	}

	return l.urlPrefix + "/" + key, nil
}

// sanitizeKey отбрасывает попытки выйти за пределы базовой директории.
func sanitizeKey(key string) string {
	key = strings.TrimLeft(key, "/")
	cleaned := make([]string, 0, 4)
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		cleaned = append(cleaned, part)
	}
	return strings.Join(cleaned, "/")
}

func (l *LocalStore) String() string { return fmt.Sprintf("local(%s)", l.baseDir) }
