package blobstore

import (
	"context"
	"io"
)

// Store - хранилище бинарных файлов (подтверждения оплаты, кастомные дизайны).
// Контракт: загрузка атомарна, публичный URL детерминирован и
// доступен сразу после успешной загрузки.
type Store interface {
	// Upload сохраняет содержимое r под ключом key и возвращает публичный URL.
	Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error)
}
