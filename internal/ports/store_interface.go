package ports

import (
	"context"
	"time"
)

// SessionStore : хранилище сессионных записей refresh-токенов.
// Существование записи — единственный источник истины о том,
// что refresh-токен ещё действует.
type SessionStore interface {
	SaveSession(ctx context.Context, tokenID string, subject string, ttl time.Duration) error
	DeleteSession(ctx context.Context, tokenID string) error
	SessionExists(ctx context.Context, tokenID string) (bool, error)
}

// RateWindowStore : хранилище скользящего окна запросов.
// RegisterHit одним батчем вычищает устаревшие записи, добавляет новую
// и возвращает число запросов в окне (включая текущий).
type RateWindowStore interface {
	RegisterHit(ctx context.Context, identifier string, now time.Time, window time.Duration) (int64, error)
}
