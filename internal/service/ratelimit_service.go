package service

import (
	"auth-session-server/internal/ports"
	"auth-session-server/internal/security"
	"auth-session-server/internal/util"
	"context"
	"time"

	"github.com/juju/clock"
)

// RateLimitService ограничивает частоту запросов одного идентификатора
// (обычно IP) в скользящем окне. Алгоритм — sliding-window-log: по записи
// на запрос, точность важнее памяти, окно короткое.
type RateLimitService struct {
	store  ports.RateWindowStore
	clock  clock.Clock
	rate   int64
	window time.Duration
}

func NewRateLimitService(store ports.RateWindowStore, clk clock.Clock, rate int64, window time.Duration) *RateLimitService {
	return &RateLimitService{
		store:  store,
		clock:  clk,
		rate:   rate,
		window: window,
	}
}

// Check возвращает nil, если запрос можно пропустить, и *RateLimitError,
// если лимит исчерпан. Запись в окно добавляется до проверки лимита,
// то есть отклонённый запрос тоже занимает слот — поведение исходной
// системы сохранено намеренно.
func (s *RateLimitService) Check(ctx context.Context, identifier string) error {
	now := s.clock.Now()

	count, err := s.store.RegisterHit(ctx, identifier, now, s.window)
	if err != nil {
		return util.LogError("ошибка учёта запроса в окне", err)
	}

	if count > s.rate {
		remaining := s.rate - count
		if remaining < 0 {
			remaining = 0
		}
		return &security.RateLimitError{
			Limit:     s.rate,
			Remaining: remaining,
			ResetAt:   now.Add(s.window),
		}
	}

	return nil
}
