package repository

import (
	"auth-session-server/config"
	"auth-session-server/internal/util"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RateWindowRepository : Redis-слой скользящего окна запросов.
// На каждый запрос в sorted set rate:{identifier} добавляется запись
// со score = момент запроса; мощность множества после вычистки
// устаревших записей и есть счётчик окна.
type RateWindowRepository struct {
	client *config.RedisClient
}

func NewRateWindowRepository(rdb *config.RedisClient) *RateWindowRepository {
	return &RateWindowRepository{rdb}
}

// RegisterHit выполняет вычистку, добавление и подсчёт одной транзакцией,
// чтобы два конкурентных запроса не увидели счётчик до вычистки.
func (r *RateWindowRepository) RegisterHit(ctx context.Context, identifier string, now time.Time, window time.Duration) (int64, error) {
	key := r.key(identifier)
	windowStart := now.Add(-window)

	// member уникален для каждого запроса: два запроса в один и тот же
	// момент времени обязаны дать две разные записи
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.New().String())

	pipe := r.client.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", fmt.Sprintf("(%d", windowStart.UnixNano()))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	cardCmd := pipe.ZCard(ctx, key)
	ttlCmd := pipe.TTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, util.LogError("ошибка выполнения пайплайна Redis", err)
	}

	// TTL выставляется только если его ещё нет: сигналом обрезки служит
	// счётчик окна, а не срок жизни ключа
	if ttlCmd.Val() < 0 {
		if err := r.client.Client.Expire(ctx, key, window).Err(); err != nil {
			return 0, util.LogError("ошибка выставления TTL окна", err)
		}
	}

	return cardCmd.Val(), nil
}

func (r *RateWindowRepository) key(identifier string) string {
	return fmt.Sprintf("rate:%s", identifier)
}
