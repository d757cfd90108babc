package repository

import (
	"auth-session-server/config"
	"auth-session-server/internal/util"
	"context"
	"fmt"
	"time"
)

// SessionRepository : Redis-слой сессионных записей refresh-токенов.
// Ключ refresh:{tokenID} живёт ровно столько, сколько сам refresh-токен,
// поэтому невостребованные сессии умирают пассивно по TTL.
type SessionRepository struct {
	client *config.RedisClient
}

func NewSessionRepository(rdb *config.RedisClient) *SessionRepository {
	return &SessionRepository{rdb}
}

func (r *SessionRepository) SaveSession(ctx context.Context, tokenID string, subject string, ttl time.Duration) error {
	cmd := r.client.Client.Set(ctx, r.key(tokenID), subject, ttl)
	if err := cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения сессии в Redis", err)
	}
	if cmd.Val() != "OK" {
		return fmt.Errorf("неожиданный ответ Redis: %s", cmd.Val())
	}

	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, tokenID string) error {
	// удаление отсутствующего ключа не считается ошибкой
	if err := r.client.Client.Del(ctx, r.key(tokenID)).Err(); err != nil {
		return util.LogError("ошибка удаления сессии из Redis", err)
	}
	return nil
}

func (r *SessionRepository) SessionExists(ctx context.Context, tokenID string) (bool, error) {
	count, err := r.client.Client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, util.LogError("ошибка проверки сессии в Redis", err)
	}
	return count > 0, nil
}

func (r *SessionRepository) key(tokenID string) string {
	return fmt.Sprintf("refresh:%s", tokenID)
}
