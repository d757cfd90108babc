package service

import (
	"auth-session-server/internal/model"
	"auth-session-server/internal/ports"
	"auth-session-server/internal/security"
	"auth-session-server/internal/util"
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenManager — единственный арбитр вопроса "аутентифицирован ли
// вызывающий и под каким subject". Выпускает, проверяет, ротирует и
// отзывает пары токенов. Состояние целиком живёт в хранилище, поэтому
// менеджер безопасен для конкурентных вызовов.
type TokenManager struct {
	sessionStore ports.SessionStore
	jwtService   ports.JWTServiceInterface
	refreshTTL   time.Duration
}

func NewTokenManager(
	sessionStore ports.SessionStore,
	jwtService ports.JWTServiceInterface,
	refreshTTL time.Duration,
) *TokenManager {
	return &TokenManager{
		sessionStore: sessionStore,
		jwtService:   jwtService,
		refreshTTL:   refreshTTL,
	}
}

// Login создаёт новую сессионную линию для subject и возвращает пару
// токенов. Предусловий нет: повторный Login того же subject создаёт
// независимую сессию, а не ошибку.
func (m *TokenManager) Login(ctx context.Context, subject string) (*model.TokensPair, error) {
	tokenID := uuid.New().String()

	if err := m.sessionStore.SaveSession(ctx, tokenID, subject, m.refreshTTL); err != nil {
		return nil, util.LogError("ошибка сохранения сессии", err)
	}

	return m.mintPair(subject, tokenID)
}

// Authenticate проверяет access-токен и возвращает его subject.
// Обращений к хранилищу нет: access-токен самодостаточен, это
// осознанный компромисс в пользу дешёвой проверки на каждом запросе.
func (m *TokenManager) Authenticate(accessToken string) (string, error) {
	payload, err := m.jwtService.Decode(accessToken, model.TokenKindAccess)
	if err != nil {
		return "", err
	}
	return payload.Subject, nil
}

// Refresh обменивает действующий refresh-токен на новую пару.
// Ротация строгая: refresh-токен одноразовый, его повторное
// использование означает кражу или replay и отвечает
// ErrRefreshTokenRevoked. Старая запись удаляется до создания новой,
// чтобы реплей старого токена в промежутке уже получал отказ.
func (m *TokenManager) Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	payload, err := m.jwtService.Decode(refreshToken, model.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	exists, err := m.sessionStore.SessionExists(ctx, payload.TokenID)
	if err != nil {
		return nil, util.LogError("ошибка проверки сессии", err)
	}
	if !exists {
		return nil, security.ErrRefreshTokenRevoked
	}

	if err := m.sessionStore.DeleteSession(ctx, payload.TokenID); err != nil {
		return nil, util.LogError("ошибка удаления старой сессии", err)
	}

	newTokenID := uuid.New().String()
	if err := m.sessionStore.SaveSession(ctx, newTokenID, payload.Subject, m.refreshTTL); err != nil {
		return nil, util.LogError("ошибка сохранения новой сессии", err)
	}

	return m.mintPair(payload.Subject, newTokenID)
}

// Logout отзывает refresh-токен, удаляя его сессионную запись.
// Удаление отсутствующей записи не ошибка, но структурно невалидный
// токен по-прежнему отклоняется на этапе Decode.
func (m *TokenManager) Logout(ctx context.Context, refreshToken string) error {
	payload, err := m.jwtService.Decode(refreshToken, model.TokenKindRefresh)
	if err != nil {
		return err
	}

	if err := m.sessionStore.DeleteSession(ctx, payload.TokenID); err != nil {
		return util.LogError("ошибка удаления сессии", err)
	}

	return nil
}

func (m *TokenManager) mintPair(subject string, tokenID string) (*model.TokensPair, error) {
	accessToken, err := m.jwtService.CreateAccessToken(subject)
	if err != nil {
		return nil, util.LogError("ошибка генерации access токена", err)
	}

	refreshToken, err := m.jwtService.CreateRefreshToken(subject, tokenID)
	if err != nil {
		return nil, util.LogError("ошибка генерации refresh токена", err)
	}

	return &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
