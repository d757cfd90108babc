package security

import (
	"errors"
	"time"
)

// AuthError — единственное семейство ошибок токенного ядра.
// Reason — короткий машиночитаемый код причины, HTTP-слой отдаёт его в 401.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return e.Reason
}

var (
	// ErrInvalidToken : подпись не сошлась или токен структурно повреждён
	ErrInvalidToken = &AuthError{Reason: "Invalid token"}
	// ErrTokenExpired : подпись верна, но время жизни токена истекло
	ErrTokenExpired = &AuthError{Reason: "Token expired"}
	// ErrInvalidTokenPayload : токен проверен, но обязательное поле
	// отсутствует, имеет неверный тип или не совпал тип токена
	ErrInvalidTokenPayload = &AuthError{Reason: "Invalid token payload"}
	// ErrRefreshTokenRevoked : криптографически валидный refresh-токен,
	// у которого нет сессионной записи в хранилище
	ErrRefreshTokenRevoked = &AuthError{Reason: "Refresh token revoked"}
)

// IsAuthError сообщает, относится ли ошибка к семейству AuthError
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// RateLimitError — отдельный от AuthError тип, чтобы HTTP-слой мог
// корректно выбрать между 429 и 401
type RateLimitError struct {
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

func (e *RateLimitError) Error() string {
	return "превышен лимит запросов"
}
