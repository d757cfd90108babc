package security

import (
	"auth-session-server/internal/ports"
	"auth-session-server/internal/util"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

// JWTMiddleware пускает дальше только запросы с валидным access-токеном
// в заголовке Authorization и кладёт subject в контекст запроса.
func JWTMiddleware(tokenManager ports.TokenManagerInterface) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			subject, err := tokenManager.Authenticate(token)
			if err != nil {
				log.Printf("невалидный токен: %v", err)
				util.HandleError(writer, err.Error(), http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, subject))
			next.ServeHTTP(writer, req)
		})
	}
}

func GetSubjectFromContext(ctx context.Context) (string, error) {
	subject, ok := ctx.Value(UserContextKey).(string)
	if !ok || subject == "" {
		return "", fmt.Errorf("пользователь не авторизован")
	}
	return subject, nil
}

// RateLimitMiddleware ограничивает частоту запросов по IP клиента.
// При отказе выставляет X-RateLimit-* заголовки и отвечает 429.
func RateLimitMiddleware(rateLimiter ports.RateLimiterInterface) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identifier := clientIP(request)

			err := rateLimiter.Check(request.Context(), identifier)
			if err == nil {
				next.ServeHTTP(writer, request)
				return
			}

			var rateErr *RateLimitError
			if errors.As(err, &rateErr) {
				log.Printf("лимит запросов исчерпан для %s", identifier)
				writer.Header().Set("X-RateLimit-Limit", strconv.FormatInt(rateErr.Limit, 10))
				writer.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(rateErr.Remaining, 10))
				writer.Header().Set("X-RateLimit-Reset", strconv.FormatInt(rateErr.ResetAt.Unix(), 10))
				util.HandleError(writer, "слишком много запросов", http.StatusTooManyRequests)
				return
			}

			// недоступность хранилища — отказ всего запроса, а не
			// молчаливый пропуск
			log.Printf("ошибка проверки лимита: %v", err)
			util.HandleError(writer, "внутренняя ошибка сервера", http.StatusInternalServerError)
		})
	}
}

func clientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
