package ports

import (
	"auth-session-server/internal/model"
	"context"
)

type JWTServiceInterface interface {
	CreateAccessToken(subject string) (string, error)
	CreateRefreshToken(subject string, tokenID string) (string, error)
	Decode(tokenStr string, expectedKind model.TokenKind) (*model.TokenPayload, error)
}

type TokenManagerInterface interface {
	Login(ctx context.Context, subject string) (*model.TokensPair, error)
	Authenticate(accessToken string) (string, error)
	Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

type RateLimiterInterface interface {
	Check(ctx context.Context, identifier string) error
}
