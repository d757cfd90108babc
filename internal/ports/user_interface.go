package ports

import (
	"auth-session-server/internal/model"
	"context"
	"time"
)

type UserRepository interface {
	CreateCredential(ctx context.Context, credential *model.Credential) (*model.Credential, error)
	FindByEmail(ctx context.Context, emailAddress string) (*model.Credential, error)
	ExistsByEmail(ctx context.Context, emailAddress string) (bool, error)
	UpdateLastLogin(ctx context.Context, uuid string, loginAt time.Time) error
}

type AuthenticationService interface {
	Register(ctx context.Context, emailAddress string, password string) (*model.TokensPair, error)
	Login(ctx context.Context, emailAddress string, password string) (*model.TokensPair, error)
}
