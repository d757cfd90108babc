package service

import (
	"auth-session-server/internal/model"
	"auth-session-server/internal/ports"
	"auth-session-server/internal/security"
	"auth-session-server/internal/util"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

var (
	ErrEmailTaken         = errors.New("email уже занят")
	ErrInvalidCredentials = errors.New("неверный email или пароль")
)

// AuthenticationService — пользовательский слой над TokenManager:
// проверка учётных данных и выдача пары токенов.
type AuthenticationService struct {
	userRepository ports.UserRepository
	tokenManager   ports.TokenManagerInterface
	clock          clock.Clock
}

func NewAuthenticationService(
	userRepository ports.UserRepository,
	tokenManager ports.TokenManagerInterface,
	clk clock.Clock,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository: userRepository,
		tokenManager:   tokenManager,
		clock:          clk,
	}
}

func (s *AuthenticationService) Register(ctx context.Context, emailAddress string, password string) (*model.TokensPair, error) {
	taken, err := s.userRepository.ExistsByEmail(ctx, emailAddress)
	if err != nil {
		return nil, util.LogError("ошибка проверки email", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("ошибка хэширования пароля: %w", err)
	}

	credential := &model.Credential{
		UUID:         uuid.New().String(),
		EmailAddress: emailAddress,
		PasswordHash: hash,
		LastLoginAt:  s.clock.Now(),
	}

	created, err := s.userRepository.CreateCredential(ctx, credential)
	if err != nil {
		return nil, util.LogError("ошибка сохранения учётной записи", err)
	}

	tokens, err := s.tokenManager.Login(ctx, created.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	return tokens, nil
}

func (s *AuthenticationService) Login(ctx context.Context, emailAddress string, password string) (*model.TokensPair, error) {
	credential, err := s.userRepository.FindByEmail(ctx, emailAddress)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !security.CheckPassword(password, credential.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepository.UpdateLastLogin(ctx, credential.UUID, s.clock.Now()); err != nil {
		// вход не блокируем, отметка времени не критична
		_ = util.LogError("не удалось обновить время входа", err)
	}

	tokens, err := s.tokenManager.Login(ctx, credential.UUID)
	if err != nil {
		return nil, fmt.Errorf("ошибка генерации токенов: %w", err)
	}

	return tokens, nil
}
