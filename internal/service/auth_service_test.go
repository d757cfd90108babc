package service_test

import (
	"auth-session-server/internal/model"
	"auth-session-server/internal/security"
	"auth-session-server/internal/service"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ===== MOCKS =====

// MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateCredential(ctx context.Context, credential *model.Credential) (*model.Credential, error) {
	args := m.Called(ctx, credential)
	if c, ok := args.Get(0).(*model.Credential); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, emailAddress string) (*model.Credential, error) {
	args := m.Called(ctx, emailAddress)
	if c, ok := args.Get(0).(*model.Credential); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, emailAddress string) (bool, error) {
	args := m.Called(ctx, emailAddress)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, uuid string, loginAt time.Time) error {
	args := m.Called(ctx, uuid, loginAt)
	return args.Error(0)
}

// MockTokenManager
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Login(ctx context.Context, subject string) (*model.TokensPair, error) {
	args := m.Called(ctx, subject)
	if t, ok := args.Get(0).(*model.TokensPair); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenManager) Authenticate(accessToken string) (string, error) {
	args := m.Called(accessToken)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Refresh(ctx context.Context, refreshToken string) (*model.TokensPair, error) {
	args := m.Called(ctx, refreshToken)
	if t, ok := args.Get(0).(*model.TokensPair); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenManager) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

// ===== HELPERS =====

func newTestAuthService() (*service.AuthenticationService, *MockUserRepository, *MockTokenManager) {
	mockUserRepo := new(MockUserRepository)
	mockTokenManager := new(MockTokenManager)
	clk := testclock.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	svc := service.NewAuthenticationService(mockUserRepo, mockTokenManager, clk)

	return svc, mockUserRepo, mockTokenManager
}

// ===== TESTS =====

// 1. Регистрация на занятый email отклоняется
func TestRegister_EmailTaken(t *testing.T) {
	svc, mockUserRepo, _ := newTestAuthService()

	mockUserRepo.On("ExistsByEmail", mock.Anything, "user@example.com").
		Return(true, nil)

	_, err := svc.Register(context.Background(), "user@example.com", "pass")

	assert.ErrorIs(t, err, service.ErrEmailTaken)
	mockUserRepo.AssertExpectations(t)
}

// 2. Успешная регистрация: пароль хэшируется, выдаётся пара токенов
func TestRegister_Success(t *testing.T) {
	svc, mockUserRepo, mockTokenManager := newTestAuthService()

	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref"}

	mockUserRepo.On("ExistsByEmail", mock.Anything, "user@example.com").
		Return(false, nil)
	mockUserRepo.On("CreateCredential", mock.Anything, mock.MatchedBy(func(c *model.Credential) bool {
		return c.EmailAddress == "user@example.com" &&
			c.UUID != "" &&
			c.PasswordHash != "pass" &&
			security.CheckPassword("pass", c.PasswordHash)
	})).Return(&model.Credential{UUID: "u1", EmailAddress: "user@example.com"}, nil)
	mockTokenManager.On("Login", mock.Anything, "u1").
		Return(tokens, nil)

	got, err := svc.Register(context.Background(), "user@example.com", "pass")

	require.NoError(t, err)
	assert.Equal(t, tokens, got)
	mockUserRepo.AssertExpectations(t)
	mockTokenManager.AssertExpectations(t)
}

// 3. Вход с неизвестным email
func TestLogin_UserNotFound(t *testing.T) {
	svc, mockUserRepo, _ := newTestAuthService()

	mockUserRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(nil, errors.New("not found"))

	_, err := svc.Login(context.Background(), "user@example.com", "pass")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 4. Неверный пароль
func TestLogin_WrongPassword(t *testing.T) {
	svc, mockUserRepo, _ := newTestAuthService()

	hash, err := security.HashPassword("goodpass")
	require.NoError(t, err)

	mockUserRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.Credential{UUID: "u1", PasswordHash: hash}, nil)

	_, err = svc.Login(context.Background(), "user@example.com", "badpass")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	mockUserRepo.AssertExpectations(t)
}

// 5. Успешный вход: отметка времени и пара токенов
func TestLogin_Success(t *testing.T) {
	svc, mockUserRepo, mockTokenManager := newTestAuthService()

	hash, err := security.HashPassword("goodpass")
	require.NoError(t, err)
	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref"}

	mockUserRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.Credential{UUID: "u1", PasswordHash: hash}, nil)
	mockUserRepo.On("UpdateLastLogin", mock.Anything, "u1", mock.Anything).
		Return(nil)
	mockTokenManager.On("Login", mock.Anything, "u1").
		Return(tokens, nil)

	got, err := svc.Login(context.Background(), "user@example.com", "goodpass")

	require.NoError(t, err)
	assert.Equal(t, tokens, got)
	mockUserRepo.AssertExpectations(t)
	mockTokenManager.AssertExpectations(t)
}

// 6. Ошибка отметки времени входа не блокирует вход
func TestLogin_LastLoginUpdateFails(t *testing.T) {
	svc, mockUserRepo, mockTokenManager := newTestAuthService()

	hash, err := security.HashPassword("goodpass")
	require.NoError(t, err)
	tokens := &model.TokensPair{AccessToken: "acc", RefreshToken: "ref"}

	mockUserRepo.On("FindByEmail", mock.Anything, "user@example.com").
		Return(&model.Credential{UUID: "u1", PasswordHash: hash}, nil)
	mockUserRepo.On("UpdateLastLogin", mock.Anything, "u1", mock.Anything).
		Return(errors.New("db error"))
	mockTokenManager.On("Login", mock.Anything, "u1").
		Return(tokens, nil)

	got, err := svc.Login(context.Background(), "user@example.com", "goodpass")

	require.NoError(t, err)
	assert.Equal(t, tokens, got)
}
