package security_test

import (
	"auth-session-server/config"
	"auth-session-server/internal/model"
	"auth-session-server/internal/security"
	"testing"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== HELPERS =====

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		SecretKey:       "test-secret",
		Issuer:          "server",
		Audience:        "individuals",
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "168h",
	}
}

func newTestJWTService(t *testing.T) (*security.JWTService, *testclock.Clock) {
	clk := testclock.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	svc, err := security.NewJWTService(testJWTConfig(), clk)
	require.NoError(t, err)

	return svc, clk
}

// ===== TESTS =====

// 1. Round-trip: access-токен декодируется в исходный subject
func TestDecode_AccessRoundTrip(t *testing.T) {
	svc, _ := newTestJWTService(t)

	token, err := svc.CreateAccessToken("user-1")
	require.NoError(t, err)

	payload, err := svc.Decode(token, model.TokenKindAccess)
	require.NoError(t, err)

	assert.Equal(t, "user-1", payload.Subject)
	assert.Equal(t, "server", payload.Issuer)
	assert.Equal(t, "individuals", payload.Audience)
	assert.Equal(t, model.TokenKindAccess, payload.Kind)
	assert.Empty(t, payload.TokenID)
	assert.Equal(t, payload.IssuedAt+int64((15*time.Minute).Seconds()), payload.ExpiresAt)
}

// 2. Round-trip: refresh-токен сохраняет tokenID
func TestDecode_RefreshRoundTrip(t *testing.T) {
	svc, _ := newTestJWTService(t)

	token, err := svc.CreateRefreshToken("user-1", "jti-123")
	require.NoError(t, err)

	payload, err := svc.Decode(token, model.TokenKindRefresh)
	require.NoError(t, err)

	assert.Equal(t, "user-1", payload.Subject)
	assert.Equal(t, "jti-123", payload.TokenID)
	assert.Equal(t, model.TokenKindRefresh, payload.Kind)
}

// 3. Разделение типов: access не проходит как refresh и наоборот
func TestDecode_KindSeparation(t *testing.T) {
	svc, _ := newTestJWTService(t)

	accessToken, err := svc.CreateAccessToken("user-1")
	require.NoError(t, err)
	refreshToken, err := svc.CreateRefreshToken("user-1", "jti-123")
	require.NoError(t, err)

	_, err = svc.Decode(accessToken, model.TokenKindRefresh)
	assert.ErrorIs(t, err, security.ErrInvalidTokenPayload)

	_, err = svc.Decode(refreshToken, model.TokenKindAccess)
	assert.ErrorIs(t, err, security.ErrInvalidTokenPayload)
}

// 4. Истёкший токен всегда отклоняется с ErrTokenExpired
func TestDecode_Expired(t *testing.T) {
	svc, clk := newTestJWTService(t)

	accessToken, err := svc.CreateAccessToken("user-1")
	require.NoError(t, err)

	clk.Advance(16 * time.Minute)

	_, err = svc.Decode(accessToken, model.TokenKindAccess)
	assert.ErrorIs(t, err, security.ErrTokenExpired)
}

// 5. Refresh-токен живёт дольше access-токена
func TestDecode_RefreshOutlivesAccess(t *testing.T) {
	svc, clk := newTestJWTService(t)

	refreshToken, err := svc.CreateRefreshToken("user-1", "jti-123")
	require.NoError(t, err)

	clk.Advance(24 * time.Hour)

	_, err = svc.Decode(refreshToken, model.TokenKindRefresh)
	assert.NoError(t, err)

	clk.Advance(7 * 24 * time.Hour)

	_, err = svc.Decode(refreshToken, model.TokenKindRefresh)
	assert.ErrorIs(t, err, security.ErrTokenExpired)
}

// 6. Токен, подписанный другим секретом, не проходит проверку
func TestDecode_CrossSecretIsolation(t *testing.T) {
	svc, clk := newTestJWTService(t)

	otherCfg := testJWTConfig()
	otherCfg.SecretKey = "another-secret"
	otherSvc, err := security.NewJWTService(otherCfg, clk)
	require.NoError(t, err)

	token, err := otherSvc.CreateAccessToken("user-1")
	require.NoError(t, err)

	_, err = svc.Decode(token, model.TokenKindAccess)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

// 7. Токен другого issuer/audience отклоняется
func TestDecode_WrongIssuerAudience(t *testing.T) {
	svc, clk := newTestJWTService(t)

	otherCfg := testJWTConfig()
	otherCfg.Issuer = "another-server"
	otherCfg.Audience = "robots"
	otherSvc, err := security.NewJWTService(otherCfg, clk)
	require.NoError(t, err)

	token, err := otherSvc.CreateAccessToken("user-1")
	require.NoError(t, err)

	_, err = svc.Decode(token, model.TokenKindAccess)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

// 8. Структурный мусор отклоняется как невалидный токен
func TestDecode_Malformed(t *testing.T) {
	svc, _ := newTestJWTService(t)

	_, err := svc.Decode("definitely.not.a-token", model.TokenKindAccess)
	assert.ErrorIs(t, err, security.ErrInvalidToken)

	_, err = svc.Decode("", model.TokenKindAccess)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

// 9. Некорректная конфигурация TTL не даёт создать сервис
func TestNewJWTService_BadTTL(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessTokenTTL = "fifteen minutes"

	_, err := security.NewJWTService(cfg, testclock.NewClock(time.Now()))
	assert.Error(t, err)
}
