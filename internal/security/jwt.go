package security

import (
	"auth-session-server/config"
	"auth-session-server/internal/model"
	"auth-session-server/internal/util"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"
)

// Claims — полезная нагрузка токена на проводе.
// Claim "type" разделяет access и refresh токены: токен одного типа
// никогда не должен пройти проверку как токен другого.
type Claims struct {
	TokenKind string `json:"type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secretKey  []byte
	issuer     string
	audience   string
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      clock.Clock
}

func NewJWTService(cfg *config.JWTConfig, clk clock.Clock) (*JWTService, error) {
	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга access_token_ttl", err)
	}

	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга refresh_token_ttl", err)
	}

	return &JWTService{
		secretKey:  []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		clock:      clk,
	}, nil
}

// RefreshTokenTTL возвращает время жизни refresh-токена.
// Оно же используется как TTL сессионной записи в хранилище.
func (service *JWTService) RefreshTokenTTL() time.Duration {
	return service.refreshTTL
}

func (service *JWTService) baseClaims(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:  subject,
		Issuer:   service.issuer,
		Audience: jwt.ClaimStrings{service.audience},
		IssuedAt: jwt.NewNumericDate(service.clock.Now()),
	}
}

// CreateAccessToken подписывает короткоживущий access-токен.
// Access-токен самодостаточен: сессионной записи у него нет и отозвать
// его до естественного истечения нельзя.
func (service *JWTService) CreateAccessToken(subject string) (string, error) {
	claims := Claims{
		TokenKind:        string(model.TokenKindAccess),
		RegisteredClaims: service.baseClaims(subject),
	}
	claims.ExpiresAt = jwt.NewNumericDate(service.clock.Now().Add(service.accessTTL))

	return service.sign(claims)
}

// CreateRefreshToken подписывает refresh-токен с claim "jti" = tokenID.
// tokenID — ключ отзыва: пока в хранилище живёт запись refresh:{tokenID},
// токен считается действующим.
func (service *JWTService) CreateRefreshToken(subject string, tokenID string) (string, error) {
	claims := Claims{
		TokenKind:        string(model.TokenKindRefresh),
		RegisteredClaims: service.baseClaims(subject),
	}
	claims.ID = tokenID
	claims.ExpiresAt = jwt.NewNumericDate(service.clock.Now().Add(service.refreshTTL))

	return service.sign(claims)
}

func (service *JWTService) sign(claims Claims) (string, error) {
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := jwtToken.SignedString(service.secretKey)
	if err != nil {
		return "", util.LogError("ошибка подписи токена", err)
	}
	return signed, nil
}

// Decode проверяет подпись, срок жизни, issuer/audience и форму токена.
// Возвращает либо полностью провалидированный payload, либо одну из
// ошибок семейства AuthError — частичного успеха не бывает.
func (service *JWTService) Decode(tokenStr string, expectedKind model.TokenKind) (*model.TokenPayload, error) {
	claims := &Claims{}

	jwtToken, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return service.secretKey, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithAudience(service.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.clock.Now),
	)

	if err != nil {
		// порядок важен: у токена с битой подписью claims не доверяем,
		// даже если среди присоединённых ошибок есть и просрочка
		if errors.Is(err, jwt.ErrTokenMalformed) || errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrInvalidToken
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !jwtToken.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" || claims.Issuer == "" || len(claims.Audience) == 0 {
		return nil, ErrInvalidTokenPayload
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, ErrInvalidTokenPayload
	}
	if claims.TokenKind != string(expectedKind) {
		return nil, ErrInvalidTokenPayload
	}

	payload := &model.TokenPayload{
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
		Audience:  claims.Audience[0],
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
		Kind:      expectedKind,
	}

	if expectedKind == model.TokenKindRefresh {
		if claims.ID == "" {
			return nil, ErrInvalidTokenPayload
		}
		payload.TokenID = claims.ID
	}

	return payload, nil
}
