package model

// TokenKind — дискриминатор типа токена, попадает в claim "type"
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPayload — полностью провалидированное содержимое токена.
// Kind играет роль тега: TokenID заполнен только для refresh-токенов.
type TokenPayload struct {
	Subject   string
	Issuer    string
	Audience  string
	IssuedAt  int64
	ExpiresAt int64
	Kind      TokenKind
	TokenID   string
}

// TokensPair содержит пару access и refresh токенов
// swagger:model
type TokensPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// Refresh токен (для получения новой пары)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refresh_token"`
}
