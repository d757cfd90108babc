package requestresponse

// RegisterRequest : тело запроса на регистрацию
type RegisterRequest struct {
	EmailAddress string `json:"email_address" example:"user@example.com"`
	Password     string `json:"password" example:"P@ssw0rd123"`
}

// RegisterResponse : ответ на успешную регистрацию
type RegisterResponse struct {
	EmailAddress string `json:"email_address" example:"user@example.com"`
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	EmailAddress string `json:"email_address" example:"user@example.com"`
	Password     string `json:"password" example:"P@ssw0rd123"`
}

// RefreshTokenRequest : запрос на обновление пары токенов
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// LogoutRequest : запрос на завершение сессии
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// CurrentUserResponse : информация о текущем пользователе
type CurrentUserResponse struct {
	Response struct {
		Subject string `json:"subject" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	} `json:"response"`
}

// ServerMessage : текстовый ответ сервера
type ServerMessage struct {
	Detail string `json:"detail" example:"Logged out successfully."`
}

// ErrorResponse : тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error" example:"Unauthorized"`
	Message string `json:"message" example:"Invalid refresh token."`
	Code    int    `json:"code" example:"401"`
}
