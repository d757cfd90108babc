package handler

import (
	"auth-session-server/internal/model/requestresponse"
	"auth-session-server/internal/ports"
	"auth-session-server/internal/security"
	"auth-session-server/internal/service"
	"auth-session-server/internal/util"
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	ports.TokenManagerInterface
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	tokenManager ports.TokenManagerInterface,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		tokenManager,
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись по email и паролю, возвращает пару токенов
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.RegisterResponse "Пользователь зарегистрирован"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже занят"
// @Failure 429 {object} requestresponse.ErrorResponse "Превышен лимит запросов"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.EmailAddress == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email_address и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.Register(ctx, req.EmailAddress, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			sendErrorResponse(w, http.StatusConflict, "email уже занят")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	resp := requestresponse.RegisterResponse{
		EmailAddress: req.EmailAddress,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Получение пары токенов по email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} model.TokensPair "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 429 {object} requestresponse.ErrorResponse "Превышен лимит запросов"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if req.EmailAddress == "" || req.Password == "" {
		sendErrorResponse(w, 400, "email_address и password обязательны")
		return
	}

	tokens, err := h.AuthenticationService.Login(ctx, req.EmailAddress, req.Password)
	if err != nil {
		log.Println(err)
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			sendErrorResponse(w, http.StatusUnauthorized, "неверный email или пароль")
		default:
			sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		}
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(tokens)
}

// GetCurrentUser godoc
// @Summary Идентификатор текущего пользователя
// @Description Возвращает subject access-токена, под которым авторизован запрос
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	subject, err := security.GetSubjectFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	resp := requestresponse.CurrentUserResponse{}
	resp.Response.Subject = subject

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// GetCurrentUserHead godoc
// @Summary Идентификатор текущего пользователя
// @Description Возвращает subject access-токена, под которым авторизован запрос
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/auth/me [head]
func (h *AuthenticationHandler) GetCurrentUserHead(w http.ResponseWriter, r *http.Request) {
	h.GetCurrentUser(w, r)
}

// RefreshToken godoc
// @Summary Обновление токенов
// @Description Обменивает действующий refresh-токен на новую пару. Токен одноразовый: повторное использование отклоняется
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} model.TokensPair "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный, просроченный или отозванный refresh-токен"
// @Failure 429 {object} requestresponse.ErrorResponse "Превышен лимит запросов"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	tokens, err := h.TokenManagerInterface.Refresh(ctx, req.RefreshToken)
	if err != nil {
		log.Println(err)
		if security.IsAuthError(err) {
			sendErrorResponse(w, http.StatusUnauthorized, "Invalid refresh token.")
			return
		}
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(tokens)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Инвалидирует refresh-токен: его сессионная запись удаляется и дальнейший refresh невозможен
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LogoutRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ServerMessage
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный refresh-токен"
// @Failure 429 {object} requestresponse.ErrorResponse "Превышен лимит запросов"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/v1/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	var req requestresponse.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if err := h.TokenManagerInterface.Logout(ctx, req.RefreshToken); err != nil {
		log.Println(err)
		if security.IsAuthError(err) {
			sendErrorResponse(w, http.StatusUnauthorized, "Invalid refresh token.")
			return
		}
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
		return
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.ServerMessage{Detail: "Logged out successfully."})
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	util.HandleError(w, message, statusCode)
}
