package main

import (
	"auth-session-server/config"
	_ "auth-session-server/docs"
	"auth-session-server/internal/handler"
	"auth-session-server/internal/repository"
	"auth-session-server/internal/security"
	"auth-session-server/internal/service"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/juju/clock"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Auth-session-server
// @version 1.0
// @description REST API аутентификации: выдача, ротация и отзыв токенов

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	window, err := time.ParseDuration(cfg.RateLimit.Window)
	if err != nil {
		log.Fatalf("Ошибка парсинга окна лимитера: %v", err)
	}

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(redisClient)
	rateRepo := repository.NewRateWindowRepository(redisClient)

	jwtService, err := security.NewJWTService(&cfg.JWT, clock.WallClock)
	if err != nil {
		log.Fatalf("Ошибка создания JWT сервиса: %v", err)
	}

	// один экземпляр менеджера на процесс, разделяющий одно подключение
	// к хранилищу; все обработчики получают его через внедрение
	tokenManager := service.NewTokenManager(sessionRepo, jwtService, jwtService.RefreshTokenTTL())
	rateLimiter := service.NewRateLimitService(rateRepo, clock.WallClock, cfg.RateLimit.Rate, window)
	authService := service.NewAuthenticationService(userRepo, tokenManager, clock.WallClock)

	authHandler := handler.NewAuthenticationHandler(authService, tokenManager)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler, tokenManager, rateLimiter)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, tokenManager *service.TokenManager, rateLimiter *service.RateLimitService) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.RateLimitMiddleware(rateLimiter))
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/refresh", h.RefreshToken)
			r.Post("/logout", h.Logout)
		})
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(tokenManager))
			r.Get("/me", h.GetCurrentUser)
			r.Head("/me", h.GetCurrentUserHead)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
