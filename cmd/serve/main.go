// Package classification Evently Service.
//
// Event listing and discovery service
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//    Version: 0.1.0
//    License: TODO
//    Contact: <info@evently.app> https://github.com/evently-app/evently
//
//    Consumes:
//      - application/json
//
//    Produces:
//      - application/json
//
//    SecurityDefinitions:
//      oauth2:
//        type: oauth2
//        tokenUrl: /tokens
//        refreshUrl: /refresh
//        flow: password
// swagger:meta
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/evently-app/evently/internal/handler"
	internalLog "github.com/evently-app/evently/internal/log"
	"github.com/evently-app/evently/internal/middleware"
	"github.com/evently-app/evently/internal/server"
	"github.com/evently-app/evently/pkg/config"
	"github.com/evently-app/evently/pkg/event"
	"github.com/evently-app/evently/pkg/health"
	"github.com/evently-app/evently/pkg/storage"
	"github.com/evently-app/evently/pkg/token"
	"github.com/evently-app/evently/pkg/user"
	"github.com/go-mail/mail"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.New()

	logger := newLogger(cfg.Environment)
	slog.SetDefault(logger)

	if err := handler.RegisterValidation(); err != nil {
		return err
	}

	db, err := storage.NewDatabase(cfg.Postgresql, logger)
	if err != nil {
		return err
	}

	redis, err := storage.NewRedis(cfg.Redis.Host, cfg.Redis.Port)
	if err != nil {
		return err
	}

	privateKey, err := cfg.Authentication.Keys.GetPrivateKey()
	if err != nil {
		return err
	}

	publicKey, err := cfg.Authentication.Keys.GetPublicKey()
	if err != nil {
		return err
	}

	tokenRepository := token.NewRepository(redis)
	tokenService, err := token.NewService(
		logger,
		tokenRepository,
		privateKey,
		cfg.Authentication.AccessTokenExpirationSeconds,
		cfg.Authentication.RefreshTokenSecretKey,
		cfg.Authentication.RefreshTokenExpirationSeconds,
	)
	if err != nil {
		return err
	}

	userRepository := user.NewRepository(db)
	var userService *user.Service
	if cfg.SMTP.Host != "" {
		dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
		userService = user.NewService(logger, userRepository, dialer)
	} else {
		// No SMTP host configured, the welcome mail is skipped.
		userService = user.NewService(logger, userRepository, nil)
	}
	userHandler := user.NewHandler(userService, tokenService)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository)
	eventHandler := event.NewHandler(eventService)

	healthHandler := health.NewHandler(db)

	authenticationMiddleware := middleware.NewAuthentication(publicKey, userService)

	r := server.GetEngine(logger, cfg.BasePath, healthHandler, userHandler, eventHandler, authenticationMiddleware)
	return r.Run()
}

func newLogger(environment string) *slog.Logger {
	if environment == "development" {
		opts := &internalLog.PrettyJSONHandlerOptions{
			HandlerOptions: slog.HandlerOptions{Level: slog.LevelDebug},
			PrettyPrint:    true,
		}
		return slog.New(internalLog.New(internalLog.NewPrettyJSONHandler(os.Stdout, opts)))
	}
	return slog.New(internalLog.New(slog.NewJSONHandler(os.Stdout, nil)))
}
