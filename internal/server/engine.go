package server

import (
	"log/slog"

	"github.com/evently-app/evently/internal/middleware"
	"github.com/evently-app/evently/pkg/event"
	"github.com/evently-app/evently/pkg/health"
	"github.com/evently-app/evently/pkg/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redocMiddleware "github.com/go-openapi/runtime/middleware"
	sloggin "github.com/samber/slog-gin"
)

func GetEngine(logger *slog.Logger, basePath string, healthHandler health.Handler, userHandler user.Handler, eventHandler event.Handler, authenticationMiddleware middleware.AuthenticationMiddleware) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sloggin.New(logger))
	r.Use(middleware.CorrelationID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	redoc(router, basePath)

	router.GET("/health", healthHandler.Health)

	user.Routes(router, authenticationMiddleware, userHandler)
	event.Routes(router, authenticationMiddleware, eventHandler)

	return r
}

func redoc(router *gin.RouterGroup, basePath string) {
	router.StaticFile("/swagger.yaml", "./swagger/swagger.yaml")

	redocOpts := redocMiddleware.RedocOpts{
		BasePath: basePath,
		SpecURL:  "./swagger.yaml",
	}
	router.GET("/docs", func(c *gin.Context) {
		redocHandler := redocMiddleware.Redoc(redocOpts, nil)
		redocHandler.ServeHTTP(c.Writer, c.Request)
	})
}
