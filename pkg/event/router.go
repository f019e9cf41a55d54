package event

import (
	"github.com/evently-app/evently/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	r.GET("/events", handler.FindAll)
	r.GET("/events/:id", handler.FindById)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.POST("/events", handler.Create)
	tokenAuthenticationRouter.PUT("/events/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/events/:id", handler.Delete)
	tokenAuthenticationRouter.POST("/events/:id/save", handler.ToggleSave)
	tokenAuthenticationRouter.GET("/events/user/saved", handler.FindSaved)
	tokenAuthenticationRouter.GET("/events/user/created", handler.FindCreated)
}
