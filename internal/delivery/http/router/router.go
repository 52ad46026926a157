// Package router contains routing setup for the HTTP delivery.
package router

import (
	"spark/internal/delivery/http/middleware"
	"spark/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middleware Fx injects into the router.
type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	ProfileHandler      *handler.ProfileHandler
	MessageHandler      *handler.MessageHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	profileHandler      *handler.ProfileHandler
	messageHandler      *handler.MessageHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		profileHandler:      params.ProfileHandler,
		messageHandler:      params.MessageHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Authentication runs on every route; public routes are bypassed inside the
// middleware by path, so the public list lives in configuration rather than
// in the route table.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)
	e.Use(r.authMiddleware.Authenticate)

	e.GET("/health", handler.HealthCheck)

	userGroup := e.Group("/api/user")
	{
		userGroup.POST("/sign-up", r.userHandler.SignUp)
		userGroup.POST("/sign-in", r.userHandler.SignIn)
		userGroup.POST("/sign-out", r.userHandler.SignOut)
		userGroup.POST("/refresh-token", r.userHandler.RefreshToken)
		userGroup.GET("/:id", r.userHandler.GetUser)
		userGroup.PATCH("/:id/update-email", r.userHandler.UpdateEmail)
		userGroup.PATCH("/:id/update-password", r.userHandler.UpdatePassword)
		userGroup.DELETE("/:id", r.userHandler.DeleteAccount)
	}

	profileGroup := e.Group("/api/profile")
	{
		profileGroup.POST("", r.profileHandler.CreateProfile)
		profileGroup.PATCH("", r.profileHandler.UpdateProfile)
		profileGroup.GET("/:id", r.profileHandler.GetProfile)
		profileGroup.GET("/:id/summary", r.profileHandler.GetProfileSummary)
	}

	messageGroup := e.Group("/api/message")
	{
		messageGroup.POST("", r.messageHandler.SendMessage)
		messageGroup.GET("", r.messageHandler.ListMessages)
	}
}
