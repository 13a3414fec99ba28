// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
	SessionHandler *handler.SessionHandler
	ResetHandler   *handler.ResetHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
	sessionHandler *handler.SessionHandler
	resetHandler   *handler.ResetHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
		sessionHandler: params.SessionHandler,
		resetHandler:   params.ResetHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.accountHandler.Register)
		authGroup.POST("/login", r.sessionHandler.Login)
		authGroup.POST("/logout", r.sessionHandler.Logout)
		authGroup.POST("/password/forgot", r.resetHandler.Request)
		authGroup.POST("/password/reset", r.resetHandler.Submit)
	}

	// Public directory lookups
	usersGroup := e.Group("/users")
	{
		usersGroup.GET("/:id", r.accountHandler.GetUserByID)
		usersGroup.GET("/email/:email", r.accountHandler.GetUserByEmail)
	}

	// Routes that require an authenticated session
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/profile", r.accountHandler.GetProfile)
		userGroup.PUT("/profile", r.accountHandler.UpdateProfile)
		userGroup.PUT("/password", r.accountHandler.ChangePassword)
		userGroup.POST("/password/check", r.sessionHandler.CheckPassword)
		userGroup.POST("/email/verify", r.accountHandler.VerifyEmail)
		userGroup.DELETE("", r.accountHandler.DeleteAccount)
	}

	// Administrative routes require the platform admin role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RolePlatformAdmin))
	{
		adminGroup.PUT("/users/:id/suspend", r.accountHandler.Suspend)
		adminGroup.PUT("/users/:id/unsuspend", r.accountHandler.Unsuspend)
	}
}
