package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"userapi/internal/auth"
	"userapi/internal/handler"
	"userapi/internal/logging"
	appmw "userapi/internal/middleware"
	"userapi/internal/validation"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	logger logging.Logger,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.HTTPErrorHandler = handler.ErrorHandler(logger)
	e.Validator = validation.New()

	e.Use(middleware.RequestID())
	e.Use(appmw.RequestLog(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/docs/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	bearer := appmw.BearerAuth(jwtService)

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a bearer token)
	api.GET("/auth/me", authHandler.Me, bearer)
	api.POST("/users", userHandler.CreateUser, bearer)
	api.GET("/users", userHandler.ListUsers, bearer)
}
