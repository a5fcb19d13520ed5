package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/locker-reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/locker-reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/locker-reservation/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// The health endpoint is used by load balancers and monitoring
	// systems to verify that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session: registration,
	// email verification, login, the password-reset pair and token
	// exchange.  Each handler is responsible for generating or
	// exchanging tokens itself.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/verify-email", a.VerifyEmail)
	g.POST("/resend-verification", a.ResendVerification)
	g.POST("/login", a.Login)
	// /refresh rotates the refresh token; /refresh-access issues a new
	// access token while reusing the existing refresh token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/request-password-reset", a.RequestPasswordReset)
	g.POST("/reset-password", a.ResetPassword)
	// Logout does not require JWT authentication: the handler accepts a
	// refresh_token in the body, or revokes every session when called
	// with a bearer token and an empty body.
	g.POST("/logout", a.Logout)
	// Kept at the top level as well so clients can call either path.
	e.POST("/v1/logout", a.Logout)
}

// authenticated returns a route group under prefix that requires a
// valid access token with one of the given roles.
func authenticated(e *echo.Echo, jwtSecret, prefix string, roles ...string) *echo.Group {
	g := e.Group(prefix)
	g.Use(middleware.JWTAuth(jwtSecret))
	if len(roles) == 0 {
		roles = []string{model.RoleAdmin, model.RoleClient}
	}
	g.Use(middleware.RequireRole(roles...))
	return g
}
