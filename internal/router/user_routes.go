package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/locker-reservation/internal/handler"
	"github.com/iliyamo/locker-reservation/internal/model"
)

// RegisterUsers wires the account endpoints.  /me and the single-user
// operations are open to any authenticated account (ownership is
// enforced in the handlers); listing and direct creation are admin
// only.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := authenticated(e, jwtSecret, "/v1/users")
	g.GET("/me", h.Me)
	// /v1/me is a short alias for token introspection.
	authenticated(e, jwtSecret, "/v1/me").GET("", h.Me)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)

	admin := authenticated(e, jwtSecret, "/v1/users", model.RoleAdmin)
	admin.GET("", h.List)
	admin.POST("", h.Create)
}
