package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/locker-reservation/internal/handler"
	"github.com/iliyamo/locker-reservation/internal/model"
)

// RegisterLockers wires the locker endpoints.  The listing endpoints
// are public so guests can browse availability before signing up; they
// take the Redis response cache when one is configured.  Mutations are
// admin only.
func RegisterLockers(e *echo.Echo, h *handler.LockerHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	pub := e.Group("/v1/lockers")
	if cache != nil {
		pub.Use(cache)
	}
	pub.GET("", h.List)
	pub.GET("/available", h.ListAvailable)
	pub.GET("/:id", h.Get)

	admin := authenticated(e, jwtSecret, "/v1/lockers", model.RoleAdmin)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.PUT("/:id/status", h.UpdateStatus)
	admin.DELETE("/:id", h.Delete)
}
