package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/locker-reservation/internal/handler"
	"github.com/iliyamo/locker-reservation/internal/model"
)

// RegisterReservations wires the reservation endpoints.  Booking,
// listing your own reservations and cancelling are open to any
// authenticated account; the full listing and the manual lifecycle
// triggers are admin only.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := authenticated(e, jwtSecret, "/v1/reservations")
	g.POST("", h.Create)
	g.GET("/user", h.ListMine)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Cancel)

	admin := authenticated(e, jwtSecret, "/v1/reservations", model.RoleAdmin)
	admin.GET("", h.ListAll)
	admin.POST("/process-expired", h.ProcessExpired)
	admin.POST("/send-reminders", h.SendReminders)
}
