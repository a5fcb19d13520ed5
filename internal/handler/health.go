package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports process liveness. It is wired before any auth middleware
// so load balancers can probe it without credentials.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "service": "locker-reservation"})
}
