package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/locker-reservation/internal/model"
	"github.com/iliyamo/locker-reservation/internal/repository"
)

// LockerHandler serves the public locker listings and the admin CRUD
// endpoints.
type LockerHandler struct {
	Lockers *repository.LockerRepo
}

func NewLockerHandler(l *repository.LockerRepo) *LockerHandler {
	return &LockerHandler{Lockers: l}
}

type lockerReq struct {
	Number     uint32 `json:"number"`
	Size       string `json:"size"`
	PriceCents uint32 `json:"price_cents"`
}

type lockerStatusReq struct {
	Status string `json:"status"`
}

// List: all lockers, optionally filtered by ?status= and ?size=.
func (h *LockerHandler) List(c echo.Context) error {
	status := strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	size := strings.ToUpper(strings.TrimSpace(c.QueryParam("size")))
	if status != "" && !model.ValidLockerStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}
	if size != "" && !model.ValidSize(size) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid size"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lockers, err := h.Lockers.List(ctx, status, size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list lockers failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"lockers": lockers})
}

// ListAvailable: only lockers currently free to reserve.
func (h *LockerHandler) ListAvailable(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	lockers, err := h.Lockers.List(ctx, model.LockerAvailable, "")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list lockers failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"lockers": lockers})
}

// Get: single locker by id.
func (h *LockerHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Lockers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLockerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "locker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load locker failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// Create: admin adds a new locker.  The door number must be unique and
// the size must be a known enum value.
func (h *LockerHandler) Create(c echo.Context) error {
	var req lockerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Size = strings.ToUpper(strings.TrimSpace(req.Size))
	if req.Number == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number required"})
	}
	if !model.ValidSize(req.Size) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid size"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l := model.Locker{Number: req.Number, Size: req.Size, PriceCents: req.PriceCents}
	if err := h.Lockers.Create(ctx, &l); err != nil {
		if errors.Is(err, repository.ErrNumberExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "locker number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create locker failed"})
	}
	return c.JSON(http.StatusCreated, l)
}

// Update: admin edits number, size and price.  Status is not touched
// here; use the status endpoint.
func (h *LockerHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req lockerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Size = strings.ToUpper(strings.TrimSpace(req.Size))
	if req.Number == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number required"})
	}
	if !model.ValidSize(req.Size) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid size"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l := model.Locker{ID: id, Number: req.Number, Size: req.Size, PriceCents: req.PriceCents}
	if err := h.Lockers.Update(ctx, &l); err != nil {
		switch {
		case errors.Is(err, repository.ErrLockerNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "locker not found"})
		case errors.Is(err, repository.ErrNumberExists):
			return c.JSON(http.StatusConflict, echo.Map{"error": "locker number already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update locker failed"})
		}
	}
	got, err := h.Lockers.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load locker failed"})
	}
	return c.JSON(http.StatusOK, got)
}

// UpdateStatus: admin sets the occupancy status directly, validated
// against the enum.
func (h *LockerHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req lockerStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.ValidLockerStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	l, err := h.Lockers.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrLockerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "locker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	return c.JSON(http.StatusOK, l)
}

// Delete: admin removes a locker.  Existing reservations keep their
// locker_id reference; listings and the sweep tolerate the gap.
func (h *LockerHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Lockers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrLockerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "locker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete locker failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
