package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/locker-reservation/internal/mailer"
	"github.com/iliyamo/locker-reservation/internal/model"
	q "github.com/iliyamo/locker-reservation/internal/queue"
	"github.com/iliyamo/locker-reservation/internal/repository"
	"github.com/iliyamo/locker-reservation/internal/service"
)

// maxDurationDays bounds a single rental.
const maxDurationDays = 365

// ReservationHandler groups the dependencies needed to book, list and
// cancel locker reservations.  All methods assume that JWT
// authentication and role validation has already been performed by
// middleware.  Booking and cancellation run their DB operations inside
// a transaction so the reservation row and the locker status always
// change together.
type ReservationHandler struct {
	DB           *sql.DB
	Reservations *repository.ReservationRepo
	Lockers      *repository.LockerRepo
	Users        *repository.UserRepo
	Notifier     EventPublisher
	Lifecycle    *service.Lifecycle
}

// NewReservationHandler constructs a ReservationHandler with the
// provided dependencies.  All of them must be non-nil.
func NewReservationHandler(db *sql.DB, res *repository.ReservationRepo, lockers *repository.LockerRepo, users *repository.UserRepo, notifier EventPublisher, lifecycle *service.Lifecycle) *ReservationHandler {
	if db == nil || res == nil || lockers == nil || users == nil || lifecycle == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{DB: db, Reservations: res, Lockers: lockers, Users: users, Notifier: notifier, Lifecycle: lifecycle}
}

type createReservationReq struct {
	LockerID     uint64 `json:"locker_id"`
	DurationDays uint32 `json:"duration_days"`
}

// Create handles POST /v1/reservations.  The rental starts immediately
// and runs for the requested number of days; the total price is the
// locker's current daily price times the duration, snapshotted on the
// reservation.  The locker flips AVAILABLE to RESERVED through a
// conditional update inside the same transaction as the insert, so two
// concurrent bookings of one locker resolve to exactly one winner; the
// loser gets 409.  The confirmation email is queued only after commit.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.LockerID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "locker_id is required"})
	}
	if req.DurationDays == 0 || req.DurationDays > maxDurationDays {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration_days must be between 1 and 365"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	locker, err := h.Lockers.GetByID(ctx, req.LockerID)
	if err != nil {
		if errors.Is(err, repository.ErrLockerNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "locker not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	start := time.Now().UTC()
	res := model.Reservation{
		UserID:          userID,
		LockerID:        locker.ID,
		StartDate:       start,
		EndDate:         model.ReservationEnd(start, req.DurationDays),
		DurationDays:    req.DurationDays,
		TotalPriceCents: model.ReservationTotalCents(locker.PriceCents, req.DurationDays),
		PaymentStatus:   model.PaymentPaid,
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Lockers.ReserveTx(ctx, tx, locker.ID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "locker is not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reserve locker failed"})
	}
	if err := h.Reservations.CreateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	// Booking is final at this point.  The confirmation email rides the
	// queue; a broker outage costs the email, not the reservation.
	if h.Notifier != nil {
		ev := q.NotificationEvent{
			Kind:         q.KindReservationConfirmed,
			Recipient:    user.Email,
			FirstName:    user.FirstName,
			LockerNumber: strconv.FormatUint(uint64(locker.Number), 10),
			StartDate:    mailer.FormatDateFR(res.StartDate),
			EndDate:      mailer.FormatDateFR(res.EndDate),
		}
		if err := h.Notifier.Publish(ctx, ev); err != nil {
			log.Printf("reservation: confirmation notification for %d failed: %v", res.ID, err)
		} else if err := h.Reservations.MarkEmailSent(ctx, res.ID); err != nil {
			log.Printf("reservation: marking email_sent for %d failed: %v", res.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, res)
}

// ListMine handles GET /v1/reservations/user: the caller's own
// reservations with locker details.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}

// ListAll handles GET /v1/reservations (admin): every reservation with
// user and locker details.
func (h *ReservationHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Reservations.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": details})
}

// Get handles GET /v1/reservations/:id.  Clients can only read their
// own bookings; admins can read any.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.UserID != userID && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, res)
}

// Cancel handles DELETE /v1/reservations/:id.  The owner or an admin
// may cancel; the locker is released and the reservation row removed
// in one transaction.  A locker deleted since booking is tolerated.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if res.UserID != userID && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Lockers.ReleaseTx(ctx, tx, res.LockerID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "release locker failed"})
	}
	if err := h.Reservations.DeleteTx(ctx, tx, res.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.NoContent(http.StatusNoContent)
}

// ProcessExpired handles POST /v1/reservations/process-expired
// (admin): runs one expiration sweep immediately.  Safe to call while
// the scheduled sweep is running; one of the two will find the work.
func (h *ReservationHandler) ProcessExpired(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	n, err := h.Lifecycle.ProcessExpired(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "sweep failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"processed": n})
}

// SendReminders handles POST /v1/reservations/send-reminders (admin):
// runs one reminder pass immediately.
func (h *ReservationHandler) SendReminders(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	n, err := h.Lifecycle.SendReminders(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reminder pass failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sent": n})
}
