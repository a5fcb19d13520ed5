package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/locker-reservation/internal/model"
)

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ReservationRepo provides CRUD operations for locker reservations.
// Each reservation binds one user to one locker for a fixed number of
// days and carries a price snapshot taken at booking time.  All
// timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

const reservationCols = `id, user_id, locker_id, start_date, end_date, duration_days,
	total_price_cents, payment_status, payment_id, email_sent, reminder_sent, created_at, updated_at`

func scanReservation(row interface{ Scan(...any) error }) (model.Reservation, error) {
	var res model.Reservation
	var paymentID sql.NullString
	err := row.Scan(
		&res.ID, &res.UserID, &res.LockerID, &res.StartDate, &res.EndDate, &res.DurationDays,
		&res.TotalPriceCents, &res.PaymentStatus, &paymentID, &res.EmailSent, &res.ReminderSent,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return res, err
	}
	if paymentID.Valid {
		pid := paymentID.String
		res.PaymentID = &pid
	}
	return res, nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction.  It populates the generated ID and the row defaults on
// the provided record.  The caller must commit or rollback the
// transaction.  PaymentStatus should be a valid enumeration
// ('PENDING','PAID','FAILED','EXPIRED').
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
	const q = `INSERT INTO reservations
		(user_id, locker_id, start_date, end_date, duration_days, total_price_cents, payment_status, payment_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, q,
		res.UserID, res.LockerID, res.StartDate, res.EndDate, res.DurationDays,
		res.TotalPriceCents, res.PaymentStatus, res.PaymentID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults
	got, err := scanReservation(tx.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, res.ID))
	if err != nil {
		return err
	}
	*res = got
	return nil
}

// GetByID returns a single reservation by ID.  It returns
// ErrReservationNotFound when no row exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

// ReservationDetail encapsulates a reservation along with the reserved
// locker's door number and size.  The locker columns are nullable
// because a locker may have been deleted after the booking was made.
type ReservationDetail struct {
	ID              uint64    `json:"id"`
	LockerID        uint64    `json:"locker_id"`
	LockerNumber    *uint32   `json:"locker_number,omitempty"`
	LockerSize      *string   `json:"locker_size,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	DurationDays    uint32    `json:"duration_days"`
	TotalPriceCents uint64    `json:"total_price_cents"`
	PaymentStatus   string    `json:"payment_status"`
	CreatedAt       time.Time `json:"created_at"`
}

// AdminReservationDetail extends ReservationDetail with the booking
// user's identity and the optional payment reference.  It is returned
// by admin listing endpoints.
type AdminReservationDetail struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	UserFirstName   string    `json:"user_first_name"`
	UserLastName    string    `json:"user_last_name"`
	LockerID        uint64    `json:"locker_id"`
	LockerNumber    *uint32   `json:"locker_number,omitempty"`
	LockerSize      *string   `json:"locker_size,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	DurationDays    uint32    `json:"duration_days"`
	TotalPriceCents uint64    `json:"total_price_cents"`
	PaymentStatus   string    `json:"payment_status"`
	PaymentID       *string   `json:"payment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListByUser returns all reservations for the given user with locker
// details attached.  Reservations are ordered by creation time
// descending (newest first).  When no reservations exist, an empty
// slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]ReservationDetail, error) {
	const q = `SELECT r.id, r.locker_id, l.number, l.size,
	                  r.start_date, r.end_date, r.duration_days, r.total_price_cents,
	                  r.payment_status, r.created_at
	           FROM reservations r
	           LEFT JOIN lockers l ON l.id = r.locker_id
	           WHERE r.user_id = ?
	           ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]ReservationDetail, 0)
	for rows.Next() {
		var d ReservationDetail
		var num sql.NullInt64
		var size sql.NullString
		if err := rows.Scan(
			&d.ID, &d.LockerID, &num, &size,
			&d.StartDate, &d.EndDate, &d.DurationDays, &d.TotalPriceCents,
			&d.PaymentStatus, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		if num.Valid {
			n := uint32(num.Int64)
			d.LockerNumber = &n
		}
		if size.Valid {
			s := size.String
			d.LockerSize = &s
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListAll returns every reservation in the system with user and locker
// details attached, newest first.  It is used by admin endpoints.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]AdminReservationDetail, error) {
	const q = `SELECT r.id, r.user_id, u.email, u.first_name, u.last_name,
	                  r.locker_id, l.number, l.size,
	                  r.start_date, r.end_date, r.duration_days, r.total_price_cents,
	                  r.payment_status, r.payment_id, r.created_at
	           FROM reservations r
	           JOIN users u ON u.id = r.user_id
	           LEFT JOIN lockers l ON l.id = r.locker_id
	           ORDER BY r.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]AdminReservationDetail, 0)
	for rows.Next() {
		var d AdminReservationDetail
		var num sql.NullInt64
		var size sql.NullString
		var payID sql.NullString
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.UserEmail, &d.UserFirstName, &d.UserLastName,
			&d.LockerID, &num, &size,
			&d.StartDate, &d.EndDate, &d.DurationDays, &d.TotalPriceCents,
			&d.PaymentStatus, &payID, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		if num.Valid {
			n := uint32(num.Int64)
			d.LockerNumber = &n
		}
		if size.Valid {
			s := size.String
			d.LockerSize = &s
		}
		if payID.Valid {
			p := payID.String
			d.PaymentID = &p
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// ExpiredReservation carries the fields the expiration sweep needs to
// release a locker and notify its user.  Locker fields are nullable
// for bookings whose locker has since been deleted.
type ExpiredReservation struct {
	ID           uint64
	LockerID     uint64
	LockerNumber *uint32
	UserEmail    string
	UserName     string
	EndDate      time.Time
}

// ExpiredTx selects every reservation whose end date has passed,
// locking the rows for the duration of the enclosing transaction so a
// concurrent sweep cannot claim the same bookings.  User and locker
// details are joined in for the follow-up notifications.
func (r *ReservationRepo) ExpiredTx(ctx context.Context, tx *sql.Tx, now time.Time) ([]ExpiredReservation, error) {
	const q = `SELECT r.id, r.locker_id, l.number, u.email, u.first_name, r.end_date
	           FROM reservations r
	           JOIN users u ON u.id = r.user_id
	           LEFT JOIN lockers l ON l.id = r.locker_id
	           WHERE r.end_date < ?
	           FOR UPDATE`
	rows, err := tx.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ExpiredReservation, 0)
	for rows.Next() {
		var e ExpiredReservation
		var num sql.NullInt64
		if err := rows.Scan(&e.ID, &e.LockerID, &num, &e.UserEmail, &e.UserName, &e.EndDate); err != nil {
			return nil, err
		}
		if num.Valid {
			n := uint32(num.Int64)
			e.LockerNumber = &n
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteTx removes a reservation row inside the given transaction.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}

// ReminderCandidate carries the fields needed to send an end-of-rental
// reminder email.
type ReminderCandidate struct {
	ID           uint64
	LockerNumber *uint32
	UserEmail    string
	UserName     string
	EndDate      time.Time
}

// DueForReminder returns paid reservations ending within the next 24
// hours whose reminder has not been sent yet.  The reminder flag is
// claimed separately through ClaimReminder before any email goes out.
func (r *ReservationRepo) DueForReminder(ctx context.Context, now time.Time) ([]ReminderCandidate, error) {
	const q = `SELECT r.id, l.number, u.email, u.first_name, r.end_date
	           FROM reservations r
	           JOIN users u ON u.id = r.user_id
	           LEFT JOIN lockers l ON l.id = r.locker_id
	           WHERE r.payment_status = ? AND r.reminder_sent = 0
	             AND r.end_date >= ? AND r.end_date < ?`
	nowUTC := now.UTC()
	rows, err := r.db.QueryContext(ctx, q, model.PaymentPaid, nowUTC, nowUTC.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]ReminderCandidate, 0)
	for rows.Next() {
		var c ReminderCandidate
		var num sql.NullInt64
		if err := rows.Scan(&c.ID, &num, &c.UserEmail, &c.UserName, &c.EndDate); err != nil {
			return nil, err
		}
		if num.Valid {
			n := uint32(num.Int64)
			c.LockerNumber = &n
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ClaimReminder marks a reservation's reminder as sent.  The
// conditional WHERE makes the claim exclusive: it returns true for
// exactly one caller even when several reminder passes race on the
// same booking.
func (r *ReservationRepo) ClaimReminder(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET reminder_sent = 1, updated_at = NOW() WHERE id = ? AND reminder_sent = 0`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkEmailSent records that the booking confirmation email was handed
// off for delivery.
func (r *ReservationRepo) MarkEmailSent(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reservations SET email_sent = 1, updated_at = NOW() WHERE id = ?`, id)
	return err
}
