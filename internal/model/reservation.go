package model

import "time"

// Payment statuses for a reservation.  No payment gateway is integrated;
// reservations are created as PAID and the remaining values exist for
// forward compatibility with a real gateway.
const (
    PaymentPending = "PENDING"
    PaymentPaid    = "PAID"
    PaymentFailed  = "FAILED"
    PaymentExpired = "EXPIRED"
)

// ValidPaymentStatus reports whether s names a known payment status.
func ValidPaymentStatus(s string) bool {
    switch s {
    case PaymentPending, PaymentPaid, PaymentFailed, PaymentExpired:
        return true
    }
    return false
}

// Reservation binds a user to a locker for a time window at a price
// snapshot.  It corresponds to a row in the `reservations` table.  A
// reservation is removed outright when cancelled or when the expiration
// sweep processes it; there is no retained history.
//
// Fields:
//  ID              – primary key identifier.
//  UserID          – user who booked the locker.
//  LockerID        – locker being rented.
//  StartDate       – rental start, set to the creation time.
//  EndDate         – rental end, StartDate + DurationDays days.
//  DurationDays    – rental length in whole days, at least 1.
//  TotalPriceCents – DurationDays × the locker's per-day rate at booking
//                    time; not recomputed if the rate changes later.
//  PaymentStatus   – one of PENDING, PAID, FAILED, EXPIRED.
//  PaymentID       – external payment reference, if any.
//  EmailSent       – confirmation email dispatched.
//  ReminderSent    – expiration reminder dispatched; guards against
//                    duplicate reminder sends.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
    ID              uint64    `json:"id"`                   // reservations.id
    UserID          uint64    `json:"user_id"`              // reservations.user_id
    LockerID        uint64    `json:"locker_id"`            // reservations.locker_id
    StartDate       time.Time `json:"start_date"`           // reservations.start_date
    EndDate         time.Time `json:"end_date"`             // reservations.end_date
    DurationDays    uint32    `json:"duration_days"`        // reservations.duration_days
    TotalPriceCents uint64    `json:"total_price_cents"`    // reservations.total_price_cents
    PaymentStatus   string    `json:"payment_status"`       // reservations.payment_status
    PaymentID       *string   `json:"payment_id,omitempty"` // reservations.payment_id (nullable)
    EmailSent       bool      `json:"email_sent"`           // reservations.email_sent
    ReminderSent    bool      `json:"reminder_sent"`        // reservations.reminder_sent
    CreatedAt       time.Time `json:"created_at"`           // reservations.created_at
    UpdatedAt       time.Time `json:"updated_at"`           // reservations.updated_at
}

// ReservationEnd computes the rental end for a booking that starts at
// start and runs for durationDays whole days.  The arithmetic is done in
// UTC so the invariant end = start + duration days holds regardless of
// the server timezone.
func ReservationEnd(start time.Time, durationDays uint32) time.Time {
    return start.UTC().Add(time.Duration(durationDays) * 24 * time.Hour)
}

// ReservationTotalCents computes the price snapshot for a booking:
// the locker's per-day rate multiplied by the rental length.  The
// product is carried in 64 bits so a year-long rental of the most
// expensive locker cannot wrap.
func ReservationTotalCents(priceCents, durationDays uint32) uint64 {
    return uint64(priceCents) * uint64(durationDays)
}
