// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into outbound emails.
package queue

// Notification kinds accepted on the notification.send queue.  Each
// kind maps to one email template.
const (
	KindVerification         = "verification"
	KindWelcome              = "welcome"
	KindPasswordResetRequest = "password.reset.request"
	KindPasswordResetSuccess = "password.reset.success"
	KindReservationConfirmed = "reservation.confirmed"
	KindReservationExpired   = "reservation.expired"
	KindReservationReminder  = "reservation.reminder"
)

// NotificationEvent is published whenever the API wants an email sent.
// It carries everything the consumer needs to render the template so
// the consumer never queries the primary database.  Fields that do not
// apply to a given kind are left empty.
type NotificationEvent struct {
	Kind           string `json:"kind"`
	Recipient      string `json:"recipient"`
	FirstName      string `json:"first_name,omitempty"`
	Code           string `json:"code,omitempty"`
	LockerNumber   string `json:"locker_number,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
	ExpirationTime string `json:"expiration_time,omitempty"`
}
