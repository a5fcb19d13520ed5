package queue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/locker-reservation/internal/mailer"
)

// A mailer with no host runs in dry-run mode, so handleMessage can be
// exercised end to end without an SMTP relay.
func dryRunMailer() *mailer.Mailer {
	return mailer.New("", "587", "", "", "no-reply@example.test", "Test")
}

func TestHandleMessageDispatchesKnownKinds(t *testing.T) {
	m := dryRunMailer()
	events := []NotificationEvent{
		{Kind: KindVerification, Recipient: "a@b.test", FirstName: "A", Code: "AB12CD"},
		{Kind: KindWelcome, Recipient: "a@b.test", FirstName: "A"},
		{Kind: KindPasswordResetRequest, Recipient: "a@b.test", FirstName: "A", Code: "ZZ99XX"},
		{Kind: KindPasswordResetSuccess, Recipient: "a@b.test"},
		{Kind: KindReservationConfirmed, Recipient: "a@b.test", FirstName: "A", LockerNumber: "12", StartDate: "lundi 2 mars 2026 à 15:04", EndDate: "jeudi 5 mars 2026 à 15:04"},
		{Kind: KindReservationExpired, Recipient: "a@b.test", FirstName: "A", LockerNumber: "12"},
		{Kind: KindReservationReminder, Recipient: "a@b.test", FirstName: "A", LockerNumber: "12", ExpirationTime: "mardi 3 mars 2026 à 10:00"},
	}
	for _, ev := range events {
		body, err := json.Marshal(ev)
		require.NoError(t, err)
		assert.NoError(t, handleMessage(body, m), ev.Kind)
	}
}

func TestHandleMessageRejectsUnknownKind(t *testing.T) {
	body, err := json.Marshal(NotificationEvent{Kind: "no.such.kind", Recipient: "a@b.test"})
	require.NoError(t, err)
	assert.Error(t, handleMessage(body, dryRunMailer()))
}

func TestHandleMessageRejectsMalformedJSON(t *testing.T) {
	assert.Error(t, handleMessage([]byte("{"), dryRunMailer()))
}
