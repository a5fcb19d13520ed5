package mailer

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateFR(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "monday in march",
			in:   time.Date(2026, 3, 2, 15, 4, 0, 0, time.UTC),
			want: "lundi 2 mars 2026 à 15:04",
		},
		{
			name: "sunday with zero padded minute",
			in:   time.Date(2026, 8, 16, 9, 5, 0, 0, time.UTC),
			want: "dimanche 16 août 2026 à 09:05",
		},
		{
			name: "converts to UTC first",
			in:   time.Date(2026, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600)),
			want: "jeudi 1 janvier 2026 à 00:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateFR(tt.in))
		})
	}
}

func TestVerificationTemplateRendersCode(t *testing.T) {
	var buf bytes.Buffer
	err := tmplVerification.Execute(&buf, codeData{Username: "Alice", Code: "AB12CD"})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Bonjour Alice")
	assert.Contains(t, html, "AB12CD")
	assert.Contains(t, html, "15 minutes")
}

func TestReservationTemplateRendersDetails(t *testing.T) {
	var buf bytes.Buffer
	err := tmplReservationConfirmed.Execute(&buf, reservationData{
		Username:     "Bob",
		LockerNumber: "12",
		StartDate:    "lundi 2 mars 2026 à 15:04",
		EndDate:      "jeudi 5 mars 2026 à 15:04",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Bonjour Bob")
	assert.Contains(t, html, "12")
	assert.Contains(t, html, "lundi 2 mars 2026 à 15:04")
	assert.Contains(t, html, "jeudi 5 mars 2026 à 15:04")
}

func TestReminderTemplateRendersExpiration(t *testing.T) {
	var buf bytes.Buffer
	err := tmplReservationReminder.Execute(&buf, reminderData{
		Username:       "Chloé",
		LockerNumber:   "7",
		ExpirationTime: "mardi 3 mars 2026 à 10:00",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "Bonjour Chloé")
	assert.Contains(t, html, "moins de 24 heures")
	assert.Contains(t, html, "mardi 3 mars 2026 à 10:00")
}

func TestTemplateEscapesUserInput(t *testing.T) {
	var buf bytes.Buffer
	err := tmplWelcome.Execute(&buf, codeData{Username: "<script>alert(1)</script>"})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>")
}

func TestDryRunDeliverySucceeds(t *testing.T) {
	m := New("", "587", "", "", "no-reply@example.test", "Test")

	assert.NoError(t, m.SendVerification("user@example.test", "Alice", "AB12CD"))
	assert.NoError(t, m.SendWelcome("user@example.test", "Alice"))
	assert.NoError(t, m.SendPasswordResetSuccess("user@example.test"))
	assert.NoError(t, m.SendReservationExpired("user@example.test", "Alice", "12"))
}
