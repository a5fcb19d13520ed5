package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservationEnd(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	end := ReservationEnd(start, 3)
	assert.Equal(t, start.Add(72*time.Hour), end)
	assert.Equal(t, time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC), end)
}

func TestReservationEndIgnoresZone(t *testing.T) {
	// The same instant expressed in different zones must give the same end.
	utc := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	paris := utc.In(time.FixedZone("CEST", 2*3600))

	assert.True(t, ReservationEnd(utc, 10).Equal(ReservationEnd(paris, 10)))
}

func TestReservationTotalCents(t *testing.T) {
	tests := []struct {
		name       string
		priceCents uint32
		days       uint32
		want       uint64
	}{
		{name: "three days at 10 per day", priceCents: 1000, days: 3, want: 3000},
		{name: "single day", priceCents: 250, days: 1, want: 250},
		{name: "zero days", priceCents: 1000, days: 0, want: 0},
		// price × duration exceeding 32 bits must not wrap
		{name: "max price for a year", priceCents: 1<<32 - 1, days: 365, want: uint64(1<<32-1) * 365},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReservationTotalCents(tt.priceCents, tt.days))
		})
	}
}

func TestValidPaymentStatus(t *testing.T) {
	for _, s := range []string{PaymentPending, PaymentPaid, PaymentFailed, PaymentExpired} {
		assert.True(t, ValidPaymentStatus(s), s)
	}
	assert.False(t, ValidPaymentStatus("paid"))
	assert.False(t, ValidPaymentStatus(""))
}
