package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A reminder is claimed through a conditional update on reminder_sent, so
// only the first of any number of racing passes gets to send the email.
func TestClaimReminderFirstCallerWins(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewReservationRepo(db)

	mock.ExpectExec(`UPDATE reservations SET reminder_sent = 1, updated_at = NOW\(\) WHERE id = \? AND reminder_sent = 0`).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	claimed, err := repo.ClaimReminder(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimReminderSecondCallerLoses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewReservationRepo(db)

	// reminder_sent is already 1, the WHERE matches nothing.
	mock.ExpectExec(`UPDATE reservations SET reminder_sent = 1, updated_at = NOW\(\) WHERE id = \? AND reminder_sent = 0`).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	claimed, err := repo.ClaimReminder(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
