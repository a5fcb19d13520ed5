package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	q "github.com/iliyamo/locker-reservation/internal/queue"
	"github.com/iliyamo/locker-reservation/internal/repository"
)

// fakePublisher records events instead of talking to the broker.
type fakePublisher struct {
	events []q.NotificationEvent
}

func (f *fakePublisher) Publish(_ context.Context, ev q.NotificationEvent) error {
	f.events = append(f.events, ev)
	return nil
}

func newLifecycleTest(t *testing.T) (*Lifecycle, sqlmock.Sqlmock, *fakePublisher) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	pub := &fakePublisher{}
	l := NewLifecycle(db, repository.NewReservationRepo(db), repository.NewLockerRepo(db), pub, nil)
	return l, mock, pub
}

func expiredRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "locker_id", "number", "email", "first_name", "end_date"})
}

// Each expired booking is claimed and deleted in one transaction, so an
// immediately repeated sweep finds nothing left to process.
func TestProcessExpiredSecondPassFindsNothing(t *testing.T) {
	l, mock, pub := newLifecycleTest(t)
	end := time.Now().UTC().Add(-time.Hour)

	// First pass: one expired booking is released, deleted and notified.
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations r(?s).+FOR UPDATE`).
		WillReturnRows(expiredRows().
			AddRow(uint64(11), uint64(3), uint32(42), "camille@example.com", "Camille", end))
	mock.ExpectExec(`UPDATE lockers SET status=`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM reservations WHERE id = \?`).
		WithArgs(uint64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := l.ProcessExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, pub.events, 1)
	assert.Equal(t, q.KindReservationExpired, pub.events[0].Kind)
	assert.Equal(t, "camille@example.com", pub.events[0].Recipient)
	assert.Equal(t, "42", pub.events[0].LockerNumber)

	// Second pass: the booking is gone, nothing is processed or sent.
	mock.ExpectBegin()
	mock.ExpectQuery(`FROM reservations r(?s).+FOR UPDATE`).
		WillReturnRows(expiredRows())
	mock.ExpectCommit()

	n, err = l.ProcessExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Len(t, pub.events, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A due reservation whose reminder flag was already claimed by another
// pass is skipped without a second email.
func TestSendRemindersClaimsAtMostOnce(t *testing.T) {
	l, mock, pub := newLifecycleTest(t)
	end := time.Now().UTC().Add(6 * time.Hour)

	due := sqlmock.NewRows([]string{"id", "number", "email", "first_name", "end_date"}).
		AddRow(uint64(21), uint32(7), "a@example.com", "Ana", end).
		AddRow(uint64(22), uint32(8), "b@example.com", "Bruno", end)
	mock.ExpectQuery(`WHERE r\.payment_status = \? AND r\.reminder_sent = 0`).
		WillReturnRows(due)
	mock.ExpectExec(`UPDATE reservations SET reminder_sent = 1`).
		WithArgs(uint64(21)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// Second row lost the claim to a concurrent pass.
	mock.ExpectExec(`UPDATE reservations SET reminder_sent = 1`).
		WithArgs(uint64(22)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	sent, err := l.SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, pub.events, 1)
	assert.Equal(t, q.KindReservationReminder, pub.events[0].Kind)
	assert.Equal(t, "a@example.com", pub.events[0].Recipient)
	assert.NoError(t, mock.ExpectationsWereMet())
}
