package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/locker-reservation/internal/model"
)

func newMockDB(t *testing.T) (*LockerRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLockerRepo(db), mock
}

// The reserve claim is a conditional update: exactly one booking can flip
// AVAILABLE to RESERVED, everyone else sees zero affected rows.
func TestReserveTxClaimsAvailableLocker(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE lockers SET status=\?, updated_at=NOW\(\) WHERE id=\? AND status=\?`).
		WithArgs(model.LockerReserved, uint64(5), model.LockerAvailable).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.db.Begin()
	require.NoError(t, err)

	assert.NoError(t, repo.ReserveTx(context.Background(), tx, 5))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReserveTxLoserGetsConflict(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	// The locker was already flipped to RESERVED by the winner.
	mock.ExpectExec(`UPDATE lockers SET status=\?, updated_at=NOW\(\) WHERE id=\? AND status=\?`).
		WithArgs(model.LockerReserved, uint64(5), model.LockerAvailable).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.db.Begin()
	require.NoError(t, err)

	err = repo.ReserveTx(context.Background(), tx, 5)
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Releasing a locker that is no longer RESERVED (deleted, or set to
// MAINTENANCE by an admin) is not an error.
func TestReleaseTxToleratesMissingClaim(t *testing.T) {
	repo, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE lockers SET status=\?, updated_at=NOW\(\) WHERE id=\? AND status=\?`).
		WithArgs(model.LockerAvailable, uint64(9), model.LockerReserved).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := repo.db.Begin()
	require.NoError(t, err)

	assert.NoError(t, repo.ReleaseTx(context.Background(), tx, 9))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
