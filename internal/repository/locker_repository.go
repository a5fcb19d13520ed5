package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions
	"strings"

	"github.com/iliyamo/locker-reservation/internal/model"
)

// ErrLockerNotFound is returned when a locker lookup fails.
var ErrLockerNotFound = errors.New("locker not found")

// ErrNumberExists is returned when inserting or renumbering a locker
// collides with another locker's door number.
var ErrNumberExists = errors.New("locker number already exists")

// LockerRepo provides methods to create, query and mutate lockers.  The
// status column is the single source of truth for occupancy; the
// reserve/release mutations are conditional updates that only take
// effect when the row is still in the expected state.
type LockerRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewLockerRepo constructs a LockerRepo with the given DB handle.
func NewLockerRepo(db *sql.DB) *LockerRepo {
	return &LockerRepo{db: db}
}

const lockerCols = `id, number, size, status, price_cents, created_at, updated_at`

func scanLocker(row interface{ Scan(...any) error }) (model.Locker, error) {
	var l model.Locker
	err := row.Scan(&l.ID, &l.Number, &l.Size, &l.Status, &l.PriceCents, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// Create inserts a new locker and reads the row back so timestamps and
// the defaulted status are populated on the struct.
func (r *LockerRepo) Create(ctx context.Context, l *model.Locker) error {
	if l.Status == "" {
		l.Status = model.LockerAvailable
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lockers (number, size, status, price_cents) VALUES (?,?,?,?)`,
		l.Number, l.Size, l.Status, l.PriceCents)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrNumberExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	got, err := scanLocker(r.db.QueryRowContext(ctx,
		`SELECT `+lockerCols+` FROM lockers WHERE id=?`, l.ID))
	if err != nil {
		return err
	}
	*l = got
	return nil
}

// GetByID retrieves a locker by its ID.  It returns ErrLockerNotFound
// when no row is found.
func (r *LockerRepo) GetByID(ctx context.Context, id uint64) (*model.Locker, error) {
	l, err := scanLocker(r.db.QueryRowContext(ctx,
		`SELECT `+lockerCols+` FROM lockers WHERE id=?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLockerNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns lockers ordered by door number, optionally filtered by
// status and/or size.  Empty filter values mean "any".
func (r *LockerRepo) List(ctx context.Context, status, size string) ([]model.Locker, error) {
	q := `SELECT ` + lockerCols + ` FROM lockers`
	var conds []string
	var args []any
	if status != "" {
		conds = append(conds, "status = ?")
		args = append(args, status)
	}
	if size != "" {
		conds = append(conds, "size = ?")
		args = append(args, size)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY number"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Locker, 0)
	for rows.Next() {
		l, err := scanLocker(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update rewrites number, size and price of a locker.  The status is
// deliberately left alone: occupancy changes go through UpdateStatus or
// the reserve/release mutations so an admin edit cannot silently free a
// reserved door.  Returns ErrLockerNotFound when the id does not exist.
func (r *LockerRepo) Update(ctx context.Context, l *model.Locker) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE lockers SET number=?, size=?, price_cents=?, updated_at=NOW() WHERE id=?`,
		l.Number, l.Size, l.PriceCents, l.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrNumberExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLockerNotFound
	}
	return nil
}

// UpdateStatus sets the status column directly.  This is the explicit
// admin path for moving a locker in and out of MAINTENANCE; callers must
// validate the enum value first.
func (r *LockerRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Locker, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE lockers SET status=?, updated_at=NOW() WHERE id=?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrLockerNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a locker row.  Reservations referencing the locker are
// not cascaded; the cancel path and the expiration sweep both tolerate a
// missing locker.
func (r *LockerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lockers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLockerNotFound
	}
	return nil
}

// ReserveTx flips a locker from AVAILABLE to RESERVED inside the given
// transaction.  The WHERE clause is the compare-and-set: when another
// booking got there first (or the locker is in maintenance) zero rows
// are affected and ErrConflict is returned, which aborts the enclosing
// reservation transaction.
func (r *LockerRepo) ReserveTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE lockers SET status=?, updated_at=NOW() WHERE id=? AND status=?`,
		model.LockerReserved, id, model.LockerAvailable)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}
	return nil
}

// ReleaseTx flips a locker from RESERVED back to AVAILABLE inside the
// given transaction.  A locker that was deleted or moved to MAINTENANCE
// in the meantime is left alone.
func (r *LockerRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE lockers SET status=?, updated_at=NOW() WHERE id=? AND status=?`,
		model.LockerAvailable, id, model.LockerReserved)
	return err
}
