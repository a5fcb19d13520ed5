package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/locker-reservation/internal/model"
	"github.com/iliyamo/locker-reservation/internal/utils"
)

// UserRepo provides persistence for the 'users' table, including the
// single-use verification codes shared by the email-verification and
// password-reset flows.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

var (
	ErrEmailExists  = errors.New("email already exists")
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCode is returned when no outstanding code matches the
	// supplied email/code pair, including the retry-after-consume case.
	ErrInvalidCode = errors.New("invalid code")
	// ErrCodeExpired is returned when the code matches but its
	// 15-minute window has passed.
	ErrCodeExpired = errors.New("code expired")
)

const userCols = `id, first_name, last_name, email, password_hash, role,
	is_email_verified, verification_code, verification_code_expires_at,
	created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var (
		u       model.User
		code    sql.NullString
		codeExp sql.NullTime
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsEmailVerified, &code, &codeExp, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if code.Valid {
		c := code.String
		u.VerificationCode = &c
	}
	if codeExp.Valid {
		t := codeExp.Time
		u.VerificationCodeExpiresAt = &t
	}
	return u, nil
}

// Create inserts a user with a freshly hashed password and returns its ID.
// The email is lowercase-normalized before insert; a duplicate email is
// reported as ErrEmailExists.  code and codeExp may be empty/zero when the
// account needs no outstanding verification code (admin-created users).
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, email, password, role string, cost int, code string, codeExp time.Time) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	var codeArg any
	var expArg any
	if code != "" {
		codeArg = code
		expArg = codeExp.UTC()
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, password_hash, role,
		 verification_code, verification_code_expires_at) VALUES (?,?,?,?,?,?,?)`,
		firstName, lastName, email, hash, role, codeArg, expArg)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE email=? LIMIT 1`, email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id=? LIMIT 1`, id))
}

// List returns all users ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+userCols+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update rewrites the mutable profile fields of a user.  It returns
// ErrUserNotFound when the id does not exist and ErrEmailExists when the
// new email collides with another account.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET first_name=?, last_name=?, email=?, role=?, updated_at=NOW()
		 WHERE id=?`,
		u.FirstName, u.LastName, strings.ToLower(strings.TrimSpace(u.Email)), u.Role, u.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes a user row.  Reservations referencing the user are left
// in place; the sweep and the listing queries tolerate the dangling
// reference the same way they tolerate a deleted locker.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetVerificationCode stores a new outstanding code for the user,
// replacing any previous one.  Used by registration resend and by
// password-reset requests.
func (r *UserRepo) SetVerificationCode(ctx context.Context, userID uint64, code string, expiresAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET verification_code=?, verification_code_expires_at=?, updated_at=NOW()
		 WHERE id=?`,
		code, expiresAt.UTC(), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ConsumeVerificationCode marks the user's email verified and clears the
// outstanding code, exactly once.  The clearing UPDATE re-checks the code
// so that two concurrent attempts cannot both succeed; the loser observes
// zero affected rows and gets ErrInvalidCode, the same as a retry after
// the code was cleared.
func (r *UserRepo) ConsumeVerificationCode(ctx context.Context, email, code string) (model.User, error) {
	u, err := r.findByEmailAndCode(ctx, email, code)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET is_email_verified=1, verification_code=NULL,
		 verification_code_expires_at=NULL, updated_at=NOW()
		 WHERE id=? AND verification_code=?`,
		u.ID, code)
	if err != nil {
		return model.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.User{}, ErrInvalidCode
	}
	u.IsEmailVerified = true
	u.VerificationCode = nil
	u.VerificationCodeExpiresAt = nil
	return u, nil
}

// ConsumeResetCode swaps in a new password hash and clears the
// outstanding code with the same exactly-once guarantee as
// ConsumeVerificationCode.
func (r *UserRepo) ConsumeResetCode(ctx context.Context, email, code, newPassword string, cost int) (model.User, error) {
	u, err := r.findByEmailAndCode(ctx, email, code)
	if err != nil {
		return model.User{}, err
	}
	hash, err := utils.HashPassword(newPassword, cost)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password_hash=?, verification_code=NULL,
		 verification_code_expires_at=NULL, updated_at=NOW()
		 WHERE id=? AND verification_code=?`,
		hash, u.ID, code)
	if err != nil {
		return model.User{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.User{}, ErrInvalidCode
	}
	return u, nil
}

// findByEmailAndCode resolves the email/code pair to a user, reporting
// ErrInvalidCode when nothing matches and ErrCodeExpired when the match
// is stale.  Expired codes are left in place; issuing a new code
// overwrites them.
func (r *UserRepo) findByEmailAndCode(ctx context.Context, email, code string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE email=? AND verification_code=? LIMIT 1`,
		email, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCode
		}
		return model.User{}, err
	}
	if u.VerificationCodeExpiresAt == nil || time.Now().UTC().After(*u.VerificationCodeExpiresAt) {
		return model.User{}, ErrCodeExpired
	}
	return u, nil
}
