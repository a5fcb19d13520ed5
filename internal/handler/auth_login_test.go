package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/locker-reservation/internal/config"
	"github.com/iliyamo/locker-reservation/internal/model"
	"github.com/iliyamo/locker-reservation/internal/repository"
	"github.com/iliyamo/locker-reservation/internal/utils"
)

func newLoginHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	h := &AuthHandler{
		Cfg:    config.Config{JWTSecret: "unit-secret", AccessTTLMin: 15, RefreshTTLDays: 7, BcryptCost: 4},
		Users:  repository.NewUserRepo(db),
		Tokens: repository.NewTokenRepo(db),
	}
	return h, mock
}

func loginUserRow(t *testing.T, verified bool, password string) *sqlmock.Rows {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	now := time.Now().UTC()
	return sqlmock.NewRows([]string{
		"id", "first_name", "last_name", "email", "password_hash", "role",
		"is_email_verified", "verification_code", "verification_code_expires_at",
		"created_at", "updated_at",
	}).AddRow(uint64(3), "Camille", "Moreau", "camille@example.com", hash,
		model.RoleClient, verified, nil, nil, now, now)
}

func TestLoginRejectsUnverifiedAccount(t *testing.T) {
	h, mock := newLoginHandler(t)

	mock.ExpectQuery(`FROM users WHERE email=\? LIMIT 1`).
		WithArgs("camille@example.com").
		WillReturnRows(loginUserRow(t, false, "open-sesame"))

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login",
		`{"email":"camille@example.com","password":"open-sesame"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "email not verified")
	// No refresh token may be stored for a blocked login.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginVerifiedAccountGetsTokenPair(t *testing.T) {
	h, mock := newLoginHandler(t)

	mock.ExpectQuery(`FROM users WHERE email=\? LIMIT 1`).
		WithArgs("camille@example.com").
		WillReturnRows(loginUserRow(t, true, "open-sesame"))
	mock.ExpectExec(`INSERT INTO refresh_tokens`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login",
		`{"email":"camille@example.com","password":"open-sesame"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "access")
	assert.Contains(t, rec.Body.String(), "refresh")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPasswordStillUnauthorized(t *testing.T) {
	h, mock := newLoginHandler(t)

	mock.ExpectQuery(`FROM users WHERE email=\? LIMIT 1`).
		WithArgs("camille@example.com").
		WillReturnRows(loginUserRow(t, true, "open-sesame"))

	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login",
		`{"email":"camille@example.com","password":"not-the-one"}`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid credentials")
	assert.NoError(t, mock.ExpectationsWereMet())
}
