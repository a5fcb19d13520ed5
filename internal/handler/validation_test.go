package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Input validation runs before any repository call, so these paths are
// exercised with zero-value handlers and no database.

func jsonCtx(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	h := &AuthHandler{}
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "missing password", body: `{"first_name":"A","last_name":"B","email":"a@b.test"}`},
		{name: "missing email", body: `{"first_name":"A","last_name":"B","password":"longenough"}`},
		{name: "blank first name", body: `{"first_name":"  ","last_name":"B","email":"a@b.test","password":"longenough"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register", tt.body)
			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := &AuthHandler{}
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/register",
		`{"first_name":"A","last_name":"B","email":"a@b.test","password":"short"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "between 8 and 20")
}

func TestVerifyEmailRequiresEmailAndCode(t *testing.T) {
	h := &AuthHandler{}
	for _, body := range []string{`{}`, `{"email":"a@b.test"}`, `{"code":"AB12CD"}`} {
		c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/verify-email", body)
		require.NoError(t, h.VerifyEmail(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	h := &AuthHandler{}
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/login", `{"email":"a@b.test"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetPasswordRejectsShortPassword(t *testing.T) {
	h := &AuthHandler{}
	c, rec := jsonCtx(t, http.MethodPost, "/v1/auth/reset-password",
		`{"email":"a@b.test","code":"AB12CD","new_password":"tiny"}`)
	require.NoError(t, h.ResetPassword(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLockerCreateRejectsBadInput(t *testing.T) {
	h := &LockerHandler{}
	tests := []struct {
		name string
		body string
	}{
		{name: "missing number", body: `{"size":"SMALL","price_cents":100}`},
		{name: "unknown size", body: `{"number":1,"size":"GIGANTIC","price_cents":100}`},
		{name: "lowercase size is normalized but empty is not", body: `{"number":1,"price_cents":100}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := jsonCtx(t, http.MethodPost, "/v1/lockers", tt.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLockerUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h := &LockerHandler{}
	c, rec := jsonCtx(t, http.MethodPut, "/v1/lockers/1/status", `{"status":"BROKEN"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.UpdateStatus(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLockerListRejectsUnknownFilters(t *testing.T) {
	h := &LockerHandler{}
	c, rec := jsonCtx(t, http.MethodGet, "/v1/lockers?status=BROKEN", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = jsonCtx(t, http.MethodGet, "/v1/lockers?size=XL", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservationCreateRequiresAuthContext(t *testing.T) {
	h := &ReservationHandler{}
	c, rec := jsonCtx(t, http.MethodPost, "/v1/reservations", `{"locker_id":1,"duration_days":3}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReservationCreateValidatesBody(t *testing.T) {
	h := &ReservationHandler{}
	tests := []struct {
		name string
		body string
	}{
		{name: "missing locker", body: `{"duration_days":3}`},
		{name: "zero duration", body: `{"locker_id":1,"duration_days":0}`},
		{name: "duration over a year", body: `{"locker_id":1,"duration_days":400}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := jsonCtx(t, http.MethodPost, "/v1/reservations", tt.body)
			c.Set("user_id", uint64(1))
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestReservationGetRejectsBadID(t *testing.T) {
	h := &ReservationHandler{}
	c, rec := jsonCtx(t, http.MethodGet, "/v1/reservations/abc", "")
	c.Set("user_id", uint64(1))
	c.SetParamNames("id")
	c.SetParamValues("abc")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserCreateValidatesRoleAndPassword(t *testing.T) {
	h := &UserHandler{}
	c, rec := jsonCtx(t, http.MethodPost, "/v1/users",
		`{"first_name":"A","last_name":"B","email":"a@b.test","password":"longenough","role":"OWNER"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid role")

	c, rec = jsonCtx(t, http.MethodPost, "/v1/users",
		`{"first_name":"A","last_name":"B","email":"a@b.test","password":"short","role":"CLIENT"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserGetForbiddenForOtherAccount(t *testing.T) {
	h := &UserHandler{}
	c, rec := jsonCtx(t, http.MethodGet, "/v1/users/9", "")
	c.Set("user_id", uint64(1))
	c.Set("role", "CLIENT")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
