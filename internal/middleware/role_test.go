package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRole(t *testing.T, role interface{}, allowed ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}

	nextCalled := false
	h := RequireRole(allowed...)(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, nextCalled
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	rec, nextCalled := runRole(t, "ADMIN", "ADMIN")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, nextCalled)
}

func TestRequireRoleAllowsAnyOfList(t *testing.T) {
	rec, nextCalled := runRole(t, "CLIENT", "ADMIN", "CLIENT")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, nextCalled)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	rec, nextCalled := runRole(t, "CLIENT", "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, nextCalled)
}

func TestRequireRoleRejectsMissingRole(t *testing.T) {
	rec, nextCalled := runRole(t, nil, "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, nextCalled)
}

func TestRequireRoleRejectsNonStringRole(t *testing.T) {
	rec, nextCalled := runRole(t, 42, "ADMIN")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, nextCalled)
}
