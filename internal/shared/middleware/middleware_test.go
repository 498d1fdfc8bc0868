package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxoffice/internal/shared/middleware"
	"boxoffice/internal/users"
)

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func TestRoleConstantsMatchUsersPackage(t *testing.T) {
	assert.Equal(t, middleware.RoleAdmin, string(users.RoleAdmin))
	assert.Equal(t, middleware.RoleUser, string(users.RoleUser))
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin role passes", func(t *testing.T) {
		c, recorder := testContext(t)
		c.Set("user_role", middleware.RoleAdmin)

		middleware.RequireAdmin()(c)

		assert.False(t, c.IsAborted())
		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("customer role is forbidden", func(t *testing.T) {
		c, recorder := testContext(t)
		c.Set("user_role", middleware.RoleUser)

		middleware.RequireAdmin()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("missing role is unauthorized", func(t *testing.T) {
		c, recorder := testContext(t)

		middleware.RequireAdmin()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestRequireRoles(t *testing.T) {
	c, recorder := testContext(t)
	c.Set("user_role", middleware.RoleUser)

	middleware.RequireRoles(middleware.RoleAdmin, middleware.RoleUser)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestUserIDFromContext(t *testing.T) {
	t.Run("valid id round-trips", func(t *testing.T) {
		c, _ := testContext(t)
		id := uuid.New()
		c.Set("user_id", id.String())

		got, ok := middleware.UserIDFromContext(c)

		require.True(t, ok)
		assert.Equal(t, id, got)
	})

	t.Run("missing and malformed ids are rejected", func(t *testing.T) {
		c, _ := testContext(t)
		_, ok := middleware.UserIDFromContext(c)
		assert.False(t, ok)

		c.Set("user_id", "not-a-uuid")
		_, ok = middleware.UserIDFromContext(c)
		assert.False(t, ok)
	})
}
