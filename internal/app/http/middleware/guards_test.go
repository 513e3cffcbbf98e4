package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"dreamnest-app/internal/domain/access"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// withSession injects a resolved session the way ResolveSession would.
func withSession(s *access.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s != nil {
			c.Set(sessionContextKey, s)
		}
		c.Next()
	}
}

func fixedRole(r access.Role) RoleLookup {
	return func(*gin.Context, uint) (access.Role, error) {
		return r, nil
	}
}

func failingLookup(*gin.Context, uint) (access.Role, error) {
	return "", errors.New("profiles unavailable")
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func perform(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func authedSession() *access.Session {
	return &access.Session{Identity: access.Identity{UserID: 7, Email: "user@example.com"}}
}

func TestRequireAuthRedirectsAnonymous(t *testing.T) {
	r := gin.New()
	r.GET("/app/library", withSession(nil), RequireAuth(), okHandler)

	w := perform(r, http.MethodGet, "/app/library")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirectTo=/app/library", w.Header().Get("Location"))
}

func TestRequireAuthPassesAuthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/app/library", withSession(authedSession()), RequireAuth(), okHandler)

	w := perform(r, http.MethodGet, "/app/library")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleRedirectsAnonymousToLogin(t *testing.T) {
	r := gin.New()
	r.GET("/admin", withSession(nil), RequireRole(fixedRole(access.RoleParent), access.RoleAdmin), okHandler)

	w := perform(r, http.MethodGet, "/admin")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirectTo=/admin", w.Header().Get("Location"))
}

func TestRequireRoleSendsParentToApplicationPage(t *testing.T) {
	r := gin.New()
	r.GET("/author/books", withSession(authedSession()),
		RequireRole(fixedRole(access.RoleParent), access.RoleAuthor, "/author/apply"), okHandler)

	w := perform(r, http.MethodGet, "/author/books")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/author/apply", w.Header().Get("Location"))
}

func TestRequireRoleAdminPassesAuthorArea(t *testing.T) {
	r := gin.New()
	r.GET("/author/books", withSession(authedSession()),
		RequireRole(fixedRole(access.RoleAdmin), access.RoleAuthor, "/author/apply"), okHandler)

	w := perform(r, http.MethodGet, "/author/books")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBypassPathSkipsRoleCheckButNotAuth(t *testing.T) {
	guard := func(lookup RoleLookup) gin.HandlerFunc {
		return RequireRole(lookup, access.RoleAuthor, "/author/apply")
	}

	t.Run("authenticated parent reaches apply", func(t *testing.T) {
		r := gin.New()
		r.POST("/author/apply", withSession(authedSession()), guard(fixedRole(access.RoleParent)), okHandler)

		w := perform(r, http.MethodPost, "/author/apply")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("anonymous still sent to login", func(t *testing.T) {
		r := gin.New()
		r.POST("/author/apply", withSession(nil), guard(fixedRole(access.RoleParent)), okHandler)

		w := perform(r, http.MethodPost, "/author/apply")

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login?redirectTo=/author/apply", w.Header().Get("Location"))
	})
}

// A failing role lookup is an upstream outage, not an expired login.
func TestRoleLookupFailureIsServerError(t *testing.T) {
	r := gin.New()
	r.GET("/admin", withSession(authedSession()), RequireRole(failingLookup, access.RoleAdmin), okHandler)

	w := perform(r, http.MethodGet, "/admin")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestGuardStoresResolvedRole(t *testing.T) {
	r := gin.New()

	var seen access.Role
	r.GET("/admin", withSession(authedSession()),
		RequireRole(fixedRole(access.RoleAdmin), access.RoleAdmin),
		func(c *gin.Context) {
			seen = CurrentRole(c)
			okHandler(c)
		})

	w := perform(r, http.MethodGet, "/admin")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, access.RoleAdmin, seen)
}
