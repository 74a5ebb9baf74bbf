package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civic-reports/internal/docstore"
	"civic-reports/internal/model"
	"civic-reports/internal/repository"
	"civic-reports/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExtractToken(t *testing.T) {
	// missing header
	ctx, _ := newContext("")
	_, err := extractToken(ctx)
	require.Error(t, err)

	// bad format
	ctx, _ = newContext("BadHeader")
	_, err = extractToken(ctx)
	require.Error(t, err)

	// case-insensitive scheme
	ctx, _ = newContext("bearer tok123")
	tok, err := extractToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", tok)
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	users := repository.NewUsers(docstore.NewMemoryStore())
	ident := service.NewIdentity(users)

	member, err := users.Create(context.Background(), "member@example.com", "h")
	require.NoError(t, err)
	tok, _, err := service.IssueAccessToken(*member, time.Minute)
	require.NoError(t, err)

	// success path
	ctx, rec := newContext("Bearer " + tok)
	called := false
	handler := RequireAuth(ident)(func(c echo.Context) error {
		called = true
		u, ok := CurrentUser(c)
		require.True(t, ok)
		require.Equal(t, member.ID, u.ID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err = RequireAuth(ident)(func(echo.Context) error { called = true; return nil })(ctx)
	require.Error(t, err)
	require.False(t, called)

	// invalid token
	ctx, _ = newContext("Bearer garbage")
	err = RequireAuth(ident)(func(echo.Context) error { return nil })(ctx)
	require.Error(t, err)

	// token subject no longer exists
	ghost, _, err := service.IssueAccessToken(model.User{ID: "gone"}, time.Minute)
	require.NoError(t, err)
	ctx, _ = newContext("Bearer " + ghost)
	err = RequireAuth(ident)(func(echo.Context) error { return nil })(ctx)
	require.Error(t, err)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "adminsecret")
	store := docstore.NewMemoryStore()
	users := repository.NewUsers(store)
	ident := service.NewIdentity(users)

	admin, err := users.Create(context.Background(), "admin@example.com", "h")
	require.NoError(t, err)
	require.NoError(t, store.Collection("users").Update(context.Background(), admin.ID, map[string]any{"is_admin": true}))
	member, err := users.Create(context.Background(), "member@example.com", "h")
	require.NoError(t, err)

	adminTok, _, err := service.IssueAccessToken(model.User{ID: admin.ID, IsAdmin: true}, time.Minute)
	require.NoError(t, err)
	memberTok, _, err := service.IssueAccessToken(*member, time.Minute)
	require.NoError(t, err)

	// admin ok
	ctx, rec := newContext("Bearer " + adminTok)
	called := false
	err = RequireAdmin(ident)(func(c echo.Context) error { called = true; return c.String(http.StatusOK, "admin") })(ctx)
	require.NoError(t, err)
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// non-admin should fail
	ctx, _ = newContext("Bearer " + memberTok)
	called = false
	err = RequireAdmin(ident)(func(echo.Context) error { called = true; return nil })(ctx)
	require.Error(t, err)
	require.False(t, called)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusForbidden, he.Code)

	// 令牌宣稱管理員但紀錄非管理員，以當下紀錄為準拒絕
	staleTok, _, err := service.IssueAccessToken(model.User{ID: member.ID, IsAdmin: true}, time.Minute)
	require.NoError(t, err)
	ctx, _ = newContext("Bearer " + staleTok)
	err = RequireAdmin(ident)(func(echo.Context) error { return nil })(ctx)
	require.Error(t, err)
}

func TestCurrentUserMissing(t *testing.T) {
	ctx, _ := newContext("")
	_, ok := CurrentUser(ctx)
	require.False(t, ok)
}
