package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studenthive/portal/internal/access"
	"github.com/studenthive/portal/internal/guard"
	"github.com/studenthive/portal/pkg/id"
)

type fakeStore struct {
	tokens  map[id.SessionID]string
	userIDs map[id.SessionID]id.UserID
	cleared []id.SessionID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tokens:  make(map[id.SessionID]string),
		userIDs: make(map[id.SessionID]id.UserID),
	}
}

func (f *fakeStore) Set(_ context.Context, sid id.SessionID, token string, userID id.UserID) error {
	f.tokens[sid] = token
	f.userIDs[sid] = userID
	return nil
}

func (f *fakeStore) Get(_ context.Context, sid id.SessionID) (string, error) {
	return f.tokens[sid], nil
}

func (f *fakeStore) GetUserID(_ context.Context, sid id.SessionID) (id.UserID, error) {
	return f.userIDs[sid], nil
}

func (f *fakeStore) Clear(_ context.Context, sid id.SessionID) error {
	f.cleared = append(f.cleared, sid)
	delete(f.tokens, sid)
	delete(f.userIDs, sid)
	return nil
}

func (f *fakeStore) IsAuthenticated(_ context.Context, sid id.SessionID) bool {
	return f.tokens[sid] != ""
}

const cookieName = "portal_sid"

func mintToken(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    "jane.doe",
		"userId": "42",
		"roles":  role,
	}).SignedString([]byte("unit-test-key"))
	require.NoError(t, err)
	return signed
}

func TestRequireSession(t *testing.T) {
	t.Run("anonymous is redirected to sign-in with the original location", func(t *testing.T) {
		g := guard.New(newFakeStore(), cookieName, zap.NewNop())
		handler := g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run for anonymous requests")
		}))

		req := httptest.NewRequest("GET", "/api/courses?page=2", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/signin?from=%2Fapi%2Fcourses%3Fpage%3D2", rec.Header().Get("Location"))
	})

	t.Run("cleared session is redirected like a fresh visitor", func(t *testing.T) {
		store := newFakeStore()
		sid := id.SessionID("sid-1")
		require.NoError(t, store.Set(context.Background(), sid, mintToken(t, "ROLE_STUDENT"), "42"))
		require.NoError(t, store.Clear(context.Background(), sid))

		g := guard.New(store, cookieName, zap.NewNop())
		handler := g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run after clear")
		}))

		req := httptest.NewRequest("GET", "/api/finance/account", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: string(sid)})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/signin?from=%2Fapi%2Ffinance%2Faccount", rec.Header().Get("Location"))
	})

	t.Run("authenticated request carries the principal", func(t *testing.T) {
		store := newFakeStore()
		sid := id.SessionID("sid-2")
		tok := mintToken(t, "ROLE_STUDENT")
		require.NoError(t, store.Set(context.Background(), sid, tok, "42"))

		g := guard.New(store, cookieName, zap.NewNop())
		var seen *guard.Principal
		handler := g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := guard.PrincipalFromContext(r.Context())
			require.True(t, ok)
			seen = p
		}))

		req := httptest.NewRequest("GET", "/api/courses", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: string(sid)})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, sid, seen.SessionID)
		assert.Equal(t, tok, seen.Token)
		assert.Equal(t, id.UserID("42"), seen.UserID)
		assert.Equal(t, access.RoleStudent, seen.Claims.Role())
	})

	t.Run("corrupt token degrades to anonymous claims, not a crash", func(t *testing.T) {
		store := newFakeStore()
		sid := id.SessionID("sid-3")
		require.NoError(t, store.Set(context.Background(), sid, "not-a-token", "42"))

		g := guard.New(store, cookieName, zap.NewNop())
		var seen *guard.Principal
		handler := g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := guard.PrincipalFromContext(r.Context())
			require.True(t, ok)
			seen = p
		}))

		req := httptest.NewRequest("GET", "/api/nav", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: string(sid)})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, access.RoleUnknown, seen.Claims.Role())
	})

	t.Run("guard does not re-check per-role access", func(t *testing.T) {
		// Deep links to routes the menu hides are still served; role
		// filtering lives in the navigation tree only.
		store := newFakeStore()
		sid := id.SessionID("sid-4")
		require.NoError(t, store.Set(context.Background(), sid, mintToken(t, "ROLE_GENERAL_USER"), "42"))

		g := guard.New(store, cookieName, zap.NewNop())
		called := false
		handler := g.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest("GET", "/api/finance/account", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: string(sid)})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.True(t, called)
	})
}
