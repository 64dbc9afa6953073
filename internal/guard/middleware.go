package guard

import (
	"context"
	"net/http"
	"net/url"

	"github.com/studenthive/portal/internal/session"
	"github.com/studenthive/portal/internal/token"
	"github.com/studenthive/portal/pkg/id"
	"go.uber.org/zap"
)

// SignInPath is where anonymous navigation attempts are redirected.
const SignInPath = "/signin"

// Principal is the authenticated identity attached to the request context by
// the guard.
type Principal struct {
	SessionID id.SessionID
	Token     string
	UserID    id.UserID
	Claims    *token.Claims
}

type principalContextKey struct{}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*Principal)
	return p, ok
}

type Guard struct {
	store      session.Store
	cookieName string
	logger     *zap.Logger
}

func New(store session.Store, cookieName string, logger *zap.Logger) *Guard {
	return &Guard{store: store, cookieName: cookieName, logger: logger}
}

// RequireSession gates protected routes on session presence, evaluated
// synchronously per navigation attempt. Anonymous requests are redirected to
// sign-in with the originally requested location preserved. The guard does
// not re-check per-role access; role filtering happens at the navigation
// tree, so a deep link can reach a route its role does not expose in the
// menu.
func (g *Guard) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := g.sessionID(r)
		if sid == "" || !g.store.IsAuthenticated(r.Context(), sid) {
			redirectToSignIn(w, r)
			return
		}

		tok, err := g.store.Get(r.Context(), sid)
		if err != nil || tok == "" {
			redirectToSignIn(w, r)
			return
		}
		userID, err := g.store.GetUserID(r.Context(), sid)
		if err != nil {
			redirectToSignIn(w, r)
			return
		}

		// A corrupt token degrades to anonymous claims instead of failing
		// the request; the backends reject it on first use anyway.
		claims, err := token.Decode(tok)
		if err != nil {
			g.logger.Warn("failed to decode session token", zap.Error(err))
			claims = token.Anonymous()
		}

		p := &Principal{SessionID: sid, Token: tok, UserID: userID, Claims: claims}
		ctx := context.WithValue(r.Context(), principalContextKey{}, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (g *Guard) sessionID(r *http.Request) id.SessionID {
	cookie, err := r.Cookie(g.cookieName)
	if err != nil {
		return ""
	}
	return id.SessionID(cookie.Value)
}

func redirectToSignIn(w http.ResponseWriter, r *http.Request) {
	target := SignInPath + "?from=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusFound)
}
