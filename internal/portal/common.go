package portal

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/studenthive/portal/internal/backend"
	"github.com/studenthive/portal/internal/config"
	"github.com/studenthive/portal/internal/guard"
	"github.com/studenthive/portal/internal/httpx"
	"github.com/studenthive/portal/internal/session"
	"github.com/studenthive/portal/pkg/id"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

func sessionCookie(cfg *config.SessionConfig, sid id.SessionID) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    string(sid),
		Path:     "/",
		Domain:   cfg.CookieDomain,
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: sameSite(cfg.CookieSamesite),
	}
}

func expiredSessionCookie(cfg *config.SessionConfig) *http.Cookie {
	c := sessionCookie(cfg, "")
	c.MaxAge = -1
	return c
}

func sameSite(v string) http.SameSite {
	switch v {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// decodeJSON applies the common POST body checks: content type, size cap,
// strict JSON, no trailing data. Returns false once a response has been
// written.
func decodeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, req any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		httpx.WriteError(w, http.StatusUnsupportedMediaType, httpx.ErrorResponse[any]{
			Code:    httpx.ErrUnsupportedMedia,
			Message: "Content-Type must be application/json",
		})
		return false
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		logger.Warn("failed to decode request body", zap.Error(err))
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorResponse[any]{
			Code:    httpx.ErrInvalidJSON,
			Message: "invalid request body",
		})
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		logger.Warn("trailing data after JSON body", zap.Error(err))
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorResponse[any]{
			Code:    httpx.ErrInvalidJSON,
			Message: "request body must contain a single JSON object",
		})
		return false
	}
	return true
}

// principal pulls the guard's identity out of the request context. Protected
// routes are always mounted behind the guard, so a miss is a wiring bug.
func principal(w http.ResponseWriter, r *http.Request) (*guard.Principal, bool) {
	p, ok := guard.PrincipalFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorResponse[any]{
			Code:    httpx.ErrUnauthorized,
			Message: "authentication required",
		})
		return nil, false
	}
	return p, true
}

// errorResponder translates backend client errors into portal responses.
// The shared policy: a 4xx on any authenticated call means the session is
// invalid or expired, so it is cleared before the error is surfaced.
type errorResponder struct {
	logger *zap.Logger
	store  session.Store
	cookie *config.SessionConfig
}

// writeAuthenticated handles an error from a bearer-authenticated backend
// call made on behalf of sid.
func (e *errorResponder) writeAuthenticated(w http.ResponseWriter, r *http.Request, sid id.SessionID, err error) {
	var bad *backend.BadRequestError
	if errors.As(err, &bad) {
		if clearErr := e.store.Clear(r.Context(), sid); clearErr != nil {
			e.logger.Error("failed to clear rejected session", zap.Error(clearErr))
		}
		http.SetCookie(w, expiredSessionCookie(e.cookie))
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorResponse[any]{
			Code:    httpx.ErrUnauthorized,
			Message: backend.InvalidTokenMessage,
		})
		return
	}
	e.writeUnauthenticated(w, err)
}

// writeUnauthenticated handles an error from a call that carries no session
// to invalidate (sign-in, sign-up, activation).
func (e *errorResponder) writeUnauthenticated(w http.ResponseWriter, err error) {
	var unavailable *backend.UnavailableError
	if errors.As(err, &unavailable) {
		httpx.WriteError(w, http.StatusServiceUnavailable, httpx.ErrorResponse[any]{
			Code:    httpx.ErrUpstream,
			Message: unavailable.Error(),
		})
		return
	}
	e.logger.Error("unexpected backend error", zap.Error(err))
	httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorResponse[any]{
		Code:    httpx.ErrInternal,
		Message: "internal server error",
	})
}
