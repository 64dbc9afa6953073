package portal

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studenthive/portal/internal/backend"
	"github.com/studenthive/portal/internal/config"
	"github.com/studenthive/portal/internal/httpx"
	"github.com/studenthive/portal/internal/session"
	"go.uber.org/zap"
)

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type profileHandler struct {
	logger *zap.Logger
	auth   *backend.AuthClient
	errs   *errorResponder
}

func NewProfileHandler(auth *backend.AuthClient, store session.Store, cookieCfg *config.SessionConfig, l *zap.Logger) ProfileHandler {
	return &profileHandler{
		logger: l,
		auth:   auth,
		errs:   &errorResponder{logger: l, store: store, cookie: cookieCfg},
	}
}

func (h *profileHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

func (h *profileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.auth.GetUser(ctx, p.Token, p.UserID)
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	user.Password = ""
	httpx.WriteJSON(w, http.StatusOK, user)
}
