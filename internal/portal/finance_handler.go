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

type FinanceHandler interface {
	Account(w http.ResponseWriter, r *http.Request)
	Pay(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type financeHandler struct {
	logger  *zap.Logger
	finance *backend.FinanceClient
	errs    *errorResponder
}

func NewFinanceHandler(finance *backend.FinanceClient, store session.Store, cookieCfg *config.SessionConfig, l *zap.Logger) FinanceHandler {
	return &financeHandler{
		logger:  l,
		finance: finance,
		errs:    &errorResponder{logger: l, store: store, cookie: cookieCfg},
	}
}

func (h *financeHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/account", h.Account)
	r.Post("/invoice/{reference}/pay", h.Pay)
	r.Post("/invoice/{reference}/cancel", h.Cancel)
	return r
}

func (h *financeHandler) Account(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	account, err := h.finance.Account(ctx, p.Token)
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, account)
}

func (h *financeHandler) Pay(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	msg, err := h.finance.PayInvoice(ctx, p.Token, chi.URLParam(r, "reference"))
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msg)
}

func (h *financeHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	msg, err := h.finance.CancelInvoice(ctx, p.Token, chi.URLParam(r, "reference"))
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msg)
}
