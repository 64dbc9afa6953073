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

type LibraryHandler interface {
	Books(w http.ResponseWriter, r *http.Request)
	Borrow(w http.ResponseWriter, r *http.Request)
	Return(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type libraryHandler struct {
	logger  *zap.Logger
	library *backend.LibraryClient
	errs    *errorResponder
}

func NewLibraryHandler(library *backend.LibraryClient, store session.Store, cookieCfg *config.SessionConfig, l *zap.Logger) LibraryHandler {
	return &libraryHandler{
		logger:  l,
		library: library,
		errs:    &errorResponder{logger: l, store: store, cookie: cookieCfg},
	}
}

func (h *libraryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/books", h.Books)
	r.Post("/borrow/{isbn}", h.Borrow)
	r.Post("/return/{isbn}", h.Return)
	return r
}

func (h *libraryHandler) Books(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	books, err := h.library.Books(ctx, p.Token)
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, books)
}

func (h *libraryHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	msg, err := h.library.Borrow(ctx, p.Token, chi.URLParam(r, "isbn"))
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msg)
}

func (h *libraryHandler) Return(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	msg, err := h.library.Return(ctx, p.Token, chi.URLParam(r, "isbn"))
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msg)
}
