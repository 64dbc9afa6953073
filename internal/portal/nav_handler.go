package portal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studenthive/portal/internal/httpx"
	"github.com/studenthive/portal/internal/nav"
	"go.uber.org/zap"
)

type NavHandler interface {
	Menu(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type navHandler struct {
	logger *zap.Logger
}

func NewNavHandler(l *zap.Logger) NavHandler {
	return &navHandler{logger: l}
}

func (h *navHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Menu)
	return r
}

// Menu renders the navigation tree filtered to the caller's role. An
// unknown role yields an empty menu, never an error.
func (h *navHandler) Menu(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	entries := nav.Filter(nav.Menu(), p.Claims.Role())
	httpx.WriteJSON(w, http.StatusOK, entries)
}
