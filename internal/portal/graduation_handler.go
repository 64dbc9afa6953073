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
	"golang.org/x/sync/errgroup"
)

type GraduationHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type graduationHandler struct {
	logger   *zap.Logger
	students *backend.StudentClient
	courses  *backend.CourseClient
	finance  *backend.FinanceClient
	errs     *errorResponder
}

func NewGraduationHandler(students *backend.StudentClient, courses *backend.CourseClient, finance *backend.FinanceClient, store session.Store, cookieCfg *config.SessionConfig, l *zap.Logger) GraduationHandler {
	return &graduationHandler{
		logger:   l,
		students: students,
		courses:  courses,
		finance:  finance,
		errs:     &errorResponder{logger: l, store: store, cookie: cookieCfg},
	}
}

func (h *graduationHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	return r
}

type graduationResponse struct {
	Student *backend.Student        `json:"student"`
	Courses []backend.Course        `json:"courses"`
	Account *backend.InvoiceAccount `json:"account"`
}

// Get aggregates everything the graduation view needs. The student →
// enrolled-courses chain is dependent and stays sequential; the finance
// account has no ordering dependency on either, so it fans out alongside
// the chain and joins before rendering.
func (h *graduationHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		student *backend.Student
		list    *backend.CourseList
		account *backend.InvoiceAccount
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		student, err = h.students.Detail(gctx, p.Token, p.UserID)
		if err != nil {
			return err
		}
		list, err = h.courses.CoursesByID(gctx, p.Token, courseIDs(student.CourseHrefs))
		return err
	})
	g.Go(func() error {
		var err error
		account, err = h.finance.Account(gctx, p.Token)
		return err
	})
	if err := g.Wait(); err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, graduationResponse{
		Student: student,
		Courses: list.Courses,
		Account: account,
	})
}
