package portal

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/studenthive/portal/internal/access"
	"github.com/studenthive/portal/internal/backend"
	"github.com/studenthive/portal/internal/config"
	"github.com/studenthive/portal/internal/httpx"
	"github.com/studenthive/portal/internal/session"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type CourseHandler interface {
	Overview(w http.ResponseWriter, r *http.Request)
	Enrolled(w http.ResponseWriter, r *http.Request)
	Enrol(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type courseHandler struct {
	logger    *zap.Logger
	courses   *backend.CourseClient
	students  *backend.StudentClient
	validator *validator.Validate
	errs      *errorResponder
}

func NewCourseHandler(courses *backend.CourseClient, students *backend.StudentClient, store session.Store, cookieCfg *config.SessionConfig, l *zap.Logger) CourseHandler {
	return &courseHandler{
		logger:    l,
		courses:   courses,
		students:  students,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		errs:      &errorResponder{logger: l, store: store, cookie: cookieCfg},
	}
}

func (h *courseHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Overview)
	r.Get("/enrolled", h.Enrolled)
	r.Post("/enrol", h.Enrol)
	return r
}

type courseOverviewResponse struct {
	Courses             []backend.Course `json:"courses"`
	EnrolledCourseHrefs []string         `json:"enrolledCourseHrefs,omitempty"`
}

// Overview loads the public course list and, for students and admins, the
// caller's enrolment hrefs. The two fetches have no ordering dependency, so
// they fan out concurrently and join before rendering.
func (h *courseHandler) Overview(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		list    *backend.CourseList
		student *backend.Student
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = h.courses.AllCourses(gctx, p.Token)
		return err
	})
	if access.IsStudentOrAdmin(p.Claims.Role()) {
		g.Go(func() error {
			var err error
			student, err = h.students.Detail(gctx, p.Token, p.UserID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	resp := courseOverviewResponse{Courses: list.Courses}
	if student != nil {
		resp.EnrolledCourseHrefs = student.CourseHrefs
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// Enrolled resolves the caller's enrolment hrefs to full course records. The
// second call consumes the first's output, so the two stay sequential.
func (h *courseHandler) Enrolled(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	student, err := h.students.Detail(ctx, p.Token, p.UserID)
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	list, err := h.courses.CoursesByID(ctx, p.Token, courseIDs(student.CourseHrefs))
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, list)
}

type enrolRequest struct {
	CourseHref string `json:"courseHref" validate:"required"`
}

func (h *courseHandler) Enrol(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req enrolRequest
	if !decodeJSON(w, r, h.logger, &req) {
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.WriteError(w, http.StatusUnprocessableEntity, httpx.ErrorResponse[[]httpx.FieldError]{
			Code:    httpx.ErrValidationFailed,
			Message: "validation failed",
			Details: httpx.ValidationDetails(err),
		})
		return
	}

	student, err := h.students.Enrol(ctx, p.Token, p.UserID, req.CourseHref)
	if err != nil {
		h.errs.writeAuthenticated(w, r, p.SessionID, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, student)
}

// courseIDs strips the /courses/ href prefix the student service stores.
func courseIDs(hrefs []string) []string {
	ids := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		ids = append(ids, strings.TrimPrefix(href, "/courses/"))
	}
	return ids
}
