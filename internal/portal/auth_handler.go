package portal

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/studenthive/portal/internal/backend"
	"github.com/studenthive/portal/internal/config"
	"github.com/studenthive/portal/internal/httpx"
	"github.com/studenthive/portal/internal/session"
	"github.com/studenthive/portal/pkg/id"
	"go.uber.org/zap"
)

// Backend message codes whose text is surfaced verbatim to the user.
const (
	codeInvalidCredentials = 4000
	codeAccountNotActive   = 4003
	codeDuplicateUser      = 4006
)

type AuthHandler interface {
	SignIn(w http.ResponseWriter, r *http.Request)
	SignUp(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Routes() chi.Router
}

type authHandler struct {
	logger    *zap.Logger
	auth      *backend.AuthClient
	store     session.Store
	cookieCfg *config.SessionConfig
	validator *validator.Validate
	errs      *errorResponder
}

func NewAuthHandler(auth *backend.AuthClient, store session.Store, cookieCfg *config.SessionConfig, l *zap.Logger) AuthHandler {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &authHandler{
		logger:    l,
		auth:      auth,
		store:     store,
		cookieCfg: cookieCfg,
		validator: v,
		errs:      &errorResponder{logger: l, store: store, cookie: cookieCfg},
	}
}

func (a *authHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/signin", a.SignIn)
	r.Post("/signup", a.SignUp)
	r.Get("/activation/{token}", a.Activate)
	r.Post("/logout", a.Logout)
	return r
}

type signInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (a *authHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req signInRequest
	if !a.decodeBody(w, r, &req) {
		return
	}

	authData, err := a.auth.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		// A rejected sign-in never clears anything: there is no session yet.
		var bad *backend.BadRequestError
		if errors.As(err, &bad) {
			message := backend.CredentialsMessage
			if bad.HasMessage() && (bad.Code == codeInvalidCredentials || bad.Code == codeAccountNotActive) {
				message = bad.Message
			}
			httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrorResponse[any]{
				Code:    httpx.ErrUnauthorized,
				Message: message,
			})
			return
		}
		a.errs.writeUnauthenticated(w, err)
		return
	}

	sid, err := id.NewSessionID()
	if err != nil {
		a.logger.Error("failed to mint session id", zap.Error(err))
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorResponse[any]{
			Code:    httpx.ErrInternal,
			Message: "internal server error",
		})
		return
	}

	if err := a.store.Set(ctx, sid, authData.JWTToken, id.UserID(authData.UserID)); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrorResponse[any]{
			Code:    httpx.ErrInternal,
			Message: "internal server error",
		})
		return
	}

	http.SetCookie(w, sessionCookie(a.cookieCfg, sid))
	httpx.WriteJSON(w, http.StatusOK, authData)
}

type signUpRequest struct {
	Username  string `json:"userName"  validate:"required"`
	Password  string `json:"password"  validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"  validate:"required"`
	Email     string `json:"email"     validate:"required,email"`
}

func (a *authHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var req signUpRequest
	if !a.decodeBody(w, r, &req) {
		return
	}

	created, err := a.auth.CreateUser(ctx, backend.AuthUser{
		UserName:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		var bad *backend.BadRequestError
		if errors.As(err, &bad) {
			message := backend.CredentialsMessage
			if bad.HasMessage() && bad.Code == codeDuplicateUser {
				message = bad.Message
			}
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorResponse[any]{
				Code:    httpx.ErrBadRequest,
				Message: message,
			})
			return
		}
		a.errs.writeUnauthenticated(w, err)
		return
	}

	created.Password = ""
	httpx.WriteJSON(w, http.StatusCreated, created)
}

func (a *authHandler) Activate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	activationToken := chi.URLParam(r, "token")
	msg, err := a.auth.Activate(ctx, activationToken)
	if err != nil {
		var bad *backend.BadRequestError
		if errors.As(err, &bad) {
			httpx.WriteError(w, http.StatusBadRequest, httpx.ErrorResponse[any]{
				Code:    httpx.ErrBadRequest,
				Message: backend.CredentialsMessage,
			})
			return
		}
		a.errs.writeUnauthenticated(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, msg)
}

// Logout clears the session and sends the client back to the root route so
// every view rebuilds from an anonymous state.
func (a *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if cookie, err := r.Cookie(a.cookieCfg.CookieName); err == nil && cookie.Value != "" {
		if err := a.store.Clear(ctx, id.SessionID(cookie.Value)); err != nil {
			a.logger.Error("failed to clear session on logout", zap.Error(err))
		}
	}
	http.SetCookie(w, expiredSessionCookie(a.cookieCfg))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// decodeBody runs the common POST body checks and then validation. Returns
// false once a response has been written.
func (a *authHandler) decodeBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if !decodeJSON(w, r, a.logger, req) {
		return false
	}
	if err := a.validator.Struct(req); err != nil {
		a.logger.Warn("request validation failed", zap.Error(err))
		fields := httpx.ValidationDetails(err)
		httpx.WriteError(w, http.StatusUnprocessableEntity, httpx.ErrorResponse[[]httpx.FieldError]{
			Code:    httpx.ErrValidationFailed,
			Message: "validation failed",
			Details: fields,
		})
		return false
	}
	return true
}
