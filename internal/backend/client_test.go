package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/studenthive/portal/internal/backend"
)

const testTimeout = 2 * time.Second

func TestCourseClientAllCourses(t *testing.T) {
	t.Run("decodes the course list and sends the bearer header", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "/courses", r.URL.Path)
			_ = json.NewEncoder(w).Encode(backend.CourseList{Courses: []backend.Course{
				{IDHref: "/courses/1", Title: "Distributed Systems", Fees: 1200, DurationInDays: 90},
			}})
		}))
		defer srv.Close()

		client := backend.NewCourseClient(srv.URL, testTimeout, zap.NewNop())
		list, err := client.AllCourses(context.Background(), "tok-123")
		require.NoError(t, err)
		require.Len(t, list.Courses, 1)
		assert.Equal(t, "Distributed Systems", list.Courses[0].Title)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("4xx with structured payload yields BadRequestError with the verbatim message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(backend.Message{Code: 4000, Message: "Invalid credentials"})
		}))
		defer srv.Close()

		client := backend.NewCourseClient(srv.URL, testTimeout, zap.NewNop())
		_, err := client.AllCourses(context.Background(), "tok-123")

		var bad *backend.BadRequestError
		require.ErrorAs(t, err, &bad)
		assert.Equal(t, 4000, bad.Code)
		assert.Equal(t, "Invalid credentials", bad.Message)
		assert.True(t, bad.HasMessage())
	})

	t.Run("4xx without a payload yields an empty BadRequestError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := backend.NewCourseClient(srv.URL, testTimeout, zap.NewNop())
		_, err := client.AllCourses(context.Background(), "tok-123")

		var bad *backend.BadRequestError
		require.ErrorAs(t, err, &bad)
		assert.False(t, bad.HasMessage())
	})

	t.Run("5xx yields UnavailableError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := backend.NewCourseClient(srv.URL, testTimeout, zap.NewNop())
		_, err := client.AllCourses(context.Background(), "tok-123")

		var unavailable *backend.UnavailableError
		require.ErrorAs(t, err, &unavailable)
		assert.Equal(t, "LBU Course service error. Please try again later!!", err.Error())
	})

	t.Run("unreachable backend yields UnavailableError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		client := backend.NewCourseClient(srv.URL, testTimeout, zap.NewNop())
		_, err := client.AllCourses(context.Background(), "tok-123")

		var unavailable *backend.UnavailableError
		require.ErrorAs(t, err, &unavailable)
	})
}

func TestAuthClientSignIn(t *testing.T) {
	t.Run("posts credentials without a bearer header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/auth/login", r.URL.Path)
			assert.Empty(t, r.Header.Get("Authorization"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "jane.doe", body["userName"])
			assert.Equal(t, "secret", body["password"])

			_ = json.NewEncoder(w).Encode(backend.JWTToken{JWTToken: "h.p.s", UserID: "42"})
		}))
		defer srv.Close()

		client := backend.NewAuthClient(srv.URL, testTimeout, zap.NewNop())
		tok, err := client.SignIn(context.Background(), "jane.doe", "secret")
		require.NoError(t, err)
		assert.Equal(t, "h.p.s", tok.JWTToken)
		assert.Equal(t, "42", tok.UserID)
	})

	t.Run("surfaces per-service unavailable text", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		client := backend.NewAuthClient(srv.URL, testTimeout, zap.NewNop())
		_, err := client.SignIn(context.Background(), "jane.doe", "secret")
		require.Error(t, err)
		assert.Equal(t, "LBU Auth service error. Please try again later!!", err.Error())
	})
}

func TestStudentClientDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/student", r.URL.Path)
		assert.Equal(t, "/auth/user/42", r.URL.Query().Get("authUserHref"))
		_ = json.NewEncoder(w).Encode(backend.Student{
			ID:           "s-1",
			AuthUserHref: "/auth/user/42",
			CourseHrefs:  []string{"/courses/1", "/courses/7"},
		})
	}))
	defer srv.Close()

	client := backend.NewStudentClient(srv.URL, testTimeout, zap.NewNop())
	student, err := client.Detail(context.Background(), "tok", "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"/courses/1", "/courses/7"}, student.CourseHrefs)
}

func TestFinanceClientInvoiceOps(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(backend.Message{Code: 2000, Message: "ok"})
	}))
	defer srv.Close()

	client := backend.NewFinanceClient(srv.URL, testTimeout, zap.NewNop())

	_, err := client.PayInvoice(context.Background(), "tok", "INV-9")
	require.NoError(t, err)
	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, "/finance/invoice/INV-9/pay", gotPath)

	_, err = client.CancelInvoice(context.Background(), "tok", "INV-9")
	require.NoError(t, err)
	assert.Equal(t, "DELETE", gotMethod)
	assert.Equal(t, "/finance/invoice/INV-9/cancel", gotPath)
}

func TestLibraryClientBorrowReturn(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, "POST", r.Method)
		_ = json.NewEncoder(w).Encode(backend.Message{Code: 2000, Message: "ok"})
	}))
	defer srv.Close()

	client := backend.NewLibraryClient(srv.URL, testTimeout, zap.NewNop())

	_, err := client.Borrow(context.Background(), "tok", "978-0134190440")
	require.NoError(t, err)
	assert.Equal(t, "/library/student/borrow/978-0134190440", gotPath)

	_, err = client.Return(context.Background(), "tok", "978-0134190440")
	require.NoError(t, err)
	assert.Equal(t, "/library/student/return/978-0134190440", gotPath)
}
