package backend

import "fmt"

// Surfaced messages are fixed contract text the portal shows the user.
const (
	// CredentialsMessage is the generic fallback for a 4xx on sign-in or
	// sign-up when the backend returned no usable structured payload.
	CredentialsMessage = "Invalid username or password. Please check your credentials and try again."
	// InvalidTokenMessage is surfaced when an authenticated call is rejected
	// and the session has been cleared.
	InvalidTokenMessage = "Invalid token provided. Please check your credentials and try again."
)

// UnavailableError covers transport failures and 5xx responses. Never
// retried automatically.
type UnavailableError struct {
	Service string
}

func (e *UnavailableError) Error() string {
	return "LBU " + e.Service + " service error. Please try again later!!"
}

// BadRequestError is any 4xx from a backend. Code and Message are populated
// when the backend returned a structured {code, message} payload and are
// zero-valued otherwise.
type BadRequestError struct {
	Code    int
	Message string
}

func (e *BadRequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend rejected request (%d): %s", e.Code, e.Message)
	}
	return "backend rejected request"
}

// HasMessage reports whether the backend supplied a structured payload.
func (e *BadRequestError) HasMessage() bool {
	return e.Message != ""
}
