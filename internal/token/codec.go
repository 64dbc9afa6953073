package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a bearer token is not three
// dot-separated base64url segments with a JSON payload.
var ErrMalformedToken = errors.New("malformed token")

// Decode extracts the claims of a bearer token without verifying its
// signature. Verification happens server-side on every backend call; this
// decode exists only for display and menu gating, so it is a structural
// parse, not a trust boundary.
func Decode(tokenString string) (*Claims, error) {
	var claims Claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return &claims, nil
}
