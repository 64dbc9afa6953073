package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/studenthive/portal/internal/access"
)

// Claims is the decoded payload of an LBU auth token. Field names follow the
// wire format the auth service issues; the registered claims carry subject,
// issuer, issuedAt, expiresAt and the token id.
type Claims struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Roles     string `json:"roles"`
	jwt.RegisteredClaims
}

// Role parses the raw roles claim into the closed role set.
func (c *Claims) Role() access.Role {
	return access.ParseRole(c.Roles)
}

// Anonymous returns the empty claims record used whenever a token cannot be
// decoded. Its role is RoleUnknown, which grants no access.
func Anonymous() *Claims {
	return &Claims{}
}
