package access

// Role is the closed set of roles issued by the LBU auth service. Anything
// outside the three known values parses to RoleUnknown, which matches no
// required-role set.
type Role string

const (
	RoleUnknown     Role = ""
	RoleGeneralUser Role = "ROLE_GENERAL_USER"
	RoleStudent     Role = "ROLE_STUDENT"
	RoleAdmin       Role = "ROLE_ADMIN"
)

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleGeneralUser:
		return RoleGeneralUser
	case RoleStudent:
		return RoleStudent
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

func (r Role) Known() bool {
	return r == RoleGeneralUser || r == RoleStudent || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
