package access

// CanAccess reports whether role is a member of the required set. An unknown
// role never matches, so a corrupt or missing token degrades to no access
// rather than a crash.
func CanAccess(role Role, required []Role) bool {
	if !role.Known() {
		return false
	}
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// IsStudentOrAdmin gates student-only fetches, e.g. whether the course
// overview should also load enrolment data. Callers use it to decide whether
// to issue a dependent backend call, not to hide UI.
func IsStudentOrAdmin(role Role) bool {
	return role == RoleStudent || role == RoleAdmin
}
