package nav

import "github.com/studenthive/portal/internal/access"

// Entry is one node of the role-gated navigation tree. A leaf carries a
// route; a branch carries children. The Logout leaf carries no route — the
// client invokes sign-out for it instead of navigating.
type Entry struct {
	Icon     string        `json:"icon,omitempty"`
	Label    string        `json:"label"`
	Route    string        `json:"route,omitempty"`
	Roles    []access.Role `json:"-"`
	Children []Entry       `json:"children,omitempty"`
}

var everyone = []access.Role{access.RoleGeneralUser, access.RoleStudent, access.RoleAdmin}
var studentAndAdmin = []access.Role{access.RoleStudent, access.RoleAdmin}
var adminOnly = []access.Role{access.RoleAdmin}

// Menu returns the full navigation tree before role filtering.
func Menu() []Entry {
	return []Entry{
		{Icon: "home", Label: "Home", Route: "/", Roles: everyone},
		{Icon: "subject", Label: "Course", Roles: everyone, Children: []Entry{
			{Label: "All Courses", Route: "/courses", Roles: everyone},
			{Label: "Enrolled Courses", Route: "/course/enroll", Roles: studentAndAdmin},
			{Label: "Manage Courses", Route: "/admin/courses/management", Roles: adminOnly},
		}},
		{Icon: "account_circle", Label: "Profile", Route: "/profile", Roles: everyone},
		{Icon: "school", Label: "Graduation", Route: "/graduation", Roles: studentAndAdmin},
		{Icon: "account_balance", Label: "Finance", Route: "/finance", Roles: studentAndAdmin},
		{Icon: "library_books", Label: "Library", Roles: studentAndAdmin, Children: []Entry{
			{Label: "View Books", Route: "/library/books", Roles: studentAndAdmin},
			{Label: "New Books", Route: "/admin/library/books", Roles: adminOnly},
			{Label: "All Lends", Route: "/admin/library/lends", Roles: adminOnly},
			{Label: "Student Lends", Route: "/admin/library/student/lends", Roles: adminOnly},
		}},
		{Icon: "exit_to_app", Label: "Logout", Roles: everyone},
	}
}

// Filter keeps entries whose required role set contains role, recursing into
// children. An entry survives only on its own role set; children are
// filtered independently of their parent.
func Filter(entries []Entry, role access.Role) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !access.CanAccess(role, e.Roles) {
			continue
		}
		if len(e.Children) > 0 {
			e.Children = Filter(e.Children, role)
		}
		out = append(out, e)
	}
	return out
}
