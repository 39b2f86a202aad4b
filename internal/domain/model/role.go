package model

import "fmt"

// Role determines which dashboard view an identity may access.
type Role string

const (
	RoleLegalOfficer Role = "legal_officer"
	RoleDeveloper    Role = "developer"
	RoleManager      Role = "manager"
)

// ParseRole converts a raw string into a Role, rejecting anything outside
// the three known roles.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleLegalOfficer, RoleDeveloper, RoleManager:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// DashboardPath returns the view path an identity with this role is sent to
// after login, and redirected back to when it requests another role's view.
func (r Role) DashboardPath() string {
	return "/dashboard/" + string(r)
}
