package domain

import "slices"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

// RoleHierarchy maps a role to the set of roles it is entitled to act as.
var RoleHierarchy = map[Role][]Role{
	RoleAdmin:    {RoleAdmin, RoleManager, RoleEmployee},
	RoleManager:  {RoleManager, RoleEmployee},
	RoleEmployee: {RoleEmployee},
}

// IsAuthorized reports whether the actor's expanded role set overlaps the
// required set. An endpoint requiring only EMPLOYEE is therefore reachable by
// managers and admins as well.
func IsAuthorized(actor Role, required []Role) bool {
	for _, r := range RoleHierarchy[actor] {
		if slices.Contains(required, r) {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	_, ok := RoleHierarchy[r]
	return ok
}
