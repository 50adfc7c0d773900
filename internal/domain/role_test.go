package domain

import "testing"

func TestIsAuthorized(t *testing.T) {
	tests := []struct {
		name     string
		actor    Role
		required []Role
		want     bool
	}{
		{"admin accesses admin endpoints", RoleAdmin, []Role{RoleAdmin}, true},
		{"admin inherits manager access", RoleAdmin, []Role{RoleManager}, true},
		{"admin inherits employee access", RoleAdmin, []Role{RoleEmployee}, true},
		{"manager inherits employee access", RoleManager, []Role{RoleEmployee}, true},
		{"manager cannot escalate to admin", RoleManager, []Role{RoleAdmin}, false},
		{"employee cannot escalate to manager", RoleEmployee, []Role{RoleManager}, false},
		{"employee cannot escalate to admin", RoleEmployee, []Role{RoleAdmin}, false},
		{"employee accesses employee endpoints", RoleEmployee, []Role{RoleEmployee}, true},
		{"any listed role suffices", RoleManager, []Role{RoleAdmin, RoleManager}, true},
		{"unknown role is denied", Role("SUPERUSER"), []Role{RoleAdmin, RoleManager, RoleEmployee}, false},
		{"empty requirement denies everyone", RoleAdmin, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAuthorized(tt.actor, tt.required); got != tt.want {
				t.Errorf("IsAuthorized(%s, %v) = %v, want %v", tt.actor, tt.required, got, tt.want)
			}
		})
	}
}

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleManager, RoleEmployee} {
		if !role.Valid() {
			t.Errorf("%s should be valid", role)
		}
	}
	for _, role := range []Role{"", "admin", "SUPERUSER"} {
		if role.Valid() {
			t.Errorf("%q should not be valid", role)
		}
	}
}
