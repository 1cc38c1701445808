package user

import "fmt"

// Role represents a user's marketplace role.
type Role string

const (
	RoleUnassigned Role = "UNASSIGNED"
	RoleRenter     Role = "RENTER"
	RoleHost       Role = "HOST"
	RoleAdmin      Role = "ADMIN"
)

// roleTransitions defines the state machine for role assignment. A role is
// chosen exactly once: new accounts start unassigned and move to renter or
// host through the explicit role-selection step. Admin accounts are
// provisioned directly and never change.
var roleTransitions = map[Role][]Role{
	RoleUnassigned: {RoleRenter, RoleHost},
	RoleRenter:     {},
	RoleHost:       {},
	RoleAdmin:      {},
}

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	_, exists := roleTransitions[r]
	return exists
}

// IsAssignable returns true if the role can be chosen through role selection.
func (r Role) IsAssignable() bool {
	return r == RoleRenter || r == RoleHost
}

// CanTransitionTo returns true if a transition from this role to the target
// is allowed.
func (r Role) CanTransitionTo(target Role) bool {
	allowed, exists := roleTransitions[r]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// ParseRole converts a string to a Role, returning an error if invalid.
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
