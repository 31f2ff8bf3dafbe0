package auth

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the standard account role
	RoleUser UserRole = "user"
	// RoleAdmin grants access to administrative operations
	RoleAdmin UserRole = "admin"
)

// roleHierarchy orders roles by privilege. New roles slot in here and
// every IsAtLeast comparison picks them up.
var roleHierarchy = map[UserRole]int{
	RoleUser:  0,
	RoleAdmin: 1,
}

// IsValid checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	_, ok := roleHierarchy[r]
	return ok
}

// RoleIsAtLeast checks if role meets the minimum required level.
// Unknown roles never satisfy any requirement.
func RoleIsAtLeast(role, minRole UserRole) bool {
	current, ok := roleHierarchy[role]
	if !ok {
		return false
	}

	min, ok := roleHierarchy[minRole]
	if !ok {
		return false
	}

	return current >= min
}

// GetAllRoles returns all predefined roles in hierarchical order
func GetAllRoles() []UserRole {
	return []UserRole{
		RoleUser,
		RoleAdmin,
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, IsValidRole(role)
}
