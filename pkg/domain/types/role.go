package types

// Role grants permissions to an authenticated user
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleAnalyst Role = "analyst"
	RoleViewer  Role = "viewer"
)

func AllRoles() []Role {
	return []Role{RoleAdmin, RoleAnalyst, RoleViewer}
}

func (r Role) IsValid() bool  { return oneOf(r, AllRoles()) }
func (r Role) String() string { return string(r) }

// CanWrite reports whether the role may create, update or delete records.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleAnalyst
}

func ParseRole(s string) (Role, error) {
	return parseEnum[Role]("role", s)
}
