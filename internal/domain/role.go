package domain

// RoleName is the role label carried inside issued credentials.
type RoleName string

const (
	RoleAdministrator RoleName = "ADMINISTRADOR"
	RoleClient        RoleName = "CLIENTE"
)

// Valid reports whether the name is one of the known roles.
func (r RoleName) Valid() bool {
	return r == RoleAdministrator || r == RoleClient
}

// Role is a row of the roles table.
type Role struct {
	ID   int64
	Name RoleName
}
