package models

// Role is the closed set of user roles.
type Role string

const (
	RoleRegistered    Role = "registered"
	RoleAdministrator Role = "administrator"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleRegistered || r == RoleAdministrator
}

// User is the persisted identity record. PasswordHash and Salt never leave
// the repository/service layer.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Salt         string `db:"salt"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	BirthDate    string `db:"birth_date"`
	Role         Role   `db:"role"`
	Active       bool   `db:"active"`
}

// Principal is the snapshot of an authenticated user attached to a session.
type Principal struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}
