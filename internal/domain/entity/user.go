package entity

import "time"

// Roles de la consola admin.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un usuario de la consola de administración.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	FullName     string
	Role         string // ver constantes Role*
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
