package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleCajero   = "cajero"
	RoleCocinero = "cocinero"
)

// User representa un usuario del sistema (pertenece a una Store).
type User struct {
	ID           string
	StoreID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, cajero, cocinero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
