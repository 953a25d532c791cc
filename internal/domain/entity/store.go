package entity

import "time"

// Store representa una tienda o sucursal del negocio (multi-tienda).
// Prefix se usa para los números de orden; si está vacío se deriva del nombre.
type Store struct {
	ID        string
	Name      string
	Prefix    string
	Address   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
