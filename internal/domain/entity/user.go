package entity

import "time"

// Roles de usuario en obra.
const (
	RoleAdmin       = "admin"
	RoleAlmacenista = "almacenista" // responsable de almacén
	RoleResidente   = "residente"   // residente de obra
)

// User usuario del sistema. Su ID es la referencia de "responsable" que se
// adjunta a movimientos y ajustes (el núcleo la trata como identificador opaco).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
