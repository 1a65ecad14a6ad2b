package entity

import "time"

// Roles válidos para User. Gobiernan qué rutas se ofrecen, no hay enforcement
// criptográfico más allá del gating de rutas admin.
const (
	RoleMasterAdmin = "master_admin"
	RoleAdmin       = "admin"
	RoleCommonUser  = "common_user"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	BukID        string // identificador de RRHH (Buk)
	Role         string // master_admin, admin, common_user
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole valida el rol.
func ValidRole(role string) bool {
	switch role {
	case RoleMasterAdmin, RoleAdmin, RoleCommonUser:
		return true
	}
	return false
}
