package entity

import "strings"

// Role rol del usuario en el ERP; determina los módulos visibles.
type Role string

// Roles válidos para User.
const (
	RoleAdmin      Role = "Admin"
	RoleProduction Role = "Production"
	RoleWarehouse  Role = "Warehouse"
	RoleSales      Role = "Sales"
)

// Roles devuelve todos los roles conocidos.
func Roles() []Role {
	return []Role{RoleAdmin, RoleProduction, RoleWarehouse, RoleSales}
}

// Valid informa si el rol es uno de los conocidos.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProduction, RoleWarehouse, RoleSales:
		return true
	}
	return false
}

// ParseRole normaliza el rol sin distinguir mayúsculas ("admin" → Admin).
// Un rol desconocido se devuelve tal cual con ok=false.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles() {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return Role(s), false
}

// User perfil del usuario tal como lo devuelve el backend al iniciar sesión.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	EmpCode string `json:"emp_code,omitempty"`
	Role    Role   `json:"role"`
}

// Tokens par JWT entregado por el login. El refresh se guarda pero no se rota.
type Tokens struct {
	Access  string
	Refresh string
}
