package dto

import (
	"time"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// LoginRequest body de POST /account/login/ en el backend (y de /api/session/login en el BFF).
type LoginRequest struct {
	EmpCode  string `json:"emp_code"`
	Password string `json:"password"`
}

// UserRecord perfil de usuario tal como lo devuelve el backend.
type UserRecord struct {
	ID      FlexString `json:"id"`
	Name    string     `json:"name"`
	Email   string     `json:"email"`
	EmpCode string     `json:"emp_code"`
	Role    string     `json:"role"`
}

// LoginResponse respuesta del backend: par de tokens JWT + perfil.
type LoginResponse struct {
	Access  string     `json:"access"`
	Refresh string     `json:"refresh"`
	User    UserRecord `json:"user"`
}

// SessionResponse estado de la sesión local.
type SessionResponse struct {
	LoggedIn       bool              `json:"logged_in"`
	User           *entity.User      `json:"user,omitempty"`
	Warehouse      *entity.Warehouse `json:"warehouse,omitempty"`
	TokenExpiresAt *time.Time        `json:"token_expires_at,omitempty"`
	TokenExpired   bool              `json:"token_expired"`
}
