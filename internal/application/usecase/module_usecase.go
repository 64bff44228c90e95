package usecase

import (
	"github.com/jhoicas/bakery-erp/internal/domain"
	"github.com/jhoicas/bakery-erp/internal/domain/access"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// ModuleService verifica qué módulos del ERP puede usar un usuario según su rol.
// Es el único punto de la aplicación que consulta la tabla de permisos.
type ModuleService struct{}

// NewModuleService construye el servicio de módulos.
func NewModuleService() *ModuleService {
	return &ModuleService{}
}

// HasModule informa si el rol tiene acceso al módulo (por nombre, sin distinguir mayúsculas).
// Devuelve domain.ErrInvalidInput si el módulo no existe.
func (s *ModuleService) HasModule(role entity.Role, moduleName string) (bool, error) {
	m, ok := access.ParseModule(moduleName)
	if !ok {
		return false, domain.ErrInvalidInput
	}
	return access.CanAccess(role, m), nil
}

// Modules módulos accesibles para el rol.
func (s *ModuleService) Modules(role entity.Role) []access.Module {
	return access.ModulesFor(role)
}

// Navigation elementos de navegación visibles para el rol.
func (s *ModuleService) Navigation(role entity.Role) []access.NavigationItem {
	return access.NavigationFor(role)
}
