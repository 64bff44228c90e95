// Package access contiene la tabla estática de permisos por rol y la navegación visible para cada rol.
package access

import (
	"slices"
	"strings"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// Module módulo funcional del ERP.
type Module string

const (
	ModuleProcurement Module = "Procurement"
	ModuleInventory   Module = "Inventory"
	ModuleProduction  Module = "Production"
	ModuleSales       Module = "Sales"
	ModuleReporting   Module = "Reporting"
)

var modulesByRole = map[entity.Role][]Module{
	entity.RoleAdmin:      {ModuleProcurement, ModuleInventory, ModuleProduction, ModuleSales, ModuleReporting},
	entity.RoleProduction: {ModuleInventory, ModuleProduction},
	entity.RoleWarehouse:  {ModuleProcurement, ModuleInventory},
	entity.RoleSales:      {ModuleSales, ModuleReporting},
}

// CanAccess informa si el rol tiene acceso al módulo. Rol desconocido = sin acceso.
func CanAccess(role entity.Role, module Module) bool {
	return slices.Contains(modulesByRole[role], module)
}

// ModulesFor devuelve una copia de los módulos habilitados para el rol.
func ModulesFor(role entity.Role) []Module {
	return slices.Clone(modulesByRole[role])
}

// ParseModule interpreta el nombre de un módulo sin distinguir mayúsculas.
func ParseModule(s string) (Module, bool) {
	for _, m := range []Module{ModuleProcurement, ModuleInventory, ModuleProduction, ModuleSales, ModuleReporting} {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return "", false
}
