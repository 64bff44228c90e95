package access

import (
	"slices"
	"strings"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// NavigationItem entrada del menú lateral.
type NavigationItem struct {
	ID    string        `json:"id"`
	Label string        `json:"label"`
	Path  string        `json:"path"`
	Roles []entity.Role `json:"roles"`
}

var allRoles = entity.Roles()

var navigationItems = []NavigationItem{
	{ID: "dashboard", Label: "Dashboard", Path: "/", Roles: allRoles},
	{ID: "procurement", Label: "Procurement", Path: "/procurement", Roles: []entity.Role{entity.RoleAdmin, entity.RoleWarehouse}},
	{ID: "inventory", Label: "Inventory", Path: "/inventory", Roles: []entity.Role{entity.RoleAdmin, entity.RoleProduction, entity.RoleWarehouse}},
	{ID: "production", Label: "Production", Path: "/production", Roles: []entity.Role{entity.RoleAdmin, entity.RoleProduction}},
	{ID: "sales", Label: "Sales & Dist.", Path: "/sales", Roles: []entity.Role{entity.RoleAdmin, entity.RoleSales}},
	{ID: "reports", Label: "Reports", Path: "/reports", Roles: []entity.Role{entity.RoleAdmin, entity.RoleSales}},
}

// SettingsItem va aparte (al pie del menú) y es visible para todos los roles.
var SettingsItem = NavigationItem{ID: "settings", Label: "Settings", Path: "/settings", Roles: allRoles}

// IsActive indica si la ruta corresponde al ítem: el dashboard solo con "/", el resto por prefijo.
func (n NavigationItem) IsActive(path string) bool {
	if n.Path == "/" {
		return path == "/"
	}
	return strings.HasPrefix(path, n.Path)
}

// NavigationFor filtra los ítems visibles para el rol (sin incluir SettingsItem).
func NavigationFor(role entity.Role) []NavigationItem {
	out := make([]NavigationItem, 0, len(navigationItems))
	for _, item := range navigationItems {
		if slices.Contains(item.Roles, role) {
			out = append(out, item)
		}
	}
	return out
}
