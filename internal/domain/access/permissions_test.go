package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/bakery-erp/internal/domain/access"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

func TestCanAccess_TablaDePermisos(t *testing.T) {
	assert.True(t, access.CanAccess(entity.RoleAdmin, access.ModuleReporting))
	assert.True(t, access.CanAccess(entity.RoleProduction, access.ModuleInventory))
	assert.False(t, access.CanAccess(entity.RoleProduction, access.ModuleSales))
	assert.True(t, access.CanAccess(entity.RoleWarehouse, access.ModuleProcurement))
	assert.False(t, access.CanAccess(entity.RoleWarehouse, access.ModuleProduction))
	assert.False(t, access.CanAccess(entity.RoleSales, access.ModuleInventory))
	assert.False(t, access.CanAccess(entity.Role("Intern"), access.ModuleInventory), "rol desconocido no accede")
}

func TestModulesFor_DevuelveCopia(t *testing.T) {
	mods := access.ModulesFor(entity.RoleSales)
	assert.Equal(t, []access.Module{access.ModuleSales, access.ModuleReporting}, mods)

	mods[0] = access.ModuleInventory
	assert.False(t, access.CanAccess(entity.RoleSales, access.ModuleInventory), "modificar la copia no altera la tabla")
}

func TestParseModule(t *testing.T) {
	m, ok := access.ParseModule("inventory")
	assert.True(t, ok)
	assert.Equal(t, access.ModuleInventory, m)

	_, ok = access.ParseModule("payroll")
	assert.False(t, ok)
}

func TestNavigationFor(t *testing.T) {
	ids := func(items []access.NavigationItem) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID)
		}
		return out
	}

	assert.Equal(t, []string{"dashboard", "procurement", "inventory", "production", "sales", "reports"},
		ids(access.NavigationFor(entity.RoleAdmin)))
	assert.Equal(t, []string{"dashboard", "procurement", "inventory"},
		ids(access.NavigationFor(entity.RoleWarehouse)))
	assert.Equal(t, []string{"dashboard", "sales", "reports"},
		ids(access.NavigationFor(entity.RoleSales)))
	assert.Empty(t, access.NavigationFor(entity.Role("")))
}

func TestNavigationItem_IsActive(t *testing.T) {
	items := access.NavigationFor(entity.RoleAdmin)
	dashboard, inventory := items[0], items[2]

	assert.True(t, dashboard.IsActive("/"))
	assert.False(t, dashboard.IsActive("/inventory"), "el dashboard no se activa por prefijo")
	assert.True(t, inventory.IsActive("/inventory/batches"))
	assert.True(t, access.SettingsItem.IsActive("/settings/profile"))
}
