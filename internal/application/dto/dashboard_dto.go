package dto

import (
	"github.com/jhoicas/bakery-erp/internal/domain/access"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	User       entity.User             `json:"user"`
	Warehouse  *entity.Warehouse       `json:"warehouse,omitempty"`
	Modules    []access.Module         `json:"modules"`
	Navigation []access.NavigationItem `json:"navigation"`
	ShowKPIs   bool                    `json:"show_kpis"` // solo Admin
	Alerts     *InventoryAlertsDTO     `json:"alerts,omitempty"`
}

// InventoryAlertsDTO alertas de inventario para la bodega activa.
type InventoryAlertsDTO struct {
	LowStock       int    `json:"low_stock"`       // LOW_STOCK + OUT_OF_STOCK
	NearExpiry     int    `json:"near_expiry"`     // lotes que vencen en <= 7 días
	Expired        int    `json:"expired"`         // lotes vencidos
	MovementsToday int    `json:"movements_today"` // movimientos creados hoy
	Error          string `json:"error,omitempty"` // fallo parcial al calcular alertas
}

// PreferencesDTO body de GET/PUT /api/preferences.
type PreferencesDTO struct {
	Theme            entity.Theme `json:"theme"`
	SidebarCollapsed *bool        `json:"sidebar_collapsed,omitempty"`
}

// NavigationResponse respuesta de GET /api/navigation.
type NavigationResponse struct {
	Modules  []access.Module         `json:"modules"`
	Items    []access.NavigationItem `json:"items"`
	Settings access.NavigationItem   `json:"settings"`
	ActiveID string                  `json:"active_id,omitempty"` // ítem que corresponde a ?path=
}
