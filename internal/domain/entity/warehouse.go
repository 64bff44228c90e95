package entity

// Warehouse bodega del ERP. La bodega seleccionada es contexto global del cliente.
type Warehouse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Code     string `json:"code,omitempty"`
}
