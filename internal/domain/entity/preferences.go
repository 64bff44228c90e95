package entity

// Theme preferencia de tema del cliente.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Preferences estado de presentación persistido en el cliente.
type Preferences struct {
	Theme            Theme `json:"theme"`
	SidebarCollapsed bool  `json:"sidebar_collapsed"`
}
