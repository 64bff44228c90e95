package repository

import "github.com/jhoicas/bakery-erp/internal/domain/entity"

// SessionStateStore define el puerto de persistencia del estado del cliente (DIP):
// tokens, usuario, bodega activa y preferencias.
// Los métodos Load* devuelven nil (sin error) si la clave no existe o si su contenido
// estaba corrupto; en ese caso la clave se elimina.
type SessionStateStore interface {
	AccessToken() (string, error)
	SaveTokens(tokens entity.Tokens) error

	LoadUser() (*entity.User, error)
	SaveUser(user *entity.User) error

	LoadWarehouse() (*entity.Warehouse, error)
	SaveWarehouse(warehouse *entity.Warehouse) error

	LoadPreferences() (entity.Preferences, error)
	SavePreferences(prefs entity.Preferences) error

	// Clear elimina todo el estado persistido (logout).
	Clear() error
}
