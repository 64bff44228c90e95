package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrNotLoggedIn  = errors.New("no hay sesión activa")
	ErrNoWarehouse  = errors.New("no hay bodega seleccionada")
)

// Messager lo implementan los errores que traen un texto apto para mostrar al usuario
// (p. ej. el detail devuelto por el backend).
type Messager interface {
	Message() string
}

// Message texto para el banner de error: el mensaje de usuario si existe en la cadena,
// si no err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var m Messager
	if errors.As(err, &m) {
		return m.Message()
	}
	return err.Error()
}
