package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/jhoicas/bakery-erp/internal/domain"
)

// Kind categoría del error: solo se distingue si hubo o no respuesta del servidor.
type Kind int

const (
	// KindTransport la petición no obtuvo respuesta (red caída, timeout, DNS).
	KindTransport Kind = iota + 1
	// KindServer el servidor respondió con un status fuera de 2xx.
	KindServer
)

// MsgNoResponse mensaje para fallos de transporte.
const MsgNoResponse = "Sin respuesta del servidor. Intente de nuevo más tarde."

// Error error de una llamada al backend.
type Error struct {
	Kind       Kind
	Method     string
	Path       string
	StatusCode int    // solo KindServer
	Detail     string // mensaje legible reportado por el servidor (puede ser vacío)
	Err        error  // causa de transporte (solo KindTransport)
}

func (e *Error) Error() string {
	if e.Kind == KindTransport {
		return fmt.Sprintf("api: %s %s: sin respuesta: %v", e.Method, e.Path, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("api: %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api: %s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
}

// Message texto para el banner de error de la vista.
func (e *Error) Message() string {
	if e.Kind == KindTransport {
		return MsgNoResponse
	}
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// HasResponse true si el servidor respondió (error reportado por el servidor).
func (e *Error) HasResponse() bool { return e.Kind == KindServer }

// ServerDetail mensaje reportado por el servidor ("" si no hay).
func (e *Error) ServerDetail() string { return e.Detail }

// Unwrap expone la causa de transporte o el error de dominio equivalente al status.
func (e *Error) Unwrap() error {
	if e.Kind == KindTransport {
		return e.Err
	}
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	}
	return nil
}

func newServerError(method, path string, status int, body []byte) *Error {
	return &Error{
		Kind:       KindServer,
		Method:     method,
		Path:       path,
		StatusCode: status,
		Detail:     extractDetail(body),
	}
}

// extractDetail busca un mensaje legible en el cuerpo: {"detail": "..."}, {"message": "..."},
// {"non_field_errors": ["..."]} o el primer error de campo {"campo": ["..."]} (orden alfabético).
func extractDetail(body []byte) string {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"detail", "message", "error", "non_field_errors"} {
		if msg := firstMessage(obj[key]); msg != "" {
			return msg
		}
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msg := firstMessage(obj[k]); msg != "" {
			return k + ": " + msg
		}
	}
	return ""
}

func firstMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return strings.TrimSpace(list[0])
	}
	return ""
}
