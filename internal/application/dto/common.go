package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Paginated sobre de paginación del backend (estilo DRF).
type Paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// DecodeList acepta tanto el sobre paginado {results: [...]} como un arreglo JSON plano.
func DecodeList[T any](raw []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decodificar lista: %w", err)
		}
		return items, nil
	}
	var page Paginated[T]
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("decodificar página: %w", err)
	}
	if page.Results == nil {
		return []T{}, nil
	}
	return page.Results, nil
}

// FlexString acepta un identificador JSON que puede venir como string o como número.
type FlexString string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = FlexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("identificador inválido: %s", s)
	}
	*f = FlexString(n.String())
	return nil
}

// String devuelve el valor como string.
func (f FlexString) String() string { return string(f) }
