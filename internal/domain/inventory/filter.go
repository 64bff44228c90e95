package inventory

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// fold normaliza mayúsculas/minúsculas (incluye acentos y casos especiales Unicode).
func fold(s string) string {
	return cases.Fold().String(s)
}

// matcher devuelve una función que indica si alguno de los campos contiene el término.
// Término vacío = todo coincide.
func matcher(term string) func(fields ...string) bool {
	t := fold(strings.TrimSpace(term))
	return func(fields ...string) bool {
		if t == "" {
			return true
		}
		for _, f := range fields {
			if strings.Contains(fold(f), t) {
				return true
			}
		}
		return false
	}
}

// FilterMovements filtra por número de referencia, lote o nombre de producto.
func FilterMovements(items []entity.StockMovement, term string) []entity.StockMovement {
	match := matcher(term)
	out := make([]entity.StockMovement, 0, len(items))
	for _, m := range items {
		if match(m.ReferenceNumber, m.Batch, m.ProductName) {
			out = append(out, m)
		}
	}
	return out
}

// FilterBalances filtra por producto.
func FilterBalances(items []entity.StockBalance, term string) []entity.StockBalance {
	match := matcher(term)
	out := make([]entity.StockBalance, 0, len(items))
	for _, b := range items {
		if match(b.Product) {
			out = append(out, b)
		}
	}
	return out
}

// FilterBatches filtra por número de lote o producto.
func FilterBatches(items []entity.BatchRegistry, term string) []entity.BatchRegistry {
	match := matcher(term)
	out := make([]entity.BatchRegistry, 0, len(items))
	for _, b := range items {
		if match(b.BatchNumber, b.Product) {
			out = append(out, b)
		}
	}
	return out
}
