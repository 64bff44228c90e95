package dto

import (
	"time"

	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// Table tabla genérica exportable (una hoja XLSX).
type Table struct {
	Title   string
	Headers []string
	Rows    [][]any
}

// StockReport datos del reporte PDF de existencias de una bodega.
type StockReport struct {
	Warehouse   entity.Warehouse
	GeneratedAt time.Time
	GeneratedBy string
	Balances    []entity.StockBalance
	Batches     []BatchView
}
