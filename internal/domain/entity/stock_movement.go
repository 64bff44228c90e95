package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         MovementType = "IN"         // entrada
	MovementTypeOUT        MovementType = "OUT"        // salida
	MovementTypeADJUSTMENT MovementType = "ADJUSTMENT" // ajuste
)

// Valid informa si el tipo es IN, OUT o ADJUSTMENT.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUSTMENT:
		return true
	}
	return false
}

// StockMovement fila del libro de movimientos (append-only desde el cliente).
type StockMovement struct {
	ID              string          `json:"id"`
	Warehouse       string          `json:"warehouse"`
	Batch           string          `json:"batch"`
	ProductName     string          `json:"product_name"`
	MovementType    MovementType    `json:"movement_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
