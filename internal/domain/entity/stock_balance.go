package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceStatus estado derivado del saldo (lo calcula el backend).
type BalanceStatus string

const (
	BalanceInStock    BalanceStatus = "IN_STOCK"
	BalanceLowStock   BalanceStatus = "LOW_STOCK"
	BalanceOutOfStock BalanceStatus = "OUT_OF_STOCK"
	BalanceUnknown    BalanceStatus = "UNKNOWN"
)

// NeedsAttention true para saldos bajos o agotados.
func (s BalanceStatus) NeedsAttention() bool {
	return s == BalanceLowStock || s == BalanceOutOfStock
}

// StockBalance saldo disponible de un producto en una bodega (solo lectura).
type StockBalance struct {
	ID             string          `json:"id"`
	Product        string          `json:"product"`
	Warehouse      string          `json:"warehouse"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	Status         BalanceStatus   `json:"status"`
	LastUpdated    string          `json:"last_updated,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
