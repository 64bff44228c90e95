package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus estado del lote según el backend.
type BatchStatus string

const (
	BatchActive   BatchStatus = "ACTIVE"
	BatchExpired  BatchStatus = "EXPIRED"
	BatchDepleted BatchStatus = "DEPLETED"
)

// BatchRegistry lote fabricado de un producto, con seguimiento de vencimiento.
type BatchRegistry struct {
	ID              string          `json:"id"`
	BatchNumber     string          `json:"batch_number"`
	Product         string          `json:"product"`
	Warehouse       string          `json:"warehouse"`
	ManufactureDate *time.Time      `json:"manufacture_date,omitempty"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Status          BatchStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
