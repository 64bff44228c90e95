package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bakery-erp/internal/application/dto"
	"github.com/jhoicas/bakery-erp/internal/application/ports"
	"github.com/jhoicas/bakery-erp/internal/domain/entity"
)

// Service capa de servicio de inventario: sin estado. Llama a los gateways y normaliza
// los registros crudos del backend a entidades de dominio.
type Service struct {
	api ports.InventoryAPI
	now func() time.Time
}

// NewService construye el servicio. now puede ser nil (usa time.Now).
func NewService(api ports.InventoryAPI, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{api: api, now: now}
}

// Movements lista y normaliza los movimientos de la bodega.
func (s *Service) Movements(ctx context.Context, warehouseID string) ([]entity.StockMovement, error) {
	records, err := s.api.ListMovements(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	out := make([]entity.StockMovement, 0, len(records))
	for i := range records {
		out = append(out, s.normalizeMovement(&records[i]))
	}
	return out, nil
}

// CreateMovement crea el movimiento en el backend y devuelve el registro normalizado.
func (s *Service) CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (*entity.StockMovement, error) {
	rec, err := s.api.CreateMovement(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("crear movimiento: %w", err)
	}
	m := s.normalizeMovement(rec)
	return &m, nil
}

// Balances lista y normaliza los saldos de la bodega.
func (s *Service) Balances(ctx context.Context, warehouseID string) ([]entity.StockBalance, error) {
	records, err := s.api.ListBalances(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("listar saldos: %w", err)
	}
	out := make([]entity.StockBalance, 0, len(records))
	for i := range records {
		out = append(out, s.normalizeBalance(&records[i]))
	}
	return out, nil
}

// Batches lista y normaliza los lotes de la bodega.
func (s *Service) Batches(ctx context.Context, warehouseID string) ([]entity.BatchRegistry, error) {
	records, err := s.api.ListBatches(ctx, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	out := make([]entity.BatchRegistry, 0, len(records))
	for i := range records {
		out = append(out, s.normalizeBatch(&records[i]))
	}
	return out, nil
}

func (s *Service) normalizeMovement(r *dto.MovementRecord) entity.StockMovement {
	created := parseTimestamp(r.CreatedAt)
	if created.IsZero() {
		created = s.now()
	}
	return entity.StockMovement{
		ID:              r.ID.String(),
		Warehouse:       r.Warehouse.String(),
		Batch:           r.Batch.String(),
		ProductName:     r.ProductName,
		MovementType:    entity.MovementType(strings.ToUpper(strings.TrimSpace(r.MovementType))),
		Quantity:        ParseQuantity(r.Quantity),
		ReferenceNumber: r.ReferenceNumber,
		Notes:           r.Notes,
		CreatedAt:       created,
		UpdatedAt:       parseTimestamp(r.UpdatedAt),
	}
}

func (s *Service) normalizeBalance(r *dto.BalanceRecord) entity.StockBalance {
	status := entity.BalanceStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
	if status == "" {
		status = entity.BalanceUnknown
	}
	return entity.StockBalance{
		ID:             r.ID.String(),
		Product:        r.Product,
		Warehouse:      r.Warehouse,
		QuantityOnHand: ParseQuantity(r.QuantityOnHand),
		Status:         status,
		LastUpdated:    r.LastUpdated,
		CreatedAt:      parseTimestamp(r.CreatedAt),
		UpdatedAt:      parseTimestamp(r.UpdatedAt),
	}
}

func (s *Service) normalizeBatch(r *dto.BatchRecord) entity.BatchRegistry {
	status := entity.BatchStatus(strings.ToUpper(strings.TrimSpace(r.Status)))
	if status == "" {
		status = entity.BatchActive
	}
	return entity.BatchRegistry{
		ID:              r.ID.String(),
		BatchNumber:     r.BatchNumber,
		Product:         r.Product,
		Warehouse:       r.Warehouse,
		ManufactureDate: ParseDate(r.ManufactureDate),
		ExpiryDate:      ParseDate(r.ExpiryDate),
		Quantity:        ParseQuantity(r.Quantity),
		Status:          status,
		CreatedAt:       parseTimestamp(r.CreatedAt),
		UpdatedAt:       parseTimestamp(r.UpdatedAt),
	}
}

// ParseQuantity convierte una cantidad JSON (string decimal, número o null) a decimal.
// Valores ausentes o no parseables quedan en cero.
func ParseQuantity(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return decimal.Zero
	}
	text := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero
		}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate acepta YYYY-MM-DD o RFC 3339. Vacío o inválido → nil.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseTimestamp(s string) time.Time {
	if t := ParseDate(s); t != nil {
		return *t
	}
	return time.Time{}
}
