package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLotRequest body para POST /api/lots (registro manual de producto).
type CreateLotRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	Location      string          `json:"location"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    string          `json:"expiry_date"` // YYYY-MM-DD
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// UpdateLotRequest body para PUT /api/lots/:id. Campos nil = sin cambio.
// Quantity no es editable por esta vía: toda variación de cantidad pasa por
// el ledger (movimientos o conciliación).
type UpdateLotRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Category      *string          `json:"category,omitempty"`
	ExpiryDate    *string          `json:"expiry_date,omitempty"`
	Unit          *string          `json:"unit,omitempty"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level,omitempty"`
}

// LotResponse representación HTTP de un Lot.
type LotResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category"`
	Location      string          `json:"location"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    string          `json:"expiry_date"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	LowStock      bool            `json:"low_stock"`
	LastCountDate *time.Time      `json:"last_count_date,omitempty"`
}

// LotListResponse respuesta paginada de lots.
type LotListResponse struct {
	Items []LotResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// GlobalStockResponse vista "stock global por SKU": todos los lots que
// comparten el SKU, el total agregado y el número de ubicaciones distintas.
type GlobalStockResponse struct {
	SKU           string          `json:"sku"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	LocationCount int             `json:"location_count"`
	Lots          []LotResponse   `json:"lots"`
}
