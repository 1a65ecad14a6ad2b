package dto

import "github.com/shopspring/decimal"

// RegisterMovementRequest body para POST /api/movements.
// Para ENTRADA: lot_id (template), batch_number del lote recibido.
// Para SALIDA: lot_id.
// Para TRANSFERENCIA: lot_id y target_location distinta de la ubicación origen.
type RegisterMovementRequest struct {
	LotID          string          `json:"lot_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	BatchNumber    string          `json:"batch_number,omitempty"`
	TargetLocation string          `json:"target_location,omitempty"`
	Reason         string          `json:"reason"`
}

// MovementResponse asiento del kardex.
type MovementResponse struct {
	ID             string          `json:"id"`
	LotID          string          `json:"lot_id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Location       string          `json:"location"`
	TargetLocation string          `json:"target_location,omitempty"`
	BatchNumber    string          `json:"batch_number"`
	Date           string          `json:"date"`
	Reason         string          `json:"reason"`
	User           string          `json:"user"`
}

// MovementListResponse respuesta paginada del kardex.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
