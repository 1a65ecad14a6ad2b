package dto

import "github.com/shopspring/decimal"

// AuditAdjustRequest solicitud de ajuste por conteo de un Lot puntual.
type AuditAdjustRequest struct {
	LotID           string          `json:"lot_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// CountLineDTO una línea de la planilla de conteo físico.
type CountLineDTO struct {
	LotID           string          `json:"lot_id"`
	CountedQuantity decimal.Decimal `json:"counted_quantity"`
}

// CountSheetRequest planilla completa de conteo para conciliar en bloque.
type CountSheetRequest struct {
	Lines []CountLineDTO `json:"lines"`
}

// AdjustmentDTO resultado de una conciliación: el antes, el después y la
// varianza de un Lot. Es también la entrada de los exports Pulsar/Omie.
type AdjustmentDTO struct {
	LotID       string          `json:"lot_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	BatchNumber string          `json:"batch_number"`
	ExpiryDate  string          `json:"expiry_date"` // YYYY-MM-DD
	OldQuantity decimal.Decimal `json:"old_quantity"`
	NewQuantity decimal.Decimal `json:"new_quantity"`
	Variance    decimal.Decimal `json:"variance"`
	Date        string          `json:"date"` // RFC3339
}
