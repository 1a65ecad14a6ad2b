package dto

import "github.com/shopspring/decimal"

// ZoneStockDTO total de unidades por zona operativa (widget de barras).
type ZoneStockDTO struct {
	Zone     string          `json:"zone"`
	Quantity decimal.Decimal `json:"quantity"`
}

// DashboardSummaryDTO KPIs del dashboard general.
// TotalUnits suma cantidades de unidades incompatibles entre sí (kg + cajas);
// limitación conocida y deliberadamente preservada, no normaliza por unidad.
type DashboardSummaryDTO struct {
	TotalUnits          decimal.Decimal `json:"total_units"`
	LowStockCount       int             `json:"low_stock_count"`
	PendingRequisitions int             `json:"pending_requisitions"`
	ExpiryRiskCount     int             `json:"expiry_risk_count"`
	StockByZone         []ZoneStockDTO  `json:"stock_by_zone"`
	LowStockItems       []LotResponse   `json:"low_stock_items"`
}
