package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto.
const (
	CategoryRawMaterial   = "Materia Prima"
	CategoryFinishedGood  = "Producto Terminado"
	CategoryLabSupply     = "Material de Laboratorio"
	CategoryWorkInProcess = "Producto en Proceso (WIP)"
)

// Lot representa una partida de inventario: una cantidad de un SKU, de un lote
// de fabricación concreto, en una ubicación concreta. Un mismo SKU puede tener
// muchos Lots (distinto lote o distinta ubicación); la clave natural
// (SKU, BatchNumber, Location) decide si una entrada se fusiona con un Lot
// existente o crea uno nuevo.
type Lot struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Category      string
	Location      string
	BatchNumber   string
	ExpiryDate    time.Time
	Quantity      decimal.Decimal // invariante: nunca negativa
	Unit          string          // kg, gr, litros, unidades, cajas...
	MinStockLevel decimal.Decimal // Quantity <= MinStockLevel => alerta de stock bajo
	LastCountDate *time.Time      // última conciliación física, nil si nunca
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Key devuelve la clave natural (SKU, BatchNumber, Location) del Lot.
func (l *Lot) Key() LotKey {
	return LotKey{SKU: l.SKU, BatchNumber: l.BatchNumber, Location: l.Location}
}

// IsLowStock indica si el Lot está en o bajo su nivel mínimo (el borde cuenta).
func (l *Lot) IsLowStock() bool {
	return l.Quantity.LessThanOrEqual(l.MinStockLevel)
}

// ExpiresBefore indica si el Lot vence antes del instante dado.
func (l *Lot) ExpiresBefore(t time.Time) bool {
	return !l.ExpiryDate.IsZero() && l.ExpiryDate.Before(t)
}

// LotKey es la clave compuesta usada como índice de búsqueda O(1) en los
// repositorios (los tres campos deben coincidir exactamente).
type LotKey struct {
	SKU         string
	BatchNumber string
	Location    string
}
