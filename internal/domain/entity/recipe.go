package entity

import "github.com/shopspring/decimal"

// RecipeIngredient es una línea de la lista de materiales: SKU y cantidad
// requerida por unidad de producto final.
type RecipeIngredient struct {
	SKU              string
	Name             string
	QuantityRequired decimal.Decimal
	Unit             string
}

// Recipe es la lista de materiales (BOM) de un producto final. Las órdenes de
// producción se crean a partir de una receta activa; las transiciones de orden
// no consumen ingredientes del inventario (seguimiento kanban, no MRP).
type Recipe struct {
	ID               string
	FinalProductSKU  string
	FinalProductName string
	Description      string
	Ingredients      []RecipeIngredient
	Version          string
	Active           bool
}
