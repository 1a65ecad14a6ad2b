package dto

import "github.com/shopspring/decimal"

// RecipeIngredientDTO línea de la lista de materiales.
type RecipeIngredientDTO struct {
	SKU              string          `json:"sku"`
	Name             string          `json:"name"`
	QuantityRequired decimal.Decimal `json:"quantity_required"`
	Unit             string          `json:"unit"`
}

// CreateRecipeRequest body para POST /api/recipes.
type CreateRecipeRequest struct {
	FinalProductSKU  string                `json:"final_product_sku"`
	FinalProductName string                `json:"final_product_name"`
	Description      string                `json:"description,omitempty"`
	Ingredients      []RecipeIngredientDTO `json:"ingredients"`
	Version          string                `json:"version,omitempty"`
}

// RecipeResponse representación HTTP de una receta.
type RecipeResponse struct {
	ID               string                `json:"id"`
	FinalProductSKU  string                `json:"final_product_sku"`
	FinalProductName string                `json:"final_product_name"`
	Description      string                `json:"description,omitempty"`
	Ingredients      []RecipeIngredientDTO `json:"ingredients"`
	Version          string                `json:"version"`
	Active           bool                  `json:"active"`
}

// CreateOrderRequest body para POST /api/production-orders.
type CreateOrderRequest struct {
	RecipeID       string          `json:"recipe_id"`
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	AssignedTo     string          `json:"assigned_to,omitempty"`
	BatchOutput    string          `json:"batch_output,omitempty"`
}

// UpdateOrderStatusRequest body para POST /api/production-orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status           string           `json:"status"`
	ProducedQuantity *decimal.Decimal `json:"produced_quantity,omitempty"` // al completar
}

// OrderResponse representación HTTP de una orden de producción.
type OrderResponse struct {
	ID               string          `json:"id"`
	RecipeID         string          `json:"recipe_id"`
	ProductName      string          `json:"product_name"`
	TargetQuantity   decimal.Decimal `json:"target_quantity"`
	ProducedQuantity decimal.Decimal `json:"produced_quantity"`
	StartDate        string          `json:"start_date"`
	EndDate          string          `json:"end_date,omitempty"`
	Status           string          `json:"status"`
	AssignedTo       string          `json:"assigned_to,omitempty"`
	BatchOutput      string          `json:"batch_output,omitempty"`
}
