package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción (tablero kanban). Monótonos:
// PLANNED -> IN_PROGRESS -> COMPLETED; CANCELLED es terminal desde
// PLANNED o IN_PROGRESS.
const (
	OrderPlanned    = "PLANNED"
	OrderInProgress = "IN_PROGRESS"
	OrderCompleted  = "COMPLETED"
	OrderCancelled  = "CANCELLED"
)

// ProductionOrder es una orden de fabricación creada a partir de una Recipe.
type ProductionOrder struct {
	ID               string
	RecipeID         string
	ProductName      string
	TargetQuantity   decimal.Decimal
	ProducedQuantity decimal.Decimal
	StartDate        time.Time
	EndDate          *time.Time
	Status           string
	AssignedTo       string
	BatchOutput      string // lote asignado al producto terminado
}

// CanTransitionTo valida las transiciones permitidas del kanban.
func (o *ProductionOrder) CanTransitionTo(status string) bool {
	switch o.Status {
	case OrderPlanned:
		return status == OrderInProgress || status == OrderCancelled
	case OrderInProgress:
		return status == OrderCompleted || status == OrderCancelled
	}
	return false
}
