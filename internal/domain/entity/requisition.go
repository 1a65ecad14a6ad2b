package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una requisición. La máquina de estados es monótona:
// PENDING -> APPROVED -> FULFILLED, o PENDING -> REJECTED. No hay regresiones.
const (
	RequisitionPending   = "PENDING"
	RequisitionApproved  = "APPROVED"
	RequisitionRejected  = "REJECTED"
	RequisitionFulfilled = "FULFILLED"
)

// Requisition es una solicitud interna de material de laboratorio: una cantidad
// de un SKU referenciado vía un Lot concreto al momento de solicitar.
type Requisition struct {
	ID                string
	RequesterName     string
	Department        string
	LotID             string // Lot referenciado al solicitar
	ItemName          string // snapshot para el historial
	QuantityRequested decimal.Decimal
	Status            string
	RequestDate       time.Time

	// Registros explícitos por transición, en lugar de campos sueltos
	// fusionados sobre la requisición.
	Approval    *Approval
	Fulfillment *Fulfillment
}

// Approval registra quién aprobó (o rechazó) y cuándo.
type Approval struct {
	ApprovedBy string
	Date       time.Time
}

// Fulfillment registra la entrega física: quién entrega, quién recibe, la
// firma digital de conformidad y el lote realmente entregado (puede diferir
// del lote implícito en la solicitud; en la entrega se elige el batch físico).
type Fulfillment struct {
	DeliveredBy      string
	ReceivedBy       string
	Date             time.Time
	DigitalSignature bool
	BatchNumber      string
}

// CanTransitionTo valida las transiciones permitidas de la máquina de estados.
func (r *Requisition) CanTransitionTo(status string) bool {
	switch r.Status {
	case RequisitionPending:
		return status == RequisitionApproved || status == RequisitionRejected
	case RequisitionApproved:
		return status == RequisitionFulfilled
	}
	return false
}
