package dto

import "github.com/shopspring/decimal"

// CreateRequisitionRequest body para POST /api/requisitions.
type CreateRequisitionRequest struct {
	RequesterName     string          `json:"requester_name"`
	Department        string          `json:"department"`
	LotID             string          `json:"lot_id"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
}

// FulfillRequisitionRequest body para POST /api/requisitions/:id/fulfill.
// Los tres campos son obligatorios: sin receptor, sin firma o sin lote
// seleccionado la entrega se rechaza.
type FulfillRequisitionRequest struct {
	ReceivedBy       string `json:"received_by"`
	DigitalSignature bool   `json:"digital_signature"`
	BatchNumber      string `json:"batch_number"`
}

// ApprovalDTO registro de aprobación/rechazo.
type ApprovalDTO struct {
	ApprovedBy string `json:"approved_by"`
	Date       string `json:"date"`
}

// FulfillmentDTO registro de entrega.
type FulfillmentDTO struct {
	DeliveredBy      string `json:"delivered_by"`
	ReceivedBy       string `json:"received_by"`
	Date             string `json:"date"`
	DigitalSignature bool   `json:"digital_signature"`
	BatchNumber      string `json:"batch_number"`
}

// RequisitionResponse representación HTTP de una requisición.
type RequisitionResponse struct {
	ID                string          `json:"id"`
	RequesterName     string          `json:"requester_name"`
	Department        string          `json:"department"`
	LotID             string          `json:"lot_id"`
	ItemName          string          `json:"item_name"`
	QuantityRequested decimal.Decimal `json:"quantity_requested"`
	Status            string          `json:"status"`
	RequestDate       string          `json:"request_date"`
	Approval          *ApprovalDTO    `json:"approval,omitempty"`
	Fulfillment       *FulfillmentDTO `json:"fulfillment,omitempty"`
}

// RequisitionListResponse respuesta paginada de requisiciones.
type RequisitionListResponse struct {
	Items []RequisitionResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
