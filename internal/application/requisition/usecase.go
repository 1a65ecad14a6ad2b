// Package requisition implementa el flujo de solicitudes internas de material:
// creación, aprobación (que descuenta stock vía el ledger), rechazo y entrega.
package requisition

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/ledger"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// UseCase casos de uso del flujo de requisiciones.
type UseCase struct {
	repo   repository.RequisitionRepository
	lots   repository.LotRepository
	ledger *ledger.UseCase
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.RequisitionRepository, lots repository.LotRepository, ledgerUC *ledger.UseCase, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, lots: lots, ledger: ledgerUC, log: log}
}

// Create registra una solicitud nueva en estado PENDING. Valida que el Lot
// exista y toma el snapshot del nombre del ítem para el historial.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateRequisitionRequest) (*dto.RequisitionResponse, error) {
	if in.RequesterName == "" || in.Department == "" || in.LotID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.QuantityRequested.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad solicitada debe ser positiva", domain.ErrInvalidInput)
	}
	lot, err := uc.lots.GetByID(in.LotID)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}

	req := &entity.Requisition{
		ID:                uuid.New().String(),
		RequesterName:     in.RequesterName,
		Department:        in.Department,
		LotID:             lot.ID,
		ItemName:          lot.Name,
		QuantityRequested: in.QuantityRequested,
		Status:            entity.RequisitionPending,
		RequestDate:       time.Now(),
	}
	if err := uc.repo.Create(req); err != nil {
		return nil, err
	}
	uc.log.Info().Str("requisition_id", req.ID).Str("item", req.ItemName).Msg("requisición creada")
	return toResponse(req), nil
}

// Approve aprueba una requisición PENDING y descuenta el stock solicitado con
// una SALIDA del ledger. Si no hay stock suficiente la aprobación se rechaza
// completa y la requisición queda PENDING. La actualización de estado ocurre
// después del movimiento: si fallara la escritura del estado, el kardex ya
// registró la salida (no-atomicidad conocida entre ambos almacenes).
func (uc *UseCase) Approve(ctx context.Context, id, approvedBy string) (*dto.RequisitionResponse, error) {
	req, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if !req.CanTransitionTo(entity.RequisitionApproved) {
		return nil, fmt.Errorf("%w: no se puede aprobar una requisición %s", domain.ErrConflict, req.Status)
	}

	_, err = uc.ledger.RegisterMovement(ctx, ledger.MovementInput{
		LotID:    req.LotID,
		Type:     entity.MovementSalida,
		Quantity: req.QuantityRequested,
		Reason:   fmt.Sprintf("Requisición %s - %s (%s)", req.ID, req.RequesterName, req.Department),
		User:     approvedBy,
	})
	if err != nil {
		return nil, err
	}

	req.Status = entity.RequisitionApproved
	req.Approval = &entity.Approval{ApprovedBy: approvedBy, Date: time.Now()}
	if err := uc.repo.Update(req); err != nil {
		return nil, err
	}
	uc.log.Info().Str("requisition_id", req.ID).Str("approved_by", approvedBy).Msg("requisición aprobada")
	return toResponse(req), nil
}

// Reject rechaza una requisición PENDING sin tocar el inventario.
func (uc *UseCase) Reject(ctx context.Context, id, rejectedBy string) (*dto.RequisitionResponse, error) {
	req, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if !req.CanTransitionTo(entity.RequisitionRejected) {
		return nil, fmt.Errorf("%w: no se puede rechazar una requisición %s", domain.ErrConflict, req.Status)
	}

	req.Status = entity.RequisitionRejected
	req.Approval = &entity.Approval{ApprovedBy: rejectedBy, Date: time.Now()}
	if err := uc.repo.Update(req); err != nil {
		return nil, err
	}
	uc.log.Info().Str("requisition_id", req.ID).Str("rejected_by", rejectedBy).Msg("requisición rechazada")
	return toResponse(req), nil
}

// Fulfill registra la entrega física de una requisición APPROVED. Exige
// receptor, firma digital de conformidad y el lote físico entregado; el stock
// ya fue descontado al aprobar.
func (uc *UseCase) Fulfill(ctx context.Context, id, deliveredBy string, in dto.FulfillRequisitionRequest) (*dto.RequisitionResponse, error) {
	if in.ReceivedBy == "" || !in.DigitalSignature || in.BatchNumber == "" {
		return nil, fmt.Errorf("%w: la entrega requiere receptor, firma y lote", domain.ErrInvalidInput)
	}
	req, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	if !req.CanTransitionTo(entity.RequisitionFulfilled) {
		return nil, fmt.Errorf("%w: no se puede entregar una requisición %s", domain.ErrConflict, req.Status)
	}

	req.Status = entity.RequisitionFulfilled
	req.Fulfillment = &entity.Fulfillment{
		DeliveredBy:      deliveredBy,
		ReceivedBy:       in.ReceivedBy,
		Date:             time.Now(),
		DigitalSignature: in.DigitalSignature,
		BatchNumber:      in.BatchNumber,
	}
	if err := uc.repo.Update(req); err != nil {
		return nil, err
	}
	uc.log.Info().Str("requisition_id", req.ID).Str("received_by", in.ReceivedBy).Msg("requisición entregada")
	return toResponse(req), nil
}

// GetByID obtiene una requisición por ID.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.RequisitionResponse, error) {
	req, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return toResponse(req), nil
}

// List lista requisiciones con paginación, más recientes primero.
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.RequisitionListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RequisitionResponse, 0, len(list))
	for _, req := range list {
		items = append(items, *toResponse(req))
	}
	return &dto.RequisitionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toResponse(req *entity.Requisition) *dto.RequisitionResponse {
	resp := &dto.RequisitionResponse{
		ID:                req.ID,
		RequesterName:     req.RequesterName,
		Department:        req.Department,
		LotID:             req.LotID,
		ItemName:          req.ItemName,
		QuantityRequested: req.QuantityRequested,
		Status:            req.Status,
		RequestDate:       req.RequestDate.Format(time.RFC3339),
	}
	if req.Approval != nil {
		resp.Approval = &dto.ApprovalDTO{
			ApprovedBy: req.Approval.ApprovedBy,
			Date:       req.Approval.Date.Format(time.RFC3339),
		}
	}
	if req.Fulfillment != nil {
		resp.Fulfillment = &dto.FulfillmentDTO{
			DeliveredBy:      req.Fulfillment.DeliveredBy,
			ReceivedBy:       req.Fulfillment.ReceivedBy,
			Date:             req.Fulfillment.Date.Format(time.RFC3339),
			DigitalSignature: req.Fulfillment.DigitalSignature,
			BatchNumber:      req.Fulfillment.BatchNumber,
		}
	}
	return resp
}
