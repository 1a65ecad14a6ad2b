package usecase

import (
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// KardexUseCase consultas de solo lectura sobre el historial de movimientos.
// La escritura del kardex es exclusiva del ledger.
type KardexUseCase struct {
	repo repository.MovementRepository
}

// NewKardexUseCase construye el caso de uso.
func NewKardexUseCase(repo repository.MovementRepository) *KardexUseCase {
	return &KardexUseCase{repo: repo}
}

// List lista el kardex paginado, más recientes primero. Con search filtra por
// SKU, nombre, ubicación o motivo, insensible a mayúsculas y tildes.
func (uc *KardexUseCase) List(limit, offset int, search string) (*dto.MovementListResponse, error) {
	if search == "" {
		list, err := uc.repo.List(limit, offset)
		if err != nil {
			return nil, err
		}
		items := make([]dto.MovementResponse, 0, len(list))
		for _, m := range list {
			items = append(items, *ToMovementResponse(m))
		}
		return &dto.MovementListResponse{
			Items: items,
			Page:  dto.PageResponse{Limit: limit, Offset: offset},
		}, nil
	}

	// Búsqueda: filtra sobre el historial completo y pagina el resultado.
	all, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	matched := make([]*entity.Movement, 0, len(all))
	for _, m := range all {
		if matchesSearch(search, m.SKU, m.Name, m.Location, m.TargetLocation, m.Reason) {
			matched = append(matched, m)
		}
	}
	total := len(matched)
	if offset >= total {
		matched = matched[:0]
	} else {
		end := offset + limit
		if limit <= 0 || end > total {
			end = total
		}
		matched = matched[offset:end]
	}
	items := make([]dto.MovementResponse, 0, len(matched))
	for _, m := range matched {
		items = append(items, *ToMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset, Total: total},
	}, nil
}

// ListByLot lista los asientos de un Lot concreto.
func (uc *KardexUseCase) ListByLot(lotID string) ([]dto.MovementResponse, error) {
	list, err := uc.repo.ListByLot(lotID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *ToMovementResponse(m))
	}
	return items, nil
}

// ToMovementResponse mapea un asiento del kardex a su representación HTTP.
func ToMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:             m.ID,
		LotID:          m.LotID,
		SKU:            m.SKU,
		Name:           m.Name,
		Type:           m.Type,
		Quantity:       m.Quantity,
		Location:       m.Location,
		TargetLocation: m.TargetLocation,
		BatchNumber:    m.BatchNumber,
		Date:           m.Date.Format(time.RFC3339),
		Reason:         m.Reason,
		User:           m.User,
	}
}
