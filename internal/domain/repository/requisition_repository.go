package repository

import "github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"

// RequisitionRepository define el puerto de persistencia para Requisition.
type RequisitionRepository interface {
	Create(req *entity.Requisition) error
	GetByID(id string) (*entity.Requisition, error)
	Update(req *entity.Requisition) error
	List(limit, offset int) ([]*entity.Requisition, error)
	CountByStatus(status string) (int, error)
}
