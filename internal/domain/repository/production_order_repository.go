package repository

import "github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"

// ProductionOrderRepository define el puerto de persistencia para órdenes de producción.
type ProductionOrderRepository interface {
	Create(order *entity.ProductionOrder) error
	GetByID(id string) (*entity.ProductionOrder, error)
	Update(order *entity.ProductionOrder) error
	List() ([]*entity.ProductionOrder, error)
}
