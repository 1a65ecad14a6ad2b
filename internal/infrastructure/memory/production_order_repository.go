package memory

import (
	"sort"
	"sync"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// ProductionOrderRepository adaptador en memoria de
// repository.ProductionOrderRepository.
type ProductionOrderRepository struct {
	mu   sync.RWMutex
	byID map[string]*entity.ProductionOrder
}

// NewProductionOrderRepository construye el repositorio.
func NewProductionOrderRepository() *ProductionOrderRepository {
	return &ProductionOrderRepository{byID: make(map[string]*entity.ProductionOrder)}
}

var _ repository.ProductionOrderRepository = (*ProductionOrderRepository)(nil)

func cloneOrder(o *entity.ProductionOrder) *entity.ProductionOrder {
	c := *o
	if o.EndDate != nil {
		d := *o.EndDate
		c.EndDate = &d
	}
	return &c
}

func (r *ProductionOrderRepository) Create(order *entity.ProductionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[order.ID]; ok {
		return domain.ErrDuplicate
	}
	r.byID[order.ID] = cloneOrder(order)
	return nil
}

func (r *ProductionOrderRepository) GetByID(id string) (*entity.ProductionOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(order), nil
}

func (r *ProductionOrderRepository) Update(order *entity.ProductionOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[order.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[order.ID] = cloneOrder(order)
	return nil
}

// List devuelve órdenes en orden de fecha de inicio descendente.
func (r *ProductionOrderRepository) List() ([]*entity.ProductionOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.ProductionOrder, 0, len(r.byID))
	for _, order := range r.byID {
		all = append(all, cloneOrder(order))
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StartDate.After(all[j].StartDate)
	})
	return all, nil
}
