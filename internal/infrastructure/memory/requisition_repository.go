package memory

import (
	"sort"
	"sync"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// RequisitionRepository adaptador en memoria de repository.RequisitionRepository.
type RequisitionRepository struct {
	mu   sync.RWMutex
	byID map[string]*entity.Requisition
}

// NewRequisitionRepository construye el repositorio.
func NewRequisitionRepository() *RequisitionRepository {
	return &RequisitionRepository{byID: make(map[string]*entity.Requisition)}
}

var _ repository.RequisitionRepository = (*RequisitionRepository)(nil)

func cloneRequisition(r *entity.Requisition) *entity.Requisition {
	c := *r
	if r.Approval != nil {
		a := *r.Approval
		c.Approval = &a
	}
	if r.Fulfillment != nil {
		f := *r.Fulfillment
		c.Fulfillment = &f
	}
	return &c
}

func (r *RequisitionRepository) Create(req *entity.Requisition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[req.ID]; ok {
		return domain.ErrDuplicate
	}
	r.byID[req.ID] = cloneRequisition(req)
	return nil
}

func (r *RequisitionRepository) GetByID(id string) (*entity.Requisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	req, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneRequisition(req), nil
}

func (r *RequisitionRepository) Update(req *entity.Requisition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[req.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[req.ID] = cloneRequisition(req)
	return nil
}

// List devuelve requisiciones en orden de fecha de solicitud descendente.
func (r *RequisitionRepository) List(limit, offset int) ([]*entity.Requisition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Requisition, 0, len(r.byID))
	for _, req := range r.byID {
		all = append(all, cloneRequisition(req))
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].RequestDate.After(all[j].RequestDate)
	})
	if offset >= len(all) {
		return []*entity.Requisition{}, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *RequisitionRepository) CountByStatus(status string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, req := range r.byID {
		if req.Status == status {
			n++
		}
	}
	return n, nil
}
