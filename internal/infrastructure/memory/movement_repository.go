package memory

import (
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// MovementRepository adaptador en memoria de repository.MovementRepository.
type MovementRepository struct {
	store *Store
}

// NewMovementRepository construye el repositorio sobre el almacén compartido.
func NewMovementRepository(store *Store) *MovementRepository {
	return &MovementRepository{store: store}
}

var _ repository.MovementRepository = (*MovementRepository)(nil)

func (r *MovementRepository) Create(m *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.createMovement(m)
}

func (r *MovementRepository) List(limit, offset int) ([]*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listMovements(limit, offset), nil
}

func (r *MovementRepository) ListAll() ([]*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.sortedMovements(), nil
}

func (r *MovementRepository) ListByLot(lotID string) ([]*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listMovementsByLot(lotID), nil
}
