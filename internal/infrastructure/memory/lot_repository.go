package memory

import (
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// LotRepository adaptador en memoria de repository.LotRepository.
type LotRepository struct {
	store *Store
}

// NewLotRepository construye el repositorio sobre el almacén compartido.
func NewLotRepository(store *Store) *LotRepository {
	return &LotRepository{store: store}
}

var _ repository.LotRepository = (*LotRepository)(nil)

func (r *LotRepository) Create(lot *entity.Lot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.createLot(lot)
}

func (r *LotRepository) GetByID(id string) (*entity.Lot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.getLotByID(id)
}

func (r *LotRepository) GetByKey(key entity.LotKey) (*entity.Lot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.getLotByKey(key)
}

func (r *LotRepository) Update(lot *entity.Lot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.updateLot(lot)
}

func (r *LotRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.deleteLot(id)
}

func (r *LotRepository) List(limit, offset int) ([]*entity.Lot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listLots(limit, offset), nil
}

func (r *LotRepository) ListAll() ([]*entity.Lot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.sortedLots(), nil
}

func (r *LotRepository) ListBySKU(sku string) ([]*entity.Lot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listLotsBySKU(sku), nil
}

func (r *LotRepository) ListLowStock() ([]*entity.Lot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listLowStock(), nil
}

func (r *LotRepository) ListExpiringBefore(t time.Time) ([]*entity.Lot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.listExpiringBefore(t), nil
}

func (r *LotRepository) AnyAtLocation(location string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.anyAtLocation(location), nil
}
