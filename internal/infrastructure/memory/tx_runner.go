package memory

import (
	"context"
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// TxRunner unidad atómica en memoria: sostiene el lock exclusivo del Store
// durante fn y restaura un snapshot si fn falla. Dentro de fn los repositorios
// operan sin lock propio (el lock ya está tomado).
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el almacén compartido.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn bajo el lock exclusivo del Store.
func (t *TxRunner) Run(ctx context.Context, fn func(lots repository.LotRepository, movements repository.MovementRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	lots, byKey, movements := t.store.snapshot()
	if err := fn(&txLotRepository{store: t.store}, &txMovementRepository{store: t.store}); err != nil {
		t.store.restore(lots, byKey, movements)
		return err
	}
	return nil
}

// txLotRepository vista sin lock del repositorio de lotes, válida solo dentro
// de Run.
type txLotRepository struct {
	store *Store
}

var _ repository.LotRepository = (*txLotRepository)(nil)

func (r *txLotRepository) Create(lot *entity.Lot) error             { return r.store.createLot(lot) }
func (r *txLotRepository) GetByID(id string) (*entity.Lot, error)   { return r.store.getLotByID(id) }
func (r *txLotRepository) Update(lot *entity.Lot) error             { return r.store.updateLot(lot) }
func (r *txLotRepository) Delete(id string) error                   { return r.store.deleteLot(id) }
func (r *txLotRepository) ListAll() ([]*entity.Lot, error)          { return r.store.sortedLots(), nil }
func (r *txLotRepository) ListBySKU(s string) ([]*entity.Lot, error) {
	return r.store.listLotsBySKU(s), nil
}
func (r *txLotRepository) GetByKey(key entity.LotKey) (*entity.Lot, error) {
	return r.store.getLotByKey(key)
}
func (r *txLotRepository) List(limit, offset int) ([]*entity.Lot, error) {
	return r.store.listLots(limit, offset), nil
}
func (r *txLotRepository) ListLowStock() ([]*entity.Lot, error) {
	return r.store.listLowStock(), nil
}
func (r *txLotRepository) ListExpiringBefore(t time.Time) ([]*entity.Lot, error) {
	return r.store.listExpiringBefore(t), nil
}
func (r *txLotRepository) AnyAtLocation(location string) (bool, error) {
	return r.store.anyAtLocation(location), nil
}

// txMovementRepository vista sin lock del kardex, válida solo dentro de Run.
type txMovementRepository struct {
	store *Store
}

var _ repository.MovementRepository = (*txMovementRepository)(nil)

func (r *txMovementRepository) Create(m *entity.Movement) error { return r.store.createMovement(m) }
func (r *txMovementRepository) List(limit, offset int) ([]*entity.Movement, error) {
	return r.store.listMovements(limit, offset), nil
}
func (r *txMovementRepository) ListAll() ([]*entity.Movement, error) {
	return r.store.sortedMovements(), nil
}
func (r *txMovementRepository) ListByLot(lotID string) ([]*entity.Movement, error) {
	return r.store.listMovementsByLot(lotID), nil
}
