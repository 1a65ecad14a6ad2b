// Package memory implementa el driver de almacenamiento en memoria
// (STORAGE_DRIVER=memory). Es el driver por defecto para desarrollo y tests:
// el estado vive en el proceso y se pierde al reiniciar.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
)

// Store guarda lotes y kardex bajo un mismo mutex: ambos cambian juntos en
// cada movimiento y la atomicidad del TxRunner depende de compartir el lock.
// Los valores almacenados nunca se mutan in situ (se clonan al leer y al
// escribir), lo que permite snapshot barato por copia de mapa.
type Store struct {
	mu        sync.RWMutex
	lots      map[string]*entity.Lot
	byKey     map[entity.LotKey]string
	movements []*entity.Movement
}

// NewStore construye el almacén compartido de lotes y kardex.
func NewStore() *Store {
	return &Store{
		lots:  make(map[string]*entity.Lot),
		byKey: make(map[entity.LotKey]string),
	}
}

func cloneLot(l *entity.Lot) *entity.Lot {
	c := *l
	if l.LastCountDate != nil {
		d := *l.LastCountDate
		c.LastCountDate = &d
	}
	return &c
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	return &c
}

// --- lotes (sin lock: el llamador lo sostiene) ---

func (s *Store) createLot(lot *entity.Lot) error {
	if _, ok := s.lots[lot.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := s.byKey[lot.Key()]; ok {
		return domain.ErrDuplicate
	}
	c := cloneLot(lot)
	s.lots[c.ID] = c
	s.byKey[c.Key()] = c.ID
	return nil
}

func (s *Store) getLotByID(id string) (*entity.Lot, error) {
	l, ok := s.lots[id]
	if !ok {
		return nil, nil
	}
	return cloneLot(l), nil
}

func (s *Store) getLotByKey(key entity.LotKey) (*entity.Lot, error) {
	id, ok := s.byKey[key]
	if !ok {
		return nil, nil
	}
	return cloneLot(s.lots[id]), nil
}

func (s *Store) updateLot(lot *entity.Lot) error {
	prev, ok := s.lots[lot.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if prev.Key() != lot.Key() {
		if _, taken := s.byKey[lot.Key()]; taken {
			return domain.ErrDuplicate
		}
		delete(s.byKey, prev.Key())
		s.byKey[lot.Key()] = lot.ID
	}
	s.lots[lot.ID] = cloneLot(lot)
	return nil
}

func (s *Store) deleteLot(id string) error {
	l, ok := s.lots[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(s.byKey, l.Key())
	delete(s.lots, id)
	return nil
}

// sortedLots devuelve todos los lotes clonados en orden estable
// (SKU, Location, BatchNumber).
func (s *Store) sortedLots() []*entity.Lot {
	out := make([]*entity.Lot, 0, len(s.lots))
	for _, l := range s.lots {
		out = append(out, cloneLot(l))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SKU != b.SKU {
			return a.SKU < b.SKU
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.BatchNumber < b.BatchNumber
	})
	return out
}

func (s *Store) listLots(limit, offset int) []*entity.Lot {
	all := s.sortedLots()
	if offset >= len(all) {
		return []*entity.Lot{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (s *Store) listLotsBySKU(sku string) []*entity.Lot {
	out := []*entity.Lot{}
	for _, l := range s.sortedLots() {
		if l.SKU == sku {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) listLowStock() []*entity.Lot {
	out := []*entity.Lot{}
	for _, l := range s.sortedLots() {
		if l.IsLowStock() {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) listExpiringBefore(t time.Time) []*entity.Lot {
	out := []*entity.Lot{}
	for _, l := range s.sortedLots() {
		if l.ExpiresBefore(t) {
			out = append(out, l)
		}
	}
	return out
}

func (s *Store) anyAtLocation(location string) bool {
	for _, l := range s.lots {
		if strings.EqualFold(l.Location, location) {
			return true
		}
	}
	return false
}

// --- kardex (sin lock: el llamador lo sostiene) ---

func (s *Store) createMovement(m *entity.Movement) error {
	s.movements = append(s.movements, cloneMovement(m))
	return nil
}

// sortedMovements devuelve el kardex clonado en orden de fecha descendente.
func (s *Store) sortedMovements() []*entity.Movement {
	out := make([]*entity.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, cloneMovement(m))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (s *Store) listMovements(limit, offset int) []*entity.Movement {
	all := s.sortedMovements()
	if offset >= len(all) {
		return []*entity.Movement{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

func (s *Store) listMovementsByLot(lotID string) []*entity.Movement {
	out := []*entity.Movement{}
	for _, m := range s.sortedMovements() {
		if m.LotID == lotID {
			out = append(out, m)
		}
	}
	return out
}

// snapshot copia los mapas y el slice del kardex. Los valores apuntados no se
// copian: son inmutables una vez almacenados.
func (s *Store) snapshot() (map[string]*entity.Lot, map[entity.LotKey]string, []*entity.Movement) {
	lots := make(map[string]*entity.Lot, len(s.lots))
	for k, v := range s.lots {
		lots[k] = v
	}
	byKey := make(map[entity.LotKey]string, len(s.byKey))
	for k, v := range s.byKey {
		byKey[k] = v
	}
	movements := make([]*entity.Movement, len(s.movements))
	copy(movements, s.movements)
	return lots, byKey, movements
}

func (s *Store) restore(lots map[string]*entity.Lot, byKey map[entity.LotKey]string, movements []*entity.Movement) {
	s.lots = lots
	s.byKey = byKey
	s.movements = movements
}
