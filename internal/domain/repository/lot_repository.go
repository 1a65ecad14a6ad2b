package repository

import (
	"time"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para Lot (DIP).
// GetByKey resuelve la clave natural (SKU, BatchNumber, Location) con índice
// propio del adaptador; los tres campos deben coincidir exactamente.
type LotRepository interface {
	Create(lot *entity.Lot) error
	GetByID(id string) (*entity.Lot, error)
	GetByKey(key entity.LotKey) (*entity.Lot, error)
	Update(lot *entity.Lot) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Lot, error)
	ListAll() ([]*entity.Lot, error)
	ListBySKU(sku string) ([]*entity.Lot, error)
	ListLowStock() ([]*entity.Lot, error)
	ListExpiringBefore(t time.Time) ([]*entity.Lot, error)
	AnyAtLocation(location string) (bool, error)
}
