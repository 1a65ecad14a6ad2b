package repository

import "github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones.
// El conjunto es abierto: se agregan y quitan en runtime.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByName(name string) (*entity.Location, error)
	Delete(name string) error
	List() ([]*entity.Location, error)
}
