package memory

import (
	"sort"
	"sync"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// LocationRepository adaptador en memoria de repository.LocationRepository.
// La clave es el nombre visible de la ubicación.
type LocationRepository struct {
	mu     sync.RWMutex
	byName map[string]*entity.Location
}

// NewLocationRepository construye el repositorio.
func NewLocationRepository() *LocationRepository {
	return &LocationRepository{byName: make(map[string]*entity.Location)}
}

var _ repository.LocationRepository = (*LocationRepository)(nil)

func (r *LocationRepository) Create(location *entity.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[location.Name]; ok {
		return domain.ErrDuplicate
	}
	c := *location
	r.byName[location.Name] = &c
	return nil
}

func (r *LocationRepository) GetByName(name string) (*entity.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	location, ok := r.byName[name]
	if !ok {
		return nil, nil
	}
	c := *location
	return &c, nil
}

func (r *LocationRepository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[name]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byName, name)
	return nil
}

// List devuelve ubicaciones ordenadas por nombre.
func (r *LocationRepository) List() ([]*entity.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Location, 0, len(r.byName))
	for _, location := range r.byName {
		c := *location
		all = append(all, &c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}
