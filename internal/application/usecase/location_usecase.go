package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// LocationUseCase administración de ubicaciones físicas.
type LocationUseCase struct {
	repo repository.LocationRepository
	lots repository.LotRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, lots repository.LotRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, lots: lots}
}

// Create agrega una ubicación nueva.
func (uc *LocationUseCase) Create(name string) (*dto.LocationResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return &dto.LocationResponse{Name: location.Name}, nil
}

// Delete elimina una ubicación. Se bloquea mientras exista algún Lot con
// stock registrado ahí: primero hay que transferir o dar salida.
func (uc *LocationUseCase) Delete(name string) error {
	location, err := uc.repo.GetByName(name)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	inUse, err := uc.lots.AnyAtLocation(name)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: la ubicación %q tiene lotes registrados", domain.ErrLocationInUse, name)
	}
	return uc.repo.Delete(name)
}

// List lista las ubicaciones activas.
func (uc *LocationUseCase) List() ([]dto.LocationResponse, error) {
	locations, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, dto.LocationResponse{Name: l.Name})
	}
	return out, nil
}

// SeedDefaults siembra las ubicaciones por defecto si no existen todavía.
func (uc *LocationUseCase) SeedDefaults() error {
	for _, name := range entity.DefaultLocations() {
		existing, err := uc.repo.GetByName(name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := uc.repo.Create(&entity.Location{
			ID:        uuid.New().String(),
			Name:      name,
			CreatedAt: time.Now(),
		}); err != nil {
			return err
		}
	}
	return nil
}
