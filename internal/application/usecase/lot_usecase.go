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

const dateLayout = "2006-01-02"

// LotUseCase CRUD de lotes de inventario. La cantidad no se edita por esta
// vía: toda variación pasa por el ledger (movimientos o conciliación).
type LotUseCase struct {
	repo      repository.LotRepository
	locations repository.LocationRepository
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(repo repository.LotRepository, locations repository.LocationRepository) *LotUseCase {
	return &LotUseCase{repo: repo, locations: locations}
}

// Create registra un Lot nuevo. La clave natural (SKU, BatchNumber, Location)
// debe estar libre y la ubicación debe existir.
func (uc *LotUseCase) Create(in dto.CreateLotRequest) (*dto.LotResponse, error) {
	if in.SKU == "" || in.Name == "" || in.Location == "" || in.BatchNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.MinStockLevel.IsNegative() {
		return nil, fmt.Errorf("%w: cantidades negativas", domain.ErrInvalidInput)
	}
	location, err := uc.locations.GetByName(in.Location)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación %q desconocida", domain.ErrInvalidInput, in.Location)
	}
	expiry, err := time.Parse(dateLayout, in.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha de vencimiento %q", domain.ErrInvalidInput, in.ExpiryDate)
	}
	key := entity.LotKey{SKU: in.SKU, BatchNumber: in.BatchNumber, Location: in.Location}
	existing, err := uc.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	lot := &entity.Lot{
		ID:            uuid.New().String(),
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Location:      in.Location,
		BatchNumber:   in.BatchNumber,
		ExpiryDate:    expiry,
		Quantity:      in.Quantity,
		Unit:          in.Unit,
		MinStockLevel: in.MinStockLevel,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(lot); err != nil {
		return nil, err
	}
	return toLotResponse(lot), nil
}

// GetByID obtiene un Lot por ID.
func (uc *LotUseCase) GetByID(id string) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	return toLotResponse(lot), nil
}

// Update actualiza los campos descriptivos y el nivel mínimo de stock.
func (uc *LotUseCase) Update(id string, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	lot, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		lot.Name = *in.Name
	}
	if in.Description != nil {
		lot.Description = *in.Description
	}
	if in.Category != nil {
		lot.Category = *in.Category
	}
	if in.ExpiryDate != nil {
		expiry, err := time.Parse(dateLayout, *in.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha de vencimiento %q", domain.ErrInvalidInput, *in.ExpiryDate)
		}
		lot.ExpiryDate = expiry
	}
	if in.Unit != nil {
		lot.Unit = *in.Unit
	}
	if in.MinStockLevel != nil {
		if in.MinStockLevel.IsNegative() {
			return nil, fmt.Errorf("%w: nivel mínimo negativo", domain.ErrInvalidInput)
		}
		lot.MinStockLevel = *in.MinStockLevel
	}
	lot.UpdatedAt = time.Now()
	if err := uc.repo.Update(lot); err != nil {
		return nil, err
	}
	return toLotResponse(lot), nil
}

// Delete elimina un Lot por ID.
func (uc *LotUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

// List lista lotes con paginación y filtro de texto opcional. La búsqueda
// ignora mayúsculas y diacríticos sobre SKU, nombre y ubicación.
func (uc *LotUseCase) List(limit, offset int, search string) (*dto.LotListResponse, error) {
	var (
		lots []*entity.Lot
		err  error
	)
	if search == "" {
		lots, err = uc.repo.List(limit, offset)
	} else {
		// El filtro se aplica en memoria sobre el set completo: la
		// paginación corre después del filtro.
		all, errAll := uc.repo.ListAll()
		if errAll != nil {
			return nil, errAll
		}
		filtered := make([]*entity.Lot, 0, len(all))
		for _, lot := range all {
			if matchesSearch(search, lot.SKU, lot.Name, lot.Location) {
				filtered = append(filtered, lot)
			}
		}
		lots = paginate(filtered, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.LotResponse, 0, len(lots))
	for _, lot := range lots {
		items = append(items, *toLotResponse(lot))
	}
	return &dto.LotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// GlobalStock agrega el stock de un SKU a través de todos sus lotes y
// ubicaciones.
func (uc *LotUseCase) GlobalStock(sku string) (*dto.GlobalStockResponse, error) {
	lots, err := uc.repo.ListBySKU(sku)
	if err != nil {
		return nil, err
	}
	resp := &dto.GlobalStockResponse{SKU: sku, Lots: make([]dto.LotResponse, 0, len(lots))}
	locations := make(map[string]struct{})
	for _, lot := range lots {
		resp.TotalQuantity = resp.TotalQuantity.Add(lot.Quantity)
		locations[lot.Location] = struct{}{}
		resp.Lots = append(resp.Lots, *toLotResponse(lot))
	}
	resp.LocationCount = len(locations)
	return resp, nil
}

func paginate(lots []*entity.Lot, limit, offset int) []*entity.Lot {
	if offset >= len(lots) {
		return []*entity.Lot{}
	}
	end := offset + limit
	if limit <= 0 || end > len(lots) {
		end = len(lots)
	}
	return lots[offset:end]
}

func toLotResponse(l *entity.Lot) *dto.LotResponse {
	if l == nil {
		return nil
	}
	return &dto.LotResponse{
		ID:            l.ID,
		SKU:           l.SKU,
		Name:          l.Name,
		Description:   l.Description,
		Category:      l.Category,
		Location:      l.Location,
		BatchNumber:   l.BatchNumber,
		ExpiryDate:    l.ExpiryDate.Format(dateLayout),
		Quantity:      l.Quantity,
		Unit:          l.Unit,
		MinStockLevel: l.MinStockLevel,
		LowStock:      l.IsLowStock(),
		LastCountDate: l.LastCountDate,
	}
}
