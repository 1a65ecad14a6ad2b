// Package production implementa recetas (BOM) y órdenes de producción con
// seguimiento kanban. Las transiciones de orden no consumen ingredientes del
// inventario: el tablero documenta el avance, el consumo real entra por el
// ledger como movimientos.
package production

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

// UseCase casos de uso de recetas y órdenes de producción.
type UseCase struct {
	recipes repository.RecipeRepository
	orders  repository.ProductionOrderRepository
	lots    repository.LotRepository
	log     *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(recipes repository.RecipeRepository, orders repository.ProductionOrderRepository, lots repository.LotRepository, log *logger.Logger) *UseCase {
	return &UseCase{recipes: recipes, orders: orders, lots: lots, log: log}
}

// ──────────────────────────────────────────────────────────────────────────────
// Recetas
// ──────────────────────────────────────────────────────────────────────────────

// CreateRecipe registra una receta nueva. Cada ingrediente debe referenciar un
// SKU con al menos un Lot en inventario; una receta de ingredientes fantasma
// no sirve para planificar.
func (uc *UseCase) CreateRecipe(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if in.FinalProductSKU == "" || in.FinalProductName == "" || len(in.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}
	ingredients := make([]entity.RecipeIngredient, 0, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		if ing.SKU == "" || !ing.QuantityRequired.IsPositive() {
			return nil, fmt.Errorf("%w: ingrediente inválido %q", domain.ErrInvalidInput, ing.SKU)
		}
		known, err := uc.lots.ListBySKU(ing.SKU)
		if err != nil {
			return nil, err
		}
		if len(known) == 0 {
			return nil, fmt.Errorf("%w: el SKU %q no existe en inventario", domain.ErrInvalidInput, ing.SKU)
		}
		ingredients = append(ingredients, entity.RecipeIngredient{
			SKU:              ing.SKU,
			Name:             ing.Name,
			QuantityRequired: ing.QuantityRequired,
			Unit:             ing.Unit,
		})
	}

	version := in.Version
	if version == "" {
		version = "1.0"
	}
	recipe := &entity.Recipe{
		ID:               uuid.New().String(),
		FinalProductSKU:  in.FinalProductSKU,
		FinalProductName: in.FinalProductName,
		Description:      in.Description,
		Ingredients:      ingredients,
		Version:          version,
		Active:           true,
	}
	if err := uc.recipes.Create(recipe); err != nil {
		return nil, err
	}
	uc.log.Info().Str("recipe_id", recipe.ID).Str("product", recipe.FinalProductName).Msg("receta creada")
	return toRecipeResponse(recipe), nil
}

// GetRecipe obtiene una receta por ID.
func (uc *UseCase) GetRecipe(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.recipes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	return toRecipeResponse(recipe), nil
}

// ListRecipes lista todas las recetas.
func (uc *UseCase) ListRecipes(ctx context.Context) ([]dto.RecipeResponse, error) {
	list, err := uc.recipes.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRecipeResponse(r))
	}
	return out, nil
}

// DeactivateRecipe desactiva una receta. Las órdenes existentes no se tocan;
// solo se bloquea la creación de órdenes nuevas.
func (uc *UseCase) DeactivateRecipe(ctx context.Context, id string) error {
	recipe, err := uc.recipes.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	recipe.Active = false
	return uc.recipes.Update(recipe)
}

// DeleteRecipe elimina una receta.
func (uc *UseCase) DeleteRecipe(ctx context.Context, id string) error {
	return uc.recipes.Delete(id)
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de producción
// ──────────────────────────────────────────────────────────────────────────────

// CreateOrder crea una orden PLANNED a partir de una receta activa.
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !in.TargetQuantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad objetivo debe ser positiva", domain.ErrInvalidInput)
	}
	recipe, err := uc.recipes.GetByID(in.RecipeID)
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, domain.ErrNotFound
	}
	if !recipe.Active {
		return nil, fmt.Errorf("%w: la receta %s está inactiva", domain.ErrConflict, recipe.ID)
	}

	order := &entity.ProductionOrder{
		ID:               uuid.New().String(),
		RecipeID:         recipe.ID,
		ProductName:      recipe.FinalProductName,
		TargetQuantity:   in.TargetQuantity,
		ProducedQuantity: decimal.Zero,
		StartDate:        time.Now(),
		Status:           entity.OrderPlanned,
		AssignedTo:       in.AssignedTo,
		BatchOutput:      in.BatchOutput,
	}
	if err := uc.orders.Create(order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("product", order.ProductName).Msg("orden de producción creada")
	return toOrderResponse(order), nil
}

// UpdateOrderStatus mueve una orden por el kanban. Al pasar a COMPLETED fija
// EndDate y la cantidad producida (por defecto, la cantidad objetivo).
func (uc *UseCase) UpdateOrderStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !order.CanTransitionTo(in.Status) {
		return nil, fmt.Errorf("%w: transición %s -> %s no permitida", domain.ErrConflict, order.Status, in.Status)
	}

	order.Status = in.Status
	if in.Status == entity.OrderCompleted {
		now := time.Now()
		order.EndDate = &now
		if in.ProducedQuantity != nil {
			order.ProducedQuantity = *in.ProducedQuantity
		} else {
			order.ProducedQuantity = order.TargetQuantity
		}
	}
	if err := uc.orders.Update(order); err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("status", order.Status).Msg("orden de producción actualizada")
	return toOrderResponse(order), nil
}

// GetOrder obtiene una orden por ID.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista las órdenes, más recientes primero.
func (uc *UseCase) ListOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	list, err := uc.orders.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	ingredients := make([]dto.RecipeIngredientDTO, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, dto.RecipeIngredientDTO{
			SKU:              ing.SKU,
			Name:             ing.Name,
			QuantityRequired: ing.QuantityRequired,
			Unit:             ing.Unit,
		})
	}
	return &dto.RecipeResponse{
		ID:               r.ID,
		FinalProductSKU:  r.FinalProductSKU,
		FinalProductName: r.FinalProductName,
		Description:      r.Description,
		Ingredients:      ingredients,
		Version:          r.Version,
		Active:           r.Active,
	}
}

func toOrderResponse(o *entity.ProductionOrder) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:               o.ID,
		RecipeID:         o.RecipeID,
		ProductName:      o.ProductName,
		TargetQuantity:   o.TargetQuantity,
		ProducedQuantity: o.ProducedQuantity,
		StartDate:        o.StartDate.Format(time.RFC3339),
		Status:           o.Status,
		AssignedTo:       o.AssignedTo,
		BatchOutput:      o.BatchOutput,
	}
	if o.EndDate != nil {
		resp.EndDate = o.EndDate.Format(time.RFC3339)
	}
	return resp
}
