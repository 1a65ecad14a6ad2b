package production_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/dto"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/application/production"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/infrastructure/memory"
	"github.com/sabrinatorgan-glitch/PhageStock/pkg/logger"
)

func newUseCase(t *testing.T) (*production.UseCase, *memory.LotRepository) {
	t.Helper()
	store := memory.NewStore()
	lots := memory.NewLotRepository(store)
	uc := production.NewUseCase(
		memory.NewRecipeRepository(),
		memory.NewProductionOrderRepository(),
		lots,
		logger.New(logger.Config{Level: "error"}),
	)
	return uc, lots
}

func seedSKU(t *testing.T, lots *memory.LotRepository, sku string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, lots.Create(&entity.Lot{
		ID:          uuid.New().String(),
		SKU:         sku,
		Name:        "Item " + sku,
		Category:    entity.CategoryRawMaterial,
		Location:    entity.LocationChileLogistica,
		BatchNumber: "L-1",
		ExpiryDate:  now.AddDate(1, 0, 0),
		Quantity:    decimal.NewFromInt(100),
		Unit:        "kg",
		CreatedAt:   now,
		UpdatedAt:   now,
	}))
}

func createRecipe(t *testing.T, uc *production.UseCase) *dto.RecipeResponse {
	t.Helper()
	recipe, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		FinalProductSKU:  "FAGO-COCKTAIL",
		FinalProductName: "Cóctel de fagos",
		Ingredients: []dto.RecipeIngredientDTO{
			{SKU: "MALTODEXTRINA", Name: "Maltodextrina", QuantityRequired: decimal.NewFromInt(2), Unit: "kg"},
			{SKU: "PEPTONA", Name: "Peptona", QuantityRequired: decimal.NewFromInt(1), Unit: "kg"},
		},
	})
	require.NoError(t, err)
	return recipe
}

func TestCreateRecipe_ValidaIngredientesContraInventario(t *testing.T) {
	uc, lots := newUseCase(t)
	seedSKU(t, lots, "MALTODEXTRINA")
	seedSKU(t, lots, "PEPTONA")

	recipe := createRecipe(t, uc)
	assert.True(t, recipe.Active)
	assert.Equal(t, "1.0", recipe.Version, "la versión por defecto es 1.0")
	assert.Len(t, recipe.Ingredients, 2)

	// Ingrediente con SKU inexistente.
	_, err := uc.CreateRecipe(context.Background(), dto.CreateRecipeRequest{
		FinalProductSKU:  "X",
		FinalProductName: "X",
		Ingredients: []dto.RecipeIngredientDTO{
			{SKU: "NO-EXISTE", QuantityRequired: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_DesdeRecetaActiva(t *testing.T) {
	uc, lots := newUseCase(t)
	seedSKU(t, lots, "MALTODEXTRINA")
	seedSKU(t, lots, "PEPTONA")
	recipe := createRecipe(t, uc)

	order, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		RecipeID:       recipe.ID,
		TargetQuantity: decimal.NewFromInt(50),
		AssignedTo:     "marco",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPlanned, order.Status)
	assert.Equal(t, "Cóctel de fagos", order.ProductName)
	assert.True(t, order.ProducedQuantity.IsZero())
	assert.Empty(t, order.EndDate)
}

func TestCreateOrder_RecetaInactivaRechazada(t *testing.T) {
	uc, lots := newUseCase(t)
	seedSKU(t, lots, "MALTODEXTRINA")
	seedSKU(t, lots, "PEPTONA")
	recipe := createRecipe(t, uc)
	require.NoError(t, uc.DeactivateRecipe(context.Background(), recipe.ID))

	_, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		RecipeID:       recipe.ID,
		TargetQuantity: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateOrderStatus_Kanban(t *testing.T) {
	uc, lots := newUseCase(t)
	seedSKU(t, lots, "MALTODEXTRINA")
	seedSKU(t, lots, "PEPTONA")
	recipe := createRecipe(t, uc)
	ctx := context.Background()

	order, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{
		RecipeID:       recipe.ID,
		TargetQuantity: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// PLANNED no puede saltar a COMPLETED.
	_, err = uc.UpdateOrderStatus(ctx, order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCompleted})
	assert.ErrorIs(t, err, domain.ErrConflict)

	moved, err := uc.UpdateOrderStatus(ctx, order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderInProgress})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderInProgress, moved.Status)

	produced := decimal.NewFromInt(48)
	done, err := uc.UpdateOrderStatus(ctx, order.ID, dto.UpdateOrderStatusRequest{
		Status:           entity.OrderCompleted,
		ProducedQuantity: &produced,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, done.Status)
	assert.True(t, done.ProducedQuantity.Equal(produced))
	assert.NotEmpty(t, done.EndDate)

	// COMPLETED es terminal.
	_, err = uc.UpdateOrderStatus(ctx, order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCancelled})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdateOrderStatus_CompletarSinCantidadUsaObjetivo(t *testing.T) {
	uc, lots := newUseCase(t)
	seedSKU(t, lots, "MALTODEXTRINA")
	seedSKU(t, lots, "PEPTONA")
	recipe := createRecipe(t, uc)
	ctx := context.Background()

	order, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{
		RecipeID:       recipe.ID,
		TargetQuantity: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	_, err = uc.UpdateOrderStatus(ctx, order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderInProgress})
	require.NoError(t, err)
	done, err := uc.UpdateOrderStatus(ctx, order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCompleted})
	require.NoError(t, err)
	assert.True(t, done.ProducedQuantity.Equal(decimal.NewFromInt(50)))
}

func TestCancelarDesdePlanned(t *testing.T) {
	uc, lots := newUseCase(t)
	seedSKU(t, lots, "MALTODEXTRINA")
	seedSKU(t, lots, "PEPTONA")
	recipe := createRecipe(t, uc)
	ctx := context.Background()

	order, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{
		RecipeID:       recipe.ID,
		TargetQuantity: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	cancelled, err := uc.UpdateOrderStatus(ctx, order.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, cancelled.Status)
}
