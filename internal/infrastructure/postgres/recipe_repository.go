package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL. La lista de
// ingredientes se guarda como JSONB: se lee y escribe siempre completa, no
// amerita tabla propia.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste una receta nueva.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	query := `
		INSERT INTO recipes (id, final_product_sku, final_product_name, description,
			ingredients, version, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.FinalProductSKU, recipe.FinalProductName,
		recipe.Description, ingredients, recipe.Version, recipe.Active,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

// GetByID obtiene una receta por ID; nil si no existe.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `SELECT id, final_product_sku, final_product_name, description,
		ingredients, version, active FROM recipes WHERE id = $1`
	recipe, err := scanRecipe(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// Update persiste los cambios de una receta.
func (r *RecipeRepo) Update(recipe *entity.Recipe) error {
	ingredients, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}
	query := `
		UPDATE recipes SET final_product_sku = $2, final_product_name = $3,
			description = $4, ingredients = $5, version = $6, active = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.FinalProductSKU, recipe.FinalProductName,
		recipe.Description, ingredients, recipe.Version, recipe.Active,
	)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una receta por ID.
func (r *RecipeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista recetas ordenadas por nombre de producto final.
func (r *RecipeRepo) List() ([]*entity.Recipe, error) {
	query := `SELECT id, final_product_sku, final_product_name, description,
		ingredients, version, active FROM recipes ORDER BY final_product_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	out := []*entity.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, recipe)
	}
	return out, rows.Err()
}

func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var (
		recipe      entity.Recipe
		ingredients []byte
	)
	err := row.Scan(
		&recipe.ID, &recipe.FinalProductSKU, &recipe.FinalProductName,
		&recipe.Description, &ingredients, &recipe.Version, &recipe.Active,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(ingredients, &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	return &recipe, nil
}
