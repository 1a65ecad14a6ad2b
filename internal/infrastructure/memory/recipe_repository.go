package memory

import (
	"sort"
	"sync"

	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"
	"github.com/sabrinatorgan-glitch/PhageStock/internal/domain/repository"
)

// RecipeRepository adaptador en memoria de repository.RecipeRepository.
type RecipeRepository struct {
	mu   sync.RWMutex
	byID map[string]*entity.Recipe
}

// NewRecipeRepository construye el repositorio.
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{byID: make(map[string]*entity.Recipe)}
}

var _ repository.RecipeRepository = (*RecipeRepository)(nil)

func cloneRecipe(rec *entity.Recipe) *entity.Recipe {
	c := *rec
	c.Ingredients = make([]entity.RecipeIngredient, len(rec.Ingredients))
	copy(c.Ingredients, rec.Ingredients)
	return &c
}

func (r *RecipeRepository) Create(recipe *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[recipe.ID]; ok {
		return domain.ErrDuplicate
	}
	r.byID[recipe.ID] = cloneRecipe(recipe)
	return nil
}

func (r *RecipeRepository) GetByID(id string) (*entity.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipe, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return cloneRecipe(recipe), nil
}

func (r *RecipeRepository) Update(recipe *entity.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[recipe.ID]; !ok {
		return domain.ErrNotFound
	}
	r.byID[recipe.ID] = cloneRecipe(recipe)
	return nil
}

func (r *RecipeRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// List devuelve recetas ordenadas por nombre de producto final.
func (r *RecipeRepository) List() ([]*entity.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.Recipe, 0, len(r.byID))
	for _, recipe := range r.byID {
		all = append(all, cloneRecipe(recipe))
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].FinalProductName < all[j].FinalProductName
	})
	return all, nil
}
