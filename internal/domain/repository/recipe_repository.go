package repository

import "github.com/sabrinatorgan-glitch/PhageStock/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para Recipe (BOM).
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	Update(recipe *entity.Recipe) error
	Delete(id string) error
	List() ([]*entity.Recipe, error)
}
