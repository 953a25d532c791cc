package repository

import "github.com/jhoicas/restopos-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas e ingredientes.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	ListByStore(storeID string, limit, offset int) ([]*entity.Recipe, error)
	// ListByIngredient devuelve las recetas que usan el insumo (para simulación).
	ListByIngredient(itemID string) ([]*entity.Recipe, error)
	Delete(id string) error
}
