package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restopos-api/internal/domain"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
	"github.com/jhoicas/restopos-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository (usable con pool o tx).
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la receta y sus ingredientes.
func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	query := `
		INSERT INTO recipes (id, store_id, name, product_id, portions, instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	productID := (*string)(nil)
	if recipe.ProductID != "" {
		productID = &recipe.ProductID
	}
	_, err := r.q.Exec(context.Background(), query,
		recipe.ID, recipe.StoreID, recipe.Name, productID, recipe.Portions,
		recipe.Instructions, recipe.CreatedAt, recipe.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	ingQuery := `
		INSERT INTO recipe_ingredients (id, recipe_id, item_id, quantity, unit)
		VALUES ($1, $2, $3, $4, $5)`
	for _, ing := range recipe.Ingredients {
		if _, err := r.q.Exec(context.Background(), ingQuery,
			ing.ID, ing.RecipeID, ing.ItemID, ing.Quantity, ing.Unit,
		); err != nil {
			return fmt.Errorf("insert recipe ingredient: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una receta con sus ingredientes.
func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	query := `
		SELECT id, store_id, name, product_id, portions, instructions, created_at, updated_at
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	var productID *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rec.ID, &rec.StoreID, &rec.Name, &productID, &rec.Portions,
		&rec.Instructions, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	if productID != nil {
		rec.ProductID = *productID
	}
	if err := r.loadIngredients(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByStore lista las recetas de la tienda con sus ingredientes.
func (r *RecipeRepo) ListByStore(storeID string, limit, offset int) ([]*entity.Recipe, error) {
	query := `
		SELECT id, store_id, name, product_id, portions, instructions, created_at, updated_at
		FROM recipes WHERE store_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	list, err := scanRecipes(rows)
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		if err := r.loadIngredients(rec); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ListByIngredient devuelve las recetas que usan el insumo, con ingredientes
// cargados (alimenta la simulación de costos).
func (r *RecipeRepo) ListByIngredient(itemID string) ([]*entity.Recipe, error) {
	query := `
		SELECT r.id, r.store_id, r.name, r.product_id, r.portions, r.instructions, r.created_at, r.updated_at
		FROM recipes r
		JOIN recipe_ingredients ri ON ri.recipe_id = r.id
		WHERE ri.item_id = $1
		ORDER BY r.name`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list recipes by ingredient: %w", err)
	}
	list, err := scanRecipes(rows)
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		if err := r.loadIngredients(rec); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Delete elimina la receta; los ingredientes caen por FK ON DELETE CASCADE.
func (r *RecipeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) loadIngredients(rec *entity.Recipe) error {
	query := `
		SELECT id, recipe_id, item_id, quantity, unit
		FROM recipe_ingredients WHERE recipe_id = $1`
	rows, err := r.q.Query(context.Background(), query, rec.ID)
	if err != nil {
		return fmt.Errorf("load ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ID, &ing.RecipeID, &ing.ItemID, &ing.Quantity, &ing.Unit); err != nil {
			return fmt.Errorf("scan ingredient: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, &ing)
	}
	return rows.Err()
}

func scanRecipes(rows pgx.Rows) ([]*entity.Recipe, error) {
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		var productID *string
		if err := rows.Scan(&rec.ID, &rec.StoreID, &rec.Name, &productID, &rec.Portions,
			&rec.Instructions, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		if productID != nil {
			rec.ProductID = *productID
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
