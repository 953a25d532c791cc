package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restopos-api/internal/application/auth"
	"github.com/jhoicas/restopos-api/internal/application/customers"
	"github.com/jhoicas/restopos-api/internal/application/inventory"
	"github.com/jhoicas/restopos-api/internal/application/orders"
	"github.com/jhoicas/restopos-api/internal/application/recipes"
	"github.com/jhoicas/restopos-api/internal/application/stores"
	"github.com/jhoicas/restopos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC    *stores.StoreUseCase
	ItemUC     *inventory.ItemUseCase
	LedgerUC   *inventory.LedgerUseCase
	LowStockUC *inventory.LowStockUseCase
	OrderUC    *orders.FulfillmentUseCase
	RecipeUC   *recipes.CostUseCase
	CustomerUC *customers.CustomerUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Stores (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	storesGroup := api.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	storesGroup.Get("/", storeHandler.List)
	storesGroup.Post("/", storeHandler.Create)
	storesGroup.Get("/:id", storeHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario: artículos, ledger y stock bajo (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.LedgerUC, deps.LowStockUC)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Post("/items/:id/add-stock", inventoryHandler.AddStock)
	invGroup.Post("/items/:id/reduce-stock", inventoryHandler.ReduceStock)
	invGroup.Get("/items/:id/movements", inventoryHandler.ListMovements)
	invGroup.Get("/low-stock", inventoryHandler.LowStockReport)

	// Órdenes: checkout, tablero y ciclo de vida (protegido)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/reward-check", orderHandler.RewardCheck)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Post("/:id/finalize", orderHandler.FinalizeSale)

	// Recetas y motor de costos (protegido; simulación solo admin)
	recipesGroup := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipesGroup.Post("/", recipeHandler.Create)
	recipesGroup.Get("/", recipeHandler.List)
	recipesGroup.Post("/simulate-cost", RequireRole(entity.RoleAdmin), recipeHandler.SimulateCost)
	recipesGroup.Get("/:id", recipeHandler.GetByID)
	recipesGroup.Get("/:id/cost", recipeHandler.CostReport)

	// Clientes (protegido)
	customersGroup := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Put("/:id", customerHandler.Update)
}
