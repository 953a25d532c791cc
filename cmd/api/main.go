package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/restopos-api/internal/application/auth"
	"github.com/jhoicas/restopos-api/internal/application/customers"
	"github.com/jhoicas/restopos-api/internal/application/inventory"
	"github.com/jhoicas/restopos-api/internal/application/orders"
	"github.com/jhoicas/restopos-api/internal/application/recipes"
	"github.com/jhoicas/restopos-api/internal/application/stores"
	"github.com/jhoicas/restopos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/restopos-api/internal/interfaces/http"
	"github.com/jhoicas/restopos-api/pkg/config"
	"github.com/jhoicas/restopos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)

	ledgerUC := inventory.NewLedgerUseCase(itemRepo, movementRepo)
	itemUC := inventory.NewItemUseCase(itemRepo)
	lowStockUC := inventory.NewLowStockUseCase(itemRepo)
	orderUC := orders.NewFulfillmentUseCase(storeRepo, itemRepo, orderRepo, customerRepo, ledgerUC, orders.Config{
		TaxRate: cfg.POS.TaxRate,
	})
	recipeUC := recipes.NewCostUseCase(recipeRepo, itemRepo, recipes.Config{
		CommissionRate: cfg.POS.CommissionRate,
	})
	customerUC := customers.NewCustomerUseCase(customerRepo)
	storeUC := stores.NewStoreUseCase(storeRepo)
	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "RestoPOS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:    storeUC,
		ItemUC:     itemUC,
		LedgerUC:   ledgerUC,
		LowStockUC: lowStockUC,
		OrderUC:    orderUC,
		RecipeUC:   recipeUC,
		CustomerUC: customerUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
