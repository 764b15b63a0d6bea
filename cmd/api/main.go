package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/minisis/producao-api/internal/application/composition"
	"github.com/minisis/producao-api/internal/application/item"
	"github.com/minisis/producao-api/internal/application/production"
	"github.com/minisis/producao-api/internal/application/stock"
	"github.com/minisis/producao-api/internal/application/supplier"
	"github.com/minisis/producao-api/internal/infrastructure/postgres"
	httpRouter "github.com/minisis/producao-api/internal/interfaces/http"
	"github.com/minisis/producao-api/pkg/config"
	"github.com/minisis/producao-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	unitRepo := postgres.NewUnitRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	compositionRepo := postgres.NewCompositionRepository(pool)
	entryRepo := postgres.NewStockEntryRepository(pool)
	orderRepo := postgres.NewProductionOrderRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := item.NewItemUseCase(txRunner, itemRepo, unitRepo, movementRepo)
	entryUC := stock.NewEntryUseCase(txRunner, entryRepo, itemRepo, supplierRepo)
	orderUC := production.NewOrderUseCase(txRunner, orderRepo, compositionRepo, itemRepo)
	compositionUC := composition.NewCompositionUseCase(compositionRepo, itemRepo)
	supplierUC := supplier.NewSupplierUseCase(supplierRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:        itemUC,
		EntryUC:       entryUC,
		OrderUC:       orderUC,
		CompositionUC: compositionUC,
		SupplierUC:    supplierUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
