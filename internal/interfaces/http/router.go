package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/minisis/producao-api/internal/application/composition"
	"github.com/minisis/producao-api/internal/application/item"
	"github.com/minisis/producao-api/internal/application/production"
	"github.com/minisis/producao-api/internal/application/stock"
	"github.com/minisis/producao-api/internal/application/supplier"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	ItemUC        *item.ItemUseCase
	EntryUC       *stock.EntryUseCase
	OrderUC       *production.OrderUseCase
	CompositionUC *composition.CompositionUseCase
	SupplierUC    *supplier.SupplierUseCase
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Itens (cadastro, extrato, entrada manual)
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/movements", itemHandler.Movements)
	items.Post("/:id/manual-input", itemHandler.ManualInput)

	// Unidades de medida (catálogo somente leitura)
	api.Get("/units", itemHandler.ListUnits)

	// Composição (BOM) por produto
	compositionHandler := NewCompositionHandler(deps.CompositionUC)
	items.Get("/:id/composition", compositionHandler.Get)
	items.Put("/:id/composition", compositionHandler.Replace)

	// Notas de entrada (CRUD + liquidação)
	entries := api.Group("/stock-entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Put("/:id", entryHandler.Update)
	entries.Post("/:id/finalize", entryHandler.Finalize)
	entries.Post("/:id/reopen", entryHandler.Reopen)
	entries.Get("/:id/movements", itemHandler.EntryMovements)

	// Ordens de produção (CRUD + liquidação + cancelamento)
	orders := api.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.OrderUC)
	orders.Post("/", productionHandler.Create)
	orders.Get("/", productionHandler.List)
	orders.Get("/:id", productionHandler.GetByID)
	orders.Put("/:id", productionHandler.Update)
	orders.Post("/:id/finalize", productionHandler.Finalize)
	orders.Post("/:id/reopen", productionHandler.Reopen)
	orders.Post("/:id/cancel", productionHandler.Cancel)
	orders.Get("/:id/movements", itemHandler.OrderMovements)

	// Fornecedores
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
}
