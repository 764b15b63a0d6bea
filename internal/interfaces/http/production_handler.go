package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/minisis/producao-api/internal/application/dto"
	"github.com/minisis/producao-api/internal/application/production"
	"github.com/minisis/producao-api/internal/domain/entity"
)

// ProductionHandler trata as requisições HTTP das ordens de produção,
// incluindo a liquidação (concluir/reabrir) e o cancelamento.
type ProductionHandler struct {
	uc *production.OrderUseCase
}

// NewProductionHandler constrói o handler.
func NewProductionHandler(uc *production.OrderUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Create cria uma ordem Em aberto (com verificação consultiva de saldo).
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	in, err := h.parseBody(c)
	if err != nil {
		return writeInvalidBody(c)
	}
	id, err := h.uc.CreateOrder(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update atualiza cabeçalho e linhas de uma ordem Em aberto.
func (h *ProductionHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	in, err := h.parseBody(c)
	if err != nil {
		return writeInvalidBody(c)
	}
	if err := h.uc.UpdateOrder(c.Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID devolve a ordem com as linhas.
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	o, err := h.uc.GetOrder(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToOrderResponse(o))
}

// List lista ordens (?field=id|status|number&term=...).
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	orders, err := h.uc.ListOrders(c.Context(), c.Query("field"), c.Query("term"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.ToOrderResponse(o))
	}
	return c.JSON(out)
}

// Finalize conclui a ordem: consome os insumos pela composição e credita os
// produtos, tudo ou nada.
func (h *ProductionHandler) Finalize(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.FinalizeOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return writeInvalidBody(c)
	}
	totalCost, err := h.uc.FinalizeOrder(c.Context(), id, in.ProducedQty)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FinalizeOrderResponse{
		ID:          id,
		Status:      string(entity.OrderStatusCompleted),
		ProducedQty: in.ProducedQty,
		TotalCost:   totalCost,
	})
}

// Reopen estorna a conclusão e volta a ordem para Em aberto.
func (h *ProductionHandler) Reopen(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.ReopenOrder(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "status": string(entity.OrderStatusOpen)})
}

// Cancel cancela uma ordem Em aberto (sem efeito no razão).
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.CancelOrder(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "status": string(entity.OrderStatusCancelled)})
}

func (h *ProductionHandler) parseBody(c *fiber.Ctx) (production.OrderInput, error) {
	var in dto.OrderRequest
	if err := c.BodyParser(&in); err != nil {
		return production.OrderInput{}, err
	}
	if err := validate.Struct(in); err != nil {
		return production.OrderInput{}, err
	}
	var due *time.Time
	if in.DueDate != nil {
		d, err := time.Parse("2006-01-02", *in.DueDate)
		if err != nil {
			return production.OrderInput{}, err
		}
		due = &d
	}
	lines := make([]production.OrderLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, production.OrderLineInput{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return production.OrderInput{Number: in.Number, DueDate: due, Lines: lines}, nil
}
