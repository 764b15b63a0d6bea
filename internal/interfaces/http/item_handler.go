package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/minisis/producao-api/internal/application/dto"
	"github.com/minisis/producao-api/internal/application/item"
	"github.com/minisis/producao-api/internal/domain/entity"
)

// ItemHandler trata as requisições HTTP do cadastro de itens, do catálogo de
// unidades, do extrato de movimentos e da entrada manual.
type ItemHandler struct {
	uc *item.ItemUseCase
}

// NewItemHandler constrói o handler.
func NewItemHandler(uc *item.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// Create cria um item.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return writeInvalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeInvalidBody(c)
	}
	id, err := h.uc.CreateItem(c.Context(), toItemInput(in))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update atualiza o cadastro do item.
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return writeInvalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeInvalidBody(c)
	}
	if err := h.uc.UpdateItem(c.Context(), id, toItemInput(in)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete exclui o item (bloqueado se referenciado em composições, ordens ou movimentos).
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteItem(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID devolve o item.
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	it, err := h.uc.GetItem(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToItemResponse(it))
}

// List lista/busca itens (?field=id|description&term=...).
func (h *ItemHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.SearchItems(c.Context(), c.Query("field"), c.Query("term"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ToItemResponse(it))
	}
	return c.JSON(out)
}

// Movements devolve o extrato de movimentos do item (?limit=&offset=).
func (h *ItemHandler) Movements(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return writeInvalidBody(c)
	}
	page.DefaultPage()
	movements, err := h.uc.ListMovements(c.Context(), id, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// EntryMovements devolve os movimentos gerados por uma nota de entrada.
func (h *ItemHandler) EntryMovements(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	movements, err := h.uc.ListEntryMovements(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// OrderMovements devolve os movimentos gerados por uma ordem de produção.
func (h *ItemHandler) OrderMovements(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	movements, err := h.uc.ListOrderMovements(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.JSON(out)
}

// ManualInput registra uma entrada avulsa de insumo.
func (h *ItemHandler) ManualInput(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.ManualInputRequest
	if err := c.BodyParser(&in); err != nil {
		return writeInvalidBody(c)
	}
	if err := h.uc.ManualInput(c.Context(), id, in.Quantity, in.TotalValue); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUnits devolve o catálogo de unidades de medida.
func (h *ItemHandler) ListUnits(c *fiber.Ctx) error {
	units, err := h.uc.ListUnits(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, dto.UnitResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol})
	}
	return c.JSON(out)
}

func toItemInput(in dto.ItemRequest) item.ItemInput {
	return item.ItemInput{
		InternalCode:      in.InternalCode,
		Description:       in.Description,
		Kind:              entity.ItemKind(in.Kind),
		UnitID:            in.UnitID,
		DefaultSupplierID: in.DefaultSupplierID,
	}
}
