package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/minisis/producao-api/internal/application/composition"
	"github.com/minisis/producao-api/internal/application/dto"
	"github.com/minisis/producao-api/internal/domain/entity"
)

// CompositionHandler trata as requisições HTTP da composição (BOM) dos produtos.
type CompositionHandler struct {
	uc *composition.CompositionUseCase
}

// NewCompositionHandler constrói o handler.
func NewCompositionHandler(uc *composition.CompositionUseCase) *CompositionHandler {
	return &CompositionHandler{uc: uc}
}

// Get devolve a composição do produto (:id).
func (h *CompositionHandler) Get(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	lines, err := h.uc.GetComposition(c.Context(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToCompositionResponse(productID, lines))
}

// Replace substitui a composição inteira do produto (:id).
func (h *CompositionHandler) Replace(c *fiber.Ctx) error {
	productID, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.CompositionRequest
	if err := c.BodyParser(&in); err != nil {
		return writeInvalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeInvalidBody(c)
	}
	lines := make([]*entity.CompositionLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, &entity.CompositionLine{
			ProductID: productID,
			InputID:   l.InputID,
			Quantity:  l.Quantity,
		})
	}
	if err := h.uc.ReplaceComposition(c.Context(), productID, lines); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
