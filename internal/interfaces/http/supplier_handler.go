package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/minisis/producao-api/internal/application/dto"
	"github.com/minisis/producao-api/internal/application/supplier"
)

// SupplierHandler trata as requisições HTTP do cadastro de fornecedores.
type SupplierHandler struct {
	uc *supplier.SupplierUseCase
}

// NewSupplierHandler constrói o handler.
func NewSupplierHandler(uc *supplier.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create cria um fornecedor.
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return writeInvalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeInvalidBody(c)
	}
	id, err := h.uc.CreateSupplier(c.Context(), in.ToSupplierEntity(0))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update atualiza o cadastro do fornecedor.
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.SupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return writeInvalidBody(c)
	}
	if err := validate.Struct(in); err != nil {
		return writeInvalidBody(c)
	}
	if err := h.uc.UpdateSupplier(c.Context(), in.ToSupplierEntity(id)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID devolve o fornecedor.
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.GetSupplier(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToSupplierResponse(s))
}

// List lista os fornecedores.
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	suppliers, err := h.uc.ListSuppliers(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.ToSupplierResponse(s))
	}
	return c.JSON(out)
}

// Delete exclui o fornecedor (bloqueado por FK se referenciado em notas).
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteSupplier(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
