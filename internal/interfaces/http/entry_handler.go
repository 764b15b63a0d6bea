package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/minisis/producao-api/internal/application/dto"
	"github.com/minisis/producao-api/internal/application/stock"
	"github.com/minisis/producao-api/internal/domain/entity"
)

// EntryHandler trata as requisições HTTP das notas de entrada, incluindo a
// liquidação (finalizar/reabrir).
type EntryHandler struct {
	uc *stock.EntryUseCase
}

// NewEntryHandler constrói o handler.
func NewEntryHandler(uc *stock.EntryUseCase) *EntryHandler {
	return &EntryHandler{uc: uc}
}

// Create cria uma nota Em Aberto.
func (h *EntryHandler) Create(c *fiber.Ctx) error {
	in, err := h.parseBody(c)
	if err != nil {
		return writeInvalidBody(c)
	}
	id, err := h.uc.CreateEntry(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update atualiza cabeçalho e linhas de uma nota Em Aberto.
func (h *EntryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	in, err := h.parseBody(c)
	if err != nil {
		return writeInvalidBody(c)
	}
	if err := h.uc.UpdateEntry(c.Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID devolve a nota com as linhas.
func (h *EntryHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	e, err := h.uc.GetEntry(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.ToEntryResponse(e))
}

// List lista notas (?field=id|note_number|note&term=...).
func (h *EntryHandler) List(c *fiber.Ctx) error {
	entries, err := h.uc.ListEntries(c.Context(), c.Query("field"), c.Query("term"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToEntryResponse(e))
	}
	return c.JSON(out)
}

// Finalize liquida a nota: lança as linhas no estoque e congela a edição.
func (h *EntryHandler) Finalize(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	total, err := h.uc.FinalizeEntry(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.FinalizeEntryResponse{
		ID:         id,
		Status:     string(entity.EntryStatusFinalized),
		TotalValue: total,
	})
}

// Reopen estorna a liquidação e volta a nota para Em Aberto.
func (h *EntryHandler) Reopen(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.ReopenEntry(c.Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "status": string(entity.EntryStatusOpen)})
}

func (h *EntryHandler) parseBody(c *fiber.Ctx) (stock.EntryInput, error) {
	var in dto.EntryRequest
	if err := c.BodyParser(&in); err != nil {
		return stock.EntryInput{}, err
	}
	if err := validate.Struct(in); err != nil {
		return stock.EntryInput{}, err
	}
	entryDate, err := time.Parse("2006-01-02", in.EntryDate)
	if err != nil {
		return stock.EntryInput{}, err
	}
	lines := make([]stock.EntryLineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, stock.EntryLineInput{
			ItemID:     l.ItemID,
			SupplierID: l.SupplierID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
		})
	}
	return stock.EntryInput{
		EntryDate:  entryDate,
		NoteNumber: in.NoteNumber,
		Note:       in.Note,
		Lines:      lines,
	}, nil
}
