package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain/entity"
)

// EntryLineRequest linha da nota no body.
type EntryLineRequest struct {
	ItemID     int64           `json:"item_id" validate:"required,gt=0"`
	SupplierID int64           `json:"supplier_id" validate:"required,gt=0"`
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	UnitCost   decimal.Decimal `json:"unit_cost" validate:"required"`
}

// EntryRequest body para criar/atualizar nota de entrada. A data vem no
// formato 2006-01-02.
type EntryRequest struct {
	EntryDate  string             `json:"entry_date" validate:"required,datetime=2006-01-02"`
	NoteNumber string             `json:"note_number"`
	Note       string             `json:"note"`
	Lines      []EntryLineRequest `json:"lines" validate:"dive"`
}

// EntryLineResponse linha da nota na resposta.
type EntryLineResponse struct {
	ID         int64           `json:"id"`
	ItemID     int64           `json:"item_id"`
	SupplierID int64           `json:"supplier_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

// EntryResponse nota de entrada na resposta.
type EntryResponse struct {
	ID         int64               `json:"id"`
	EntryDate  string              `json:"entry_date"`
	TypedAt    time.Time           `json:"typed_at"`
	NoteNumber string              `json:"note_number"`
	Note       string              `json:"note"`
	TotalValue decimal.Decimal     `json:"total_value"`
	Status     string              `json:"status"`
	Lines      []EntryLineResponse `json:"lines"`
}

// ToEntryResponse converte a entidade para o DTO de resposta.
func ToEntryResponse(e *entity.StockEntry) EntryResponse {
	lines := make([]EntryLineResponse, 0, len(e.Lines))
	for _, l := range e.Lines {
		lines = append(lines, EntryLineResponse{
			ID:         l.ID,
			ItemID:     l.ItemID,
			SupplierID: l.SupplierID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
			LineTotal:  l.LineTotal(),
		})
	}
	return EntryResponse{
		ID:         e.ID,
		EntryDate:  e.EntryDate.Format("2006-01-02"),
		TypedAt:    e.TypedAt,
		NoteNumber: e.NoteNumber,
		Note:       e.Note,
		TotalValue: e.TotalValue,
		Status:     string(e.Status),
		Lines:      lines,
	}
}

// FinalizeEntryResponse resultado da finalização da nota.
type FinalizeEntryResponse struct {
	ID         int64           `json:"id"`
	Status     string          `json:"status"`
	TotalValue decimal.Decimal `json:"total_value"`
}
