package dto

import (
	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain/entity"
)

// CompositionLineRequest linha de composição no body.
type CompositionLineRequest struct {
	InputID  int64           `json:"input_id" validate:"required,gt=0"`
	Quantity decimal.Decimal `json:"quantity" validate:"required"`
}

// CompositionRequest body para substituir a composição do produto.
type CompositionRequest struct {
	Lines []CompositionLineRequest `json:"lines" validate:"dive"`
}

// CompositionLineResponse linha de composição na resposta.
type CompositionLineResponse struct {
	ID       int64           `json:"id"`
	InputID  int64           `json:"input_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CompositionResponse composição do produto.
type CompositionResponse struct {
	ProductID int64                     `json:"product_id"`
	Lines     []CompositionLineResponse `json:"lines"`
}

// ToCompositionResponse converte as linhas para o DTO de resposta.
func ToCompositionResponse(productID int64, lines []*entity.CompositionLine) CompositionResponse {
	out := make([]CompositionLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, CompositionLineResponse{ID: l.ID, InputID: l.InputID, Quantity: l.Quantity})
	}
	return CompositionResponse{ProductID: productID, Lines: out}
}
