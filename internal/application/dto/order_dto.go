package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain/entity"
)

// OrderLineRequest produto a produzir no body.
type OrderLineRequest struct {
	ProductID int64           `json:"product_id" validate:"required,gt=0"`
	Quantity  decimal.Decimal `json:"quantity" validate:"required"`
}

// OrderRequest body para criar/atualizar ordem de produção.
type OrderRequest struct {
	Number  string             `json:"number" validate:"required"`
	DueDate *string            `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Lines   []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// FinalizeOrderRequest body para concluir a ordem.
type FinalizeOrderRequest struct {
	ProducedQty decimal.Decimal `json:"produced_qty" validate:"required"`
}

// OrderLineResponse produto a produzir na resposta.
type OrderLineResponse struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// OrderResponse ordem de produção na resposta.
type OrderResponse struct {
	ID          int64               `json:"id"`
	Number      string              `json:"number"`
	CreatedAt   time.Time           `json:"created_at"`
	DueDate     *string             `json:"due_date,omitempty"`
	Status      string              `json:"status"`
	ProducedQty *decimal.Decimal    `json:"produced_qty,omitempty"`
	TotalCost   *decimal.Decimal    `json:"total_cost,omitempty"`
	Lines       []OrderLineResponse `json:"lines"`
}

// ToOrderResponse converte a entidade para o DTO de resposta.
func ToOrderResponse(o *entity.ProductionOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity})
	}
	var due *string
	if o.DueDate != nil {
		s := o.DueDate.Format("2006-01-02")
		due = &s
	}
	return OrderResponse{
		ID:          o.ID,
		Number:      o.Number,
		CreatedAt:   o.CreatedAt,
		DueDate:     due,
		Status:      string(o.Status),
		ProducedQty: o.ProducedQty,
		TotalCost:   o.TotalCost,
		Lines:       lines,
	}
}

// FinalizeOrderResponse resultado da conclusão da ordem.
type FinalizeOrderResponse struct {
	ID          int64           `json:"id"`
	Status      string          `json:"status"`
	ProducedQty decimal.Decimal `json:"produced_qty"`
	TotalCost   decimal.Decimal `json:"total_cost"`
}
