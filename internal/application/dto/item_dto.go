package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain/entity"
)

// ItemRequest body para criar/atualizar item. Saldo e custo médio não são
// aceitos aqui: só o motor de custeio os altera.
type ItemRequest struct {
	InternalCode      string `json:"internal_code"`
	Description       string `json:"description" validate:"required"`
	Kind              string `json:"kind" validate:"required,oneof=Insumo Produto Ambos"`
	UnitID            int64  `json:"unit_id" validate:"required,gt=0"`
	DefaultSupplierID *int64 `json:"default_supplier_id,omitempty"`
}

// ItemResponse item do cadastro com saldo e custo correntes.
type ItemResponse struct {
	ID                int64           `json:"id"`
	InternalCode      string          `json:"internal_code"`
	Description       string          `json:"description"`
	Kind              string          `json:"kind"`
	UnitID            int64           `json:"unit_id"`
	DefaultSupplierID *int64          `json:"default_supplier_id,omitempty"`
	Balance           decimal.Decimal `json:"balance"`
	AvgCost           decimal.Decimal `json:"avg_cost"`
}

// ToItemResponse converte a entidade para o DTO de resposta.
func ToItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:                it.ID,
		InternalCode:      it.InternalCode,
		Description:       it.Description,
		Kind:              string(it.Kind),
		UnitID:            it.UnitID,
		DefaultSupplierID: it.DefaultSupplierID,
		Balance:           it.Balance,
		AvgCost:           it.AvgCost,
	}
}

// ManualInputRequest body para a entrada manual de insumo. O valor unitário é
// derivado: total_value / quantity.
type ManualInputRequest struct {
	Quantity   decimal.Decimal `json:"quantity" validate:"required"`
	TotalValue decimal.Decimal `json:"total_value" validate:"required"`
}

// UnitResponse unidade de medida do catálogo.
type UnitResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// MovementResponse lançamento do razão no extrato do item.
type MovementResponse struct {
	ID         string           `json:"id"`
	ItemID     int64            `json:"item_id"`
	Kind       string           `json:"kind"`
	Direction  int              `json:"direction"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitCost   *decimal.Decimal `json:"unit_cost,omitempty"`
	EntryID    *int64           `json:"entry_id,omitempty"`
	OrderID    *int64           `json:"order_id,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
	CreatedAt  time.Time        `json:"created_at"`
}

// ToMovementResponse converte a entidade para o DTO de resposta.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:         m.ID,
		ItemID:     m.ItemID,
		Kind:       string(m.Kind),
		Direction:  m.Kind.Direction(),
		Quantity:   m.Quantity,
		UnitCost:   m.UnitCost,
		EntryID:    m.EntryID,
		OrderID:    m.OrderID,
		OccurredAt: m.OccurredAt,
		CreatedAt:  m.CreatedAt,
	}
}
