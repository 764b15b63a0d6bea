package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus é o status de uma ordem de produção.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "Em aberto"
	OrderStatusCompleted OrderStatus = "Concluida"
	OrderStatusCancelled OrderStatus = "Cancelada"
)

// ProductionOrder é a ordem de produção. A política adotada é consumo na
// finalização: criar/editar a ordem só persiste cabeçalho e linhas; o razão é
// tocado apenas ao concluir (consome insumos da composição e credita os
// produtos) e ao reabrir (estorna o consumo e o crédito).
type ProductionOrder struct {
	ID          int64
	Number      string
	CreatedAt   time.Time
	DueDate     *time.Time
	Status      OrderStatus
	ProducedQty *decimal.Decimal // quantidade reportada na conclusão
	TotalCost   *decimal.Decimal // derivado na conclusão: Σ consumo * custo médio na baixa
	Lines       []ProductionOrderLine
}

// ProductionOrderLine é um produto a produzir dentro da ordem.
type ProductionOrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  decimal.Decimal // unidades a produzir
}
