package repository

import (
	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain/entity"
)

// ProductionOrderRepository é o porto das ordens de produção (cabeçalho + linhas).
type ProductionOrderRepository interface {
	Create(o *entity.ProductionOrder) (int64, error)
	// GetByID devolve a ordem com as linhas carregadas (nil se não existir).
	GetByID(id int64) (*entity.ProductionOrder, error)
	UpdateHeader(o *entity.ProductionOrder) error
	ReplaceLines(orderID int64, lines []entity.ProductionOrderLine) error
	SetStatus(orderID int64, status entity.OrderStatus) error
	// Complete marca a ordem como Concluida registrando quantidade produzida e custo total.
	Complete(orderID int64, producedQty, totalCost decimal.Decimal) error
	// Reopen volta a ordem para Em aberto limpando quantidade produzida e custo.
	Reopen(orderID int64) error
	List(field, term string) ([]*entity.ProductionOrder, error)
}
