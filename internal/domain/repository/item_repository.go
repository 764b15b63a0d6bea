package repository

import (
	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain/entity"
)

// ItemRepository é o porto de persistência do cadastro de itens.
// UpdateBalanceAndCost é de uso exclusivo do motor de custeio, dentro de
// transação; GetForUpdate bloqueia a linha (SELECT FOR UPDATE).
type ItemRepository interface {
	Create(item *entity.Item) (int64, error)
	GetByID(id int64) (*entity.Item, error)
	GetForUpdate(id int64) (*entity.Item, error)
	Update(item *entity.Item) error
	UpdateBalanceAndCost(id int64, balance, avgCost decimal.Decimal) error
	Delete(id int64) error
	List() ([]*entity.Item, error)
	Search(field, term string) ([]*entity.Item, error)

	// Guardas de exclusão: o item não pode sair do cadastro se ainda estiver
	// referenciado em composições, ordens ou movimentos.
	IsCompositionInput(id int64) (bool, error)
	HasComposition(id int64) (bool, error)
	IsInProductionOrder(id int64) (bool, error)
	HasMovements(id int64) (bool, error)
}

// UnitRepository é o porto do catálogo de unidades de medida.
type UnitRepository interface {
	List() ([]*entity.Unit, error)
	GetByID(id int64) (*entity.Unit, error)
}
