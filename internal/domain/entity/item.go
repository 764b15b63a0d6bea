package entity

import (
	"github.com/shopspring/decimal"
)

// ItemKind classifica o item quanto ao papel na produção.
type ItemKind string

const (
	ItemKindInsumo  ItemKind = "Insumo"  // apenas consumido
	ItemKindProduto ItemKind = "Produto" // apenas produzido
	ItemKindAmbos   ItemKind = "Ambos"   // consumido e produzido
)

// Valid informa se o tipo é um dos três valores aceitos.
func (k ItemKind) Valid() bool {
	return k == ItemKindInsumo || k == ItemKindProduto || k == ItemKindAmbos
}

// CanBeInput informa se o item pode ser usado como insumo (composição, nota de entrada).
func (k ItemKind) CanBeInput() bool {
	return k == ItemKindInsumo || k == ItemKindAmbos
}

// CanBeOutput informa se o item pode ser produzido por uma ordem de produção.
func (k ItemKind) CanBeOutput() bool {
	return k == ItemKindProduto || k == ItemKindAmbos
}

// Item é o cadastro mestre com o estado de estoque corrente.
// Balance e AvgCost são mutados somente pelo motor de custeio dentro de uma
// transação de liquidação; nenhum outro caminho de código escreve nesses campos.
// Invariante: Balance == 0 ⇒ AvgCost == 0 (item zerado não carrega base de custo).
type Item struct {
	ID                int64
	InternalCode      string
	Description       string
	Kind              ItemKind
	UnitID            int64
	DefaultSupplierID *int64
	Balance           decimal.Decimal // saldo em estoque, nunca negativo
	AvgCost           decimal.Decimal // custo médio ponderado móvel, >= 0
}
