package entity

import "github.com/shopspring/decimal"

// CompositionLine é uma linha da composição (BOM) de um produto: o insumo e a
// quantidade necessária por unidade produzida. Invariantes: o insumo não pode
// ser o próprio produto e precisa ser de tipo consumível (Insumo ou Ambos).
// A liquidação de produção só lê a composição; quem a escreve é a edição de BOM.
type CompositionLine struct {
	ID        int64
	ProductID int64
	InputID   int64
	Quantity  decimal.Decimal // por unidade produzida, > 0
}
