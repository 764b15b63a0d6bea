package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus é o status de uma nota de entrada.
type EntryStatus string

const (
	EntryStatusOpen      EntryStatus = "Em Aberto"
	EntryStatusFinalized EntryStatus = "Finalizada"
)

// StockEntry é a nota de entrada de insumos (recebimento de mercadoria).
// Enquanto Em Aberto o cabeçalho e as linhas são livremente editáveis e nada
// toca o razão; Finalizar lança as linhas no estoque e congela a nota;
// Reabrir estorna o lançamento e volta o status para Em Aberto.
type StockEntry struct {
	ID         int64
	EntryDate  time.Time // data do recebimento
	TypedAt    time.Time // data da digitação
	NoteNumber string
	Note       string          // observação livre
	TotalValue decimal.Decimal // derivado: soma de quantidade * valor unitário das linhas
	Status     EntryStatus
	Lines      []StockEntryLine
}

// StockEntryLine é uma linha da nota: um insumo recebido de um fornecedor.
type StockEntryLine struct {
	ID         int64
	EntryID    int64
	ItemID     int64
	SupplierID int64
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}

// LineTotal devolve o valor da linha.
func (l StockEntryLine) LineTotal() decimal.Decimal {
	return l.Quantity.Mul(l.UnitCost)
}
