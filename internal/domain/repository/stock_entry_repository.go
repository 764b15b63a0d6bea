package repository

import (
	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain/entity"
)

// StockEntryRepository é o porto das notas de entrada (cabeçalho + linhas).
type StockEntryRepository interface {
	Create(e *entity.StockEntry) (int64, error)
	// GetByID devolve a nota com as linhas carregadas (nil se não existir).
	GetByID(id int64) (*entity.StockEntry, error)
	UpdateHeader(e *entity.StockEntry) error
	// ReplaceLines apaga e regrava as linhas da nota (edição enquanto Em Aberto).
	ReplaceLines(entryID int64, lines []entity.StockEntryLine) error
	SetTotalValue(entryID int64, total decimal.Decimal) error
	SetStatus(entryID int64, status entity.EntryStatus) error
	List(field, term string) ([]*entity.StockEntry, error)
}
