package repository

import "github.com/minisis/producao-api/internal/domain/entity"

// CompositionRepository é o porto da composição (BOM). A liquidação de produção
// apenas lê; Replace é usado pela edição de BOM (apaga e regrava as linhas do
// produto em uma operação).
type CompositionRepository interface {
	GetByProduct(productID int64) ([]*entity.CompositionLine, error)
	Replace(productID int64, lines []*entity.CompositionLine) error
}
