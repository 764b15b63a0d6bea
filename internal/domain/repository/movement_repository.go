package repository

import "github.com/minisis/producao-api/internal/domain/entity"

// MovementRepository é o porto do razão de movimentos. Append-only: não há
// Update nem Delete — correções entram como novos movimentos de sentido oposto.
type MovementRepository interface {
	Append(m *entity.Movement) error
	// LastByItem devolve o movimento mais recente do item (nil se não houver).
	// Usado pela guarda de estorno: a reabertura só é permitida quando o último
	// movimento de cada item afetado pertence à própria liquidação.
	LastByItem(itemID int64) (*entity.Movement, error)
	ListByItem(itemID int64, limit, offset int) ([]*entity.Movement, error)
	ListByEntry(entryID int64) ([]*entity.Movement, error)
	ListByOrder(orderID int64) ([]*entity.Movement, error)
}
