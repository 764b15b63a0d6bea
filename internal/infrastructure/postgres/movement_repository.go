package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, item_id, kind, quantity, unit_cost, entry_id, order_id, occurred_at, created_at`

// MovementRepo implementação de MovementRepository sobre PostgreSQL.
// Append-only por construção: não há UPDATE nem DELETE aqui.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append lança um movimento no razão.
func (r *MovementRepo) Append(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, item_id, kind, quantity, unit_cost, entry_id, order_id, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ItemID, m.Kind, m.Quantity, m.UnitCost, m.EntryID, m.OrderID, m.OccurredAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// LastByItem devolve o movimento mais recente do item (nil se não houver).
// A ordem de lançamento vem da coluna seq: created_at pode colidir no mesmo
// microssegundo e o id aleatório não desempata.
func (r *MovementRepo) LastByItem(itemID int64) (*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE item_id = $1 ORDER BY seq DESC LIMIT 1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, itemID).Scan(
		&m.ID, &m.ItemID, &m.Kind, &m.Quantity, &m.UnitCost, &m.EntryID, &m.OrderID, &m.OccurredAt, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last movement: %w", err)
	}
	return &m, nil
}

// ListByItem lista os movimentos do item, do mais recente para o mais antigo.
func (r *MovementRepo) ListByItem(itemID int64, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE item_id = $1 ORDER BY seq DESC LIMIT $2 OFFSET $3`
	return r.queryMany(query, itemID, limit, offset)
}

// ListByEntry lista os movimentos lançados por uma nota de entrada.
func (r *MovementRepo) ListByEntry(entryID int64) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE entry_id = $1 ORDER BY seq`
	return r.queryMany(query, entryID)
}

// ListByOrder lista os movimentos lançados por uma ordem de produção.
func (r *MovementRepo) ListByOrder(orderID int64) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + ` FROM movements
		WHERE order_id = $1 ORDER BY seq`
	return r.queryMany(query, orderID)
}

func (r *MovementRepo) queryMany(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Kind, &m.Quantity, &m.UnitCost,
			&m.EntryID, &m.OrderID, &m.OccurredAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
