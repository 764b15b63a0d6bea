package postgres

import (
	"context"
	"fmt"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

var _ repository.CompositionRepository = (*CompositionRepo)(nil)

// CompositionRepo implementação de CompositionRepository sobre PostgreSQL.
type CompositionRepo struct {
	q Querier
}

// NewCompositionRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCompositionRepository(q Querier) *CompositionRepo {
	return &CompositionRepo{q: q}
}

// GetByProduct devolve as linhas da composição do produto, na ordem de inserção.
func (r *CompositionRepo) GetByProduct(productID int64) ([]*entity.CompositionLine, error) {
	query := `
		SELECT id, product_id, input_id, quantity FROM compositions
		WHERE product_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("get composition: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompositionLine
	for rows.Next() {
		var l entity.CompositionLine
		if err := rows.Scan(&l.ID, &l.ProductID, &l.InputID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan composition line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Replace apaga e regrava as linhas da composição do produto.
func (r *CompositionRepo) Replace(productID int64, lines []*entity.CompositionLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM compositions WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("clear composition: %w", err)
	}
	for _, l := range lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO compositions (product_id, input_id, quantity) VALUES ($1, $2, $3)`,
			productID, l.InputID, l.Quantity,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert composition line: %w", err)
		}
	}
	return nil
}
