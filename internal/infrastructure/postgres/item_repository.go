package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, internal_code, description, kind, unit_id, default_supplier_id, balance, avg_cost`

// ItemRepo implementação de ItemRepository sobre PostgreSQL (usável com pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste um novo item. Saldo e custo iniciam em 0.
func (r *ItemRepo) Create(item *entity.Item) (int64, error) {
	query := `
		INSERT INTO items (internal_code, description, kind, unit_id, default_supplier_id, balance, avg_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		item.InternalCode, item.Description, item.Kind, item.UnitID,
		item.DefaultSupplierID, item.Balance, item.AvgCost,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

// GetByID obtém um item por ID (nil se não existir).
func (r *ItemRepo) GetByID(id int64) (*entity.Item, error) {
	return r.get(id, false)
}

// GetForUpdate obtém o item bloqueando a linha (SELECT FOR UPDATE). Usado pelo
// motor de custeio dentro de transação para evitar condições de corrida.
func (r *ItemRepo) GetForUpdate(id int64) (*entity.Item, error) {
	return r.get(id, true)
}

func (r *ItemRepo) get(id int64, forUpdate bool) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.InternalCode, &it.Description, &it.Kind, &it.UnitID,
		&it.DefaultSupplierID, &it.Balance, &it.AvgCost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Update atualiza o cadastro do item. Não toca em balance nem avg_cost.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET internal_code = $2, description = $3, kind = $4, unit_id = $5, default_supplier_id = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InternalCode, item.Description, item.Kind, item.UnitID, item.DefaultSupplierID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// UpdateBalanceAndCost atualiza saldo e custo médio (uso exclusivo do motor de
// custeio, dentro de transação).
func (r *ItemRepo) UpdateBalanceAndCost(id int64, balance, avgCost decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE items SET balance = $2, avg_cost = $3 WHERE id = $1`,
		id, balance, avgCost,
	)
	if err != nil {
		return fmt.Errorf("update item balance/cost: %w", err)
	}
	return nil
}

// Delete exclui o item.
func (r *ItemRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos os itens ordenados por descrição.
func (r *ItemRepo) List() ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items ORDER BY description`
	return r.queryMany(query)
}

// Search busca por descrição (LIKE, case-insensitive) ou por id.
func (r *ItemRepo) Search(field, term string) ([]*entity.Item, error) {
	switch field {
	case "id":
		query := `SELECT ` + itemColumns + ` FROM items WHERE id::text = $1 ORDER BY description`
		return r.queryMany(query, term)
	default:
		query := `SELECT ` + itemColumns + ` FROM items WHERE description ILIKE $1 ORDER BY description`
		return r.queryMany(query, "%"+term+"%")
	}
}

func (r *ItemRepo) queryMany(query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.InternalCode, &it.Description, &it.Kind, &it.UnitID,
			&it.DefaultSupplierID, &it.Balance, &it.AvgCost); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// IsCompositionInput informa se o item aparece como insumo em alguma composição.
func (r *ItemRepo) IsCompositionInput(id int64) (bool, error) {
	return r.exists(`SELECT 1 FROM compositions WHERE input_id = $1 LIMIT 1`, id)
}

// HasComposition informa se o item (produto) possui composição própria.
func (r *ItemRepo) HasComposition(id int64) (bool, error) {
	return r.exists(`SELECT 1 FROM compositions WHERE product_id = $1 LIMIT 1`, id)
}

// IsInProductionOrder informa se o item aparece em linhas de ordem de produção.
func (r *ItemRepo) IsInProductionOrder(id int64) (bool, error) {
	return r.exists(`SELECT 1 FROM production_order_lines WHERE product_id = $1 LIMIT 1`, id)
}

// HasMovements informa se o item possui movimentos no razão.
func (r *ItemRepo) HasMovements(id int64) (bool, error) {
	return r.exists(`SELECT 1 FROM movements WHERE item_id = $1 LIMIT 1`, id)
}

func (r *ItemRepo) exists(query string, id int64) (bool, error) {
	var one int
	err := r.q.QueryRow(context.Background(), query, id).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("exists: %w", err)
	}
	return true, nil
}
