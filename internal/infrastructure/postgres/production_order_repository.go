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

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const orderColumns = `id, number, created_at, due_date, status, produced_qty, total_cost`

// ProductionOrderRepo implementação de ProductionOrderRepository sobre PostgreSQL.
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste a ordem com as linhas e devolve o ID gerado.
func (r *ProductionOrderRepo) Create(o *entity.ProductionOrder) (int64, error) {
	ctx := context.Background()
	query := `
		INSERT INTO production_orders (number, created_at, due_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query, o.Number, o.CreatedAt, o.DueDate, o.Status).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert production order: %w", err)
	}
	if err := r.insertLines(ctx, id, o.Lines); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID devolve a ordem com as linhas carregadas (nil se não existir).
func (r *ProductionOrderRepo) GetByID(id int64) (*entity.ProductionOrder, error) {
	ctx := context.Background()
	query := `SELECT ` + orderColumns + ` FROM production_orders WHERE id = $1`
	var o entity.ProductionOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Number, &o.CreatedAt, &o.DueDate, &o.Status, &o.ProducedQty, &o.TotalCost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Lines = lines
	return &o, nil
}

// UpdateHeader atualiza o cabeçalho da ordem (não toca nas linhas nem no status).
func (r *ProductionOrderRepo) UpdateHeader(o *entity.ProductionOrder) error {
	query := `UPDATE production_orders SET number = $2, due_date = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, o.ID, o.Number, o.DueDate)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update production order: %w", err)
	}
	return nil
}

// ReplaceLines apaga e regrava as linhas da ordem.
func (r *ProductionOrderRepo) ReplaceLines(orderID int64, lines []entity.ProductionOrderLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM production_order_lines WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("clear production order lines: %w", err)
	}
	return r.insertLines(ctx, orderID, lines)
}

// SetStatus grava o status da ordem.
func (r *ProductionOrderRepo) SetStatus(orderID int64, status entity.OrderStatus) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return fmt.Errorf("set production order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Complete marca a ordem como Concluida registrando quantidade produzida e custo total.
func (r *ProductionOrderRepo) Complete(orderID int64, producedQty, totalCost decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET status = $2, produced_qty = $3, total_cost = $4 WHERE id = $1`,
		orderID, entity.OrderStatusCompleted, producedQty, totalCost)
	if err != nil {
		return fmt.Errorf("complete production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reopen volta a ordem para Em aberto limpando quantidade produzida e custo.
func (r *ProductionOrderRepo) Reopen(orderID int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE production_orders SET status = $2, produced_qty = NULL, total_cost = NULL WHERE id = $1`,
		orderID, entity.OrderStatusOpen)
	if err != nil {
		return fmt.Errorf("reopen production order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ordens filtrando por campo/termo; sem filtro devolve todas,
// das mais recentes para as mais antigas. As linhas não são carregadas.
func (r *ProductionOrderRepo) List(field, term string) ([]*entity.ProductionOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM production_orders`
	var args []any
	if term != "" {
		switch field {
		case "id":
			query += ` WHERE id::text = $1`
		case "status":
			query += ` WHERE status = $1`
		default:
			query += ` WHERE number ILIKE $1`
			term = "%" + term + "%"
		}
		args = append(args, term)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductionOrder
	for rows.Next() {
		var o entity.ProductionOrder
		if err := rows.Scan(&o.ID, &o.Number, &o.CreatedAt, &o.DueDate,
			&o.Status, &o.ProducedQty, &o.TotalCost); err != nil {
			return nil, fmt.Errorf("scan production order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func (r *ProductionOrderRepo) insertLines(ctx context.Context, orderID int64, lines []entity.ProductionOrderLine) error {
	for _, l := range lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO production_order_lines (order_id, product_id, quantity) VALUES ($1, $2, $3)`,
			orderID, l.ProductID, l.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert production order line: %w", err)
		}
	}
	return nil
}

func (r *ProductionOrderRepo) lines(ctx context.Context, orderID int64) ([]entity.ProductionOrderLine, error) {
	query := `
		SELECT id, order_id, product_id, quantity
		FROM production_order_lines WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list production order lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.ProductionOrderLine
	for rows.Next() {
		var l entity.ProductionOrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan production order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
