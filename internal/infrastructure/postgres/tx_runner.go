package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/minisis/producao-api/internal/application/item"
	"github.com/minisis/producao-api/internal/application/production"
	"github.com/minisis/producao-api/internal/application/stock"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// Garante que TxRunner implementa os portos de transação dos casos de uso.
var (
	_ stock.TxRunner      = (*TxRunner)(nil)
	_ production.TxRunner = (*TxRunner)(nil)
	_ item.TxRunner       = (*TxRunner)(nil)
)

// TxRunner executa callbacks dentro de uma transação PostgreSQL. O Rollback
// adiado cobre todos os caminhos de saída (erro, panic, retorno antecipado);
// depois do Commit ele vira no-op.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunEntry abre uma transação com os repositórios da liquidação de nota de
// entrada e faz Commit se fn devolver nil, Rollback caso contrário.
func (r *TxRunner) RunEntry(ctx context.Context, fn func(
	entryRepo repository.StockEntryRepository,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockEntryRepository(tx), NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunProduction abre uma transação com os repositórios da liquidação de ordem
// de produção.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	orderRepo repository.ProductionOrderRepository,
	compRepo repository.CompositionRepository,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductionOrderRepository(tx), NewCompositionRepository(tx), NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger abre uma transação com os repositórios do razão (entrada manual).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewItemRepository(tx), NewMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
