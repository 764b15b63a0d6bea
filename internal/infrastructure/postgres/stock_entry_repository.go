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

var _ repository.StockEntryRepository = (*StockEntryRepo)(nil)

const entryColumns = `id, entry_date, typed_at, note_number, note, total_value, status`

// StockEntryRepo implementação de StockEntryRepository sobre PostgreSQL.
type StockEntryRepo struct {
	q Querier
}

// NewStockEntryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockEntryRepository(q Querier) *StockEntryRepo {
	return &StockEntryRepo{q: q}
}

// Create persiste a nota com as linhas e devolve o ID gerado.
func (r *StockEntryRepo) Create(e *entity.StockEntry) (int64, error) {
	ctx := context.Background()
	query := `
		INSERT INTO stock_entries (entry_date, typed_at, note_number, note, total_value, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query,
		e.EntryDate, e.TypedAt, e.NoteNumber, e.Note, e.TotalValue, e.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert stock entry: %w", err)
	}
	if err := r.insertLines(ctx, id, e.Lines); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID devolve a nota com as linhas carregadas (nil se não existir).
func (r *StockEntryRepo) GetByID(id int64) (*entity.StockEntry, error) {
	ctx := context.Background()
	query := `SELECT ` + entryColumns + ` FROM stock_entries WHERE id = $1`
	var e entity.StockEntry
	err := r.q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.EntryDate, &e.TypedAt, &e.NoteNumber, &e.Note, &e.TotalValue, &e.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock entry: %w", err)
	}
	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Lines = lines
	return &e, nil
}

// UpdateHeader atualiza o cabeçalho da nota (não toca nas linhas nem no status).
func (r *StockEntryRepo) UpdateHeader(e *entity.StockEntry) error {
	query := `
		UPDATE stock_entries SET entry_date = $2, note_number = $3, note = $4, total_value = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.EntryDate, e.NoteNumber, e.Note, e.TotalValue,
	)
	if err != nil {
		return fmt.Errorf("update stock entry: %w", err)
	}
	return nil
}

// ReplaceLines apaga e regrava as linhas da nota.
func (r *StockEntryRepo) ReplaceLines(entryID int64, lines []entity.StockEntryLine) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_entry_lines WHERE entry_id = $1`, entryID); err != nil {
		return fmt.Errorf("clear stock entry lines: %w", err)
	}
	return r.insertLines(ctx, entryID, lines)
}

// SetTotalValue grava o valor total derivado das linhas.
func (r *StockEntryRepo) SetTotalValue(entryID int64, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE stock_entries SET total_value = $2 WHERE id = $1`, entryID, total)
	if err != nil {
		return fmt.Errorf("set stock entry total: %w", err)
	}
	return nil
}

// SetStatus grava o status da nota.
func (r *StockEntryRepo) SetStatus(entryID int64, status entity.EntryStatus) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_entries SET status = $2 WHERE id = $1`, entryID, status)
	if err != nil {
		return fmt.Errorf("set stock entry status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista notas filtrando por campo/termo; sem filtro devolve todas,
// das mais recentes para as mais antigas. As linhas não são carregadas.
func (r *StockEntryRepo) List(field, term string) ([]*entity.StockEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM stock_entries`
	var args []any
	if term != "" {
		switch field {
		case "id":
			query += ` WHERE id::text = $1`
		case "status":
			query += ` WHERE status = $1`
		case "supplier":
			query += ` WHERE EXISTS (
				SELECT 1 FROM stock_entry_lines l
				WHERE l.entry_id = stock_entries.id AND l.supplier_id::text = $1)`
		case "note_number":
			query += ` WHERE note_number ILIKE $1`
			term = "%" + term + "%"
		default:
			query += ` WHERE note ILIKE $1`
			term = "%" + term + "%"
		}
		args = append(args, term)
	}
	query += ` ORDER BY entry_date DESC, id DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockEntry
	for rows.Next() {
		var e entity.StockEntry
		if err := rows.Scan(&e.ID, &e.EntryDate, &e.TypedAt, &e.NoteNumber,
			&e.Note, &e.TotalValue, &e.Status); err != nil {
			return nil, fmt.Errorf("scan stock entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *StockEntryRepo) insertLines(ctx context.Context, entryID int64, lines []entity.StockEntryLine) error {
	for _, l := range lines {
		_, err := r.q.Exec(ctx,
			`INSERT INTO stock_entry_lines (entry_id, item_id, supplier_id, quantity, unit_cost)
			 VALUES ($1, $2, $3, $4, $5)`,
			entryID, l.ItemID, l.SupplierID, l.Quantity, l.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert stock entry line: %w", err)
		}
	}
	return nil
}

func (r *StockEntryRepo) lines(ctx context.Context, entryID int64) ([]entity.StockEntryLine, error) {
	query := `
		SELECT id, entry_id, item_id, supplier_id, quantity, unit_cost
		FROM stock_entry_lines WHERE entry_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("list stock entry lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.StockEntryLine
	for rows.Next() {
		var l entity.StockEntryLine
		if err := rows.Scan(&l.ID, &l.EntryID, &l.ItemID, &l.SupplierID, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan stock entry line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
