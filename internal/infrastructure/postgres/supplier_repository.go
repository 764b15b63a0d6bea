package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, legal_name, trade_name, cnpj, status, phone, email,
	street, number, complement, district, city, state, postal_code`

// SupplierRepo implementação de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste um novo fornecedor.
func (r *SupplierRepo) Create(s *entity.Supplier) (int64, error) {
	query := `
		INSERT INTO suppliers (legal_name, trade_name, cnpj, status, phone, email,
			street, number, complement, district, city, state, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	var id int64
	err := r.q.QueryRow(context.Background(), query,
		s.LegalName, s.TradeName, s.CNPJ, s.Status, s.Phone, s.Email,
		s.Street, s.Number, s.Complement, s.District, s.City, s.State, s.PostalCode,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert supplier: %w", err)
	}
	return id, nil
}

// GetByID obtém um fornecedor por ID (nil se não existir).
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.LegalName, &s.TradeName, &s.CNPJ, &s.Status, &s.Phone, &s.Email,
		&s.Street, &s.Number, &s.Complement, &s.District, &s.City, &s.State, &s.PostalCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update atualiza o cadastro do fornecedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET legal_name = $2, trade_name = $3, cnpj = $4, status = $5,
			phone = $6, email = $7, street = $8, number = $9, complement = $10,
			district = $11, city = $12, state = $13, postal_code = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		s.ID, s.LegalName, s.TradeName, s.CNPJ, s.Status, s.Phone, s.Email,
		s.Street, s.Number, s.Complement, s.District, s.City, s.State, s.PostalCode,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete exclui o fornecedor. Falha com ErrConflict se houver referências.
func (r *SupplierRepo) Delete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete supplier: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista todos os fornecedores ordenados por razão social.
func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY legal_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.LegalName, &s.TradeName, &s.CNPJ, &s.Status,
			&s.Phone, &s.Email, &s.Street, &s.Number, &s.Complement,
			&s.District, &s.City, &s.State, &s.PostalCode); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
