package repository

import "github.com/minisis/producao-api/internal/domain/entity"

// SupplierRepository é o porto do cadastro de fornecedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) (int64, error)
	GetByID(id int64) (*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id int64) error
	List() ([]*entity.Supplier, error)
}
