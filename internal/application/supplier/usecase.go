package supplier

import (
	"context"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// SupplierUseCase concentra o cadastro de fornecedores. Nenhuma validação de
// CNPJ nem consulta de CEP acontece aqui — os campos são armazenados como
// informados.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase constrói o caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// CreateSupplier cria um fornecedor Ativo.
func (uc *SupplierUseCase) CreateSupplier(ctx context.Context, s *entity.Supplier) (int64, error) {
	if s.LegalName == "" {
		return 0, domain.ErrInvalidInput
	}
	if s.Status == "" {
		s.Status = "Ativo"
	}
	return uc.repo.Create(s)
}

// UpdateSupplier atualiza o cadastro.
func (uc *SupplierUseCase) UpdateSupplier(ctx context.Context, s *entity.Supplier) error {
	if s.LegalName == "" {
		return domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByID(s.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Update(s)
}

// GetSupplier devolve o fornecedor.
func (uc *SupplierUseCase) GetSupplier(ctx context.Context, id int64) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// ListSuppliers lista os fornecedores.
func (uc *SupplierUseCase) ListSuppliers(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.repo.List()
}

// DeleteSupplier exclui o fornecedor. Referências em notas de entrada são
// protegidas por chave estrangeira no banco; a violação chega como ErrConflict.
func (uc *SupplierUseCase) DeleteSupplier(ctx context.Context, id int64) error {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}
