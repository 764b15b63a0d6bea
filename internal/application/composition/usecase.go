package composition

import (
	"context"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// CompositionUseCase mantém a composição (BOM) dos produtos. A liquidação de
// produção apenas lê a composição; toda escrita passa por aqui.
type CompositionUseCase struct {
	compRepo repository.CompositionRepository
	itemRepo repository.ItemRepository
}

// NewCompositionUseCase constrói o caso de uso.
func NewCompositionUseCase(compRepo repository.CompositionRepository, itemRepo repository.ItemRepository) *CompositionUseCase {
	return &CompositionUseCase{compRepo: compRepo, itemRepo: itemRepo}
}

// GetComposition devolve a composição do produto.
func (uc *CompositionUseCase) GetComposition(ctx context.Context, productID int64) ([]*entity.CompositionLine, error) {
	product, err := uc.itemRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return uc.compRepo.GetByProduct(productID)
}

// ReplaceComposition substitui a composição inteira do produto após validar
// cada linha: o produto precisa ser produzível, o insumo não pode ser o próprio
// produto, precisa ser de tipo consumível e não pode repetir.
func (uc *CompositionUseCase) ReplaceComposition(ctx context.Context, productID int64, lines []*entity.CompositionLine) error {
	product, err := uc.itemRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if !product.Kind.CanBeOutput() {
		return domain.ErrInvalidInput
	}

	seen := make(map[int64]bool, len(lines))
	for _, l := range lines {
		if l.InputID == productID {
			// um produto não pode ser componente de si mesmo
			return domain.ErrInvalidInput
		}
		if !l.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
		if seen[l.InputID] {
			return domain.ErrDuplicate
		}
		seen[l.InputID] = true

		input, err := uc.itemRepo.GetByID(l.InputID)
		if err != nil {
			return err
		}
		if input == nil {
			return domain.ErrNotFound
		}
		if !input.Kind.CanBeInput() {
			return domain.ErrInvalidInput
		}
	}

	return uc.compRepo.Replace(productID, lines)
}
