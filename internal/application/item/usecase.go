package item

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/costing"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// ItemUseCase concentra o cadastro de itens, o catálogo de unidades, o extrato
// de movimentos e a entrada manual de insumo.
type ItemUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	unitRepo repository.UnitRepository
	movRepo  repository.MovementRepository
}

// NewItemUseCase constrói o caso de uso.
func NewItemUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	unitRepo repository.UnitRepository,
	movRepo repository.MovementRepository,
) *ItemUseCase {
	return &ItemUseCase{txRunner: txRunner, itemRepo: itemRepo, unitRepo: unitRepo, movRepo: movRepo}
}

// ItemInput é a entrada para criar ou atualizar um item. Saldo e custo médio
// não aparecem aqui: são mutados exclusivamente pelo motor de custeio.
type ItemInput struct {
	InternalCode      string
	Description       string
	Kind              entity.ItemKind
	UnitID            int64
	DefaultSupplierID *int64
}

// CreateItem cria um item com saldo e custo zerados.
func (uc *ItemUseCase) CreateItem(ctx context.Context, in ItemInput) (int64, error) {
	if err := uc.validate(in); err != nil {
		return 0, err
	}
	return uc.itemRepo.Create(&entity.Item{
		InternalCode:      in.InternalCode,
		Description:       in.Description,
		Kind:              in.Kind,
		UnitID:            in.UnitID,
		DefaultSupplierID: in.DefaultSupplierID,
		Balance:           decimal.Zero,
		AvgCost:           decimal.Zero,
	})
}

// UpdateItem atualiza o cadastro do item, preservando saldo e custo.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, itemID int64, in ItemInput) error {
	if err := uc.validate(in); err != nil {
		return err
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	item.InternalCode = in.InternalCode
	item.Description = in.Description
	item.Kind = in.Kind
	item.UnitID = in.UnitID
	item.DefaultSupplierID = in.DefaultSupplierID
	return uc.itemRepo.Update(item)
}

// DeleteItem exclui o item se nada mais o referencia: composições (como insumo
// ou como produto), linhas de ordem de produção e movimentos bloqueiam a
// exclusão.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, itemID int64) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if used, err := uc.itemRepo.IsCompositionInput(itemID); err != nil {
		return err
	} else if used {
		return domain.ErrConflict
	}
	if used, err := uc.itemRepo.IsInProductionOrder(itemID); err != nil {
		return err
	} else if used {
		return domain.ErrConflict
	}
	if used, err := uc.itemRepo.HasMovements(itemID); err != nil {
		return err
	} else if used {
		return domain.ErrConflict
	}
	if used, err := uc.itemRepo.HasComposition(itemID); err != nil {
		return err
	} else if used {
		return domain.ErrConflict
	}
	return uc.itemRepo.Delete(itemID)
}

// GetItem devolve o item.
func (uc *ItemUseCase) GetItem(ctx context.Context, itemID int64) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// SearchItems busca por descrição (LIKE) ou id.
func (uc *ItemUseCase) SearchItems(ctx context.Context, field, term string) ([]*entity.Item, error) {
	if term == "" {
		return uc.itemRepo.List()
	}
	return uc.itemRepo.Search(field, term)
}

// ListUnits devolve o catálogo de unidades de medida.
func (uc *ItemUseCase) ListUnits(ctx context.Context) ([]*entity.Unit, error) {
	return uc.unitRepo.List()
}

// ListMovements devolve o extrato de movimentos do item, do mais recente para
// o mais antigo.
func (uc *ItemUseCase) ListMovements(ctx context.Context, itemID int64, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.movRepo.ListByItem(itemID, limit, offset)
}

// ListEntryMovements devolve os movimentos gerados por uma nota de entrada.
func (uc *ItemUseCase) ListEntryMovements(ctx context.Context, entryID int64) ([]*entity.Movement, error) {
	return uc.movRepo.ListByEntry(entryID)
}

// ListOrderMovements devolve os movimentos gerados por uma ordem de produção.
func (uc *ItemUseCase) ListOrderMovements(ctx context.Context, orderID int64) ([]*entity.Movement, error) {
	return uc.movRepo.ListByOrder(orderID)
}

// ManualInput registra uma entrada avulsa de insumo: deriva o valor unitário do
// valor total informado, aplica o custeio de entrada e lança um movimento
// ENTRADA_MANUAL, tudo em uma transação. Permitido apenas para itens de tipo
// consumível (Insumo ou Ambos).
func (uc *ItemUseCase) ManualInput(ctx context.Context, itemID int64, qty, totalValue decimal.Decimal) error {
	if !qty.IsPositive() || !totalValue.IsPositive() {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunLedger(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		item, err := itemRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.Kind.CanBeInput() {
			return domain.ErrInvalidInput
		}
		unitCost := totalValue.Div(qty)
		newBalance, newAvgCost := costing.Receipt(item.Balance, item.AvgCost, qty, unitCost)
		if err := itemRepo.UpdateBalanceAndCost(item.ID, newBalance, newAvgCost); err != nil {
			return err
		}
		return movRepo.Append(&entity.Movement{
			ItemID:     itemID,
			Kind:       entity.MovementEntradaManual,
			Quantity:   qty,
			UnitCost:   &unitCost,
			OccurredAt: time.Now(),
			CreatedAt:  time.Now(),
		})
	})
}

func (uc *ItemUseCase) validate(in ItemInput) error {
	if in.Description == "" || !in.Kind.Valid() || in.UnitID == 0 {
		return domain.ErrInvalidInput
	}
	unit, err := uc.unitRepo.GetByID(in.UnitID)
	if err != nil {
		return err
	}
	if unit == nil {
		return domain.ErrNotFound
	}
	return nil
}
