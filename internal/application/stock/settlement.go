package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/costing"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// FinalizeEntry liquida a nota: para cada linha, em ordem, aplica o custeio de
// entrada no item, lança um movimento ENTRADA_NOTA e acumula o valor total.
// Tudo dentro de uma única transação — em qualquer falha nada é persistido e a
// nota permanece Em Aberto. Devolve o valor total gravado na nota.
func (uc *EntryUseCase) FinalizeEntry(ctx context.Context, entryID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := uc.txRunner.RunEntry(ctx, func(
		entryRepo repository.StockEntryRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		e, err := entryRepo.GetByID(entryID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if e.Status == entity.EntryStatusFinalized {
			return domain.ErrAlreadyFinalized
		}
		if len(e.Lines) == 0 {
			return domain.ErrEmptyNote
		}

		total = decimal.Zero
		for _, line := range e.Lines {
			item, err := itemRepo.GetForUpdate(line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			newBalance, newAvgCost := costing.Receipt(item.Balance, item.AvgCost, line.Quantity, line.UnitCost)
			if err := itemRepo.UpdateBalanceAndCost(item.ID, newBalance, newAvgCost); err != nil {
				return err
			}
			unitCost := line.UnitCost
			if err := movRepo.Append(&entity.Movement{
				ItemID:     line.ItemID,
				Kind:       entity.MovementEntradaNota,
				Quantity:   line.Quantity,
				UnitCost:   &unitCost,
				EntryID:    &entryID,
				OccurredAt: e.EntryDate,
				CreatedAt:  time.Now(),
			}); err != nil {
				return err
			}
			total = total.Add(line.LineTotal())
		}

		if err := entryRepo.SetTotalValue(entryID, total); err != nil {
			return err
		}
		return entryRepo.SetStatus(entryID, entity.EntryStatusFinalized)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ReopenEntry estorna a liquidação: aplica o inverso algébrico do custeio em
// cada linha, lança movimentos ESTORNO_NOTA e volta o status para Em Aberto.
// O estorno só é exato quando o último movimento de cada item afetado é o
// lançamento desta própria nota; havendo movimentação interveniente a operação
// é rejeitada com InterveningMovementError e nada muda.
func (uc *EntryUseCase) ReopenEntry(ctx context.Context, entryID int64) error {
	return uc.txRunner.RunEntry(ctx, func(
		entryRepo repository.StockEntryRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		e, err := entryRepo.GetByID(entryID)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if e.Status != entity.EntryStatusFinalized {
			return domain.ErrNotFinalized
		}

		// Guarda de movimento interveniente, antes de qualquer mutação.
		for _, line := range e.Lines {
			last, err := movRepo.LastByItem(line.ItemID)
			if err != nil {
				return err
			}
			if last == nil || last.Kind != entity.MovementEntradaNota ||
				last.EntryID == nil || *last.EntryID != entryID {
				return &domain.InterveningMovementError{ItemID: line.ItemID}
			}
		}

		for _, line := range e.Lines {
			item, err := itemRepo.GetForUpdate(line.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.Balance.LessThan(line.Quantity) {
				return &domain.InsufficientStockError{
					ItemID:    item.ID,
					Required:  line.Quantity,
					Available: item.Balance,
				}
			}
			newBalance, newAvgCost := costing.ReverseReceipt(item.Balance, item.AvgCost, line.Quantity, line.UnitCost)
			if err := itemRepo.UpdateBalanceAndCost(item.ID, newBalance, newAvgCost); err != nil {
				return err
			}
			unitCost := line.UnitCost
			if err := movRepo.Append(&entity.Movement{
				ItemID:     line.ItemID,
				Kind:       entity.MovementEstornoNota,
				Quantity:   line.Quantity,
				UnitCost:   &unitCost,
				EntryID:    &entryID,
				OccurredAt: time.Now(),
				CreatedAt:  time.Now(),
			}); err != nil {
				return err
			}
		}

		return entryRepo.SetStatus(entryID, entity.EntryStatusOpen)
	})
}
