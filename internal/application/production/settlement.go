package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/costing"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// requirement é a necessidade agregada de um insumo para a ordem inteira
// (expansão da composição de todas as linhas, somada por insumo).
type requirement struct {
	InputID  int64
	Quantity decimal.Decimal
}

// expandRequirements expande a composição de cada linha da ordem e agrega as
// necessidades por insumo, preservando a ordem de primeira aparição para que a
// liquidação seja determinística.
func expandRequirements(compRepo repository.CompositionRepository, lines []entity.ProductionOrderLine) ([]requirement, error) {
	index := make(map[int64]int)
	var reqs []requirement
	for _, line := range lines {
		comp, err := compRepo.GetByProduct(line.ProductID)
		if err != nil {
			return nil, err
		}
		for _, c := range comp {
			needed := c.Quantity.Mul(line.Quantity)
			if i, ok := index[c.InputID]; ok {
				reqs[i].Quantity = reqs[i].Quantity.Add(needed)
				continue
			}
			index[c.InputID] = len(reqs)
			reqs = append(reqs, requirement{InputID: c.InputID, Quantity: needed})
		}
	}
	return reqs, nil
}

// FinalizeOrder conclui a ordem: expande a composição, checa saldo de todos os
// insumos, consome os insumos ao custo médio vigente, credita os produtos e
// grava quantidade produzida + custo total no cabeçalho. Uma única transação
// para a ordem inteira: se qualquer linha falhar na checagem, nada do que já
// teria sido lançado permanece. Devolve o custo total da ordem.
func (uc *OrderUseCase) FinalizeOrder(ctx context.Context, orderID int64, producedQty decimal.Decimal) (decimal.Decimal, error) {
	if !producedQty.IsPositive() {
		return decimal.Zero, domain.ErrInvalidInput
	}
	var totalCost decimal.Decimal
	err := uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		compRepo repository.CompositionRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		o, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusOpen {
			return domain.ErrInvalidState
		}

		reqs, err := expandRequirements(compRepo, o.Lines)
		if err != nil {
			return err
		}

		// Checagem tudo-ou-nada com as linhas já bloqueadas: a mesma trava
		// vale para a checagem e para o consumo logo abaixo.
		for _, req := range reqs {
			item, err := itemRepo.GetForUpdate(req.InputID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.Balance.LessThan(req.Quantity) {
				return &domain.InsufficientStockError{
					ItemID:    req.InputID,
					Required:  req.Quantity,
					Available: item.Balance,
				}
			}
		}

		totalCost, err = consumeInputs(itemRepo, movRepo, orderID, reqs)
		if err != nil {
			return err
		}
		if err := creditOutputs(itemRepo, movRepo, orderID, o.Lines); err != nil {
			return err
		}
		return orderRepo.Complete(orderID, producedQty, totalCost)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return totalCost, nil
}

// consumeInputs debita cada insumo pela necessidade agregada, ao custo médio
// vigente na baixa (saídas não recalculam custo), e lança um movimento
// SAIDA_PRODUCAO por insumo. Devolve o custo total debitado à ordem.
func consumeInputs(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	orderID int64,
	reqs []requirement,
) (decimal.Decimal, error) {
	totalCost := decimal.Zero
	for _, req := range reqs {
		item, err := itemRepo.GetForUpdate(req.InputID)
		if err != nil {
			return decimal.Zero, err
		}
		if item == nil {
			return decimal.Zero, domain.ErrNotFound
		}
		if item.Balance.LessThan(req.Quantity) {
			return decimal.Zero, &domain.InsufficientStockError{
				ItemID:    req.InputID,
				Required:  req.Quantity,
				Available: item.Balance,
			}
		}
		avgAtIssue := item.AvgCost
		newBalance, newAvgCost := costing.Issue(item.Balance, item.AvgCost, req.Quantity)
		if err := itemRepo.UpdateBalanceAndCost(item.ID, newBalance, newAvgCost); err != nil {
			return decimal.Zero, err
		}
		if err := movRepo.Append(&entity.Movement{
			ItemID:     req.InputID,
			Kind:       entity.MovementSaidaProducao,
			Quantity:   req.Quantity,
			UnitCost:   &avgAtIssue,
			OrderID:    &orderID,
			OccurredAt: time.Now(),
			CreatedAt:  time.Now(),
		}); err != nil {
			return decimal.Zero, err
		}
		totalCost = totalCost.Add(costing.IssueCost(avgAtIssue, req.Quantity))
	}
	return totalCost, nil
}

// returnInputs credita de volta cada insumo consumido pela ordem, a partir dos
// movimentos de saída gravados (quantidade e custo na baixa), com exatamente um
// movimento RETORNO_PRODUCAO de contrapartida por insumo. A devolução não
// rederiva custo médio.
func returnInputs(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	orderID int64,
	issues []*entity.Movement,
) error {
	for _, issue := range issues {
		item, err := itemRepo.GetForUpdate(issue.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := itemRepo.UpdateBalanceAndCost(item.ID, item.Balance.Add(issue.Quantity), item.AvgCost); err != nil {
			return err
		}
		if err := movRepo.Append(&entity.Movement{
			ItemID:     issue.ItemID,
			Kind:       entity.MovementRetornoProducao,
			Quantity:   issue.Quantity,
			UnitCost:   issue.UnitCost,
			OrderID:    &orderID,
			OccurredAt: time.Now(),
			CreatedAt:  time.Now(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// creditOutputs credita o saldo de cada produto da ordem. Produtos recebem
// apenas quantidade — o crédito de produção não carrega custo unitário e não
// recalcula o custo médio do produto.
func creditOutputs(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	orderID int64,
	lines []entity.ProductionOrderLine,
) error {
	for _, line := range lines {
		item, err := itemRepo.GetForUpdate(line.ProductID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if err := itemRepo.UpdateBalanceAndCost(item.ID, item.Balance.Add(line.Quantity), item.AvgCost); err != nil {
			return err
		}
		if err := movRepo.Append(&entity.Movement{
			ItemID:     line.ProductID,
			Kind:       entity.MovementEntradaProducao,
			Quantity:   line.Quantity,
			OrderID:    &orderID,
			OccurredAt: time.Now(),
			CreatedAt:  time.Now(),
		}); err != nil {
			return err
		}
	}
	return nil
}

// ReopenOrder desfaz a conclusão: estorna o crédito dos produtos, devolve os
// insumos consumidos e volta a ordem para Em aberto, limpando quantidade
// produzida e custo total. Rejeitado com InterveningMovementError se qualquer
// item afetado recebeu movimento posterior aos lançamentos desta ordem.
func (uc *OrderUseCase) ReopenOrder(ctx context.Context, orderID int64) error {
	return uc.txRunner.RunProduction(ctx, func(
		orderRepo repository.ProductionOrderRepository,
		compRepo repository.CompositionRepository,
		itemRepo repository.ItemRepository,
		movRepo repository.MovementRepository,
	) error {
		o, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Status != entity.OrderStatusCompleted {
			return domain.ErrInvalidState
		}

		movs, err := movRepo.ListByOrder(orderID)
		if err != nil {
			return err
		}

		// Guarda de movimento interveniente: o último movimento de cada item
		// afetado precisa pertencer a esta ordem.
		checked := make(map[int64]bool)
		for _, m := range movs {
			if checked[m.ItemID] {
				continue
			}
			checked[m.ItemID] = true
			last, err := movRepo.LastByItem(m.ItemID)
			if err != nil {
				return err
			}
			if last == nil || last.OrderID == nil || *last.OrderID != orderID {
				return &domain.InterveningMovementError{ItemID: m.ItemID}
			}
		}

		// Apenas o consumo ainda não compensado é devolvido. Depois de um
		// ciclo anterior de conclusão e reabertura, as saídas antigas já têm
		// retorno de contrapartida: devolver o histórico inteiro inflaria o
		// saldo dos insumos. O líquido por insumo (saídas menos retornos)
		// corresponde à última conclusão, ao custo da baixa dela.
		netQty := make(map[int64]decimal.Decimal)
		lastIssue := make(map[int64]*entity.Movement)
		var inputIDs []int64
		for _, m := range movs {
			switch m.Kind {
			case entity.MovementSaidaProducao:
				if _, seen := lastIssue[m.ItemID]; !seen {
					inputIDs = append(inputIDs, m.ItemID)
				}
				netQty[m.ItemID] = netQty[m.ItemID].Add(m.Quantity)
				lastIssue[m.ItemID] = m
			case entity.MovementRetornoProducao:
				netQty[m.ItemID] = netQty[m.ItemID].Sub(m.Quantity)
			}
		}
		var issues []*entity.Movement
		for _, id := range inputIDs {
			if !netQty[id].IsPositive() {
				continue
			}
			pending := *lastIssue[id]
			pending.Quantity = netQty[id]
			issues = append(issues, &pending)
		}

		// Estorna o crédito dos produtos acabados.
		for _, line := range o.Lines {
			item, err := itemRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if item.Balance.LessThan(line.Quantity) {
				return &domain.InsufficientStockError{
					ItemID:    line.ProductID,
					Required:  line.Quantity,
					Available: item.Balance,
				}
			}
			newBalance, newAvgCost := costing.Issue(item.Balance, item.AvgCost, line.Quantity)
			if err := itemRepo.UpdateBalanceAndCost(item.ID, newBalance, newAvgCost); err != nil {
				return err
			}
			if err := movRepo.Append(&entity.Movement{
				ItemID:     line.ProductID,
				Kind:       entity.MovementEstornoProducao,
				Quantity:   line.Quantity,
				OrderID:    &orderID,
				OccurredAt: time.Now(),
				CreatedAt:  time.Now(),
			}); err != nil {
				return err
			}
		}

		// Devolve os insumos consumidos, replicando os movimentos de saída.
		if err := returnInputs(itemRepo, movRepo, orderID, issues); err != nil {
			return err
		}

		return orderRepo.Reopen(orderID)
	})
}
