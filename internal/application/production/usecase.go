package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// OrderUseCase concentra o ciclo de vida das ordens de produção. Política de
// consumo na finalização: criar/editar só persiste cabeçalho e linhas; o razão
// é tocado apenas em FinalizeOrder/ReopenOrder (ver settlement.go).
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.ProductionOrderRepository
	compRepo  repository.CompositionRepository
	itemRepo  repository.ItemRepository
}

// NewOrderUseCase constrói o caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.ProductionOrderRepository,
	compRepo repository.CompositionRepository,
	itemRepo repository.ItemRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		compRepo:  compRepo,
		itemRepo:  itemRepo,
	}
}

// OrderLineInput é um produto a produzir na entrada do caso de uso.
type OrderLineInput struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// OrderInput é o cabeçalho + linhas para criar ou atualizar uma ordem.
type OrderInput struct {
	Number  string
	DueDate *time.Time
	Lines   []OrderLineInput
}

// CreateOrder cria uma ordem Em aberto. Além das validações de cadastro, roda
// um CheckStock consultivo (sem mutação) para que a falta de insumo apareça já
// na criação — o consumo em si só acontece na finalização.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in OrderInput) (int64, error) {
	if err := uc.validate(in); err != nil {
		return 0, err
	}
	if err := uc.CheckStock(ctx, in.Lines); err != nil {
		return 0, err
	}
	o := &entity.ProductionOrder{
		Number:    in.Number,
		CreatedAt: time.Now(),
		DueDate:   in.DueDate,
		Status:    entity.OrderStatusOpen,
		Lines:     toOrderLines(in.Lines),
	}
	return uc.orderRepo.Create(o)
}

// UpdateOrder atualiza cabeçalho e linhas de uma ordem Em aberto.
func (uc *OrderUseCase) UpdateOrder(ctx context.Context, orderID int64, in OrderInput) error {
	if err := uc.validate(in); err != nil {
		return err
	}
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	if o.Status != entity.OrderStatusOpen {
		return domain.ErrInvalidState
	}
	if err := uc.CheckStock(ctx, in.Lines); err != nil {
		return err
	}

	o.Number = in.Number
	o.DueDate = in.DueDate
	if err := uc.orderRepo.UpdateHeader(o); err != nil {
		return err
	}
	return uc.orderRepo.ReplaceLines(orderID, toOrderLines(in.Lines))
}

// GetOrder devolve a ordem com as linhas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID int64) (*entity.ProductionOrder, error) {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListOrders lista ordens com filtro opcional (id, status, número).
func (uc *OrderUseCase) ListOrders(ctx context.Context, field, term string) ([]*entity.ProductionOrder, error) {
	return uc.orderRepo.List(field, term)
}

// CancelOrder cancela uma ordem Em aberto. Como o consumo só acontece na
// finalização, cancelar não tem efeito algum sobre o razão. Ordem concluída
// precisa ser reaberta antes.
func (uc *OrderUseCase) CancelOrder(ctx context.Context, orderID int64) error {
	o, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if o == nil {
		return domain.ErrNotFound
	}
	if o.Status != entity.OrderStatusOpen {
		return domain.ErrInvalidState
	}
	return uc.orderRepo.SetStatus(orderID, entity.OrderStatusCancelled)
}

// CheckStock verifica, sem qualquer mutação, se há saldo para atender a
// expansão de composição de todas as linhas. Falha com InsufficientStockError
// no primeiro insumo sem saldo.
func (uc *OrderUseCase) CheckStock(ctx context.Context, lines []OrderLineInput) error {
	reqs, err := expandRequirements(uc.compRepo, toOrderLines(lines))
	if err != nil {
		return err
	}
	for _, req := range reqs {
		item, err := uc.itemRepo.GetByID(req.InputID)
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
	return nil
}

// validate checa as linhas antes de qualquer mutação: pelo menos um produto,
// quantidades positivas, produto existente e de tipo produzível.
func (uc *OrderUseCase) validate(in OrderInput) error {
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	seen := make(map[int64]bool, len(in.Lines))
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() {
			return domain.ErrInvalidInput
		}
		if seen[l.ProductID] {
			return domain.ErrDuplicate
		}
		seen[l.ProductID] = true

		item, err := uc.itemRepo.GetByID(l.ProductID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.Kind.CanBeOutput() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func toOrderLines(in []OrderLineInput) []entity.ProductionOrderLine {
	lines := make([]entity.ProductionOrderLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, entity.ProductionOrderLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return lines
}
