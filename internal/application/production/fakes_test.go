package production

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// memState estado em memória compartilhado pelos repositórios fake.
type memState struct {
	items        map[int64]*entity.Item
	orders       map[int64]*entity.ProductionOrder
	compositions map[int64][]*entity.CompositionLine
	movements    []*entity.Movement
	nextID       int64
}

func newMemState() *memState {
	return &memState{
		items:        make(map[int64]*entity.Item),
		orders:       make(map[int64]*entity.ProductionOrder),
		compositions: make(map[int64][]*entity.CompositionLine),
		nextID:       1,
	}
}

func (s *memState) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memState) clone() *memState {
	c := newMemState()
	c.nextID = s.nextID
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		cp.Lines = append([]entity.ProductionOrderLine(nil), o.Lines...)
		c.orders[id] = &cp
	}
	for id, lines := range s.compositions {
		c.compositions[id] = append([]*entity.CompositionLine(nil), lines...)
	}
	c.movements = append([]*entity.Movement(nil), s.movements...)
	return c
}

func (s *memState) restore(from *memState) {
	s.items = from.items
	s.orders = from.orders
	s.compositions = from.compositions
	s.movements = from.movements
	s.nextID = from.nextID
}

func (s *memState) addItem(kind entity.ItemKind, balance, avgCost decimal.Decimal) *entity.Item {
	it := &entity.Item{
		ID:          s.id(),
		Description: fmt.Sprintf("item %d", s.nextID),
		Kind:        kind,
		UnitID:      1,
		Balance:     balance,
		AvgCost:     avgCost,
	}
	s.items[it.ID] = it
	return it
}

func (s *memState) setComposition(productID int64, lines ...*entity.CompositionLine) {
	for _, l := range lines {
		l.ID = s.id()
		l.ProductID = productID
	}
	s.compositions[productID] = lines
}

func (s *memState) addOpenOrder(lines ...entity.ProductionOrderLine) int64 {
	o := &entity.ProductionOrder{
		ID:     s.id(),
		Number: fmt.Sprintf("OP-%d", s.nextID),
		Status: entity.OrderStatusOpen,
		Lines:  lines,
	}
	for i := range o.Lines {
		o.Lines[i].ID = s.id()
		o.Lines[i].OrderID = o.ID
	}
	s.orders[o.ID] = o
	return o.ID
}

// memItemRepo fake de ItemRepository sobre memState.
type memItemRepo struct{ s *memState }

func (r *memItemRepo) Create(item *entity.Item) (int64, error) {
	item.ID = r.s.id()
	cp := *item
	r.s.items[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memItemRepo) GetByID(id int64) (*entity.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetForUpdate(id int64) (*entity.Item, error) { return r.GetByID(id) }

func (r *memItemRepo) Update(item *entity.Item) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.items[cp.ID] = &cp
	return nil
}

func (r *memItemRepo) UpdateBalanceAndCost(id int64, balance, avgCost decimal.Decimal) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Balance = balance
	it.AvgCost = avgCost
	return nil
}

func (r *memItemRepo) Delete(id int64) error                             { return nil }
func (r *memItemRepo) List() ([]*entity.Item, error)                     { return nil, nil }
func (r *memItemRepo) Search(field, term string) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) IsCompositionInput(id int64) (bool, error)         { return false, nil }
func (r *memItemRepo) HasComposition(id int64) (bool, error)             { return false, nil }
func (r *memItemRepo) IsInProductionOrder(id int64) (bool, error)        { return false, nil }
func (r *memItemRepo) HasMovements(id int64) (bool, error)               { return false, nil }

// memMovementRepo fake de MovementRepository sobre memState.
type memMovementRepo struct{ s *memState }

func (r *memMovementRepo) Append(m *entity.Movement) error {
	cp := *m
	cp.ID = fmt.Sprintf("mov-%d", len(r.s.movements)+1)
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) LastByItem(itemID int64) (*entity.Movement, error) {
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ItemID == itemID {
			return r.s.movements[i], nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByItem(itemID int64, limit, offset int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *memMovementRepo) ListByEntry(entryID int64) ([]*entity.Movement, error) { return nil, nil }

func (r *memMovementRepo) ListByOrder(orderID int64) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

// memCompositionRepo fake de CompositionRepository sobre memState.
type memCompositionRepo struct{ s *memState }

func (r *memCompositionRepo) GetByProduct(productID int64) ([]*entity.CompositionLine, error) {
	return r.s.compositions[productID], nil
}

func (r *memCompositionRepo) Replace(productID int64, lines []*entity.CompositionLine) error {
	r.s.compositions[productID] = lines
	return nil
}

// memOrderRepo fake de ProductionOrderRepository sobre memState.
type memOrderRepo struct{ s *memState }

func (r *memOrderRepo) Create(o *entity.ProductionOrder) (int64, error) {
	cp := *o
	cp.ID = r.s.id()
	cp.Lines = append([]entity.ProductionOrderLine(nil), o.Lines...)
	for i := range cp.Lines {
		cp.Lines[i].ID = r.s.id()
		cp.Lines[i].OrderID = cp.ID
	}
	r.s.orders[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memOrderRepo) GetByID(id int64) (*entity.ProductionOrder, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	cp.Lines = append([]entity.ProductionOrderLine(nil), o.Lines...)
	return &cp, nil
}

func (r *memOrderRepo) UpdateHeader(o *entity.ProductionOrder) error {
	cur, ok := r.s.orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Number = o.Number
	cur.DueDate = o.DueDate
	return nil
}

func (r *memOrderRepo) ReplaceLines(orderID int64, lines []entity.ProductionOrderLine) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Lines = append([]entity.ProductionOrderLine(nil), lines...)
	for i := range o.Lines {
		o.Lines[i].ID = r.s.id()
		o.Lines[i].OrderID = orderID
	}
	return nil
}

func (r *memOrderRepo) SetStatus(orderID int64, status entity.OrderStatus) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}

func (r *memOrderRepo) Complete(orderID int64, producedQty, totalCost decimal.Decimal) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = entity.OrderStatusCompleted
	o.ProducedQty = &producedQty
	o.TotalCost = &totalCost
	return nil
}

func (r *memOrderRepo) Reopen(orderID int64) error {
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = entity.OrderStatusOpen
	o.ProducedQty = nil
	o.TotalCost = nil
	return nil
}

func (r *memOrderRepo) List(field, term string) ([]*entity.ProductionOrder, error) { return nil, nil }

// memTxRunner fake de TxRunner: clona o estado antes de rodar e restaura tudo
// quando fn falha, reproduzindo a semântica tudo-ou-nada da transação real.
type memTxRunner struct{ s *memState }

func (r *memTxRunner) RunProduction(ctx context.Context, fn func(
	orderRepo repository.ProductionOrderRepository,
	compRepo repository.CompositionRepository,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(&memOrderRepo{s: r.s}, &memCompositionRepo{s: r.s}, &memItemRepo{s: r.s}, &memMovementRepo{s: r.s})
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

// newTestUseCase monta o caso de uso inteiro sobre um memState novo.
func newTestUseCase() (*OrderUseCase, *memState) {
	s := newMemState()
	uc := NewOrderUseCase(
		&memTxRunner{s: s},
		&memOrderRepo{s: s},
		&memCompositionRepo{s: s},
		&memItemRepo{s: s},
	)
	return uc, s
}
