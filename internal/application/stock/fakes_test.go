package stock

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
	items     map[int64]*entity.Item
	entries   map[int64]*entity.StockEntry
	suppliers map[int64]*entity.Supplier
	movements []*entity.Movement
	nextID    int64
}

func newMemState() *memState {
	return &memState{
		items:     make(map[int64]*entity.Item),
		entries:   make(map[int64]*entity.StockEntry),
		suppliers: make(map[int64]*entity.Supplier),
		nextID:    1,
	}
}

func (s *memState) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// clone devolve uma cópia profunda do estado, usada pelo runner fake para
// restaurar tudo quando a transação falha.
func (s *memState) clone() *memState {
	c := newMemState()
	c.nextID = s.nextID
	for id, it := range s.items {
		cp := *it
		c.items[id] = &cp
	}
	for id, e := range s.entries {
		cp := *e
		cp.Lines = append([]entity.StockEntryLine(nil), e.Lines...)
		c.entries[id] = &cp
	}
	for id, sup := range s.suppliers {
		cp := *sup
		c.suppliers[id] = &cp
	}
	c.movements = append([]*entity.Movement(nil), s.movements...)
	return c
}

func (s *memState) restore(from *memState) {
	s.items = from.items
	s.entries = from.entries
	s.suppliers = from.suppliers
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

func (s *memState) addSupplier() *entity.Supplier {
	sup := &entity.Supplier{ID: s.id(), LegalName: "Fornecedor Teste", Status: "Ativo"}
	s.suppliers[sup.ID] = sup
	return sup
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

func (r *memItemRepo) Delete(id int64) error {
	if _, ok := r.s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *memItemRepo) List() ([]*entity.Item, error)                   { return nil, nil }
func (r *memItemRepo) Search(field, term string) ([]*entity.Item, error) { return nil, nil }
func (r *memItemRepo) IsCompositionInput(id int64) (bool, error)       { return false, nil }
func (r *memItemRepo) HasComposition(id int64) (bool, error)           { return false, nil }
func (r *memItemRepo) IsInProductionOrder(id int64) (bool, error)      { return false, nil }

func (r *memItemRepo) HasMovements(id int64) (bool, error) {
	for _, m := range r.s.movements {
		if m.ItemID == id {
			return true, nil
		}
	}
	return false, nil
}

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
	var out []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].ItemID == itemID {
			out = append(out, r.s.movements[i])
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByEntry(entryID int64) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.EntryID != nil && *m.EntryID == entryID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) ListByOrder(orderID int64) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.OrderID != nil && *m.OrderID == orderID {
			out = append(out, m)
		}
	}
	return out, nil
}

// memEntryRepo fake de StockEntryRepository sobre memState.
type memEntryRepo struct{ s *memState }

func (r *memEntryRepo) Create(e *entity.StockEntry) (int64, error) {
	cp := *e
	cp.ID = r.s.id()
	cp.Lines = append([]entity.StockEntryLine(nil), e.Lines...)
	for i := range cp.Lines {
		cp.Lines[i].ID = r.s.id()
		cp.Lines[i].EntryID = cp.ID
	}
	r.s.entries[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memEntryRepo) GetByID(id int64) (*entity.StockEntry, error) {
	e, ok := r.s.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	cp.Lines = append([]entity.StockEntryLine(nil), e.Lines...)
	return &cp, nil
}

func (r *memEntryRepo) UpdateHeader(e *entity.StockEntry) error {
	cur, ok := r.s.entries[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.EntryDate = e.EntryDate
	cur.NoteNumber = e.NoteNumber
	cur.Note = e.Note
	cur.TotalValue = e.TotalValue
	return nil
}

func (r *memEntryRepo) ReplaceLines(entryID int64, lines []entity.StockEntryLine) error {
	e, ok := r.s.entries[entryID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Lines = append([]entity.StockEntryLine(nil), lines...)
	for i := range e.Lines {
		e.Lines[i].ID = r.s.id()
		e.Lines[i].EntryID = entryID
	}
	return nil
}

func (r *memEntryRepo) SetTotalValue(entryID int64, total decimal.Decimal) error {
	e, ok := r.s.entries[entryID]
	if !ok {
		return domain.ErrNotFound
	}
	e.TotalValue = total
	return nil
}

func (r *memEntryRepo) SetStatus(entryID int64, status entity.EntryStatus) error {
	e, ok := r.s.entries[entryID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	return nil
}

func (r *memEntryRepo) List(field, term string) ([]*entity.StockEntry, error) { return nil, nil }

// memSupplierRepo fake de SupplierRepository sobre memState.
type memSupplierRepo struct{ s *memState }

func (r *memSupplierRepo) Create(sup *entity.Supplier) (int64, error) {
	sup.ID = r.s.id()
	cp := *sup
	r.s.suppliers[cp.ID] = &cp
	return cp.ID, nil
}

func (r *memSupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	sup, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sup
	return &cp, nil
}

func (r *memSupplierRepo) Update(sup *entity.Supplier) error          { return nil }
func (r *memSupplierRepo) Delete(id int64) error                      { return nil }
func (r *memSupplierRepo) List() ([]*entity.Supplier, error)          { return nil, nil }

// memTxRunner fake de TxRunner: clona o estado antes de rodar e restaura tudo
// quando fn falha, reproduzindo a semântica tudo-ou-nada da transação real.
type memTxRunner struct{ s *memState }

func (r *memTxRunner) RunEntry(ctx context.Context, fn func(
	entryRepo repository.StockEntryRepository,
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	snapshot := r.s.clone()
	err := fn(&memEntryRepo{s: r.s}, &memItemRepo{s: r.s}, &memMovementRepo{s: r.s})
	if err != nil {
		r.s.restore(snapshot)
	}
	return err
}

// newTestUseCase monta o caso de uso inteiro sobre um memState novo.
func newTestUseCase() (*EntryUseCase, *memState) {
	s := newMemState()
	uc := NewEntryUseCase(
		&memTxRunner{s: s},
		&memEntryRepo{s: s},
		&memItemRepo{s: s},
		&memSupplierRepo{s: s},
	)
	return uc, s
}
