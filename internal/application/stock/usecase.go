package stock

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
	"github.com/minisis/producao-api/internal/domain/repository"
)

// EntryUseCase concentra o ciclo de vida das notas de entrada: CRUD enquanto
// Em Aberto e a liquidação Finalizar/Reabrir (ver settlement.go).
type EntryUseCase struct {
	txRunner     TxRunner
	entryRepo    repository.StockEntryRepository
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
}

// NewEntryUseCase constrói o caso de uso.
func NewEntryUseCase(
	txRunner TxRunner,
	entryRepo repository.StockEntryRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
) *EntryUseCase {
	return &EntryUseCase{
		txRunner:     txRunner,
		entryRepo:    entryRepo,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
	}
}

// EntryLineInput é uma linha de nota na entrada do caso de uso.
type EntryLineInput struct {
	ItemID     int64
	SupplierID int64
	Quantity   decimal.Decimal
	UnitCost   decimal.Decimal
}

// EntryInput é o cabeçalho + linhas para criar ou atualizar uma nota.
type EntryInput struct {
	EntryDate  time.Time
	NoteNumber string
	Note       string
	Lines      []EntryLineInput
}

// CreateEntry cria uma nota Em Aberto. As linhas são opcionais na criação e
// podem ser editadas livremente até a finalização.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, in EntryInput) (int64, error) {
	if err := uc.validate(in); err != nil {
		return 0, err
	}
	e := &entity.StockEntry{
		EntryDate:  in.EntryDate,
		TypedAt:    time.Now(),
		NoteNumber: in.NoteNumber,
		Note:       in.Note,
		TotalValue: lineTotal(in.Lines),
		Status:     entity.EntryStatusOpen,
		Lines:      toEntryLines(in.Lines),
	}
	return uc.entryRepo.Create(e)
}

// UpdateEntry atualiza cabeçalho e linhas de uma nota Em Aberto.
// Nota finalizada não pode ser editada até ser reaberta.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, entryID int64, in EntryInput) error {
	if err := uc.validate(in); err != nil {
		return err
	}
	e, err := uc.entryRepo.GetByID(entryID)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	if e.Status != entity.EntryStatusOpen {
		return domain.ErrAlreadyFinalized
	}

	e.EntryDate = in.EntryDate
	e.NoteNumber = in.NoteNumber
	e.Note = in.Note
	if err := uc.entryRepo.UpdateHeader(e); err != nil {
		return err
	}
	if err := uc.entryRepo.ReplaceLines(entryID, toEntryLines(in.Lines)); err != nil {
		return err
	}
	return uc.entryRepo.SetTotalValue(entryID, lineTotal(in.Lines))
}

// GetEntry devolve a nota com as linhas.
func (uc *EntryUseCase) GetEntry(ctx context.Context, entryID int64) (*entity.StockEntry, error) {
	e, err := uc.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

// ListEntries lista notas com filtro opcional (id, fornecedor, número da nota, status, observação).
func (uc *EntryUseCase) ListEntries(ctx context.Context, field, term string) ([]*entity.StockEntry, error) {
	return uc.entryRepo.List(field, term)
}

// validate checa cabeçalho e linhas antes de qualquer mutação: quantidades
// positivas, custos não negativos, itens de tipo consumível e fornecedor válido.
func (uc *EntryUseCase) validate(in EntryInput) error {
	if in.EntryDate.IsZero() {
		return domain.ErrInvalidInput
	}
	seen := make(map[int64]bool, len(in.Lines))
	for _, l := range in.Lines {
		if !l.Quantity.IsPositive() || l.UnitCost.IsNegative() {
			return domain.ErrInvalidInput
		}
		if seen[l.ItemID] {
			// uma linha por insumo por nota
			return domain.ErrDuplicate
		}
		seen[l.ItemID] = true

		item, err := uc.itemRepo.GetByID(l.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		if !item.Kind.CanBeInput() {
			return domain.ErrInvalidInput
		}
		sup, err := uc.supplierRepo.GetByID(l.SupplierID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.ErrNotFound
		}
	}
	return nil
}

func toEntryLines(in []EntryLineInput) []entity.StockEntryLine {
	lines := make([]entity.StockEntryLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, entity.StockEntryLine{
			ItemID:     l.ItemID,
			SupplierID: l.SupplierID,
			Quantity:   l.Quantity,
			UnitCost:   l.UnitCost,
		})
	}
	return lines
}

func lineTotal(in []EntryLineInput) decimal.Decimal {
	total := decimal.Zero
	for _, l := range in {
		total = total.Add(l.Quantity.Mul(l.UnitCost))
	}
	return total
}
