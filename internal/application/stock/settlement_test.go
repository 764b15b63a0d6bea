package stock

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minisis/producao-api/internal/domain"
	"github.com/minisis/producao-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newOpenEntry(s *memState, lines ...entity.StockEntryLine) int64 {
	repo := &memEntryRepo{s: s}
	id, err := repo.Create(&entity.StockEntry{
		EntryDate:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		TypedAt:    time.Now(),
		NoteNumber: "NF-123",
		Status:     entity.EntryStatusOpen,
		Lines:      lines,
	})
	if err != nil {
		panic(err)
	}
	return id
}

func TestFinalizeEntry_AtualizaCustoMedio(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	farinha := s.addItem(entity.ItemKindInsumo, dec("10"), dec("2.00"))

	entryID := newOpenEntry(s, entity.StockEntryLine{
		ItemID:     farinha.ID,
		SupplierID: sup.ID,
		Quantity:   dec("5"),
		UnitCost:   dec("5.00"),
	})

	total, err := uc.FinalizeEntry(context.Background(), entryID)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("25.00")), "total da nota: %s", total)

	it := s.items[farinha.ID]
	assert.True(t, it.Balance.Equal(dec("15")), "saldo: %s", it.Balance)
	assert.True(t, it.AvgCost.Equal(dec("3")), "custo médio: %s", it.AvgCost)

	e := s.entries[entryID]
	assert.Equal(t, entity.EntryStatusFinalized, e.Status)
	assert.True(t, e.TotalValue.Equal(dec("25.00")))

	require.Len(t, s.movements, 1)
	m := s.movements[0]
	assert.Equal(t, entity.MovementEntradaNota, m.Kind)
	assert.True(t, m.Quantity.Equal(dec("5")))
	require.NotNil(t, m.EntryID)
	assert.Equal(t, entryID, *m.EntryID)
}

func TestFinalizeEntry_NotaJaFinalizada(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	insumo := s.addItem(entity.ItemKindInsumo, decimal.Zero, decimal.Zero)
	entryID := newOpenEntry(s, entity.StockEntryLine{
		ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("1"), UnitCost: dec("1"),
	})

	_, err := uc.FinalizeEntry(context.Background(), entryID)
	require.NoError(t, err)

	_, err = uc.FinalizeEntry(context.Background(), entryID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)

	// a segunda tentativa não lança movimento nenhum
	assert.Len(t, s.movements, 1)
}

func TestFinalizeEntry_NotaVazia(t *testing.T) {
	uc, s := newTestUseCase()
	entryID := newOpenEntry(s)

	_, err := uc.FinalizeEntry(context.Background(), entryID)
	assert.ErrorIs(t, err, domain.ErrEmptyNote)
	assert.Equal(t, entity.EntryStatusOpen, s.entries[entryID].Status)
}

func TestFinalizeEntry_NotaInexistente(t *testing.T) {
	uc, _ := newTestUseCase()
	_, err := uc.FinalizeEntry(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFinalizeEntry_FalhaNaoDeixaLancamentoParcial(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	ok := s.addItem(entity.ItemKindInsumo, dec("10"), dec("2.00"))

	// segunda linha referencia um item que não existe; nada da primeira pode
	// ficar persistido
	entryID := newOpenEntry(s,
		entity.StockEntryLine{ItemID: ok.ID, SupplierID: sup.ID, Quantity: dec("5"), UnitCost: dec("5.00")},
		entity.StockEntryLine{ItemID: 999, SupplierID: sup.ID, Quantity: dec("1"), UnitCost: dec("1.00")},
	)

	_, err := uc.FinalizeEntry(context.Background(), entryID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	it := s.items[ok.ID]
	assert.True(t, it.Balance.Equal(dec("10")), "saldo não pode mudar: %s", it.Balance)
	assert.True(t, it.AvgCost.Equal(dec("2.00")))
	assert.Empty(t, s.movements)
	assert.Equal(t, entity.EntryStatusOpen, s.entries[entryID].Status)
}

func TestReopenEntry_RestauraSaldoECusto(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	farinha := s.addItem(entity.ItemKindInsumo, dec("10"), dec("2.00"))
	entryID := newOpenEntry(s, entity.StockEntryLine{
		ItemID: farinha.ID, SupplierID: sup.ID, Quantity: dec("5"), UnitCost: dec("5.00"),
	})

	_, err := uc.FinalizeEntry(context.Background(), entryID)
	require.NoError(t, err)

	err = uc.ReopenEntry(context.Background(), entryID)
	require.NoError(t, err)

	it := s.items[farinha.ID]
	assert.True(t, it.Balance.Equal(dec("10")), "saldo restaurado: %s", it.Balance)
	assert.True(t, it.AvgCost.Equal(dec("2.00")), "custo restaurado: %s", it.AvgCost)
	assert.Equal(t, entity.EntryStatusOpen, s.entries[entryID].Status)

	// o razão guarda a história: entrada + estorno, nada apagado
	require.Len(t, s.movements, 2)
	assert.Equal(t, entity.MovementEntradaNota, s.movements[0].Kind)
	assert.Equal(t, entity.MovementEstornoNota, s.movements[1].Kind)
}

func TestReopenEntry_SaldoZeradoZeraCusto(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	insumo := s.addItem(entity.ItemKindInsumo, decimal.Zero, decimal.Zero)
	entryID := newOpenEntry(s, entity.StockEntryLine{
		ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("4"), UnitCost: dec("2.50"),
	})

	_, err := uc.FinalizeEntry(context.Background(), entryID)
	require.NoError(t, err)
	require.NoError(t, uc.ReopenEntry(context.Background(), entryID))

	it := s.items[insumo.ID]
	assert.True(t, it.Balance.IsZero())
	assert.True(t, it.AvgCost.IsZero(), "item sem saldo não carrega custo: %s", it.AvgCost)
}

func TestReopenEntry_NotaNaoFinalizada(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	insumo := s.addItem(entity.ItemKindInsumo, decimal.Zero, decimal.Zero)
	entryID := newOpenEntry(s, entity.StockEntryLine{
		ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("1"), UnitCost: dec("1"),
	})

	err := uc.ReopenEntry(context.Background(), entryID)
	assert.ErrorIs(t, err, domain.ErrNotFinalized)
}

func TestReopenEntry_MovimentoIntervenienteBloqueia(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	farinha := s.addItem(entity.ItemKindInsumo, dec("10"), dec("2.00"))
	entryID := newOpenEntry(s, entity.StockEntryLine{
		ItemID: farinha.ID, SupplierID: sup.ID, Quantity: dec("5"), UnitCost: dec("5.00"),
	})

	_, err := uc.FinalizeEntry(context.Background(), entryID)
	require.NoError(t, err)

	// outro movimento toca o item depois da finalização
	movRepo := &memMovementRepo{s: s}
	require.NoError(t, movRepo.Append(&entity.Movement{
		ItemID:     farinha.ID,
		Kind:       entity.MovementEntradaManual,
		Quantity:   dec("1"),
		OccurredAt: time.Now(),
		CreatedAt:  time.Now(),
	}))

	balBefore := s.items[farinha.ID].Balance
	costBefore := s.items[farinha.ID].AvgCost

	err = uc.ReopenEntry(context.Background(), entryID)
	var intervening *domain.InterveningMovementError
	require.ErrorAs(t, err, &intervening)
	assert.Equal(t, farinha.ID, intervening.ItemID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// rejeição sem efeito colateral
	it := s.items[farinha.ID]
	assert.True(t, it.Balance.Equal(balBefore))
	assert.True(t, it.AvgCost.Equal(costBefore))
	assert.Equal(t, entity.EntryStatusFinalized, s.entries[entryID].Status)
	assert.Len(t, s.movements, 2)
}

func TestCreateEntry_ValidaLinhas(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	insumo := s.addItem(entity.ItemKindInsumo, decimal.Zero, decimal.Zero)
	produto := s.addItem(entity.ItemKindProduto, decimal.Zero, decimal.Zero)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   EntryInput
		want error
	}{
		{
			name: "quantidade zero",
			in: EntryInput{EntryDate: date, Lines: []EntryLineInput{
				{ItemID: insumo.ID, SupplierID: sup.ID, Quantity: decimal.Zero, UnitCost: dec("1")},
			}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "custo negativo",
			in: EntryInput{EntryDate: date, Lines: []EntryLineInput{
				{ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("1"), UnitCost: dec("-1")},
			}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "item repetido na nota",
			in: EntryInput{EntryDate: date, Lines: []EntryLineInput{
				{ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("1"), UnitCost: dec("1")},
				{ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("2"), UnitCost: dec("1")},
			}},
			want: domain.ErrDuplicate,
		},
		{
			name: "produto puro não entra por nota",
			in: EntryInput{EntryDate: date, Lines: []EntryLineInput{
				{ItemID: produto.ID, SupplierID: sup.ID, Quantity: dec("1"), UnitCost: dec("1")},
			}},
			want: domain.ErrInvalidInput,
		},
		{
			name: "fornecedor inexistente",
			in: EntryInput{EntryDate: date, Lines: []EntryLineInput{
				{ItemID: insumo.ID, SupplierID: 999, Quantity: dec("1"), UnitCost: dec("1")},
			}},
			want: domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateEntry(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestUpdateEntry_NotaFinalizadaNaoEdita(t *testing.T) {
	uc, s := newTestUseCase()
	sup := s.addSupplier()
	insumo := s.addItem(entity.ItemKindInsumo, decimal.Zero, decimal.Zero)
	entryID := newOpenEntry(s, entity.StockEntryLine{
		ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("1"), UnitCost: dec("1"),
	})
	_, err := uc.FinalizeEntry(context.Background(), entryID)
	require.NoError(t, err)

	err = uc.UpdateEntry(context.Background(), entryID, EntryInput{
		EntryDate: time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Lines: []EntryLineInput{
			{ItemID: insumo.ID, SupplierID: sup.ID, Quantity: dec("9"), UnitCost: dec("9")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}
